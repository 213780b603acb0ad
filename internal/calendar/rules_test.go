package calendar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestIsLeapYear pins the leap-year alignment: the calendar shares leap
// years with the Gregorian ISO year 1970 years ahead.
func TestIsLeapYear(t *testing.T) {
	tests := []struct {
		year int
		leap bool
	}{
		{0, false},   // ISO 1970
		{2, true},    // ISO 1972
		{6, true},    // ISO 1976
		{10, true},   // ISO 1980
		{30, true},   // ISO 2000, divisible by 400
		{130, false}, // ISO 2100, century rule
		{-2, true},   // ISO 1968
		{-70, false}, // ISO 1900
	}
	for _, tt := range tests {
		assert.Equal(t, tt.leap, IsLeapYear(tt.year), "year %d", tt.year)
	}
}

func TestLeapDaysIn(t *testing.T) {
	assert.Equal(t, 1, LeapDaysIn(0))
	assert.Equal(t, 2, LeapDaysIn(2))
	assert.Equal(t, 1, LeapDaysIn(130))
}

func TestOrdinalDayOfYear(t *testing.T) {
	tests := []struct {
		name    string
		year    int
		month   int
		day     int
		want    int
		wantErr bool
	}{
		{name: "first day", year: 0, month: 1, day: 1, want: 1},
		{name: "last ordinary day", year: 0, month: 13, day: 28, want: 364},
		{name: "first leap day always exists", year: 0, month: 0, day: 1, want: 365},
		{name: "second leap day in leap year", year: 2, month: 0, day: 2, want: 366},
		{name: "second leap day in common year", year: 0, month: 0, day: 2, wantErr: true},
		{name: "month too large", year: 0, month: 14, day: 1, wantErr: true},
		{name: "month negative", year: 0, month: -1, day: 1, wantErr: true},
		{name: "day zero", year: 0, month: 1, day: 0, wantErr: true},
		{name: "day 29 in ordinary month", year: 0, month: 5, day: 29, wantErr: true},
		{name: "mid-year", year: 0, month: 7, day: 14, want: 6*28 + 14},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := OrdinalDayOfYear(tt.year, tt.month, tt.day)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidDate)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// TestWeekdayAndWeek checks the fixed weekday grid: every year starts on
// Monday and the leap days sit outside the week cycle.
func TestWeekdayAndWeek(t *testing.T) {
	tests := []struct {
		dayOfYear int
		weekday   int
		week      int
		quarter   int
	}{
		{1, 1, 1, 1},    // Monday, week 1
		{7, 7, 1, 1},    // Sunday closes week 1
		{8, 1, 2, 1},    // Monday opens week 2
		{91, 7, 13, 1},  // last day of quarter 1
		{92, 1, 14, 2},  // first day of quarter 2
		{364, 7, 52, 4}, // last ordinary day
		{365, 0, 0, 0},  // leap day 1
		{366, 0, 0, 0},  // leap day 2
	}
	for _, tt := range tests {
		assert.Equal(t, tt.weekday, DayOfWeekOf(tt.dayOfYear), "weekday of day %d", tt.dayOfYear)
		assert.Equal(t, tt.week, WeekOfYearOf(tt.dayOfYear), "week of day %d", tt.dayOfYear)
		assert.Equal(t, tt.quarter, QuarterOf(WeekOfYearOf(tt.dayOfYear)), "quarter of day %d", tt.dayOfYear)
	}
}

func TestEraMapping(t *testing.T) {
	assert.Equal(t, SinceEpoch, EraOfYear(0), "year 0 is canonically SinceEpoch")
	assert.Equal(t, SinceEpoch, EraOfYear(55))
	assert.Equal(t, BeforeEpoch, EraOfYear(-1))

	assert.Equal(t, -12, ProlepticYear(BeforeEpoch, 12))
	assert.Equal(t, 12, ProlepticYear(SinceEpoch, 12))
	assert.Equal(t, 12, YearOfEra(-12))

	e, err := EraOfValue(1)
	require.NoError(t, err)
	assert.Equal(t, SinceEpoch, e)
	_, err = EraOfValue(2)
	assert.ErrorIs(t, err, ErrInvalidEra)

	assert.Equal(t, "Before Epoch", BeforeEpoch.DisplayName(StyleFull))
	assert.Equal(t, "SE", SinceEpoch.DisplayName(StyleShort))
	assert.Equal(t, "+", SinceEpoch.DisplayName(StyleNarrow))
	assert.Equal(t, "-", BeforeEpoch.DisplayName(StyleNarrow))
}
