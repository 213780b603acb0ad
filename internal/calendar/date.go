package calendar

import (
	"fmt"
	"time"
)

// Date is an immutable Modern Digital Calendar date. The zero value is
// not meaningful; construct dates through New, FromProleptic,
// FromYearDay, FromEpochDay, FromTime, Today, or Parse.
type Date struct {
	era           Era
	yearOfEra     int
	prolepticYear int
	monthOfYear   int
	dayOfMonth    int
	dayOfYear     int
	dayOfWeek     int
	weekOfYear    int
	epochDay      int64
}

// New builds a date from explicit calendar fields. Month 0 selects the
// trailing leap pseudo-month; its second day only exists in leap years.
// Year-of-era 0 always belongs to SinceEpoch regardless of the era
// passed in.
func New(era Era, yearOfEra, monthOfYear, dayOfMonth int) (Date, error) {
	if !era.Valid() {
		return Date{}, fmt.Errorf("%w: value %d", ErrInvalidEra, int(era))
	}
	if yearOfEra < 0 {
		return Date{}, fmt.Errorf("%w: year of era %d", ErrInvalidDate, yearOfEra)
	}
	if yearOfEra == 0 {
		era = SinceEpoch
	}
	year := ProlepticYear(era, yearOfEra)
	dayOfYear, err := OrdinalDayOfYear(year, monthOfYear, dayOfMonth)
	if err != nil {
		return Date{}, err
	}
	return Date{
		era:           era,
		yearOfEra:     yearOfEra,
		prolepticYear: year,
		monthOfYear:   monthOfYear,
		dayOfMonth:    dayOfMonth,
		dayOfYear:     dayOfYear,
		dayOfWeek:     DayOfWeekOf(dayOfYear),
		weekOfYear:    WeekOfYearOf(dayOfYear),
		epochDay:      yearStartEpochDay(int64(year)) + int64(dayOfYear) - 1,
	}, nil
}

// FromProleptic builds a date from a signed proleptic year, month and
// day of month.
func FromProleptic(prolepticYear, monthOfYear, dayOfMonth int) (Date, error) {
	return New(EraOfYear(prolepticYear), YearOfEra(prolepticYear), monthOfYear, dayOfMonth)
}

// FromYearDay builds a date from a proleptic year and an ordinal day of
// that year (1..365, or 366 in leap years).
func FromYearDay(prolepticYear, dayOfYear int) (Date, error) {
	if dayOfYear < 1 || dayOfYear > DaysPerLeapYear {
		return Date{}, fmt.Errorf("%w: day of year %d", ErrInvalidDate, dayOfYear)
	}
	month, day := monthDayOf(dayOfYear)
	return FromProleptic(prolepticYear, month, day)
}

// FromEpochDay builds the unique date lying the given number of days
// after (or, negative, before) 1970-01-01 ISO. Every int64 maps to
// exactly one valid date, so no error is possible.
func FromEpochDay(epochDay int64) Date {
	year64, dayOfYear := splitEpochDay(epochDay)
	year := int(year64)
	month, day := monthDayOf(dayOfYear)
	return Date{
		era:           EraOfYear(year),
		yearOfEra:     YearOfEra(year),
		prolepticYear: year,
		monthOfYear:   month,
		dayOfMonth:    day,
		dayOfYear:     dayOfYear,
		dayOfWeek:     DayOfWeekOf(dayOfYear),
		weekOfYear:    WeekOfYearOf(dayOfYear),
		epochDay:      epochDay,
	}
}

// FromTime converts the civil date of t (in t's location) to its MDC
// equivalent. The time of day is discarded; this calendar is date-only.
func FromTime(t time.Time) Date {
	isoYear := t.Year()
	start := yearStartEpochDay(int64(isoYear) - isoYearOffset)
	return FromEpochDay(start + int64(t.YearDay()) - 1)
}

// Today returns the current date according to the supplied clock. The
// local calendar date is used: it is today where the user is, not where
// UTC says it is.
func Today(c Clock) Date {
	return FromTime(c.Now())
}

// monthDayOf derives (month, dayOfMonth) from an ordinal day of year,
// switching to the leap pseudo-month past day 364.
func monthDayOf(dayOfYear int) (month, day int) {
	if dayOfYear > NonLeapDaysPerYear {
		return 0, dayOfYear - NonLeapDaysPerYear
	}
	return (dayOfYear-1)/DaysPerMonth + 1, (dayOfYear-1)%DaysPerMonth + 1
}

// Era returns the era of the date.
func (d Date) Era() Era { return d.era }

// YearOfEra returns the non-negative year within the date's era.
func (d Date) YearOfEra() int { return d.yearOfEra }

// Year returns the signed proleptic year (negative before the epoch).
func (d Date) Year() int { return d.prolepticYear }

// Month returns the month of year in [0,13]; 0 for leap days.
func (d Date) Month() int { return d.monthOfYear }

// Day returns the day of month: [1,28] for months 1-13, [1,2] for the
// leap pseudo-month.
func (d Date) Day() int { return d.dayOfMonth }

// DayOfYear returns the ordinal day of the year in [1,366].
func (d Date) DayOfYear() int { return d.dayOfYear }

// DayOfWeek returns the ISO-style weekday (Monday=1 .. Sunday=7), or 0
// for leap days, which belong to no week.
func (d Date) DayOfWeek() int { return d.dayOfWeek }

// WeekOfYear returns the week of year in [0,52]; 0 for leap days.
func (d Date) WeekOfYear() int { return d.weekOfYear }

// WeekOfMonth returns the aligned week of month in [0,4]; 0 for leap
// days.
func (d Date) WeekOfMonth() int {
	if d.weekOfYear == 0 {
		return 0
	}
	return (d.weekOfYear-1)%WeeksPerMonth + 1
}

// Quarter returns the quarter of year in [0,4]; 0 for leap days.
func (d Date) Quarter() int { return QuarterOf(d.weekOfYear) }

// EpochDay returns the signed day offset from 1970-01-01 ISO.
func (d Date) EpochDay() int64 { return d.epochDay }

// ModifiedJulianDay returns the date's Modified Julian Day number.
func (d Date) ModifiedJulianDay() int64 { return d.epochDay + mjdEpochOffset }

// IsLeapDay reports whether the date falls in the leap pseudo-month.
func (d Date) IsLeapDay() bool { return d.monthOfYear == 0 }

// IsLeapYear reports whether the date's year is a leap year.
func (d Date) IsLeapYear() bool { return IsLeapYear(d.prolepticYear) }

// LengthOfMonth returns the number of days in the date's month: 28 for
// ordinary months, the year's leap-day count for the pseudo-month.
func (d Date) LengthOfMonth() int {
	if d.monthOfYear == 0 {
		return LeapDaysIn(d.prolepticYear)
	}
	return DaysPerMonth
}

// LengthOfYear returns 365, or 366 in leap years.
func (d Date) LengthOfYear() int {
	if d.IsLeapYear() {
		return DaysPerLeapYear
	}
	return DaysPerCommonYear
}

// MonthName renders the date's month name in the requested style.
func (d Date) MonthName(style TextStyle) string { return monthName(d.monthOfYear, style) }

// WeekdayName renders the date's weekday name in the requested style.
// Leap days render as "None".
func (d Date) WeekdayName(style TextStyle) string { return weekdayName(d.dayOfWeek, style) }

// QuarterName renders the date's quarter name in the requested style.
func (d Date) QuarterName(style TextStyle) string { return quarterName(d.Quarter(), style) }

// secondsPerDay converts epoch days to Unix seconds.
const secondsPerDay = 24 * 60 * 60

// Time returns the Gregorian midnight of the date in the given location.
func (d Date) Time(loc *time.Location) time.Time {
	utc := time.Unix(d.epochDay*secondsPerDay, 0).UTC()
	return time.Date(utc.Year(), utc.Month(), utc.Day(), 0, 0, 0, 0, loc)
}

// AddDays returns the date n days later (earlier if negative). Pure
// epoch-day arithmetic, never fails.
func (d Date) AddDays(n int64) Date { return FromEpochDay(d.epochDay + n) }

// Before reports whether d falls strictly before that.
func (d Date) Before(that Date) bool { return d.epochDay < that.epochDay }

// After reports whether d falls strictly after that.
func (d Date) After(that Date) bool { return d.epochDay > that.epochDay }

// Equal reports whether both dates denote the same day.
func (d Date) Equal(that Date) bool { return d.epochDay == that.epochDay }

// Compare returns -1, 0, or +1 ordering d against that.
func (d Date) Compare(that Date) int {
	switch {
	case d.epochDay < that.epochDay:
		return -1
	case d.epochDay > that.epochDay:
		return 1
	default:
		return 0
	}
}

// displayPattern drives String; it mirrors the chronology's canonical
// "era year-month-day" rendering.
const displayPattern = "'ModernDigital' Text(Era,SHORT) Value(YearOfEra)-Value(MonthOfYear,2)-Value(DayOfMonth,2)"

// String renders the date as e.g. "ModernDigital SE 55-13-28".
func (d Date) String() string {
	s, _ := d.Format(displayPattern)
	return s
}
