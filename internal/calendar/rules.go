package calendar

import "fmt"

// Stateless calendar rules: pure mappings between fields and ordinal
// values, with no knowledge of the epoch-day representation.

// IsLeapYear reports whether a proleptic MDC year is a leap year. The
// Gregorian rule is applied to the matching ISO year so leap years of
// both calendars coincide.
func IsLeapYear(prolepticYear int) bool {
	iso := prolepticYear + isoYearOffset
	if iso < 0 {
		iso = -iso
	}
	return iso%400 == 0 || (iso%4 == 0 && iso%100 != 0)
}

// LeapDaysIn returns the number of trailing leap days in a year: 2 in
// leap years, 1 otherwise.
func LeapDaysIn(prolepticYear int) int {
	if IsLeapYear(prolepticYear) {
		return 2
	}
	return 1
}

// OrdinalDayOfYear maps (month, day) to the ordinal day of the given
// year. Month 0 is the leap pseudo-month holding the days past day 364;
// its length depends on the year's leap-day count, which is why the
// year participates in validation.
func OrdinalDayOfYear(prolepticYear, month, day int) (int, error) {
	if month < 0 || month > MonthsPerYear {
		return 0, fmt.Errorf("%w: month %d out of range [0,%d]", ErrInvalidDate, month, MonthsPerYear)
	}
	if month == 0 {
		if day < 1 || day > LeapDaysIn(prolepticYear) {
			return 0, fmt.Errorf("%w: leap day %d of year %d", ErrInvalidDate, day, prolepticYear)
		}
		return NonLeapDaysPerYear + day, nil
	}
	if day < 1 || day > DaysPerMonth {
		return 0, fmt.Errorf("%w: day %d out of range [1,%d]", ErrInvalidDate, day, DaysPerMonth)
	}
	return (month-1)*DaysPerMonth + day, nil
}

// DayOfWeekOf returns the ISO-style weekday (Monday=1 .. Sunday=7) of an
// ordinal day of year. Leap days belong to no weekday and map to 0.
func DayOfWeekOf(dayOfYear int) int {
	if dayOfYear > NonLeapDaysPerYear {
		return 0
	}
	return (dayOfYear-1)%DaysPerWeek + 1
}

// WeekOfYearOf returns the ordinal week (1..52) of an ordinal day of
// year, or 0 for leap days, which belong to no week.
func WeekOfYearOf(dayOfYear int) int {
	if dayOfYear > NonLeapDaysPerYear {
		return 0
	}
	return (dayOfYear-1)/DaysPerWeek + 1
}

// QuarterOf returns the quarter (1..4) containing a week of year, or 0
// for week 0 (leap days).
func QuarterOf(weekOfYear int) int {
	if weekOfYear == 0 {
		return 0
	}
	return (weekOfYear-1)/WeeksPerQuarter + 1
}
