// Package calendar implements the Modern Digital Calendar (MDC): a
// fixed-length calendar of thirteen 28-day months followed by one or two
// trailing leap days that belong to no month, week, or weekday. Year 0 of
// the calendar begins on 1970-01-01 ISO, and leap years coincide with
// Gregorian leap years, so every MDC year spans exactly one ISO year.
//
// The package converts between calendar fields and a linear epoch-day
// count, computes symbolic (years, months, days) differences between
// dates, and renders dates through a small pattern formatter. All values
// are immutable; arithmetic returns new instances.
package calendar

import "errors"

// Structural constants of the Modern Digital Calendar.
const (
	DaysPerWeek        = 7
	DaysPerMonth       = 28
	WeeksPerMonth      = 4
	WeeksPerQuarter    = 13
	MonthsPerYear      = 13
	NonLeapDaysPerYear = 364
	DaysPerCommonYear  = 365
	DaysPerLeapYear    = 366
)

// isoYearOffset maps proleptic MDC years onto ISO years: MDC year 0 is
// ISO 1970.
const isoYearOffset = 1970

// mjdEpochOffset is the Modified Julian Day number of 1970-01-01 ISO.
const mjdEpochOffset = 40587

// Error categories surfaced by the package. All failures wrap exactly one
// of these sentinels; match with errors.Is.
var (
	// ErrInvalidDate reports a calendar field outside its domain, or a
	// leap-day value exceeding the year's actual leap-day count.
	ErrInvalidDate = errors.New("invalid calendar date")

	// ErrInvalidEra reports an era value outside the two-element domain.
	ErrInvalidEra = errors.New("invalid era")

	// ErrInvalidFormat reports a malformed format pattern, an unknown
	// field name, or a field unsupported in a text-rendering context.
	ErrInvalidFormat = errors.New("invalid format pattern")

	// ErrInvalidPeriod reports a period that cannot be applied to a date.
	ErrInvalidPeriod = errors.New("invalid period")
)
