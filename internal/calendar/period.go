package calendar

import (
	"fmt"
	"strings"
)

// Period is a signed, conceptual (years, months, days) interval. Years
// and months are not fixed day counts: leap days are excluded from
// month and year length accounting, so applying a period walks the
// calendar's symbolic fields rather than adding a day total.
type Period struct {
	Years  int
	Months int
	Days   int
}

// Negated returns the period with every component sign-flipped.
func (p Period) Negated() Period {
	return Period{Years: -p.Years, Months: -p.Months, Days: -p.Days}
}

// IsZero reports whether every component is zero.
func (p Period) IsZero() bool { return p == Period{} }

// String renders the period in ISO-8601 style, e.g. "P1Y2M3D". A zero
// period renders as "P0D".
func (p Period) String() string {
	if p.IsZero() {
		return "P0D"
	}
	var b strings.Builder
	b.WriteByte('P')
	if p.Years != 0 {
		fmt.Fprintf(&b, "%dY", p.Years)
	}
	if p.Months != 0 {
		fmt.Fprintf(&b, "%dM", p.Months)
	}
	if p.Days != 0 {
		fmt.Fprintf(&b, "%dD", p.Days)
	}
	return b.String()
}

// Unit is a coarse date-based unit convertible to a Period.
type Unit int

const (
	Days Unit = iota
	Weeks
	Months
	Quarters
	Years
	Decades
	Centuries
)

// PeriodOfUnit converts n of the given unit into a Period. A quarter is
// the calendar's 13-week span (91 days); it does not divide the 13-month
// year evenly, so it converts to days rather than months.
func PeriodOfUnit(n int, unit Unit) (Period, error) {
	switch unit {
	case Days:
		return Period{Days: n}, nil
	case Weeks:
		return Period{Days: n * DaysPerWeek}, nil
	case Months:
		return Period{Months: n}, nil
	case Quarters:
		return Period{Days: n * WeeksPerQuarter * DaysPerWeek}, nil
	case Years:
		return Period{Years: n}, nil
	case Decades:
		return Period{Years: n * 10}, nil
	case Centuries:
		return Period{Years: n * 100}, nil
	default:
		return Period{}, fmt.Errorf("%w: unknown unit %d", ErrInvalidPeriod, int(unit))
	}
}

// ParsePeriod reads an ISO-8601-style date period such as "P1Y2M3D",
// "P10D", or "-P1Y". A leading '-' negates the whole period.
func ParsePeriod(s string) (Period, error) {
	in := strings.TrimSpace(s)
	neg := false
	if strings.HasPrefix(in, "-") {
		neg = true
		in = in[1:]
	}
	if len(in) < 2 || (in[0] != 'P' && in[0] != 'p') {
		return Period{}, fmt.Errorf("%w: %q", ErrInvalidPeriod, s)
	}
	var p Period
	n := 0
	digits := false
	seen := map[byte]bool{}
	for i := 1; i < len(in); i++ {
		c := in[i]
		switch {
		case c >= '0' && c <= '9':
			n = n*10 + int(c-'0')
			digits = true
		case c == 'Y' || c == 'y', c == 'M' || c == 'm', c == 'D' || c == 'd':
			u := byte(strings.ToUpper(string(c))[0])
			if !digits || seen[u] {
				return Period{}, fmt.Errorf("%w: %q", ErrInvalidPeriod, s)
			}
			seen[u] = true
			switch u {
			case 'Y':
				p.Years = n
			case 'M':
				p.Months = n
			case 'D':
				p.Days = n
			}
			n, digits = 0, false
		default:
			return Period{}, fmt.Errorf("%w: %q", ErrInvalidPeriod, s)
		}
	}
	if digits || len(seen) == 0 {
		return Period{}, fmt.Errorf("%w: %q", ErrInvalidPeriod, s)
	}
	if neg {
		p = p.Negated()
	}
	return p, nil
}

// Until computes the period from d to that, negative when that precedes
// d. Leap days belong to no month, so a leap-day endpoint is first
// replaced by the last ordinary day of its year (month 13 day 28) and
// re-applied as a raw day correction afterwards; this keeps
// d.Plus(d.Until(that)) == that.
func (d Date) Until(that Date) Period {
	start, end, sign := d, that, 1
	if that.epochDay < d.epochDay {
		start, end, sign = that, d, -1
	}

	dayCorrection := 0
	if start.IsLeapDay() {
		dayCorrection -= start.dayOfMonth
		start = mustProleptic(start.prolepticYear, MonthsPerYear, DaysPerMonth)
	}
	if end.IsLeapDay() {
		dayCorrection += end.dayOfMonth
		end = mustProleptic(end.prolepticYear, MonthsPerYear, DaysPerMonth)
	}

	totalMonths := MonthsPerYear*(end.prolepticYear-start.prolepticYear) +
		end.monthOfYear - start.monthOfYear
	days := end.dayOfMonth - start.dayOfMonth
	if days < 0 {
		totalMonths--
		days += DaysPerMonth
		if end.monthOfYear == 1 {
			// The borrowed month straddles the previous year's leap
			// day(s), which no month accounts for.
			days += LeapDaysIn(end.prolepticYear - 1)
		}
	}

	p := Period{
		Years:  totalMonths / MonthsPerYear,
		Months: totalMonths % MonthsPerYear,
		Days:   days + dayCorrection,
	}
	if sign < 0 {
		p = p.Negated()
	}
	return p
}

// Plus returns the date shifted forward by p. Years and months move the
// symbolic month field; the day component and any leap-day correction
// are applied afterwards on the epoch-day axis. Periods that push a
// field out of its domain fail with ErrInvalidPeriod.
func (d Date) Plus(p Period) (Date, error) {
	month := d.monthOfYear
	day := d.dayOfMonth
	correction := int64(0)
	if month == 0 {
		// Anchor leap days at the last ordinary day of the year and
		// restore the offset in raw days at the end.
		correction = int64(day)
		day = DaysPerMonth
		month = MonthsPerYear
	}

	totalMonths := int64(MonthsPerYear)*int64(p.Years) + int64(p.Months) + int64(month)
	year := int64(d.prolepticYear)
	var resultMonth int
	if totalMonths <= 0 {
		// Truncating division rounds toward zero; shift the branch so
		// non-positive totals land in the preceding year correctly.
		year += totalMonths/MonthsPerYear - 1
		resultMonth = int(totalMonths%MonthsPerYear) + MonthsPerYear
	} else {
		year += (totalMonths - 1) / MonthsPerYear
		resultMonth = int((totalMonths-1)%MonthsPerYear) + 1
	}

	anchor, err := FromProleptic(int(year), resultMonth, day)
	if err != nil {
		return Date{}, fmt.Errorf("%w: applying %v to %v", ErrInvalidPeriod, p, d)
	}
	return FromEpochDay(anchor.epochDay + int64(p.Days) + correction), nil
}

// Minus returns the date shifted backward by p.
func (d Date) Minus(p Period) (Date, error) {
	return d.Plus(p.Negated())
}

// mustProleptic builds a date from fields known to be valid.
func mustProleptic(year, month, day int) Date {
	d, err := FromProleptic(year, month, day)
	if err != nil {
		panic(err)
	}
	return d
}
