package calendar

// Epoch-day math. The calendar shares year boundaries with the proleptic
// Gregorian calendar (MDC year Y is ISO year Y+1970), so the linear
// epoch-day axis is bridged with the standard 400/100/4-year day-count
// formulas, applied with floor semantics so negative years work.

const (
	// daysPerCycle is the length of one full 400-year Gregorian cycle.
	daysPerCycle = 146097

	// daysZeroTo1970 is the day count from 0000-01-01 to 1970-01-01 ISO.
	daysZeroTo1970 = 719528
)

func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// yearStartEpochDay returns the epoch day of day 1 of a proleptic MDC
// year, i.e. of January 1st of the matching ISO year.
func yearStartEpochDay(prolepticYear int64) int64 {
	iso := prolepticYear + isoYearOffset
	return 365*iso +
		floorDiv(iso+3, 4) -
		floorDiv(iso+99, 100) +
		floorDiv(iso+399, 400) -
		daysZeroTo1970
}

// cycleYearStart returns the day offset from the start of a 400-year
// cycle to the start of year q (0 <= q <= 400) within that cycle. Cycles
// always open with a leap year, so the offset is position-independent.
func cycleYearStart(q int64) int64 {
	return 365*q + (q+3)/4 - (q+99)/100 + (q+399)/400
}

// splitEpochDay decomposes an epoch day into the proleptic MDC year
// containing it and the ordinal day of that year (1-based). Reducing by
// whole 400-year cycles first keeps the year estimate small enough to
// avoid overflow in the multiply.
func splitEpochDay(epochDay int64) (prolepticYear int64, dayOfYear int) {
	zero := epochDay + daysZeroTo1970
	cycle := floorDiv(zero, daysPerCycle)
	rem := zero - cycle*daysPerCycle

	q := (400*rem + 591) / daysPerCycle
	if cycleYearStart(q) > rem {
		// The estimate overshoots by at most one near year ends.
		q--
	}

	prolepticYear = cycle*400 + q - isoYearOffset
	dayOfYear = int(rem-cycleYearStart(q)) + 1
	return prolepticYear, dayOfYear
}
