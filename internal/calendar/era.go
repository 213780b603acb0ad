package calendar

import "fmt"

// TextStyle selects how wide a rendered name should be.
type TextStyle int

const (
	StyleFull TextStyle = iota
	StyleShort
	StyleNarrow
)

// Era identifies which side of the reference epoch a year falls on.
// The calendar is a closed two-variant enumeration: years before the
// epoch and years since it.
type Era int

const (
	BeforeEpoch Era = iota
	SinceEpoch
)

var eraNames = [2][3]string{
	BeforeEpoch: {StyleFull: "Before Epoch", StyleShort: "BE", StyleNarrow: "-"},
	SinceEpoch:  {StyleFull: "Since Epoch", StyleShort: "SE", StyleNarrow: "+"},
}

// EraOfValue maps a numeric era value (0 or 1) back to an Era.
func EraOfValue(value int) (Era, error) {
	switch value {
	case int(BeforeEpoch):
		return BeforeEpoch, nil
	case int(SinceEpoch):
		return SinceEpoch, nil
	default:
		return 0, fmt.Errorf("%w: value %d", ErrInvalidEra, value)
	}
}

// EraOfYear returns the era a proleptic year belongs to. Year 0 is
// canonically SinceEpoch.
func EraOfYear(prolepticYear int) Era {
	if prolepticYear < 0 {
		return BeforeEpoch
	}
	return SinceEpoch
}

// Value returns the numeric value of the era: 0 for BeforeEpoch, 1 for
// SinceEpoch.
func (e Era) Value() int { return int(e) }

// Valid reports whether the era is one of the two defined variants.
func (e Era) Valid() bool { return e == BeforeEpoch || e == SinceEpoch }

// DisplayName renders the era name in the requested style.
func (e Era) DisplayName(style TextStyle) string {
	if !e.Valid() {
		return ""
	}
	switch style {
	case StyleShort, StyleNarrow:
		return eraNames[e][style]
	default:
		return eraNames[e][StyleFull]
	}
}

func (e Era) String() string { return e.DisplayName(StyleShort) }

// ProlepticYear combines an era and a non-negative year-of-era into a
// signed proleptic year.
func ProlepticYear(era Era, yearOfEra int) int {
	y := yearOfEra
	if y < 0 {
		y = -y
	}
	if era == BeforeEpoch {
		return -y
	}
	return y
}

// YearOfEra returns the non-negative year-of-era for a proleptic year.
func YearOfEra(prolepticYear int) int {
	if prolepticYear < 0 {
		return -prolepticYear
	}
	return prolepticYear
}
