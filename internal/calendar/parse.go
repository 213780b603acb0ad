package calendar

import (
	"fmt"
	"strconv"
	"strings"
)

// Parse reads a date in the canonical "era year-month-day" form, e.g.
// "SE 55-13-28", "BE 12-1-1", "+55-13-28", or "0-0-1". The era prefix
// may be the short name followed by a space, the narrow sign, or absent
// (SinceEpoch). The optional "ModernDigital" prefix produced by String
// is accepted and skipped.
func Parse(s string) (Date, error) {
	in := strings.TrimSpace(s)
	in = strings.TrimPrefix(in, "ModernDigital")
	in = strings.TrimLeft(in, " ")

	era := SinceEpoch
	switch {
	case strings.HasPrefix(in, eraNames[BeforeEpoch][StyleShort]+" "):
		era = BeforeEpoch
		in = strings.TrimLeft(in[len(eraNames[BeforeEpoch][StyleShort]):], " ")
	case strings.HasPrefix(in, eraNames[SinceEpoch][StyleShort]+" "):
		in = strings.TrimLeft(in[len(eraNames[SinceEpoch][StyleShort]):], " ")
	case strings.HasPrefix(in, eraNames[BeforeEpoch][StyleNarrow]):
		era = BeforeEpoch
		in = in[len(eraNames[BeforeEpoch][StyleNarrow]):]
	case strings.HasPrefix(in, eraNames[SinceEpoch][StyleNarrow]):
		in = in[len(eraNames[SinceEpoch][StyleNarrow]):]
	}

	parts := strings.Split(in, "-")
	if len(parts) != 3 {
		return Date{}, fmt.Errorf("%w: %q is not year-month-day", ErrInvalidDate, s)
	}
	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return Date{}, fmt.Errorf("%w: %q: bad number %q", ErrInvalidDate, s, p)
		}
		nums[i] = n
	}
	return New(era, nums[0], nums[1], nums[2])
}
