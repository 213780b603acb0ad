package calendar

import (
	"fmt"
	"strconv"
	"strings"
)

// Pattern formatter. Patterns are a flat directive mini-language,
// e.g. "Text(Era,SHORT) Value(YearOfEra)-Value(MonthOfYear,2)":
//
//   - '...'  copies the quoted text verbatim
//   - [...]  is dropped (host-specific directives this formatter
//     does not implement)
//   - Name(Field[,arg...]) renders one field; separator text between
//     directives (spaces, dashes) is copied through unchanged
//
// The scanner is a single pass with no lookahead, so formatting is
// O(len(pattern)).

// fieldKind enumerates the date fields a directive may reference.
type fieldKind int

const (
	fieldEra fieldKind = iota
	fieldYear
	fieldYearOfEra
	fieldDayOfYear
	fieldMonthOfYear
	fieldDayOfMonth
	fieldModifiedJulianDay
	fieldQuarterOfYear
	fieldWeekOfYear
	fieldWeekOfMonth
	fieldDayOfWeek
)

// fieldNames maps directive field names to kinds. The week fields accept
// both the plain and the host-framework spellings.
var fieldNames = map[string]fieldKind{
	"Era":                 fieldEra,
	"Year":                fieldYear,
	"YearOfEra":           fieldYearOfEra,
	"DayOfYear":           fieldDayOfYear,
	"MonthOfYear":         fieldMonthOfYear,
	"DayOfMonth":          fieldDayOfMonth,
	"ModifiedJulianDay":   fieldModifiedJulianDay,
	"QuarterOfYear":       fieldQuarterOfYear,
	"WeekOfYear":          fieldWeekOfYear,
	"WeekOfWeekBasedYear": fieldWeekOfYear,
	"WeekOfMonth":         fieldWeekOfMonth,
	"AlignedWeekOfMonth":  fieldWeekOfMonth,
	"DayOfWeek":           fieldDayOfWeek,
}

// ignoredDirectives render nothing instead of failing. They show up in
// patterns extracted from host formatter objects.
var ignoredDirectives = map[string]bool{
	"ParseCaseSensitive": true,
}

// Format renders the date according to pattern. Any malformed
// directive, unknown field, or text request for a value-only field
// fails the whole call with ErrInvalidFormat; no partial output is
// returned.
func (d Date) Format(pattern string) (string, error) {
	var out strings.Builder
	var token strings.Builder
	literal := false
	ignored := false

	for _, r := range pattern {
		switch {
		case literal:
			if r == '\'' {
				literal = false
			} else {
				out.WriteRune(r)
			}
		case ignored:
			if r == ']' {
				ignored = false
			}
		case r == '\'' && token.Len() == 0:
			literal = true
		case r == '[' && token.Len() == 0:
			ignored = true
		case r == ')':
			if err := d.renderDirective(&out, token.String()); err != nil {
				return "", err
			}
			token.Reset()
		default:
			token.WriteRune(r)
		}
	}
	rest := token.String()
	if strings.Contains(rest, "(") {
		return "", fmt.Errorf("%w: unterminated directive %q", ErrInvalidFormat, rest)
	}
	out.WriteString(rest)
	if literal {
		return "", fmt.Errorf("%w: unterminated quote", ErrInvalidFormat)
	}
	return out.String(), nil
}

// renderDirective expands one accumulated token, e.g.
// " Text(MonthOfYear,FULL". The directive name is the trailing
// identifier before the parenthesis; whatever precedes it is separator
// text and is copied to the output.
func (d Date) renderDirective(out *strings.Builder, token string) error {
	head, rest, ok := strings.Cut(token, "(")
	if !ok {
		return fmt.Errorf("%w: directive %q has no argument list", ErrInvalidFormat, token)
	}

	nameStart := len(head)
	for nameStart > 0 && isIdentRune(rune(head[nameStart-1])) {
		nameStart--
	}
	out.WriteString(head[:nameStart])
	name := head[nameStart:]
	if name == "" {
		return fmt.Errorf("%w: missing directive name in %q", ErrInvalidFormat, token)
	}
	if ignoredDirectives[name] {
		return nil
	}

	args := strings.Split(rest, ",")
	field, ok := fieldNames[args[0]]
	if !ok {
		return fmt.Errorf("%w: unknown field %q", ErrInvalidFormat, args[0])
	}

	switch name {
	case "Text":
		return d.renderText(out, field, args[1:])
	case "Value", "ReducedValue", "Localized":
		return d.renderValue(out, field, args[1:])
	default:
		return fmt.Errorf("%w: unknown directive %q", ErrInvalidFormat, name)
	}
}

func (d Date) renderText(out *strings.Builder, field fieldKind, args []string) error {
	style := StyleFull
	if len(args) > 0 {
		switch args[0] {
		case "FULL":
			style = StyleFull
		case "SHORT":
			style = StyleShort
		case "NARROW":
			style = StyleNarrow
		default:
			return fmt.Errorf("%w: unknown text style %q", ErrInvalidFormat, args[0])
		}
	}
	switch field {
	case fieldEra:
		out.WriteString(d.era.DisplayName(style))
	case fieldMonthOfYear:
		out.WriteString(d.MonthName(style))
	case fieldDayOfWeek:
		out.WriteString(d.WeekdayName(style))
	case fieldQuarterOfYear:
		out.WriteString(d.QuarterName(style))
	default:
		return fmt.Errorf("%w: field has no text form", ErrInvalidFormat)
	}
	return nil
}

func (d Date) renderValue(out *strings.Builder, field fieldKind, args []string) error {
	width := 0
	if len(args) > 0 {
		// A missing or non-positive width falls back to plain decimal.
		if w, err := strconv.Atoi(strings.TrimSpace(args[0])); err == nil {
			width = w
		}
	}
	v := d.fieldValue(field)
	if width > 0 {
		fmt.Fprintf(out, "%0*d", width, v)
	} else {
		fmt.Fprintf(out, "%d", v)
	}
	return nil
}

func isIdentRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// fieldValue returns the numeric value of a field; the two derived
// fields (Modified Julian Day, quarter) are computed on demand.
func (d Date) fieldValue(field fieldKind) int64 {
	switch field {
	case fieldEra:
		return int64(d.era.Value())
	case fieldYear:
		return int64(d.prolepticYear)
	case fieldYearOfEra:
		return int64(d.yearOfEra)
	case fieldDayOfYear:
		return int64(d.dayOfYear)
	case fieldMonthOfYear:
		return int64(d.monthOfYear)
	case fieldDayOfMonth:
		return int64(d.dayOfMonth)
	case fieldModifiedJulianDay:
		return d.ModifiedJulianDay()
	case fieldQuarterOfYear:
		return int64(d.Quarter())
	case fieldWeekOfYear:
		return int64(d.weekOfYear)
	case fieldWeekOfMonth:
		return int64(d.WeekOfMonth())
	default:
		return int64(d.dayOfWeek)
	}
}
