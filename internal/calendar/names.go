package calendar

import "strconv"

// Fixed English name tables. Index 0 holds the out-of-band value used by
// leap days (no month, no weekday, no quarter).

var monthFullNames = [MonthsPerYear + 1]string{
	"Leap", "Unitary", "Duotary", "Tertiary", "Quartuary", "Pentuary",
	"Hextuary", "September", "October", "November", "December",
	"Hendecember", "Dodecember", "Tredecember",
}

var monthShortNames = [MonthsPerYear + 1]string{
	"Leap", "Uni", "Duo", "Ter", "Qua", "Pen", "Hex",
	"Sep", "Oct", "Nov", "Dec", "Hen", "Dod", "Tred",
}

var weekdayFullNames = [DaysPerWeek + 1]string{
	"None", "Monday", "Tuesday", "Wednesday", "Thursday",
	"Friday", "Saturday", "Sunday",
}

var weekdayShortNames = [DaysPerWeek + 1]string{
	"None", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun",
}

var quarterFullNames = [5]string{
	"No quarter", "1st quarter", "2nd quarter", "3rd quarter", "4th quarter",
}

var quarterShortNames = [5]string{"Q0", "Q1", "Q2", "Q3", "Q4"}

func monthName(month int, style TextStyle) string {
	if month < 0 || month > MonthsPerYear {
		return ""
	}
	switch style {
	case StyleShort:
		return monthShortNames[month]
	case StyleNarrow:
		return monthShortNames[month][:1]
	default:
		return monthFullNames[month]
	}
}

func weekdayName(dayOfWeek int, style TextStyle) string {
	if dayOfWeek < 0 || dayOfWeek > DaysPerWeek {
		return ""
	}
	switch style {
	case StyleShort:
		return weekdayShortNames[dayOfWeek]
	case StyleNarrow:
		return weekdayShortNames[dayOfWeek][:1]
	default:
		return weekdayFullNames[dayOfWeek]
	}
}

func quarterName(quarter int, style TextStyle) string {
	if quarter < 0 || quarter > 4 {
		return ""
	}
	switch style {
	case StyleShort:
		return quarterShortNames[quarter]
	case StyleNarrow:
		return strconv.Itoa(quarter)
	default:
		return quarterFullNames[quarter]
	}
}
