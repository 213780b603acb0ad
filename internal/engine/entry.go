package engine

import (
	"time"

	"github.com/tartampluch/go-mdc/internal/calendar"
)

// Entry is a lightweight contact record produced by the sync pipeline.
// It decouples consumers (CLI output, feed server) from the vCard
// parsing logic.
type Entry struct {
	// UID is a deterministic hash identifying the contact across syncs.
	UID string

	// Name is the display name (Formatted Name or Structured Name).
	Name string

	// DateOfBirth is the original parsed Gregorian date.
	DateOfBirth time.Time

	// BirthDate is the same day expressed in the Modern Digital Calendar.
	BirthDate calendar.Date

	// YearKnown indicates if the vCard contained a year or just --MM-DD.
	YearKnown bool

	// NextOccurrence is the upcoming MDC anniversary of BirthDate,
	// the primary sorting key for upcoming-birthday views.
	NextOccurrence calendar.Date

	// AgeNext is the age in MDC years the person turns at
	// NextOccurrence. Only valid if YearKnown is true.
	AgeNext int
}
