package engine

import (
	"bytes"
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/emersion/go-ical"
	"github.com/emersion/go-vcard"
	"github.com/tartampluch/go-mdc/internal/calendar"
	"github.com/tartampluch/go-mdc/internal/config"
)

// SyncConfig contains all parameters required to perform a synchronization.
type SyncConfig struct {
	Mode            string // config.SourceModeLocal or config.SourceModeWeb
	LocalPath       string // Absolute path to the .vcf file
	WebURL          string // CardDAV or WebDAV URL
	WebUser         string // HTTP Basic Auth Username
	WebPass         string // HTTP Basic Auth Password
	ReminderTrigger string // ISO8601 duration string (e.g., "-P1D")
}

// Generator fetches vCard data and converts the birthdays it finds into
// an iCalendar feed whose anniversaries follow the Modern Digital
// Calendar: a contact born on MDC 25-03-05 has their event on day 05 of
// month 03 of every MDC year, which drifts against the Gregorian date of
// birth.
type Generator struct {
	Clock   calendar.Clock // Interface for time mocking.
	Fetcher VCardFetcher   // Interface for network abstraction.

	// FormatSummary allows the caller to inject localized event titles.
	FormatSummary func(name string, age int, yearKnown bool) string
}

// RunSync executes the fetching, parsing, and generation pipeline.
// It returns the ICS data, the contact list, the count of anniversaries
// falling today, and any error.
func (g *Generator) RunSync(ctx context.Context, cfg SyncConfig) ([]byte, []Entry, int, error) {
	start := time.Now()
	log := slog.With(
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyMode, cfg.Mode,
	)
	log.InfoContext(ctx, config.MsgSyncStarted)

	reader, err := g.acquireStream(ctx, cfg)
	if err != nil {
		// If context error occurred during acquisition, return it directly.
		if ctx.Err() != nil {
			return nil, nil, 0, ctx.Err()
		}
		return nil, nil, 0, fmt.Errorf("%s: %w", config.ErrVCardParse, err)
	}
	// Best effort close. Errors in Close() for read-only files are rarely actionable here.
	defer func() { _ = reader.Close() }()

	if err := ctx.Err(); err != nil {
		return nil, nil, 0, err
	}

	ics, contacts, count, err := g.generateFeed(ctx, reader, cfg.ReminderTrigger)

	if err == nil {
		log.Debug("Sync finished", config.LogKeyDuration, time.Since(start).Milliseconds())
	}
	return ics, contacts, count, err
}

// acquireStream opens the appropriate data source based on configuration.
func (g *Generator) acquireStream(ctx context.Context, cfg SyncConfig) (io.ReadCloser, error) {
	switch cfg.Mode {
	case config.SourceModeLocal:
		if cfg.LocalPath == "" {
			return nil, errors.New(config.ErrLocalPathEmpty)
		}
		return os.Open(cfg.LocalPath)
	case config.SourceModeWeb:
		if cfg.WebURL == "" {
			return nil, errors.New(config.ErrWebURLEmpty)
		}
		if g.Fetcher == nil {
			return nil, errors.New(config.ErrFetcherMissing)
		}
		return g.Fetcher.Fetch(ctx, cfg.WebURL, cfg.WebUser, cfg.WebPass)
	default:
		return nil, fmt.Errorf("%s: %q", config.ErrModeUnsupport, cfg.Mode)
	}
}

// generateFeed parses the vCard stream and constructs the iCalendar
// object, one event per contact per MDC target year.
func (g *Generator) generateFeed(ctx context.Context, r io.Reader, reminderTrigger string) ([]byte, []Entry, int, error) {
	cal := ical.NewCalendar()

	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, config.ICalCalName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	// RFC 7986: Suggest a refresh interval (Standardized in config)
	refreshProp := ical.NewProp(config.PropRefresh)
	refreshProp.SetDuration(config.DefaultICalRefresh)
	cal.Props.Set(refreshProp)

	// Local time drives the logic, UTC only stamps the ICS. An
	// anniversary is defined by the local calendar date of the person,
	// not an absolute UTC timestamp.
	now := g.Clock.Now()
	today := calendar.FromTime(now)
	dtStampProp := ical.NewProp(config.PropDTStamp)
	dtStampProp.SetDateTime(now.UTC())

	decoder := vcard.NewDecoder(r)
	stats := struct{ processed, withBday, today int }{0, 0, 0}
	var contacts []Entry

	for {
		if ctx.Err() != nil {
			return nil, nil, 0, ctx.Err()
		}

		card, err := decoder.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// Log error but continue to next card to maximize data recovery
			slog.Warn(config.MsgSkippedCard,
				config.LogKeyComponent, config.CompEngine,
				config.LogKeyError, err)
			continue
		}

		stats.processed++
		bday := card.Get(config.VCardBDAY)
		if bday == nil || bday.Value == "" {
			continue
		}

		birthTime, yearKnown, err := parseDate(bday.Value)
		if err != nil {
			slog.Debug(config.MsgSkippedDate,
				config.LogKeyComponent, config.CompEngine,
				config.LogKeyValue, bday.Value)
			continue
		}
		stats.withBday++
		birth := calendar.FromTime(birthTime)

		// Name Strategy: FN (Formatted) > N (Structured) > Fallback
		name := config.FallbackName
		if fn := card.Get(config.VCardFN); fn != nil {
			name = fn.Value
		} else if n := card.Get(config.VCardN); n != nil {
			name = n.Value
		}

		// Deterministic UID generation for stability across refreshes
		input := fmt.Sprintf(config.FormatHashInput, name, birthTime.Format(time.RFC3339), config.UIDSalt)
		hash := sha256.Sum256([]byte(input))
		uidBase := fmt.Sprintf("%x", hash[:config.UIDHashLength])

		nextOcc, ageNext := nextOccurrence(today, birth, yearKnown)

		contacts = append(contacts, Entry{
			UID:            uidBase,
			Name:           name,
			DateOfBirth:    birthTime,
			BirthDate:      birth,
			YearKnown:      yearKnown,
			NextOccurrence: nextOcc,
			AgeNext:        ageNext,
		})

		events, isToday := g.createEvents(name, birth, yearKnown, reminderTrigger, today, now.Location(), uidBase)
		if isToday {
			stats.today++
			slog.Info(config.MsgBdayToday,
				config.LogKeyComponent, config.CompEngine,
				config.LogKeyName, name,
				config.LogKeyMDCDate, birth.String())
		}

		for _, e := range events {
			e.Props.Set(dtStampProp)
			cal.Children = append(cal.Children, e.Component)
		}
	}

	// Use the constant stub to ensure a valid VCALENDAR is returned even
	// if empty. This prevents clients from flagging the feed as invalid.
	if len(cal.Children) == 0 {
		var buf bytes.Buffer
		buf.WriteString(config.StubVCalendar)

		g.logSuccess(stats)
		return buf.Bytes(), contacts, 0, nil
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, nil, 0, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}

	g.logSuccess(stats)
	return buf.Bytes(), contacts, stats.today, nil
}

// logSuccess logs the final statistics of the generation process.
func (g *Generator) logSuccess(stats struct{ processed, withBday, today int }) {
	slog.Info(config.MsgGenSuccess,
		config.LogKeyComponent, config.CompEngine,
		slog.Group(config.LogKeyStats,
			slog.Int(config.LogKeyTotal, stats.processed),
			slog.Int(config.LogKeyFound, stats.withBday),
			slog.Int(config.LogKeyToday, stats.today),
		),
	)
}

// occurrenceIn places the anniversary of birth in MDC year y. A leap-day
// birthday whose day does not exist in y rolls over to day 1 of month 1
// of the following year, mirroring how the Gregorian calendar treats
// Feb 29 anniversaries in common years.
func occurrenceIn(y int, birth calendar.Date) calendar.Date {
	d, err := calendar.FromProleptic(y, birth.Month(), birth.Day())
	if err == nil {
		return d
	}
	next, err := calendar.FromProleptic(y+1, 1, 1)
	if err != nil {
		// Unreachable for in-range years: month 1 day 1 always exists.
		panic(err)
	}
	return next
}

// nextOccurrence determines the next MDC anniversary relative to today.
// This is used primarily for sorting the contact list.
func nextOccurrence(today, birth calendar.Date, yearKnown bool) (calendar.Date, int) {
	candidate := occurrenceIn(today.Year(), birth)
	if candidate.Before(today) {
		candidate = occurrenceIn(today.Year()+1, birth)
	}

	ageNext := 0
	if yearKnown {
		ageNext = candidate.Year() - birth.Year()
	}
	return candidate, ageNext
}

// createEvents generates events for the MDC years CurrentYear-1,
// CurrentYear, and CurrentYear+1, so calendar apps scrolling back or
// forward have events without an immediate re-sync. No events are
// created before the person is born.
func (g *Generator) createEvents(name string, birth calendar.Date, yearKnown bool, reminderTrigger string, today calendar.Date, loc *time.Location, uidBase string) ([]*ical.Event, bool) {
	currentYear := today.Year()
	targetYears := []int{currentYear - 1, currentYear, currentYear + 1}

	var events []*ical.Event
	isToday := false

	for _, y := range targetYears {
		if yearKnown && y < birth.Year() {
			continue
		}

		eventDate := occurrenceIn(y, birth)

		event := ical.NewEvent()
		event.Props.SetText(config.PropUID, fmt.Sprintf(config.FormatUID, uidBase, y, config.ICalDomain))

		age := 0
		if yearKnown {
			age = eventDate.Year() - birth.Year()
		}

		summary := fmt.Sprintf(config.FallbackSummary, name)
		if g.FormatSummary != nil {
			summary = g.FormatSummary(name, age, yearKnown && age >= 0)
		}
		event.Props.SetText(config.PropSummary, summary)
		event.Props.SetText(config.PropXMDCDate, eventDate.String())

		if eventDate.Equal(today) {
			isToday = true
		}

		dtStartProp := ical.NewProp(config.PropDTStart)
		// Full-day event pinned to the Gregorian day the MDC date falls on.
		dtStartProp.SetDate(eventDate.Time(loc))
		event.Props.Set(dtStartProp)

		if reminderTrigger != "" {
			addAlarm(event, reminderTrigger, summary)
		}

		events = append(events, event)
	}
	return events, isToday
}

// addAlarm appends a DISPLAY alarm (notification) to the event.
func addAlarm(event *ical.Event, trigger, description string) {
	alarm := ical.NewComponent(config.ICalComponent)
	alarm.Props.SetText(config.PropAction, config.ICalAction)
	alarm.Props.SetText(config.PropDescription, description)

	// Set trigger manually to avoid "VALUE=TEXT" param
	triggerProp := ical.NewProp(config.PropTrigger)
	triggerProp.Value = trigger
	alarm.Props.Set(triggerProp)

	event.Children = append(event.Children, alarm)
}

// parseDate handles various vCard date formats.
func parseDate(value string) (time.Time, bool, error) {
	// Full dates (Year known)
	formatsWithYear := []string{
		config.DateFormatFullDash,
		config.DateFormatFullBasic,
		config.DateFormatRFC3339,
		config.DateFormatFullT,
	}

	for _, f := range formatsWithYear {
		if t, err := time.Parse(f, value); err == nil {
			return t, true, nil
		}
	}

	// Truncated dates (Year unknown) - vCard specific
	// Safe leap year fallback
	formatsWithoutYear := []string{config.DateFormatNoYearD, config.DateFormatNoYearB}
	for _, f := range formatsWithoutYear {
		if t, err := time.Parse(f, value); err == nil {
			safeDate := time.Date(config.DefaultLeapYear, t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			return safeDate, false, nil
		}
	}

	return time.Time{}, false, errors.New(config.ErrDateParse)
}
