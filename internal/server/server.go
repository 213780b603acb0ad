package server

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/tartampluch/go-mdc/internal/calendar"
	"github.com/tartampluch/go-mdc/internal/config"
)

// cacheItem stores the rendered calendar and its metadata for HTTP caching.
type cacheItem struct {
	data         []byte
	etag         string
	lastModified string // RFC1123 format required by HTTP headers
}

// FeedServer serves the generated ICS feed and a small JSON endpoint
// reporting the current Modern Digital Calendar date.
type FeedServer struct {
	// cache uses atomic.Pointer for lock-free reads.
	// The feed is read frequently by clients but updated infrequently
	// (only on sync), so this beats a RWMutex on the hot path.
	cache atomic.Pointer[cacheItem]
	Clock calendar.Clock
	Port  string
}

// NewFeedServer creates a new instance of the server.
func NewFeedServer(port string, clock calendar.Clock) *FeedServer {
	return &FeedServer{
		Clock: clock,
		Port:  port,
	}
}

// todayResponse is the JSON body of the /today endpoint.
type todayResponse struct {
	EpochDay   int64  `json:"epoch_day"`
	ISODate    string `json:"iso_date"`
	MDCDate    string `json:"mdc_date"`
	Era        string `json:"era"`
	YearOfEra  int    `json:"year_of_era"`
	Month      int    `json:"month"`
	MonthName  string `json:"month_name"`
	Day        int    `json:"day"`
	DayOfYear  int    `json:"day_of_year"`
	DayOfWeek  int    `json:"day_of_week"`
	Weekday    string `json:"weekday"`
	WeekOfYear int    `json:"week_of_year"`
	Quarter    int    `json:"quarter"`
	IsLeapDay  bool   `json:"is_leap_day"`
}

// Start initializes the HTTP server and blocks until the context is cancelled.
func (s *FeedServer) Start(ctx context.Context) error {
	if s.Port == "" {
		return errors.New(config.ErrPortRequired)
	}

	mux := http.NewServeMux()
	mux.HandleFunc(config.RouteFeed, s.handleFeed)
	mux.HandleFunc(config.RouteToday, s.handleToday)

	srv := &http.Server{
		Addr:         config.LocalhostBindAddr + config.AddrSeparator + s.Port,
		Handler:      mux,
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: config.ServerWriteTimeout,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	serverError := make(chan error, config.ChannelBufferSize)

	go func() {
		slog.Info(config.MsgServerListen,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyPort, s.Port,
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverError <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info(config.MsgServerStop, config.LogKeyComponent, config.CompServer)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("%s: %w", config.ErrServerShutdown, err)
		}
		return nil

	case err := <-serverError:
		return fmt.Errorf("%s: %w", config.ErrServerStartup, err)
	}
}

// Update atomically replaces the served feed content.
func (s *FeedServer) Update(data []byte) {
	hash := sha256.Sum256(data)
	etag := fmt.Sprintf(config.FormatETag, hex.EncodeToString(hash[:]))

	lastMod := time.Now().UTC().Format(http.TimeFormat)

	item := &cacheItem{
		data:         data,
		etag:         etag,
		lastModified: lastMod,
	}

	// Atomic store: concurrent readers see either the old or the new
	// complete item, never a partial state.
	s.cache.Store(item)

	slog.Debug(config.MsgCacheUpdated,
		config.LogKeyComponent, config.CompServer,
		config.LogKeySizeBytes, len(data),
		config.LogKeyETag, etag,
	)
}

// handleFeed serves the ICS content with HTTP caching support.
func (s *FeedServer) handleFeed(w http.ResponseWriter, r *http.Request) {
	// The root pattern also matches unknown paths.
	if r.URL.Path != config.RouteFeed {
		http.Error(w, config.HTTPMsgNotFound, http.StatusNotFound)
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set(config.HeaderAllow, config.AllowedMethods)
		http.Error(w, config.HTTPMsgMethodNotAll, http.StatusMethodNotAllowed)
		return
	}

	item := s.cache.Load()
	if item == nil {
		w.Header().Set(config.HeaderRetryAfter, config.RetryAfterSeconds)
		http.Error(w, config.HTTPMsgInitializing, http.StatusServiceUnavailable)
		return
	}

	w.Header().Set(config.HeaderContentType, config.MimeTextCalendar)
	w.Header().Set(config.HeaderXContentType, config.MimeNoSniff)
	w.Header().Set(config.HeaderCacheControl, config.CacheControlPrivate)
	w.Header().Set(config.HeaderETag, item.etag)
	w.Header().Set(config.HeaderLastModified, item.lastModified)

	// Conditional headers (client-side caching)
	if match := r.Header.Get(config.HeaderIfNoneMatch); match == item.etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	if since := r.Header.Get(config.HeaderIfModifiedSince); since != "" {
		if clientTime, err := time.Parse(http.TimeFormat, since); err == nil {
			if serverTime, err := time.Parse(http.TimeFormat, item.lastModified); err == nil {
				// If server content is not newer than client cache, return 304.
				if !serverTime.After(clientTime) {
					w.WriteHeader(http.StatusNotModified)
					return
				}
			}
		}
	}

	if r.Method == http.MethodGet {
		if _, err := io.Copy(w, bytes.NewReader(item.data)); err != nil {
			slog.Error(config.ErrWriteResp,
				config.LogKeyComponent, config.CompServer,
				config.LogKeyError, err,
			)
		}
	}
}

// handleToday reports the current MDC date as JSON. The response is
// computed per request and never cached: it changes at local midnight.
func (s *FeedServer) handleToday(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set(config.HeaderAllow, config.AllowedMethods)
		http.Error(w, config.HTTPMsgMethodNotAll, http.StatusMethodNotAllowed)
		return
	}

	now := s.Clock.Now()
	d := calendar.FromTime(now)

	resp := todayResponse{
		EpochDay:   d.EpochDay(),
		ISODate:    now.Format(config.DateFormatFullDash),
		MDCDate:    d.String(),
		Era:        d.Era().DisplayName(calendar.StyleShort),
		YearOfEra:  d.YearOfEra(),
		Month:      d.Month(),
		MonthName:  d.MonthName(calendar.StyleFull),
		Day:        d.Day(),
		DayOfYear:  d.DayOfYear(),
		DayOfWeek:  d.DayOfWeek(),
		Weekday:    d.WeekdayName(calendar.StyleFull),
		WeekOfYear: d.WeekOfYear(),
		Quarter:    d.Quarter(),
		IsLeapDay:  d.IsLeapDay(),
	}

	w.Header().Set(config.HeaderContentType, config.MimeJSON)
	w.Header().Set(config.HeaderXContentType, config.MimeNoSniff)
	w.Header().Set(config.HeaderCacheControl, config.CacheControlNoStore)

	if r.Method == http.MethodHead {
		return
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error(config.ErrEncodeToday,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyError, err,
		)
	}
}
