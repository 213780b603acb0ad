package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-mdc/internal/config"
)

// fixedClock pins Now() for deterministic /today responses.
type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

func newTestServer(port string) *FeedServer {
	// ISO 1970-12-31 is the first leap day of MDC year 0.
	return NewFeedServer(port, fixedClock{t: time.Date(1970, 12, 31, 12, 0, 0, 0, time.UTC)})
}

// -----------------------------------------------------------------------------
// Unit Tests (White-Box Testing of Handler Logic)
// -----------------------------------------------------------------------------

// TestHandler_ServingContent verifies that the feed handler writes the
// standard HTTP headers and body content when data is available.
func TestHandler_ServingContent(t *testing.T) {
	srv := newTestServer("0") // Port irrelevant for handler test
	expectedICS := []byte("BEGIN:VCALENDAR\r\nVERSION:2.0\r\nEND:VCALENDAR")

	// Pre-load data into the atomic cache
	srv.Update(expectedICS)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	srv.handleFeed(w, req)

	resp := w.Result()
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, config.MimeTextCalendar, resp.Header.Get(config.HeaderContentType))
	assert.Equal(t, config.MimeNoSniff, resp.Header.Get(config.HeaderXContentType))
	assert.Contains(t, resp.Header.Get(config.HeaderCacheControl), "no-cache")

	// ETag should be generated automatically
	assert.NotEmpty(t, resp.Header.Get(config.HeaderETag))

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, expectedICS, body)
}

// TestHandler_Caching verifies that the server respects ETag headers
// (If-None-Match) and returns 304 Not Modified to save bandwidth.
func TestHandler_Caching(t *testing.T) {
	srv := newTestServer("0")
	data := []byte("DATA_VERSION_1")
	srv.Update(data)

	// Step 1: Initial Request to get the ETag
	req1 := httptest.NewRequest(http.MethodGet, "/", nil)
	w1 := httptest.NewRecorder()
	srv.handleFeed(w1, req1)

	etag := w1.Result().Header.Get(config.HeaderETag)
	require.NotEmpty(t, etag, "Server must provide an ETag")

	// Step 2: Second Request providing the known ETag
	req2 := httptest.NewRequest(http.MethodGet, "/", nil)
	req2.Header.Set(config.HeaderIfNoneMatch, etag)
	w2 := httptest.NewRecorder()

	srv.handleFeed(w2, req2)
	resp2 := w2.Result()
	defer func() { _ = resp2.Body.Close() }()

	assert.Equal(t, http.StatusNotModified, resp2.StatusCode)
	body, _ := io.ReadAll(resp2.Body)
	assert.Empty(t, body, "Body must be empty on 304 Not Modified")
}

// TestHandler_MethodNotAllowed ensures strictly GET and HEAD are accepted.
func TestHandler_MethodNotAllowed(t *testing.T) {
	srv := newTestServer("0")

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	w := httptest.NewRecorder()
	srv.handleFeed(w, req)

	resp := w.Result()
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(config.HeaderAllow))

	reqToday := httptest.NewRequest(http.MethodPost, config.RouteToday, nil)
	wToday := httptest.NewRecorder()
	srv.handleToday(wToday, reqToday)
	assert.Equal(t, http.StatusMethodNotAllowed, wToday.Code)
}

// TestHandler_Initializing verifies the 503 behavior when data is not yet ready.
func TestHandler_Initializing(t *testing.T) {
	srv := newTestServer("0")
	// Note: We intentionally do NOT call srv.Update() here.

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	srv.handleFeed(w, req)

	resp := w.Result()
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, config.RetryAfterSeconds, resp.Header.Get(config.HeaderRetryAfter))
}

// TestHandler_NotFound verifies unknown paths under the root pattern are
// rejected instead of being served the feed.
func TestHandler_NotFound(t *testing.T) {
	srv := newTestServer("0")
	srv.Update([]byte("BEGIN:VCALENDAR\nEND:VCALENDAR"))

	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	w := httptest.NewRecorder()
	srv.handleFeed(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

// TestHandler_Today verifies the JSON endpoint reports the clock's date
// in MDC terms, including the out-of-band leap-day fields.
func TestHandler_Today(t *testing.T) {
	srv := newTestServer("0")

	req := httptest.NewRequest(http.MethodGet, config.RouteToday, nil)
	w := httptest.NewRecorder()
	srv.handleToday(w, req)

	resp := w.Result()
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, config.MimeJSON, resp.Header.Get(config.HeaderContentType))
	assert.Equal(t, config.CacheControlNoStore, resp.Header.Get(config.HeaderCacheControl))

	var body todayResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

	assert.Equal(t, int64(364), body.EpochDay)
	assert.Equal(t, "1970-12-31", body.ISODate)
	assert.Equal(t, "ModernDigital SE 0-00-01", body.MDCDate)
	assert.Equal(t, "SE", body.Era)
	assert.Equal(t, 0, body.YearOfEra)
	assert.Equal(t, 0, body.Month)
	assert.Equal(t, "Leap", body.MonthName)
	assert.Equal(t, 1, body.Day)
	assert.Equal(t, 365, body.DayOfYear)
	assert.Equal(t, 0, body.DayOfWeek)
	assert.Equal(t, "None", body.Weekday)
	assert.Equal(t, 0, body.WeekOfYear)
	assert.Equal(t, 0, body.Quarter)
	assert.True(t, body.IsLeapDay)
}

// -----------------------------------------------------------------------------
// Concurrency Tests (Race Detection)
// -----------------------------------------------------------------------------

// TestServer_RaceCondition validates the thread-safety of atomic.Pointer usage.
// It runs high-frequency writers and readers concurrently to trigger race conditions.
// Run this with `go test -race`.
func TestServer_RaceCondition(t *testing.T) {
	srv := newTestServer("0")
	var wg sync.WaitGroup

	// Duration of the stress test
	duration := 500 * time.Millisecond
	end := time.Now().Add(duration)

	// Writer Routines: Stress atomic.Pointer.Store
	for w := 0; w < 5; w++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			i := 0
			for time.Now().Before(end) {
				data := fmt.Sprintf("VERSION:%d-%d", id, i)
				srv.Update([]byte(data))
				i++
				// Tiny sleep to yield processor and allow interleaving
				time.Sleep(1 * time.Microsecond)
			}
		}(w)
	}

	// Reader Routines: Stress atomic.Pointer.Load through the handler
	for r := 0; r < 20; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for time.Now().Before(end) {
				req := httptest.NewRequest(http.MethodGet, "/", nil)
				w := httptest.NewRecorder()

				srv.handleFeed(w, req)

				// Validates that we don't get partial writes or crashes.
				code := w.Code
				if code != http.StatusOK && code != http.StatusServiceUnavailable {
					t.Errorf("Unexpected status code during race test: %d", code)
				}
			}
		}()
	}

	wg.Wait()
}

// -----------------------------------------------------------------------------
// Integration Tests (Real TCP Lifecycle)
// -----------------------------------------------------------------------------

// TestServer_Lifecycle spins up the actual TCP listener to verify network
// binding, routing, and graceful shutdown logic.
func TestServer_Lifecycle(t *testing.T) {
	// The struct takes "Port" as a string and builds the address
	// manually, so use a high port unlikely to be in use.
	const port = "18099"

	srv := newTestServer(port)
	ctx, cancel := context.WithCancel(context.Background())
	errChan := make(chan error, 1)

	go func() {
		errChan <- srv.Start(ctx)
	}()

	url := "http://127.0.0.1:" + port + "/"

	// Wait for server to be responsive (TCP bind takes a few milliseconds)
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return true
	}, 2*time.Second, 50*time.Millisecond, "Server failed to bind/listen in time")

	// 1. Check Initial State (503)
	resp, err := http.Get(url)
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	_ = resp.Body.Close()

	// 2. Update Data
	srv.Update([]byte("BEGIN:VCALENDAR\nEND:VCALENDAR"))

	// 3. Check Served Content (200)
	resp, err = http.Get(url)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, config.MimeTextCalendar, resp.Header.Get(config.HeaderContentType))

	body, err := io.ReadAll(resp.Body)
	assert.NoError(t, err)
	assert.Contains(t, string(body), "BEGIN:VCALENDAR")
	_ = resp.Body.Close()

	// 4. The /today route answers on the same listener
	resp, err = http.Get("http://127.0.0.1:" + port + config.RouteToday)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, config.MimeJSON, resp.Header.Get(config.HeaderContentType))
	_ = resp.Body.Close()

	// 5. Test Shutdown
	cancel() // Trigger context cancellation

	select {
	case err := <-errChan:
		// Start() returns nil on graceful shutdown
		assert.NoError(t, err, "Server should shutdown gracefully without error")
	case <-time.After(5 * time.Second):
		t.Fatal("Server shutdown timed out")
	}
}
