package server

import (
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"quizitup/internal/config"
	"quizitup/internal/db"
	"quizitup/internal/store"
)

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func testConfig(t *testing.T) config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.GinMode = "test"
	cfg.DatabaseDriver = config.DriverSQLite
	cfg.DatabaseURL = "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
	return cfg
}

// newQuizServer wires a Server to a fresh in-memory database and a clock
// the test controls.
func newQuizServer(t *testing.T) (*httptest.Server, *testClock) {
	t.Helper()
	return newQuizServerWithConfig(t, testConfig(t))
}

func newQuizServerWithConfig(t *testing.T, cfg config.Config) (*httptest.Server, *testClock) {
	t.Helper()
	conn, err := db.Open(cfg)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close(conn) })
	if err := db.Migrate(conn); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	clock := &testClock{now: time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)}
	srv := New(store.New(conn), cfg)
	srv.now = clock.Now
	ts := newTestServer(t, srv.Handler())
	t.Cleanup(ts.Close)
	return ts, clock
}

func newTestServer(t *testing.T, handler http.Handler) *httptest.Server {
	t.Helper()
	listener, err := net.Listen("tcp4", "127.0.0.1:0")
	if err != nil {
		t.Skipf("skipping test; listen unavailable: %v", err)
	}
	ts := &httptest.Server{
		Listener: listener,
		Config:   &http.Server{Handler: handler},
	}
	ts.Start()
	return ts
}
