package fetcher

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"hltv-tracker/internal/domain"

	"github.com/rs/zerolog"
)

func testClient() *Client {
	c := New(zerolog.Nop())
	c.backoff = func(int) time.Duration { return time.Millisecond }
	return c
}

func TestFetch_Success(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>ok</html>"))
	}))
	defer srv.Close()

	body, err := testClient().Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if body != "<html>ok</html>" {
		t.Fatalf("unexpected body: %q", body)
	}
}

func TestFetch_SendsBrowserProfile(t *testing.T) {
	t.Parallel()

	var ua, accept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ua = r.Header.Get("User-Agent")
		accept = r.Header.Get("Accept")
	}))
	defer srv.Close()

	if _, err := testClient().Fetch(context.Background(), srv.URL); err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if ua != userAgent {
		t.Fatalf("user agent not applied: %q", ua)
	}
	if accept == "" {
		t.Fatalf("accept header not applied")
	}
}

func TestFetch_BlockedExhaustsAttemptBudget(t *testing.T) {
	t.Parallel()

	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := testClient().Fetch(context.Background(), srv.URL)
	if err == nil {
		t.Fatalf("expected error after exhausting attempts")
	}
	if !errors.Is(err, domain.ErrBlocked) {
		t.Fatalf("expected ErrBlocked, got %v", err)
	}
	if got := attempts.Load(); got != 3 {
		t.Fatalf("made %d attempts, want exactly 3", got)
	}
}

func TestFetch_TransientErrorSurfacesAsUnavailable(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := testClient().Fetch(context.Background(), srv.URL)
	if !errors.Is(err, domain.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestFetch_RecoversWithinBudget(t *testing.T) {
	t.Parallel()

	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) < 3 {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		w.Write([]byte("recovered"))
	}))
	defer srv.Close()

	body, err := testClient().Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if body != "recovered" {
		t.Fatalf("unexpected body: %q", body)
	}
}

func TestAttempt_StopsOnContextCancel(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var calls int
	err := Attempt(ctx, 3, func(int) time.Duration { return time.Hour }, func() error {
		calls++
		return errors.New("boom")
	})
	if err == nil {
		t.Fatalf("expected error")
	}
	if calls != 1 {
		t.Fatalf("op called %d times, want 1 (no retry after cancel)", calls)
	}
}

func TestLinearBackoff(t *testing.T) {
	t.Parallel()

	if got := LinearBackoff(1); got != 2*time.Second {
		t.Fatalf("backoff(1) = %s, want 2s", got)
	}
	if got := LinearBackoff(2); got != 3*time.Second {
		t.Fatalf("backoff(2) = %s, want 3s", got)
	}
}
