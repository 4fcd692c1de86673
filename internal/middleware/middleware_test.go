package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestRecoveryReturns500(t *testing.T) {
	h := Recovery(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"error":"internal error"`) {
		t.Fatalf("body = %s", rec.Body.String())
	}
}

func TestLoggerPassesThrough(t *testing.T) {
	h := Logger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusTeapot {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestRateLimitPerClient(t *testing.T) {
	h := RateLimit(0.0001, 2)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	send := func(addr string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	for i := 0; i < 2; i++ {
		if code := send("10.0.0.1:5000"); code != http.StatusOK {
			t.Fatalf("request %d: status %d", i, code)
		}
	}
	if code := send("10.0.0.1:5001"); code != http.StatusTooManyRequests {
		t.Fatalf("third request: status %d, want 429", code)
	}
	if code := send("10.0.0.2:5000"); code != http.StatusOK {
		t.Fatalf("other client: status %d", code)
	}
}

func TestTracingPassesThrough(t *testing.T) {
	h := Tracing("test")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/game/move", nil))
	if rec.Code != http.StatusAccepted {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestRateLimitDropsIdleClients(t *testing.T) {
	clock := time.Unix(1_700_000_000, 0)
	limiters := newLimiterSet(1, 1, time.Minute)
	limiters.now = func() time.Time { return clock }
	h := rateLimit(limiters)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	hit := func(addr string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	for _, addr := range []string{"10.0.0.1:1", "10.0.0.2:1", "10.0.0.3:1"} {
		if code := hit(addr); code != http.StatusOK {
			t.Fatalf("%s status = %d", addr, code)
		}
	}
	if n := limiters.len(); n != 3 {
		t.Fatalf("tracked = %d, want 3", n)
	}
	if code := hit("10.0.0.1:2"); code != http.StatusTooManyRequests {
		t.Fatalf("burst not enforced, status = %d", code)
	}

	clock = clock.Add(30 * time.Second)
	hit("10.0.0.2:1")
	clock = clock.Add(45 * time.Second)
	hit("10.0.0.4:1")

	if n := limiters.len(); n != 2 {
		t.Fatalf("tracked = %d, want the two recently seen clients", n)
	}
}
