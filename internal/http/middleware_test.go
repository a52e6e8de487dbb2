package http

import (
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/preston-bernstein/nhl-game-tracker/internal/testutil"
)

func TestLoggingMiddlewareKeepsValidRequestID(t *testing.T) {
	logger, buf := testutil.NewBufferLogger()
	var seen string
	next := nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		seen = RequestIDFromContext(r.Context())
		loggerFromContext(r, nil).Info("inside handler")
		w.WriteHeader(nethttp.StatusTeapot)
	})

	req := httptest.NewRequest(nethttp.MethodGet, "/state", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rr := testutil.ServeRequest(LoggingMiddleware(logger, next), req)

	testutil.AssertStatus(t, rr, nethttp.StatusTeapot)
	if seen != "abc-123" || rr.Header().Get("X-Request-ID") != "abc-123" {
		t.Fatalf("expected request id passthrough, got ctx=%q header=%q", seen, rr.Header().Get("X-Request-ID"))
	}
	if !strings.Contains(buf.String(), "request_id=abc-123") {
		t.Fatalf("expected request-scoped logger, got %s", buf.String())
	}
}

func TestLoggingMiddlewareReplacesInvalidRequestID(t *testing.T) {
	next := nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {})
	req := httptest.NewRequest(nethttp.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "bad id with spaces")

	rr := testutil.ServeRequest(LoggingMiddleware(nil, next), req)
	got := rr.Header().Get("X-Request-ID")
	if got == "" || got == "bad id with spaces" || !requestIDPattern.MatchString(got) {
		t.Fatalf("expected generated request id, got %q", got)
	}
}

func TestLoggingMiddlewareLogsEachRequestAtInfo(t *testing.T) {
	logger, buf := testutil.NewBufferLogger()
	next := nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		w.WriteHeader(nethttp.StatusNotFound)
	})

	testutil.ServeRequest(LoggingMiddleware(logger, next), httptest.NewRequest(nethttp.MethodGet, "/state", nil))

	out := buf.String()
	if strings.Count(out, "request complete") != 1 {
		t.Fatalf("expected one access log line, got %s", out)
	}
	for _, want := range []string{"level=INFO", "path=/state", "status=404"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in %s", want, out)
		}
	}
}
