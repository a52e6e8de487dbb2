package http

import (
	nethttp "net/http"
	"testing"

	"github.com/preston-bernstein/nhl-game-tracker/internal/testutil"
)

func TestRouterRoutes(t *testing.T) {
	metrics := nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		_, _ = w.Write([]byte("tracker_runs_total 1\n"))
	})
	router := NewRouter(NewHandler(nil, nil, nil), metrics)

	testutil.AssertStatus(t, testutil.Serve(router, nethttp.MethodGet, "/health", nil), nethttp.StatusOK)
	testutil.AssertStatus(t, testutil.Serve(router, nethttp.MethodGet, "/ready", nil), nethttp.StatusOK)
	testutil.AssertStatus(t, testutil.Serve(router, nethttp.MethodGet, "/state", nil), nethttp.StatusNotFound)

	rr := testutil.Serve(router, nethttp.MethodGet, "/metrics", nil)
	testutil.AssertStatus(t, rr, nethttp.StatusOK)
	if rr.Body.String() != "tracker_runs_total 1\n" {
		t.Fatalf("unexpected metrics body %q", rr.Body.String())
	}
}

func TestRouterWithoutMetrics(t *testing.T) {
	router := NewRouter(NewHandler(nil, nil, nil), nil)
	testutil.AssertStatus(t, testutil.Serve(router, nethttp.MethodGet, "/metrics", nil), nethttp.StatusNotFound)
}
