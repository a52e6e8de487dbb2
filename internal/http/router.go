package http

import nethttp "net/http"

// NewRouter registers the watch-mode routes. metrics may be nil.
func NewRouter(handler *Handler, metrics nethttp.Handler) nethttp.Handler {
	mux := nethttp.NewServeMux()
	mux.HandleFunc("/health", handler.Health)
	mux.HandleFunc("/ready", handler.Ready)
	mux.HandleFunc("/state", handler.State)
	if metrics != nil {
		mux.Handle("/metrics", metrics)
	}
	return mux
}
