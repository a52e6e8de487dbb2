// Package app wires configuration into a ready-to-run tracker.
package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/preston-bernstein/nhl-game-tracker/internal/cadence"
	"github.com/preston-bernstein/nhl-game-tracker/internal/config"
	"github.com/preston-bernstein/nhl-game-tracker/internal/domain/games"
	"github.com/preston-bernstein/nhl-game-tracker/internal/domain/tracker"
	httpserver "github.com/preston-bernstein/nhl-game-tracker/internal/http"
	"github.com/preston-bernstein/nhl-game-tracker/internal/logging"
	"github.com/preston-bernstein/nhl-game-tracker/internal/metrics"
	"github.com/preston-bernstein/nhl-game-tracker/internal/providers"
	"github.com/preston-bernstein/nhl-game-tracker/internal/report"
	"github.com/preston-bernstein/nhl-game-tracker/internal/runner"
	"github.com/preston-bernstein/nhl-game-tracker/internal/scheduler"
	"github.com/preston-bernstein/nhl-game-tracker/internal/statestore"
)

// App owns every component a tracker command needs.
type App struct {
	cfg            config.Config
	logger         *slog.Logger
	metrics        *metrics.Recorder
	metricsHandler http.Handler
	metricsStop    func(context.Context) error
	store          *statestore.Store
	runner         *runner.Runner
	closeBlob      func() error
}

// Option customizes how New assembles the App.
type Option func(*options)

type options struct {
	out      io.Writer
	provider providers.GameProvider
	blob     statestore.BlobStore
	now      func() time.Time
}

// WithOutput sends the game report to w instead of stdout.
func WithOutput(w io.Writer) Option {
	return func(o *options) { o.out = w }
}

// WithProvider replaces the configured provider.
func WithProvider(p providers.GameProvider) Option {
	return func(o *options) { o.provider = p }
}

// WithBlobStore replaces the configured state backend.
func WithBlobStore(b statestore.BlobStore) Option {
	return func(o *options) { o.blob = b }
}

// WithClock overrides the wall clock used by runs.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// New builds the App from cfg. Close must be called to flush metrics and
// release the state backend.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger, opts ...Option) (*App, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	recorder, handler, metricsStop := buildMetrics(ctx, cfg, logger)

	factory := newProviderFactory(logger, recorder)
	var provider providers.GameProvider
	if o.provider != nil {
		provider = factory.wrap(cfg, o.provider)
	} else {
		provider = factory.build(cfg)
	}

	blob := o.blob
	closeBlob := func() error { return nil }
	if blob == nil {
		var err error
		blob, closeBlob, err = openBlob(ctx, cfg.State)
		if err != nil {
			if metricsStop != nil {
				_ = metricsStop(ctx)
			}
			return nil, err
		}
	}
	store := statestore.New(blob, logger)

	favourites := games.NewFavourites(cfg.FavouriteTeams...)
	logging.Info(logger, "tracker configured",
		"favourites", favourites.List(),
		"provider", providers.NameOf(provider, cfg.Provider),
		"backend", store.Backend(),
	)
	engine := cadence.NewEngine(provider, favourites, logger)
	run := runner.New(engine, store, logger,
		runner.WithClock(o.now),
		runner.WithPrinter(report.New(o.out)),
		runner.WithMetrics(recorder),
	)

	return &App{
		cfg:            cfg,
		logger:         logger,
		metrics:        recorder,
		metricsHandler: handler,
		metricsStop:    metricsStop,
		store:          store,
		runner:         run,
		closeBlob:      closeBlob,
	}, nil
}

// Run performs a single tracker invocation.
func (a *App) Run(ctx context.Context) (runner.Result, error) {
	if err := a.cfg.RequireFavourites(); err != nil {
		return runner.Result{}, err
	}
	return a.runner.Run(ctx)
}

// Status returns the persisted state.
func (a *App) Status(ctx context.Context) (tracker.State, error) {
	return a.runner.Status(ctx)
}

// Reset writes the default state.
func (a *App) Reset(ctx context.Context) error {
	return a.runner.Reset(ctx)
}

// StoreBackend names the active state backend.
func (a *App) StoreBackend() string {
	return a.store.Backend()
}

// Metrics exposes the recorder (useful for tests).
func (a *App) Metrics() *metrics.Recorder {
	return a.metrics
}

// Watch runs the tracker every cfg.WatchInterval until ctx is cancelled.
// When metrics are enabled the health, state and metrics endpoints are
// served on cfg.Metrics.Addr for the lifetime of the loop.
func (a *App) Watch(ctx context.Context) error {
	if err := a.cfg.RequireFavourites(); err != nil {
		return err
	}

	watcher := scheduler.New(a.runner, a.cfg.WatchInterval, a.logger)

	var srv httpServer
	if a.cfg.Metrics.Enabled && a.cfg.Metrics.Addr != "" {
		srv = a.buildStatusServer(watcher)
		launchServer("status", srv, a.logger)
	}

	err := watcher.Run(ctx)

	if srv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if sErr := srv.Shutdown(shutdownCtx); sErr != nil {
			logging.Warn(a.logger, "status server shutdown failed", sErr)
		}
	}
	return err
}

func (a *App) buildStatusServer(watcher *scheduler.Watcher) httpServer {
	handler := httpserver.NewHandler(watcher.Status, a.store.Load, a.logger)
	router := httpserver.NewRouter(handler, a.metricsHandler)
	return netHTTPServer{srv: &http.Server{
		Addr:         a.cfg.Metrics.Addr,
		Handler:      httpserver.LoggingMiddleware(a.logger, router),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}}
}

// Close flushes metrics (pushing to the gateway when configured) and
// releases the state backend.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	if a.metricsStop != nil {
		if err := a.metricsStop(ctx); err != nil {
			logging.Warn(a.logger, "metrics shutdown failed", err)
			errs = append(errs, err)
		}
	}
	if a.closeBlob != nil {
		if err := a.closeBlob(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
