package app

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/preston-bernstein/nhl-game-tracker/internal/config"
	"github.com/preston-bernstein/nhl-game-tracker/internal/logging"
	"github.com/preston-bernstein/nhl-game-tracker/internal/metrics"
)

var metricsSetup = metrics.Setup

const pushJob = "nhl_game_tracker"

func buildMetrics(ctx context.Context, cfg config.Config, logger *slog.Logger) (*metrics.Recorder, http.Handler, func(context.Context) error) {
	recCfg := metrics.TelemetryConfig{
		Enabled:        cfg.Metrics.Enabled,
		ServiceName:    cfg.Metrics.ServiceName,
		OtlpEndpoint:   cfg.Metrics.OtlpEndpoint,
		OtlpInsecure:   cfg.Metrics.OtlpInsecure,
		PushgatewayURL: cfg.Metrics.PushgatewayURL,
		PushJob:        pushJob,
	}

	rec, handler, shutdown, err := metricsSetup(ctx, recCfg)
	if err != nil {
		logging.Warn(logger, "metrics setup failed, continuing without telemetry", err)
		return metrics.NewRecorder(), nil, nil
	}
	return rec, handler, shutdown
}
