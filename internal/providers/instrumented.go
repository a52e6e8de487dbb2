package providers

import (
	"context"
	"log/slog"
	"time"

	"github.com/preston-bernstein/nhl-game-tracker/internal/domain/games"
	"github.com/preston-bernstein/nhl-game-tracker/internal/logging"
	"github.com/preston-bernstein/nhl-game-tracker/internal/metrics"
)

// instrumentedProvider records latency, failures and rate limits for every
// fetch. It does not retry; a failed fetch fails the run.
type instrumentedProvider struct {
	inner   GameProvider
	logger  *slog.Logger
	metrics *metrics.Recorder
	name    string
}

// NewInstrumentedProvider wraps inner with logging and metrics.
func NewInstrumentedProvider(inner GameProvider, logger *slog.Logger, recorder *metrics.Recorder, name string) GameProvider {
	if name == "" {
		name = NameOf(inner, "unknown")
	}
	return &instrumentedProvider{
		inner:   inner,
		logger:  logger,
		metrics: recorder,
		name:    name,
	}
}

func (p *instrumentedProvider) Name() string { return p.name }

func (p *instrumentedProvider) FetchGames(ctx context.Context) ([]games.Game, error) {
	if p == nil || p.inner == nil {
		return nil, ErrProviderUnavailable
	}

	start := time.Now()
	result, err := p.inner.FetchGames(ctx)
	elapsed := time.Since(start)
	p.metrics.RecordProviderAttempt(p.name, elapsed, err)

	if rl, ok := AsRateLimitError(err); ok {
		p.metrics.RecordRateLimit(p.name, rl.RetryAfter)
		logWithProvider(ctx, p.logger, slog.LevelWarn, p.name, "provider rate limited",
			slog.Int64("retry_after_ms", rl.RetryAfter.Milliseconds()),
		)
		return nil, err
	}
	if err != nil {
		logWithProvider(ctx, p.logger, slog.LevelWarn, p.name, "provider fetch failed",
			slog.Int64(logging.FieldDurationMS, elapsed.Milliseconds()),
			slog.Any("error", err),
		)
		return nil, err
	}

	logWithProvider(ctx, p.logger, slog.LevelDebug, p.name, "provider fetch succeeded",
		slog.Int(logging.FieldCount, len(result)),
		slog.Int64(logging.FieldDurationMS, elapsed.Milliseconds()),
	)
	return result, nil
}
