package app

import (
	"log/slog"
	"strings"

	"github.com/preston-bernstein/nhl-game-tracker/internal/config"
	"github.com/preston-bernstein/nhl-game-tracker/internal/metrics"
	"github.com/preston-bernstein/nhl-game-tracker/internal/providers"
	"github.com/preston-bernstein/nhl-game-tracker/internal/providers/fixture"
	"github.com/preston-bernstein/nhl-game-tracker/internal/providers/nhle"
)

// providerFactory assembles the configured provider with the shared instrumentation wrapper.
type providerFactory struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
}

func newProviderFactory(logger *slog.Logger, recorder *metrics.Recorder) providerFactory {
	return providerFactory{logger: logger, metrics: recorder}
}

func (f providerFactory) build(cfg config.Config) providers.GameProvider {
	return f.wrap(cfg, selectProvider(cfg))
}

func (f providerFactory) wrap(cfg config.Config, base providers.GameProvider) providers.GameProvider {
	return providers.NewInstrumentedProvider(base, f.logger, f.metrics, normalizeProviderName(cfg.Provider, base))
}

func selectProvider(cfg config.Config) providers.GameProvider {
	switch cfg.Provider {
	case config.ProviderFixture:
		return fixture.New()
	default:
		return nhle.NewClient(nhle.Config{
			URL:      cfg.ScoreboardURL,
			Timeout:  cfg.HTTPTimeout,
			Timezone: cfg.DisplayTimezone,
		})
	}
}

// normalizeProviderName keeps provider naming consistent in metrics and logs.
func normalizeProviderName(raw string, provider providers.GameProvider) string {
	if raw != "" {
		return strings.ToLower(raw)
	}
	return strings.ToLower(providers.NameOf(provider, "provider"))
}
