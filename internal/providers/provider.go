package providers

import (
	"context"
	"errors"

	"github.com/preston-bernstein/nhl-game-tracker/internal/domain/games"
)

// ErrProviderUnavailable is returned when no upstream provider is configured.
var ErrProviderUnavailable = errors.New("provider unavailable")

// GameProvider fetches the current day's games from an upstream scoreboard and
// normalizes them. Implementations decide which day "current" means.
type GameProvider interface {
	FetchGames(ctx context.Context) ([]games.Game, error)
}

// Named is implemented by providers that can report a stable name for logs and metrics.
type Named interface {
	Name() string
}

// NameOf returns the provider's name, or fallback when it does not expose one.
func NameOf(p GameProvider, fallback string) string {
	if n, ok := p.(Named); ok && n.Name() != "" {
		return n.Name()
	}
	return fallback
}
