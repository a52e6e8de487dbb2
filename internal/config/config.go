package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/preston-bernstein/nhl-game-tracker/internal/providers"
)

// Config holds runtime configuration for the tracker.
type Config struct {
	FavouriteTeams  []string
	Provider        string
	ScoreboardURL   string
	HTTPTimeout     Duration
	DisplayTimezone string
	WatchInterval   Duration
	State           StateConfig
	Metrics         MetricsConfig
	Log             LogConfig
}

// StateConfig selects and addresses the state store backend.
type StateConfig struct {
	Backend    string
	Path       string
	DSN        string
	RedisURL   string
	RedisKey   string
	NATSURL    string
	NATSBucket string
	NATSKey    string
}

// LogConfig controls the slog handler.
type LogConfig struct {
	Level  string
	Format string
}

// ErrNoFavourites is returned when a command needs favourite teams and none are configured.
var ErrNoFavourites = errors.New("no favourite teams configured (set FAVOURITE_TEAMS or pass --favourite)")

// Defaults returns the configuration used when nothing is set.
func Defaults() Config {
	return Config{
		Provider:      defaultProvider,
		ScoreboardURL: defaultScoreboardURL,
		HTTPTimeout:   defaultHTTPTimeout,
		WatchInterval: defaultWatchPeriod,
		State: StateConfig{
			Backend: defaultStateBackend,
			Path:    defaultStatePath,
		},
		Metrics: MetricsConfig{
			Enabled:      false,
			Addr:         defaultMetricsAddr,
			ServiceName:  defaultServiceName,
			OtlpInsecure: true,
		},
		Log: LogConfig{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
	}
}

// Load builds the configuration from defaults, an optional YAML file at path
// and the environment (a .env file in the working directory is honoured).
// Later sources win.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	cfg := Defaults()
	if path != "" {
		fc, err := readFile(path)
		if err != nil {
			return Config{}, err
		}
		fc.apply(&cfg)
	}
	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	cfg.FavouriteTeams = listEnvOrDefault(envFavourites, cfg.FavouriteTeams)
	cfg.Provider = strings.ToLower(envOrDefault(envProvider, cfg.Provider))
	cfg.ScoreboardURL = envOrDefault(envScoreboardURL, cfg.ScoreboardURL)
	cfg.HTTPTimeout = durationEnvOrDefault(envHTTPTimeout, cfg.HTTPTimeout)
	cfg.DisplayTimezone = envOrDefault(envDisplayTimezone, cfg.DisplayTimezone)
	cfg.WatchInterval = durationEnvOrDefault(envWatchInterval, cfg.WatchInterval)

	cfg.State.Backend = strings.ToLower(envOrDefault(envStateBackend, cfg.State.Backend))
	cfg.State.Path = envOrDefault(envStatePath, cfg.State.Path)
	cfg.State.DSN = envOrDefault(envStateDSN, cfg.State.DSN)
	cfg.State.RedisURL = envOrDefault(envRedisURL, cfg.State.RedisURL)
	cfg.State.RedisKey = envOrDefault(envRedisKey, cfg.State.RedisKey)
	cfg.State.NATSURL = envOrDefault(envNATSURL, cfg.State.NATSURL)
	cfg.State.NATSBucket = envOrDefault(envNATSBucket, cfg.State.NATSBucket)
	cfg.State.NATSKey = envOrDefault(envNATSKey, cfg.State.NATSKey)

	cfg.Metrics = loadMetrics(cfg.Metrics)

	cfg.Log.Level = envOrDefault(envLogLevel, cfg.Log.Level)
	cfg.Log.Format = envOrDefault(envLogFormat, cfg.Log.Format)
}

// Validate checks that the selected provider and backend are usable.
func (c Config) Validate() error {
	var errs []error
	switch c.Provider {
	case ProviderNHLE, ProviderFixture:
	default:
		errs = append(errs, fmt.Errorf("unknown provider %q", c.Provider))
	}

	switch c.State.Backend {
	case BackendFile:
		if c.State.Path == "" {
			errs = append(errs, errors.New("file state backend requires STATE_PATH"))
		}
	case BackendMemory:
	case BackendSQLite, BackendPostgres:
		if c.State.DSN == "" {
			errs = append(errs, fmt.Errorf("%s state backend requires STATE_DSN", c.State.Backend))
		}
	case BackendRedis:
		if c.State.RedisURL == "" {
			errs = append(errs, errors.New("redis state backend requires REDIS_URL"))
		}
	case BackendNATS:
		if c.State.NATSURL == "" {
			errs = append(errs, errors.New("nats state backend requires NATS_URL"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown state backend %q", c.State.Backend))
	}

	if _, err := providers.LoadTimezone(c.DisplayTimezone); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// RequireFavourites fails when no favourite team is configured.
func (c Config) RequireFavourites() error {
	for _, t := range c.FavouriteTeams {
		if strings.TrimSpace(t) != "" {
			return nil
		}
	}
	return ErrNoFavourites
}

// readFile loads a YAML config file, expanding ${VAR} references first.
func readFile(path string) (fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return fileConfig{}, fmt.Errorf("read config file: %w", err)
	}
	return parseFile([]byte(os.ExpandEnv(string(data))))
}
