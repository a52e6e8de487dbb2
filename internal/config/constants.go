package config

import (
	"time"

	"github.com/preston-bernstein/nhl-game-tracker/internal/providers/nhle"
	"github.com/preston-bernstein/nhl-game-tracker/internal/statestore"
)

const (
	envFavourites      = "FAVOURITE_TEAMS"
	envScoreboardURL   = "SCOREBOARD_URL"
	envProvider        = "PROVIDER"
	envHTTPTimeout     = "HTTP_TIMEOUT"
	envDisplayTimezone = "DISPLAY_TIMEZONE"
	envWatchInterval   = "WATCH_INTERVAL"
	envStateBackend    = "STATE_BACKEND"
	envStatePath       = "STATE_PATH"
	envStateDSN        = "STATE_DSN"
	envRedisURL        = "REDIS_URL"
	envRedisKey        = "REDIS_KEY"
	envNATSURL         = "NATS_URL"
	envNATSBucket      = "NATS_BUCKET"
	envNATSKey         = "NATS_KEY"
	envMetricsOn       = "METRICS_ENABLED"
	envMetricsAddr     = "METRICS_ADDR"
	envPushgatewayURL  = "PUSHGATEWAY_URL"
	envOtelEndpoint    = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService     = "OTEL_SERVICE_NAME"
	envOtelInsecure    = "OTEL_EXPORTER_OTLP_INSECURE"
	envLogLevel        = "LOG_LEVEL"
	envLogFormat       = "LOG_FORMAT"

	ProviderNHLE    = "nhle"
	ProviderFixture = "fixture"

	BackendFile     = "file"
	BackendMemory   = "memory"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
	BackendNATS     = "nats"

	defaultProvider     = ProviderNHLE
	defaultHTTPTimeout  = 10 * Duration(time.Second)
	defaultWatchPeriod  = 10 * Duration(time.Second)
	defaultStateBackend = BackendFile
	defaultStatePath    = statestore.DefaultFilePath
	defaultServiceName  = "nhl-game-tracker"
	defaultLogLevel     = "info"
	defaultLogFormat    = "text"
	// Only bound while watching; a one-shot run pushes to the gateway instead.
	defaultMetricsAddr = ":9090"
)

const defaultScoreboardURL = nhle.DefaultScoreboardURL
