package config

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// fileConfig mirrors Config for the optional YAML file. Zero values leave the
// defaults in place.
type fileConfig struct {
	FavouriteTeams  []string `yaml:"favourite_teams,omitempty"`
	Provider        string   `yaml:"provider,omitempty"`
	ScoreboardURL   string   `yaml:"scoreboard_url,omitempty"`
	HTTPTimeout     string   `yaml:"http_timeout,omitempty"`
	DisplayTimezone string   `yaml:"display_timezone,omitempty"`
	WatchInterval   string   `yaml:"watch_interval,omitempty"`

	State struct {
		Backend    string `yaml:"backend,omitempty"`
		Path       string `yaml:"path,omitempty"`
		DSN        string `yaml:"dsn,omitempty"`
		RedisURL   string `yaml:"redis_url,omitempty"`
		RedisKey   string `yaml:"redis_key,omitempty"`
		NATSURL    string `yaml:"nats_url,omitempty"`
		NATSBucket string `yaml:"nats_bucket,omitempty"`
		NATSKey    string `yaml:"nats_key,omitempty"`
	} `yaml:"state,omitempty"`

	Metrics struct {
		Enabled        *bool  `yaml:"enabled,omitempty"`
		Addr           string `yaml:"addr,omitempty"`
		PushgatewayURL string `yaml:"pushgateway_url,omitempty"`
		OtlpEndpoint   string `yaml:"otlp_endpoint,omitempty"`
		OtlpInsecure   *bool  `yaml:"otlp_insecure,omitempty"`
		ServiceName    string `yaml:"service_name,omitempty"`
	} `yaml:"metrics,omitempty"`

	Log struct {
		Level  string `yaml:"level,omitempty"`
		Format string `yaml:"format,omitempty"`
	} `yaml:"log,omitempty"`

	httpTimeout   time.Duration
	watchInterval time.Duration
}

func parseFile(data []byte) (fileConfig, error) {
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fileConfig{}, fmt.Errorf("parse config file: %w", err)
	}
	var err error
	if fc.httpTimeout, err = parsePositiveDuration("http_timeout", fc.HTTPTimeout); err != nil {
		return fileConfig{}, err
	}
	if fc.watchInterval, err = parsePositiveDuration("watch_interval", fc.WatchInterval); err != nil {
		return fileConfig{}, err
	}
	return fc, nil
}

func parsePositiveDuration(field, raw string) (time.Duration, error) {
	if raw == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("parse config file: %s: %w", field, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("parse config file: %s must be positive", field)
	}
	return d, nil
}

func (fc fileConfig) apply(cfg *Config) {
	if len(fc.FavouriteTeams) > 0 {
		cfg.FavouriteTeams = append([]string(nil), fc.FavouriteTeams...)
	}
	setString(&cfg.Provider, fc.Provider)
	setString(&cfg.ScoreboardURL, fc.ScoreboardURL)
	setString(&cfg.DisplayTimezone, fc.DisplayTimezone)
	if fc.httpTimeout > 0 {
		cfg.HTTPTimeout = fc.httpTimeout
	}
	if fc.watchInterval > 0 {
		cfg.WatchInterval = fc.watchInterval
	}

	setString(&cfg.State.Backend, fc.State.Backend)
	setString(&cfg.State.Path, fc.State.Path)
	setString(&cfg.State.DSN, fc.State.DSN)
	setString(&cfg.State.RedisURL, fc.State.RedisURL)
	setString(&cfg.State.RedisKey, fc.State.RedisKey)
	setString(&cfg.State.NATSURL, fc.State.NATSURL)
	setString(&cfg.State.NATSBucket, fc.State.NATSBucket)
	setString(&cfg.State.NATSKey, fc.State.NATSKey)

	if fc.Metrics.Enabled != nil {
		cfg.Metrics.Enabled = *fc.Metrics.Enabled
	}
	if fc.Metrics.OtlpInsecure != nil {
		cfg.Metrics.OtlpInsecure = *fc.Metrics.OtlpInsecure
	}
	setString(&cfg.Metrics.Addr, fc.Metrics.Addr)
	setString(&cfg.Metrics.PushgatewayURL, fc.Metrics.PushgatewayURL)
	setString(&cfg.Metrics.OtlpEndpoint, fc.Metrics.OtlpEndpoint)
	setString(&cfg.Metrics.ServiceName, fc.Metrics.ServiceName)

	setString(&cfg.Log.Level, fc.Log.Level)
	setString(&cfg.Log.Format, fc.Log.Format)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
