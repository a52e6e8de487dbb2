package config

// MetricsConfig controls telemetry export settings.
type MetricsConfig struct {
	Enabled        bool
	Addr           string
	PushgatewayURL string
	OtlpEndpoint   string
	ServiceName    string
	OtlpInsecure   bool
}

func loadMetrics(base MetricsConfig) MetricsConfig {
	return MetricsConfig{
		Enabled:        boolEnvOrDefault(envMetricsOn, base.Enabled),
		Addr:           envOrDefault(envMetricsAddr, base.Addr),
		PushgatewayURL: envOrDefault(envPushgatewayURL, base.PushgatewayURL),
		OtlpEndpoint:   envOrDefault(envOtelEndpoint, base.OtlpEndpoint),
		ServiceName:    envOrDefault(envOtelService, base.ServiceName),
		OtlpInsecure:   boolEnvOrDefault(envOtelInsecure, base.OtlpInsecure),
	}
}
