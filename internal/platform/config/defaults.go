package config

const (
	defaultServerPort = 8080

	defaultAppendAttempts  = 3
	defaultBusBufferSize   = 256
	defaultDeliveryRetries = 5
	defaultEmailCheckLimit = 4

	defaultRetryMaxAttempts = 3
	defaultRetryMultiplier  = 2.0

	defaultCircuitBreakerMaxFailures = 5
	defaultCircuitBreakerHalfOpen    = 1
)

// defaults returns the default configuration values.
// These are loaded first and can be overridden by base.yaml, profile YAML, and env vars.
func defaults() map[string]any {
	values := map[string]any{
		"server.host":          "0.0.0.0",
		"server.port":          defaultServerPort,
		"server.read_timeout":  "5s",
		"server.write_timeout": "10s",
		"server.idle_timeout":  "120s",

		"log.level":  "info",
		"log.format": "json",

		"storage.driver":       "sqlite",
		"storage.path":         "data/comments.db",
		"storage.busy_timeout": "5s",

		"events.append_attempts":           defaultAppendAttempts,
		"events.buffer_size":               defaultBusBufferSize,
		"events.delivery.max_attempts":     defaultDeliveryRetries,
		"events.delivery.initial_interval": "200ms",
		"events.delivery.max_interval":     "30s",
		"events.delivery.multiplier":       defaultRetryMultiplier,
		"events.redrive.interval":          "1m",
		"events.redrive.stalled_after":     "5m",

		"reactors.call_timeout":            "20s",
		"reactors.email_check_concurrency": defaultEmailCheckLimit,

		"telemetry.enabled":      false,
		"telemetry.exporter":     "stdout",
		"telemetry.endpoint":     "",
		"telemetry.sample_ratio": 1.0,
	}

	for _, client := range []string{"deposition", "directory", "notifier"} {
		prefix := "clients." + client + "."
		values[prefix+"timeout"] = "30s"
		values[prefix+"retry.max_attempts"] = defaultRetryMaxAttempts
		values[prefix+"retry.initial_interval"] = "100ms"
		values[prefix+"retry.max_interval"] = "10s"
		values[prefix+"retry.multiplier"] = defaultRetryMultiplier
		values[prefix+"circuit_breaker.max_failures"] = defaultCircuitBreakerMaxFailures
		values[prefix+"circuit_breaker.timeout"] = "30s"
		values[prefix+"circuit_breaker.half_open_limit"] = defaultCircuitBreakerHalfOpen
		values[prefix+"rate_limit.requests_per_second"] = 0
		values[prefix+"rate_limit.burst_size"] = 1
	}

	return values
}
