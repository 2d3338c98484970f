// Package config provides configuration loading and validation for the service.
// Configuration is loaded from YAML files with environment variable overrides
// using a layered system: defaults -> base.yaml -> {profile}.yaml -> env vars.
package config

import "time"

// Config holds all configuration for the service.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Log       LogConfig       `koanf:"log"`
	Storage   StorageConfig   `koanf:"storage"`
	Events    EventsConfig    `koanf:"events"`
	Reactors  ReactorsConfig  `koanf:"reactors"`
	Clients   ClientsConfig   `koanf:"clients"`
	Telemetry TelemetryConfig `koanf:"telemetry"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host         string        `koanf:"host"`
	Port         int           `koanf:"port"`
	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`
	IdleTimeout  time.Duration `koanf:"idle_timeout"`
}

// LogConfig holds structured logging settings.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// StorageConfig selects the event journal backend.
type StorageConfig struct {
	// Driver is "sqlite" or "memory".
	Driver      string        `koanf:"driver"`
	Path        string        `koanf:"path"`
	BusyTimeout time.Duration `koanf:"busy_timeout"`
}

// EventsConfig holds command handling and event delivery settings.
type EventsConfig struct {
	// AppendAttempts bounds how often a command is re-decided after losing
	// an append race to another writer.
	AppendAttempts int `koanf:"append_attempts"`
	// BufferSize is the queue length of each bus subscriber.
	BufferSize int `koanf:"buffer_size"`
	// Delivery is the redelivery policy for failed subscriber handlers.
	Delivery RetryConfig `koanf:"delivery"`
	// Redrive controls the sweep that re-publishes stalled publications.
	Redrive RedriveConfig `koanf:"redrive"`
}

// RedriveConfig holds the stalled publication sweep settings.
type RedriveConfig struct {
	// Interval is the time between sweeps after the one at startup.
	Interval time.Duration `koanf:"interval"`
	// StalledAfter is how long a comment must have been waiting on a
	// reactor before its last event is published again. It should exceed
	// the time the bus spends on redeliveries.
	StalledAfter time.Duration `koanf:"stalled_after"`
}

// ReactorsConfig holds settings shared by the reactors.
type ReactorsConfig struct {
	// CallTimeout bounds every downstream call a reactor makes.
	CallTimeout time.Duration `koanf:"call_timeout"`
	// EmailCheckConcurrency bounds parallel directory lookups in batch refreshes.
	EmailCheckConcurrency int `koanf:"email_check_concurrency"`
}

// ClientsConfig holds one ClientConfig per downstream service.
type ClientsConfig struct {
	Deposition ClientConfig `koanf:"deposition"`
	Directory  ClientConfig `koanf:"directory"`
	// Notifier is optional; an empty base_url disables publication notices.
	Notifier ClientConfig `koanf:"notifier"`
}

// ClientConfig holds downstream HTTP client settings.
type ClientConfig struct {
	BaseURL        string               `koanf:"base_url"`
	APIToken       string               `koanf:"api_token"`
	Timeout        time.Duration        `koanf:"timeout"`
	Retry          RetryConfig          `koanf:"retry"`
	CircuitBreaker CircuitBreakerConfig `koanf:"circuit_breaker"`
	RateLimit      RateLimitConfig      `koanf:"rate_limit"`
}

// RetryConfig holds retry policy settings with exponential backoff.
type RetryConfig struct {
	MaxAttempts     int           `koanf:"max_attempts"`
	InitialInterval time.Duration `koanf:"initial_interval"`
	MaxInterval     time.Duration `koanf:"max_interval"`
	Multiplier      float64       `koanf:"multiplier"`
}

// CircuitBreakerConfig holds circuit breaker settings.
type CircuitBreakerConfig struct {
	MaxFailures   int           `koanf:"max_failures"`
	Timeout       time.Duration `koanf:"timeout"`
	HalfOpenLimit int           `koanf:"half_open_limit"`
}

// RateLimitConfig holds client-side rate limiting settings.
// A zero RequestsPerSecond disables the limiter.
type RateLimitConfig struct {
	RequestsPerSecond float64 `koanf:"requests_per_second"`
	BurstSize         int     `koanf:"burst_size"`
}

// TelemetryConfig holds OpenTelemetry settings.
type TelemetryConfig struct {
	Enabled     bool   `koanf:"enabled"`
	Exporter    string `koanf:"exporter"`
	Endpoint    string `koanf:"endpoint"`
	ServiceName string `koanf:"service_name"`
	// SampleRatio is the share of new traces kept, from 0 to 1.
	SampleRatio float64 `koanf:"sample_ratio"`
}
