package config

import (
	"errors"
	"fmt"

	"github.com/jsamuelsen11/review-comments/internal/platform/logging"
)

// Validate checks all configuration values and returns aggregated errors.
func (c *Config) Validate() error {
	return errors.Join(
		c.Server.validate(),
		c.Log.validate(),
		c.Storage.validate(),
		c.Events.validate(),
		c.Reactors.validate(),
		c.Clients.Deposition.validate("clients.deposition"),
		c.Clients.Directory.validate("clients.directory"),
		c.Clients.notifierValidate(),
		c.Telemetry.validate(),
	)
}

func (s *ServerConfig) validate() error {
	var errs []error

	if s.Port < 1 || s.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port must be between 1 and 65535, got %d", s.Port))
	}
	if s.ReadTimeout <= 0 {
		errs = append(errs, errors.New("server.read_timeout must be positive"))
	}
	if s.WriteTimeout <= 0 {
		errs = append(errs, errors.New("server.write_timeout must be positive"))
	}

	return errors.Join(errs...)
}

func (l *LogConfig) validate() error {
	var errs []error

	if _, err := logging.ParseLevel(l.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}

	switch l.Format {
	case "json", "text":
		// Valid formats.
	default:
		errs = append(errs, fmt.Errorf("log.format must be one of: json, text; got %q", l.Format))
	}

	return errors.Join(errs...)
}

func (s *StorageConfig) validate() error {
	switch s.Driver {
	case "memory":
		return nil
	case "sqlite":
		if s.Path == "" {
			return errors.New("storage.path must not be empty when driver is sqlite")
		}
		return nil
	default:
		return fmt.Errorf("storage.driver must be one of: sqlite, memory; got %q", s.Driver)
	}
}

func (e *EventsConfig) validate() error {
	var errs []error

	if e.AppendAttempts < 1 {
		errs = append(errs, fmt.Errorf("events.append_attempts must be >= 1, got %d", e.AppendAttempts))
	}
	if e.BufferSize < 1 {
		errs = append(errs, fmt.Errorf("events.buffer_size must be >= 1, got %d", e.BufferSize))
	}
	errs = append(errs, e.Delivery.validate("events.delivery"))
	if e.Redrive.Interval <= 0 {
		errs = append(errs, errors.New("events.redrive.interval must be positive"))
	}
	if e.Redrive.StalledAfter < 0 {
		errs = append(errs, fmt.Errorf("events.redrive.stalled_after must not be negative, got %s", e.Redrive.StalledAfter))
	}

	return errors.Join(errs...)
}

func (r *ReactorsConfig) validate() error {
	var errs []error

	if r.CallTimeout <= 0 {
		errs = append(errs, errors.New("reactors.call_timeout must be positive"))
	}
	if r.EmailCheckConcurrency < 1 {
		errs = append(errs, fmt.Errorf("reactors.email_check_concurrency must be >= 1, got %d",
			r.EmailCheckConcurrency))
	}

	return errors.Join(errs...)
}

// notifierValidate skips the notifier when it is not configured.
func (c *ClientsConfig) notifierValidate() error {
	if c.Notifier.BaseURL == "" {
		return nil
	}
	return c.Notifier.validate("clients.notifier")
}

func (cl *ClientConfig) validate(prefix string) error {
	var errs []error

	if cl.BaseURL == "" {
		errs = append(errs, fmt.Errorf("%s.base_url must not be empty", prefix))
	}
	if cl.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("%s.timeout must be positive", prefix))
	}
	errs = append(errs, cl.Retry.validate(prefix+".retry"))
	if cl.CircuitBreaker.MaxFailures < 1 {
		errs = append(errs, fmt.Errorf("%s.circuit_breaker.max_failures must be >= 1, got %d",
			prefix, cl.CircuitBreaker.MaxFailures))
	}
	if cl.RateLimit.RequestsPerSecond < 0 {
		errs = append(errs, fmt.Errorf("%s.rate_limit.requests_per_second must not be negative", prefix))
	}
	if cl.RateLimit.RequestsPerSecond > 0 && cl.RateLimit.BurstSize < 1 {
		errs = append(errs, fmt.Errorf("%s.rate_limit.burst_size must be >= 1 when rate limiting", prefix))
	}

	return errors.Join(errs...)
}

func (r *RetryConfig) validate(prefix string) error {
	var errs []error

	if r.MaxAttempts < 1 {
		errs = append(errs, fmt.Errorf("%s.max_attempts must be >= 1, got %d", prefix, r.MaxAttempts))
	}
	if r.Multiplier <= 0 {
		errs = append(errs, fmt.Errorf("%s.multiplier must be positive, got %f", prefix, r.Multiplier))
	}
	if r.InitialInterval <= 0 {
		errs = append(errs, fmt.Errorf("%s.initial_interval must be positive", prefix))
	}

	return errors.Join(errs...)
}

func (t *TelemetryConfig) validate() error {
	if !t.Enabled {
		return nil
	}

	var errs []error

	switch t.Exporter {
	case "stdout", "otlp":
		// Valid exporters.
	default:
		errs = append(errs, fmt.Errorf("telemetry.exporter must be one of: stdout, otlp; got %q", t.Exporter))
	}

	if t.Exporter == "otlp" && t.Endpoint == "" {
		errs = append(errs, errors.New("telemetry.endpoint must not be empty when exporter is otlp"))
	}

	if t.SampleRatio < 0 || t.SampleRatio > 1 {
		errs = append(errs, fmt.Errorf("telemetry.sample_ratio must be between 0 and 1, got %g", t.SampleRatio))
	}

	return errors.Join(errs...)
}
