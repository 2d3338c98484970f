// Package main is the entry point for the review comment service. It wires
// all dependencies using samber/do v2, subscribes the reactors to the event
// bus, starts the redrive loop and the HTTP server, and handles graceful
// shutdown on SIGINT/SIGTERM.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/samber/do/v2"

	"github.com/jsamuelsen11/review-comments/internal/adapters/clients/acl"
	"github.com/jsamuelsen11/review-comments/internal/adapters/eventbus"
	adapthttp "github.com/jsamuelsen11/review-comments/internal/adapters/http"
	"github.com/jsamuelsen11/review-comments/internal/adapters/http/handlers"
	"github.com/jsamuelsen11/review-comments/internal/adapters/http/middleware"
	"github.com/jsamuelsen11/review-comments/internal/adapters/storage/memory"
	"github.com/jsamuelsen11/review-comments/internal/adapters/storage/sqlite"
	"github.com/jsamuelsen11/review-comments/internal/app"
	"github.com/jsamuelsen11/review-comments/internal/platform/config"
	"github.com/jsamuelsen11/review-comments/internal/platform/health"
	"github.com/jsamuelsen11/review-comments/internal/platform/httpclient"
	"github.com/jsamuelsen11/review-comments/internal/platform/logging"
	"github.com/jsamuelsen11/review-comments/internal/platform/telemetry"
	"github.com/jsamuelsen11/review-comments/internal/ports"
)

const (
	serverShutdownTimeout = 15 * time.Second
	busShutdownTimeout    = 10 * time.Second
	otelShutdownTimeout   = 5 * time.Second
	healthCheckTimeout    = 2 * time.Second
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	profile := os.Getenv("APP_PROFILE")
	if profile == "" {
		return errors.New("APP_PROFILE environment variable is required (e.g. local, dev, qa, prod)")
	}

	// Bootstrap: config, logger, telemetry.
	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr,
		slog.String("service", cfg.Telemetry.ServiceName))

	ctx := context.Background()
	otel, err := telemetry.Setup(ctx, cfg.Telemetry)
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}

	// DI container.
	injector := do.New()

	do.ProvideValue(injector, cfg)
	do.ProvideValue(injector, logger)
	do.ProvideValue(injector, otel.Metrics)

	registerDependencies(injector, cfg, logger)

	// Resolve the server (eagerly wires the full graph).
	server, err := do.Invoke[*adapthttp.Server](injector)
	if err != nil {
		_ = otel.Shutdown(ctx)
		return fmt.Errorf("resolving server: %w", err)
	}

	store := do.MustInvoke[journal](injector)
	bus := do.MustInvoke[*eventbus.Bus](injector)

	subscribeReactors(injector, bus)
	registerHealthCheckers(injector)

	// Pick up comments that stalled in a previous run, then keep sweeping.
	redriveCtx, stopRedrive := context.WithCancel(ctx)
	defer stopRedrive()
	redriveDone := make(chan struct{})
	go func() {
		defer close(redriveDone)
		do.MustInvoke[*app.Redriver](injector).Run(redriveCtx)
	}()

	// Start server in background.
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Start()
	}()

	// Wait for shutdown signal or server error.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	var runErr error
	select {
	case sig := <-quit:
		logger.Info("received shutdown signal", slog.String("signal", sig.String()))
	case err := <-serverErr:
		runErr = fmt.Errorf("server failed: %w", err)
	}

	// Graceful shutdown: drain HTTP requests first so no new commands arrive.
	if runErr == nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), serverShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown error", slog.Any("error", err))
		}

		// Wait for Start() goroutine to return.
		<-serverErr
	}

	stopRedrive()
	<-redriveDone

	// Let the reactors finish what is already queued, including the events
	// they record on the way. Anything left over is in the journal and the
	// redrive sweep at the next start publishes it again.
	busCtx, busCancel := context.WithTimeout(context.Background(), busShutdownTimeout)
	defer busCancel()

	if err := bus.Close(busCtx); err != nil {
		logger.Error("event bus shutdown error", slog.Any("error", err))
	}

	if err := store.Close(); err != nil {
		logger.Error("event store close error", slog.Any("error", err))
	}

	// Flush telemetry.
	otelCtx, otelCancel := context.WithTimeout(context.Background(), otelShutdownTimeout)
	defer otelCancel()

	if err := otel.Shutdown(otelCtx); err != nil {
		logger.Error("telemetry shutdown error", slog.Any("error", err))
	}

	logger.Info("shutdown complete")
	return runErr
}

// journal is the event store as the process sees it: the port plus the
// backlog query, health reporting and a close hook.
type journal interface {
	ports.EventStore
	ports.EventBacklog
	ports.HealthChecker
	io.Closer
}

// notifierName keys the optional publication notifier in the container.
const notifierName = "publication-notifier"

func openJournal(cfg config.StorageConfig) (journal, error) {
	switch cfg.Driver {
	case "memory":
		return memory.New(), nil
	case "sqlite":
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o750); err != nil {
			return nil, fmt.Errorf("creating storage directory: %w", err)
		}
		ctx, cancel := context.WithTimeout(context.Background(), cfg.BusyTimeout+5*time.Second)
		defer cancel()
		store, err := sqlite.Open(ctx, cfg.Path, cfg.BusyTimeout)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Driver)
	}
}

func registerDependencies(injector *do.RootScope, cfg *config.Config, logger *slog.Logger) {
	do.Provide(injector, func(_ do.Injector) (journal, error) {
		return openJournal(cfg.Storage)
	})

	do.Provide(injector, func(i do.Injector) (*eventbus.Bus, error) {
		metrics := do.MustInvoke[*telemetry.Metrics](i)
		delivery := cfg.Events.Delivery
		return eventbus.New(eventbus.Options{
			BufferSize:      cfg.Events.BufferSize,
			MaxAttempts:     delivery.MaxAttempts,
			InitialInterval: delivery.InitialInterval,
			MaxInterval:     delivery.MaxInterval,
			Multiplier:      delivery.Multiplier,
			Logger:          logger,
			Metrics:         metrics,
		}), nil
	})

	do.Provide(injector, func(i do.Injector) (*app.CommentService, error) {
		store := do.MustInvoke[journal](i)
		bus := do.MustInvoke[*eventbus.Bus](i)
		metrics := do.MustInvoke[*telemetry.Metrics](i)
		return app.NewCommentService(store, bus, logger,
			app.WithMetrics(metrics),
			app.WithAppendAttempts(cfg.Events.AppendAttempts),
		), nil
	})

	do.Provide(injector, func(i do.Injector) (ports.CommentService, error) {
		return do.MustInvoke[*app.CommentService](i), nil
	})

	do.Provide(injector, func(i do.Injector) (*app.Redriver, error) {
		service := do.MustInvoke[*app.CommentService](i)
		store := do.MustInvoke[journal](i)
		return app.NewRedriver(service, store, app.RedriveOptions{
			Interval:     cfg.Events.Redrive.Interval,
			StalledAfter: cfg.Events.Redrive.StalledAfter,
			Logger:       logger,
			Metrics:      do.MustInvoke[*telemetry.Metrics](i),
		}), nil
	})

	// Downstream clients. Each gets its own breaker and limiter.
	do.Provide(injector, func(i do.Injector) (*acl.DepositionClient, error) {
		metrics := do.MustInvoke[*telemetry.Metrics](i)
		client := httpclient.New(&cfg.Clients.Deposition, "deposition-api", metrics, logger)
		return acl.NewDepositionClient(client, logger), nil
	})

	do.Provide(injector, func(i do.Injector) (*acl.DirectoryClient, error) {
		metrics := do.MustInvoke[*telemetry.Metrics](i)
		client := httpclient.New(&cfg.Clients.Directory, "directory-api", metrics, logger)
		return acl.NewDirectoryClient(client, logger), nil
	})

	if cfg.Clients.Notifier.BaseURL != "" {
		do.ProvideNamed(injector, notifierName, func(i do.Injector) (*acl.NotifierClient, error) {
			metrics := do.MustInvoke[*telemetry.Metrics](i)
			client := httpclient.New(&cfg.Clients.Notifier, "notifier-webhook", metrics, logger)
			return acl.NewNotifierClient(client, logger), nil
		})
	}

	reactorOpts := func(i do.Injector) app.ReactorOptions {
		return app.ReactorOptions{
			CallTimeout: cfg.Reactors.CallTimeout,
			Logger:      logger,
			Metrics:     do.MustInvoke[*telemetry.Metrics](i),
		}
	}

	do.Provide(injector, func(i do.Injector) (*app.VerifiedEmailReactor, error) {
		comments := do.MustInvoke[ports.CommentService](i)
		directory := do.MustInvoke[*acl.DirectoryClient](i)
		return app.NewVerifiedEmailReactor(comments, directory, cfg.Reactors.EmailCheckConcurrency, reactorOpts(i)), nil
	})

	do.Provide(injector, func(i do.Injector) (*app.AssignIdentifierReactor, error) {
		comments := do.MustInvoke[ports.CommentService](i)
		deposition := do.MustInvoke[*acl.DepositionClient](i)
		return app.NewAssignIdentifierReactor(comments, deposition, reactorOpts(i)), nil
	})

	do.Provide(injector, func(i do.Injector) (*app.PublishReactor, error) {
		comments := do.MustInvoke[ports.CommentService](i)
		deposition := do.MustInvoke[*acl.DepositionClient](i)
		return app.NewPublishReactor(comments, deposition, reactorOpts(i)), nil
	})

	do.Provide(injector, func(i do.Injector) (*app.NotifyPublishedReactor, error) {
		comments := do.MustInvoke[ports.CommentService](i)
		notifier := do.MustInvokeNamed[*acl.NotifierClient](i, notifierName)
		return app.NewNotifyPublishedReactor(comments, notifier, reactorOpts(i)), nil
	})

	do.Provide(injector, func(_ do.Injector) (ports.HealthRegistry, error) {
		return health.New(health.WithCheckTimeout(healthCheckTimeout)), nil
	})

	do.Provide(injector, func(i do.Injector) (*handlers.CommentHandler, error) {
		comments := do.MustInvoke[ports.CommentService](i)
		emails := do.MustInvoke[*app.VerifiedEmailReactor](i)
		return handlers.NewCommentHandler(comments, emails), nil
	})

	do.Provide(injector, func(i do.Injector) (*handlers.HealthHandler, error) {
		registry := do.MustInvoke[ports.HealthRegistry](i)
		store := do.MustInvoke[journal](i)
		bus := do.MustInvoke[*eventbus.Bus](i)
		return handlers.NewHealthHandler(registry, store.Name(), bus.Name()), nil
	})

	do.Provide(injector, func(i do.Injector) (nethttp.Handler, error) {
		commentH := do.MustInvoke[*handlers.CommentHandler](i)
		healthH := do.MustInvoke[*handlers.HealthHandler](i)
		metrics := do.MustInvoke[*telemetry.Metrics](i)

		return adapthttp.NewRouter(commentH, healthH,
			middleware.Recovery(logger),
			middleware.RequestID(),
			middleware.CorrelationID(),
			middleware.OpenTelemetry(metrics),
			middleware.Logging(logger),
			middleware.Timeout(cfg.Server.WriteTimeout),
		), nil
	})

	do.Provide(injector, func(i do.Injector) (*adapthttp.Server, error) {
		handler := do.MustInvoke[nethttp.Handler](i)
		return adapthttp.NewServer(cfg.Server, handler, logger), nil
	})
}

// subscribeReactors attaches the event-driven reactors to the bus. The
// notification reactor is skipped when no webhook is configured. The verified
// email reactor runs on demand from the HTTP handler and never subscribes.
func subscribeReactors(injector *do.RootScope, bus *eventbus.Bus) {
	do.MustInvoke[*app.AssignIdentifierReactor](injector).Subscribe(bus)
	do.MustInvoke[*app.PublishReactor](injector).Subscribe(bus)

	if _, err := do.InvokeNamed[*acl.NotifierClient](injector, notifierName); err == nil {
		do.MustInvoke[*app.NotifyPublishedReactor](injector).Subscribe(bus)
	}
}

// registerHealthCheckers adds the journal, the bus and each downstream client
// to the readiness registry once the graph is wired.
func registerHealthCheckers(injector *do.RootScope) {
	registry := do.MustInvoke[ports.HealthRegistry](injector)
	registry.Register(do.MustInvoke[journal](injector))
	registry.Register(do.MustInvoke[*eventbus.Bus](injector))
	registry.Register(do.MustInvoke[*acl.DepositionClient](injector))
	registry.Register(do.MustInvoke[*acl.DirectoryClient](injector))

	if notifier, err := do.InvokeNamed[*acl.NotifierClient](injector, notifierName); err == nil {
		registry.Register(notifier)
	}
}
