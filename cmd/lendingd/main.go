// Command lendingd serves the lending HTTP API and runs the sweeper that applies
// lazy corrections and notifies reservation holders.
//
// Configuration comes from the environment and an optional .env file.
// With -issue-token it prints a signed bearer token for local testing and exits.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/iguene/Bibliovirtuelle/config"
	"github.com/iguene/Bibliovirtuelle/eventstore/memengine"
	"github.com/iguene/Bibliovirtuelle/eventstore/postgresengine"
	"github.com/iguene/Bibliovirtuelle/lending/coordinator"
	"github.com/iguene/Bibliovirtuelle/lending/shared/shell/observable"
	"github.com/iguene/Bibliovirtuelle/sweeper"
	"github.com/iguene/Bibliovirtuelle/transport/httpapi"
)

const shutdownTimeout = 10 * time.Second

type flags struct {
	envFile      string
	issueToken   string
	role         string
	tokenTTL     time.Duration
	skipSweeping bool
}

func main() {
	f := parseFlags()

	if f.envFile != "" {
		if err := godotenv.Load(f.envFile); err != nil {
			log.Fatalf("Failed to load %s: %v", f.envFile, err)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	if f.issueToken != "" {
		if err := printToken(cfg, f); err != nil {
			log.Fatalf("Failed to issue token: %v", err)
		}

		return
	}

	if err := run(cfg, f); err != nil {
		log.Fatalf("lendingd stopped: %v", err)
	}
}

func parseFlags() flags {
	var f flags

	flag.StringVar(&f.envFile, "env-file", "", "Load variables from this file before reading the environment")
	flag.StringVar(&f.issueToken, "issue-token", "", "Print a bearer token for this subject UUID and exit")
	flag.StringVar(&f.role, "role", httpapi.RoleUser, "Role of the issued token: user or admin")
	flag.DurationVar(&f.tokenTTL, "token-ttl", 24*time.Hour, "Lifetime of the issued token")
	flag.BoolVar(&f.skipSweeping, "no-sweeper", false, "Serve the API without running the background sweeper")

	flag.Parse()

	return f
}

func printToken(cfg config.Config, f flags) error {
	subject, err := uuid.Parse(f.issueToken)
	if err != nil {
		return fmt.Errorf("subject must be a UUID: %w", err)
	}

	token, err := httpapi.IssueToken([]byte(cfg.JWTSecret), subject, f.role, f.tokenTTL)
	if err != nil {
		return err
	}

	fmt.Println(token)

	return nil
}

func run(cfg config.Config, f flags) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	handler := cfg.NewLogHandler(os.Stdout)
	logger := slog.New(handler).With("service", cfg.ServiceName)

	var collectors config.Collectors
	if cfg.OTelEnabled {
		providers, err := cfg.NewObservabilityProviders(ctx)
		if err != nil {
			return fmt.Errorf("setting up OpenTelemetry: %w", err)
		}
		defer shutdownWithTimeout(logger, "opentelemetry", providers.Shutdown)

		collectors = cfg.Collectors()
	}

	contextualLogger := cfg.NewContextualLogger(handler)

	pgOptions := []postgresengine.Option{postgresengine.WithContextualLogger(contextualLogger)}
	obsOptions := []observable.Option{observable.WithContextualLogging(contextualLogger)}
	if collectors.MetricsCollector != nil {
		pgOptions = append(pgOptions, postgresengine.WithMetrics(collectors.MetricsCollector))
		obsOptions = append(obsOptions, observable.WithMetrics(collectors.MetricsCollector))
	}
	if collectors.TracingCollector != nil {
		pgOptions = append(pgOptions, postgresengine.WithTracing(collectors.TracingCollector))
		obsOptions = append(obsOptions, observable.WithTracing(collectors.TracingCollector))
	}

	eventStore, closeStore, err := cfg.NewEventStore(ctx, pgOptions, []memengine.Option{memengine.WithLogger(logger)})
	if err != nil {
		return fmt.Errorf("opening event store: %w", err)
	}
	defer closeStore()

	notifier, closeNotifier, err := cfg.NewNotifier(logger)
	if err != nil {
		return fmt.Errorf("connecting notifier: %w", err)
	}
	defer func() {
		if err := closeNotifier(); err != nil {
			logger.Warn("closing notifier failed", "error", err)
		}
	}()

	lending := coordinator.New(eventStore,
		coordinator.WithPolicy(cfg.Policy()),
		coordinator.WithNotifier(notifier),
		coordinator.WithObservability(obsOptions...),
	)

	server, err := httpapi.NewServer(lending, []byte(cfg.JWTSecret), logger)
	if err != nil {
		return err
	}

	errChan := make(chan error, 2)

	go func() {
		errChan <- server.Start(cfg.HTTPAddr)
	}()

	if !f.skipSweeping {
		sw, err := sweeper.New(lending, sweeper.WithInterval(cfg.SweepInterval), sweeper.WithLogger(logger))
		if err != nil {
			return err
		}

		go func() {
			if err := sw.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				errChan <- fmt.Errorf("sweeper: %w", err)
			}
		}()
	}

	logger.Info("lendingd started",
		"store", cfg.EventStore,
		"sweep_interval", cfg.SweepInterval.String(),
		"otel", cfg.OTelEnabled,
	)

	var runErr error
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case runErr = <-errChan:
		stop()
	}

	shutdownWithTimeout(logger, "http server", server.Shutdown)

	return runErr
}

func shutdownWithTimeout(logger *slog.Logger, name string, shutdown func(context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := shutdown(ctx); err != nil {
		logger.Warn("shutdown failed", "component", name, "error", err)
	}
}
