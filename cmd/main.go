package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/davidbz/chargeflow/internal/chargemodel"
	"github.com/davidbz/chargeflow/internal/config"
	"github.com/davidbz/chargeflow/internal/domain"
	"github.com/davidbz/chargeflow/internal/http"
	"github.com/davidbz/chargeflow/internal/http/middleware"
	"github.com/davidbz/chargeflow/internal/metrics"
	"github.com/davidbz/chargeflow/internal/observability"
	"github.com/davidbz/chargeflow/internal/store/redis"
)

const shutdownTimeout = 15 * time.Second

func main() {
	container := buildContainer()

	err := container.Invoke(func(server *http.Server) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				log.Printf("Server shutdown failed: %v", err)
			}
		}()

		if err := server.Start(); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	})
	if err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}
}

func buildContainer() *dig.Container {
	container := dig.New()

	// Configuration
	if err := container.Provide(config.Load); err != nil {
		log.Fatalf("Failed to provide config: %v", err)
	}
	if err := container.Provide(config.ParseDependenciesConfig); err != nil {
		log.Fatalf("Failed to provide config dependencies: %v", err)
	}

	// Observability
	if err := container.Provide(observability.InitLogger); err != nil {
		log.Fatalf("Failed to provide logger: %v", err)
	}
	if err := container.Provide(func(logger *zap.Logger) domain.EventPublisher {
		return observability.NewEventBus(logger)
	}); err != nil {
		log.Fatalf("Failed to provide event bus: %v", err)
	}
	if err := container.Provide(metrics.New); err != nil {
		log.Fatalf("Failed to provide metrics collector: %v", err)
	}
	if err := container.Provide(func(collector *metrics.Collector) domain.MetricsRecorder {
		return collector
	}); err != nil {
		log.Fatalf("Failed to provide metrics recorder: %v", err)
	}

	// Charge models
	if err := container.Provide(func() domain.ModelSelector {
		return chargemodel.NewSelector()
	}); err != nil {
		log.Fatalf("Failed to provide model selector: %v", err)
	}

	// Storage
	if err := container.Provide(func() domain.ChargeRegistry {
		return domain.NewInMemoryChargeRegistry()
	}); err != nil {
		log.Fatalf("Failed to provide charge registry: %v", err)
	}
	if err := container.Provide(newFeeRepository); err != nil {
		log.Fatalf("Failed to provide fee repository: %v", err)
	}

	// Licensing
	if err := container.Provide(func(cfg *config.LicenseConfig) domain.License {
		return domain.StaticLicense{Premium: cfg.Premium}
	}); err != nil {
		log.Fatalf("Failed to provide license: %v", err)
	}

	// Domain Services
	if err := container.Provide(newBillingOptions); err != nil {
		log.Fatalf("Failed to provide billing options: %v", err)
	}
	if err := container.Provide(domain.NewBillingService); err != nil {
		log.Fatalf("Failed to provide billing service: %v", err)
	}

	// HTTP Layer
	if err := container.Provide(http.NewHandler); err != nil {
		log.Fatalf("Failed to provide HTTP handler: %v", err)
	}
	if err := container.Provide(middleware.BuildMiddlewareChain); err != nil {
		log.Fatalf("Failed to provide middleware chain: %v", err)
	}
	if err := container.Provide(http.NewServer); err != nil {
		log.Fatalf("Failed to provide HTTP server: %v", err)
	}

	return container
}

// newFeeRepository uses Redis when an address is configured and memory otherwise.
func newFeeRepository(cfg *redis.Config, _ *zap.Logger) (domain.FeeRepository, error) {
	ctx := context.Background()
	logger := observability.FromContext(ctx)

	if !cfg.Enabled() {
		logger.Info("REDIS_ADDR not set, keeping fees in memory")
		return domain.NewInMemoryFeeRepository(), nil
	}

	store, err := redis.NewFeeStore(*cfg)
	if err != nil {
		return nil, fmt.Errorf("fee store unavailable: %w", err)
	}

	logger.Info("fees stored in redis",
		observability.String("addr", cfg.Addr),
		observability.Int("db", cfg.DB),
		observability.Duration("ttl", cfg.FeeTTL))
	return store, nil
}

func newBillingOptions(cfg *config.EngineConfig) (domain.BillingOptions, error) {
	mode, err := domain.ParseRoundingMode(cfg.RoundingMode)
	if err != nil {
		return domain.BillingOptions{}, fmt.Errorf("invalid engine config: %w", err)
	}

	return domain.BillingOptions{
		Rounding:        domain.NewRoundingPolicy(mode),
		Workers:         cfg.Workers,
		DefaultCurrency: cfg.DefaultCurrency,
	}, nil
}
