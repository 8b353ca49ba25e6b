// cmd/api/main.go
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/config"
	"github.com/your-org/storefront/internal/domain/product"
	"github.com/your-org/storefront/internal/domain/session"
	"github.com/your-org/storefront/internal/infrastructure/catalog"
	"github.com/your-org/storefront/internal/infrastructure/database/postgres"
	"github.com/your-org/storefront/internal/infrastructure/database/redis"
	"github.com/your-org/storefront/internal/infrastructure/storage"
	"github.com/your-org/storefront/internal/interfaces/http"
	"github.com/your-org/storefront/internal/pkg/logger"
	"github.com/your-org/storefront/internal/pkg/metrics"
	"github.com/your-org/storefront/internal/pkg/state"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	log := logger.New(cfg)
	log.WithFields(logrus.Fields{
		"version":     cfg.App.Version,
		"environment": cfg.App.Environment,
	}).Infof("Starting %s", cfg.App.Name)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(registry)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	checks := map[string]http.HealthCheck{}

	products, closeCatalog, err := loadCatalog(ctx, cfg, log, checks)
	if err != nil {
		log.WithError(err).Fatal("Failed to load catalog")
	}
	defer closeCatalog()
	log.WithField("products", products.Len()).Info("Catalog loaded")

	var (
		store       state.Storage = storage.NewMemory()
		redisClient *redis.Client
	)
	if cfg.UsesRedis() {
		redisClient, err = redis.NewConnection(cfg, log)
		if err != nil {
			log.WithError(err).Fatal("Failed to connect to Redis")
		}
		defer redisClient.Close()

		store = redis.NewStorage(redisClient.GetClient(), cfg.Storage.TTL)
		checks["redis"] = redisClient.Health
	}

	sessions := session.NewManager(session.Config{
		Storage:       store,
		KeyPrefix:     cfg.Storage.KeyPrefix,
		CheckoutDelay: cfg.Checkout.Delay,
		Logger:        log,
		Metrics:       m,
	})
	defer sessions.Close()
	go sessions.Run(ctx, cfg.Session.SweepInterval, cfg.Session.IdleTimeout)

	deps := http.Dependencies{
		Catalog:      products,
		Sessions:     sessions,
		Logger:       log,
		Metrics:      m,
		Gatherer:     registry,
		HealthChecks: checks,
	}
	if redisClient != nil {
		deps.Redis = redisClient.GetClient()
	}
	server := http.NewServer(cfg, deps)

	errCh := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info("Shutting down gracefully")
	case err := <-errCh:
		log.WithError(err).Error("HTTP server failed")
	}

	// Give server 30 seconds to shutdown gracefully
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Stop(shutdownCtx); err != nil {
		log.WithError(err).Error("Failed to shutdown HTTP server gracefully")
	}

	log.Info("Server shutdown completed")
}

// loadCatalog reads the catalog from the configured source. For Postgres the
// schema is migrated and, when enabled, seeded from the embedded catalog.
func loadCatalog(ctx context.Context, cfg *config.Config, log *logrus.Logger, checks map[string]http.HealthCheck) (*product.Catalog, func(), error) {
	if cfg.Catalog.Source != config.CatalogSourcePostgres {
		c, err := catalog.Load(cfg.Catalog.Path)
		return c, func() {}, err
	}

	db, err := postgres.NewConnection(cfg, log)
	if err != nil {
		return nil, nil, err
	}
	closeDB := func() {
		if err := db.Close(); err != nil {
			log.WithError(err).Warn("Failed to close database")
		}
	}

	migration := postgres.NewMigration(db.GetDB(), log)
	if err := migration.RunAutoMigrations(); err != nil {
		closeDB()
		return nil, nil, err
	}
	if err := migration.CreateIndexes(); err != nil {
		log.WithError(err).Warn("Index creation failed")
	}

	if cfg.Catalog.Seed {
		seed, err := catalog.Load(cfg.Catalog.Path)
		if err != nil {
			closeDB()
			return nil, nil, err
		}
		if err := migration.SeedCatalog(ctx, seed); err != nil {
			log.WithError(err).Warn("Catalog seeding failed")
		}
	}

	c, err := postgres.NewCatalogRepository(db.GetDB()).Load(ctx)
	if err != nil {
		closeDB()
		return nil, nil, err
	}

	checks["postgres"] = db.Health
	return c, closeDB, nil
}
