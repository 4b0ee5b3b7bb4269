// Package app assembles concrete adapters from configuration. It is shared
// by the server and dbtool entry points.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"supplychain-service/internal/adapters/cache"
	"supplychain-service/internal/adapters/distance"
	"supplychain-service/internal/adapters/events"
	"supplychain-service/internal/adapters/repositories"
	"supplychain-service/internal/adapters/repositories/memory"
	"supplychain-service/internal/config"
	"supplychain-service/internal/platform/db"
	"supplychain-service/internal/ports"

	"go.uber.org/zap"
)

// Backend is the opened store and, for SQL stores, the database behind it.
type Backend struct {
	Store ports.Store
	// DB is nil for the memory store.
	DB *db.DB
}

// OpenBackend opens the store selected by cfg.Store. SQL schemas are
// created if missing.
func OpenBackend(ctx context.Context, cfg config.Config) (*Backend, error) {
	var (
		d   *db.DB
		err error
	)

	switch cfg.Store {
	case config.StoreMemory:
		return &Backend{Store: memory.NewStore()}, nil
	case config.StoreSQLite:
		if dir := filepath.Dir(cfg.DBPath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("open backend: create %s: %w", dir, err)
			}
		}
		d, err = db.Open(db.DriverSQLite, cfg.DBPath)
	case config.StorePostgres:
		d, err = db.Open(db.DriverPostgres, cfg.DatabaseURL)
	default:
		return nil, fmt.Errorf("open backend: unknown store %q", cfg.Store)
	}
	if err != nil {
		return nil, fmt.Errorf("open backend: %w", err)
	}

	if err := repositories.InitSchema(ctx, d); err != nil {
		_ = d.Close()
		return nil, fmt.Errorf("open backend: %w", err)
	}

	return &Backend{Store: repositories.NewSQLStore(d), DB: d}, nil
}

func (b *Backend) Close() error {
	if b.DB == nil {
		return nil
	}
	return b.DB.Close()
}

// DistanceProvider returns the ORS provider when an API key is configured,
// backed by SQL caches when the store is SQL. It returns nil without a key.
func (b *Backend) DistanceProvider(cfg config.Config) (ports.DistanceProvider, error) {
	if strings.TrimSpace(cfg.ORSAPIKey) == "" {
		return nil, nil
	}

	var (
		dc distance.DistanceCache
		gc distance.GeocodeCache
	)
	if b.DB != nil {
		dc, gc = cache.NewSQLDistanceCache(b.DB), cache.NewSQLGeocodeCache(b.DB)
	}

	p, err := distance.NewORSProvider(distance.ORSConfig{APIKey: cfg.ORSAPIKey, Country: cfg.ORSCountry}, dc, gc)
	if err != nil {
		return nil, fmt.Errorf("distance provider: %w", err)
	}
	return p, nil
}

// Publisher returns an AMQP publisher when AMQP_URL is set, otherwise a log
// publisher. The returned func releases the broker connection.
func Publisher(cfg config.Config, log *zap.Logger) (ports.RouteEventPublisher, func() error) {
	if strings.TrimSpace(cfg.AMQPURL) == "" {
		return events.NewLogPublisher(log), func() error { return nil }
	}
	p := events.NewAMQPPublisher(cfg.AMQPURL, log)
	return p, p.Close
}
