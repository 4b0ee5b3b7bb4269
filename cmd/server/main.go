package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"supplychain-service/internal/api"
	"supplychain-service/internal/app"
	"supplychain-service/internal/config"
	"supplychain-service/internal/platform/obs"
	"supplychain-service/internal/services"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// main is the application composition root.
// It wires concrete adapters (store, broker, ORS) behind ports and starts the HTTP server.
func main() {
	foundEnv := config.LoadDotEnv()

	cfg, err := config.Load()
	if err != nil {
		zap.NewExample().Fatal("load config", zap.Error(err))
	}

	log, err := obs.NewLogger(cfg.LogLevel)
	if err != nil {
		zap.NewExample().Fatal("init logger", zap.Error(err))
	}
	defer func() { _ = log.Sync() }()

	if !foundEnv {
		log.Info("no .env file found, using environment variables")
	}

	if err := run(cfg, log); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backend, err := app.OpenBackend(ctx, cfg)
	if err != nil {
		return err
	}
	defer backend.Close()

	// Seed demo data on startup for local runs; existing ids are left alone.
	if cfg.SeedPath != "" {
		if err := seed(ctx, backend, cfg.SeedPath, log); err != nil {
			return err
		}
	}

	publisher, closePublisher := app.Publisher(cfg, log)
	defer func() {
		if err := closePublisher(); err != nil {
			log.Warn("close publisher", zap.Error(err))
		}
	}()

	provider, err := backend.DistanceProvider(cfg)
	if err != nil {
		return err
	}
	if provider == nil {
		log.Info("ORS_API_KEY not set, route distances are not looked up")
	}

	router := api.NewRouter(api.Deps{
		Routes:   services.NewRouteService(backend.Store.Routes, publisher, provider),
		Products: services.NewProductService(backend.Store.Products),
		Vendors:  services.NewVendorService(backend.Store.Vendors),
		Orders:   services.NewOrderService(backend.Store.Orders, backend.Store.Vendors, backend.Store.Products),
		KPIs:     services.NewKPIService(backend.Store),
		Logger:   log,
	})

	// Write timeout leaves room for cold-cache distance lookups on route create.
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", zap.String("addr", srv.Addr), zap.String("store", cfg.Store))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func seed(ctx context.Context, backend *app.Backend, path string, log *zap.Logger) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		log.Info("seed file not found, starting empty", zap.String("path", path))
		return nil
	}

	data, err := services.LoadSeedFile(path)
	if err != nil {
		return err
	}
	res, err := services.Seed(ctx, backend.Store, data, time.Now())
	if err != nil {
		return err
	}

	log.Info("seeded",
		zap.String("path", path),
		zap.Int("products", res.Products),
		zap.Int("vendors", res.Vendors),
		zap.Int("orders", res.Orders),
		zap.Int("routes", res.Routes))
	return nil
}
