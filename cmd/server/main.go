package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"fuelstation/internal/config"
	"fuelstation/internal/db"
	httpapi "fuelstation/internal/http"
	"fuelstation/internal/logging"
	"fuelstation/internal/repository"
	"fuelstation/internal/service"

	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("config error: %v", err)
	}
	logger := logging.New(cfg.LogLevel)

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL, db.PoolOptions{
		MaxConns:     cfg.DBMaxConns,
		TraceQueries: cfg.DBTraceQueries,
	}, logger)
	if err != nil {
		logger.Fatalf("database error: %v", err)
	}
	defer pool.Close()

	if cfg.MigrateOnStart {
		if err := db.RunMigrations(ctx, pool, logger); err != nil {
			logger.Fatalf("migration error: %v", err)
		}
	} else {
		logger.Info("MIGRATE_ON_START disabled, using the existing schema as is")
	}

	repo := repository.New(pool)
	svc := service.New(service.Deps{
		Store:       repo,
		Ledger:      repo,
		Prices:      repo,
		Staff:       repo,
		Consumables: repo,
		Logger:      logger,
	}, service.Options{
		DefaultFuelType: cfg.DefaultFuelType,
		DialogTTL:       cfg.DialogTTL,
	})
	handler := httpapi.NewHandler(svc, logger)
	router := httpapi.NewRouter(handler, logger, httpapi.RouterOptions{MetricsEnabled: cfg.MetricsEnabled})

	server := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		logger.WithField("addr", server.Addr).Info("fuelstation listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("graceful shutdown failed: %v", err)
		if closeErr := server.Close(); closeErr != nil {
			logger.Errorf("force close failed: %v", closeErr)
		}
	}
}
