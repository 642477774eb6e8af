package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mortgage-calculator/config"
	httpLayer "mortgage-calculator/http"
	"mortgage-calculator/repository"
	"mortgage-calculator/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	level, _ := config.ParseLogLevel(cfg.LogLevel)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cache, closeCache, err := newCache(cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize cache", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeCache()

	calcRepo, closeRepo, err := newCalculationRepository(cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize calculation storage", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeRepo()

	mortgageService := service.NewMortgageService(calcRepo, cache, logger)
	mortgageHandler := httpLayer.NewMortgageHandler(mortgageService)

	rateLimiter, err := httpLayer.NewRateLimiter(cfg.RateLimit)
	if err != nil {
		logger.Error("Failed to initialize rate limiter", slog.String("error", err.Error()))
		os.Exit(1)
	}

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      httpLayer.NewRouter(mortgageHandler, rateLimiter, logger),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		logger.Error("Error starting server", slog.String("error", err.Error()))
		return
	case <-quit:
		logger.Info("Shutting down server...")
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Error during server shutdown", slog.String("error", err.Error()))
	}

	logger.Info("Server exited")
}

func newCache(cfg *config.Config, logger *slog.Logger) (repository.CacheRepository, func(), error) {
	if cfg.CacheBackend != config.BackendRedis {
		return repository.NewMemoryCache(cfg.CacheMaxEntries, cfg.CacheTTL), func() {}, nil
	}

	cache := repository.NewRedisCache(cfg.RedisAddr, cfg.CacheTTL)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := cache.Ping(ctx); err != nil {
		cache.Close()
		return nil, nil, err
	}

	logger.Info("Using redis cache", slog.String("addr", cfg.RedisAddr))
	return cache, func() {
		if err := cache.Close(); err != nil {
			logger.Error("Error closing redis client", slog.String("error", err.Error()))
		}
	}, nil
}

func newCalculationRepository(cfg *config.Config, logger *slog.Logger) (repository.CalculationRepository, func(), error) {
	if cfg.StorageBackend != config.BackendSQLite {
		return repository.NewCalculationRepositoryMemory(), func() {}, nil
	}

	repo, err := repository.NewCalculationRepositorySQLite(cfg.SQLiteDBPath)
	if err != nil {
		return nil, nil, err
	}

	logger.Info("Using sqlite calculation storage", slog.String("path", cfg.SQLiteDBPath))
	return repo, func() {
		if err := repo.Close(); err != nil {
			logger.Error("Error closing sqlite database", slog.String("error", err.Error()))
		}
	}, nil
}
