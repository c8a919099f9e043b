package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/user/contacts-scraper/internal/adapter/httpfetch"
	redis_adapter "github.com/user/contacts-scraper/internal/adapter/redis"
	"github.com/user/contacts-scraper/internal/delivery/http/handler"
	"github.com/user/contacts-scraper/internal/delivery/http/router"
	"github.com/user/contacts-scraper/internal/repository"
	"github.com/user/contacts-scraper/internal/usecase"
	"github.com/user/contacts-scraper/pkg/config"
	"github.com/user/contacts-scraper/pkg/logger"
	"github.com/user/contacts-scraper/pkg/metrics"
	"go.uber.org/zap"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	// --- Logger ---
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	// --- Metrics ---
	m := metrics.New(prometheus.DefaultRegisterer)

	// --- Page fetching ---
	var fetcher repository.PageFetcher = httpfetch.NewHTTPFetcher(nil, httpfetch.Options{
		UserAgent:      cfg.UserAgent,
		AcceptLanguage: cfg.AcceptLanguage,
		Timeout:        cfg.RequestTimeout(),
	})

	if cfg.CacheEnabled() {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer rdb.Close()

		cache := redis_adapter.NewPageCache(rdb)
		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := cache.Ping(pingCtx)
		cancel()
		if err != nil {
			log.Fatal("unable to connect to redis", zap.String("addr", cfg.RedisAddr), zap.Error(err))
		}
		fetcher = httpfetch.NewCachedFetcher(fetcher, cache, cfg.CacheTTL(), m, log)
		log.Info("page cache enabled", zap.String("addr", cfg.RedisAddr), zap.Duration("ttl", cfg.CacheTTL()))
	}

	// --- Use Cases ---
	details := usecase.NewDetailScraper(fetcher, m, log)
	listings := usecase.NewListingScraper(fetcher, details, usecase.ListingOptions{Delay: cfg.DetailDelay()}, m, log)
	finder := usecase.NewContactsFinder(listings, log)

	// --- HTTP Server ---
	apiHandler := handler.NewHandler(finder, cfg.ServiceName, log)
	httpRouter := router.New(apiHandler, m, prometheus.DefaultGatherer, log)

	// A single request paces its detail fetches, so responses can take minutes.
	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      httpRouter,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 15 * time.Minute,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("could not listen on port", zap.String("port", cfg.ServerPort), zap.Error(err))
		}
	}()

	log.Info("server started", zap.String("port", cfg.ServerPort), zap.String("service", cfg.ServiceName))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}

	log.Info("server exiting")
}
