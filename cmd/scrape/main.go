package main

import (
	"context"
	"encoding/json"
	"flag"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/user/contacts-scraper/internal/adapter/httpfetch"
	"github.com/user/contacts-scraper/internal/entity"
	"github.com/user/contacts-scraper/internal/usecase"
	"github.com/user/contacts-scraper/pkg/config"
	"github.com/user/contacts-scraper/pkg/logger"
	"github.com/user/contacts-scraper/pkg/metrics"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	city := flag.String("city", entity.DefaultCityKey, "City key to scrape (see /api/cities)")
	page := flag.Int("page", 1, "Results page number")
	limit := flag.Int("limit", 10, "Maximum number of records")
	out := flag.String("out", "", "Output JSON file (default stdout)")
	delay := flag.Duration("delay", cfg.DetailDelay(), "Pause after each detail page request")
	flag.Parse()

	// Logs go to stderr so stdout stays valid JSON.
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Metrics are only collected in-process for a one-shot run.
	m := metrics.New(prometheus.NewRegistry())

	fetcher := httpfetch.NewHTTPFetcher(nil, httpfetch.Options{
		UserAgent:      cfg.UserAgent,
		AcceptLanguage: cfg.AcceptLanguage,
		Timeout:        cfg.RequestTimeout(),
	})
	details := usecase.NewDetailScraper(fetcher, m, log)
	listings := usecase.NewListingScraper(fetcher, details, usecase.ListingOptions{Delay: *delay}, m, log)
	finder := usecase.NewContactsFinder(listings, log)

	result, err := finder.FindByCity(ctx, *city, *page, *limit)
	if err != nil {
		log.Fatal("scrape failed", zap.String("city", *city), zap.Int("page", *page), zap.Error(err))
	}

	var w io.Writer = os.Stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			log.Fatal("could not create output file", zap.String("path", *out), zap.Error(err))
		}
		defer f.Close()
		w = f
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result.Records); err != nil {
		log.Fatal("could not write output", zap.Error(err))
	}

	log.Info("scrape finished",
		zap.String("location", result.Location),
		zap.Int("page", result.Page),
		zap.Int("count", len(result.Records)),
	)
}
