package httpfetch

import (
	"context"
	"errors"
	"time"

	"github.com/user/contacts-scraper/internal/repository"
	"github.com/user/contacts-scraper/pkg/metrics"
	"go.uber.org/zap"
)

// CachedFetcher serves pages from a PageCache and falls back to the wrapped
// fetcher. Cache failures never fail a fetch.
type CachedFetcher struct {
	next    repository.PageFetcher
	cache   repository.PageCache
	ttl     time.Duration
	metrics *metrics.Metrics
	logger  *zap.Logger
}

func NewCachedFetcher(next repository.PageFetcher, cache repository.PageCache, ttl time.Duration, m *metrics.Metrics, l *zap.Logger) *CachedFetcher {
	return &CachedFetcher{
		next:    next,
		cache:   cache,
		ttl:     ttl,
		metrics: m,
		logger:  l,
	}
}

func (f *CachedFetcher) Fetch(ctx context.Context, url string) (string, error) {
	body, err := f.cache.Get(ctx, url)
	switch {
	case err == nil:
		f.metrics.IncCacheLookup("hit")
		f.logger.Debug("page served from cache", zap.String("url", url))
		return body, nil
	case errors.Is(err, repository.ErrCacheMiss):
		f.metrics.IncCacheLookup("miss")
	default:
		f.metrics.IncCacheLookup("error")
		f.logger.Warn("page cache lookup failed", zap.String("url", url), zap.Error(err))
	}

	body, err = f.next.Fetch(ctx, url)
	if err != nil {
		return "", err
	}

	if err := f.cache.Set(ctx, url, body, f.ttl); err != nil {
		f.logger.Warn("failed to cache page", zap.String("url", url), zap.Error(err))
	}
	return body, nil
}
