package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/user/contacts-scraper/internal/repository"
	"github.com/user/contacts-scraper/pkg/utils"
)

const pageKeyPrefix = "page:"

// PageCacheImpl provides a concrete implementation for the PageCache interface using Redis.
type PageCacheImpl struct {
	client *redis.Client
}

// NewPageCache creates a new instance of PageCacheImpl.
func NewPageCache(client *redis.Client) *PageCacheImpl {
	return &PageCacheImpl{client: client}
}

// generateKey hashes the URL so arbitrary query strings stay safe as keys.
func (r *PageCacheImpl) generateKey(url string) string {
	return fmt.Sprintf("%s%s", pageKeyPrefix, utils.HashURL(url))
}

// Get returns the cached body of url, or repository.ErrCacheMiss.
func (r *PageCacheImpl) Get(ctx context.Context, url string) (string, error) {
	body, err := r.client.Get(ctx, r.generateKey(url)).Result()
	if errors.Is(err, redis.Nil) {
		return "", repository.ErrCacheMiss
	}
	if err != nil {
		return "", err
	}
	return body, nil
}

// Set stores body under url. SET with an expiry is atomic.
func (r *PageCacheImpl) Set(ctx context.Context, url, body string, expiry time.Duration) error {
	return r.client.Set(ctx, r.generateKey(url), body, expiry).Err()
}

// Ping checks the connection to Redis.
func (r *PageCacheImpl) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
