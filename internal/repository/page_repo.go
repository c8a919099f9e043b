package repository

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrUnexpectedStatus is returned when the remote site answers with a non-2xx status.
	ErrUnexpectedStatus = errors.New("unexpected HTTP status")
	// ErrFetchTimeout is returned when a page could not be fetched in time.
	ErrFetchTimeout = errors.New("page fetch timed out")
	// ErrCacheMiss is returned by a PageCache when no entry exists for a URL.
	ErrCacheMiss = errors.New("page not cached")
)

// PageFetcher retrieves the HTML of a remote page.
type PageFetcher interface {
	// Fetch returns the decoded body of url as valid UTF-8.
	Fetch(ctx context.Context, url string) (string, error)
}

// PageCache stores recently fetched pages for a short time.
type PageCache interface {
	// Get returns the cached body for url, or ErrCacheMiss.
	Get(ctx context.Context, url string) (string, error)
	// Set stores body for url with the given expiry.
	Set(ctx context.Context, url, body string, expiry time.Duration) error
}
