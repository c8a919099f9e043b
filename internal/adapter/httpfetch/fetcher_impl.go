package httpfetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/user/contacts-scraper/internal/repository"
	"golang.org/x/net/html/charset"
)

// maxBodyBytes caps how much of a page is read.
const maxBodyBytes = 8 << 20

// Options configures the browser-like request headers and the per-request timeout.
type Options struct {
	UserAgent      string
	AcceptLanguage string
	Timeout        time.Duration
}

// HTTPFetcher fetches pages with a fixed browser-like header set.
type HTTPFetcher struct {
	client  *http.Client
	headers http.Header
}

// NewHTTPFetcher creates a fetcher. A nil client gets a fresh one with opts.Timeout.
func NewHTTPFetcher(client *http.Client, opts Options) *HTTPFetcher {
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}

	headers := http.Header{}
	headers.Set("User-Agent", opts.UserAgent)
	headers.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
	headers.Set("Accept-Language", opts.AcceptLanguage)
	headers.Set("Connection", "keep-alive")

	return &HTTPFetcher{client: client, headers: headers}
}

// Fetch performs a single GET and returns the body decoded to UTF-8.
// Undecodable bytes are dropped rather than treated as an error.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("build request for %s: %w", url, err)
	}
	req.Header = f.headers.Clone()

	resp, err := f.client.Do(req)
	if err != nil {
		if isTimeout(err) {
			return "", fmt.Errorf("%w: %s: %v", repository.ErrFetchTimeout, url, err)
		}
		return "", fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: %d %s for %s", repository.ErrUnexpectedStatus,
			resp.StatusCode, http.StatusText(resp.StatusCode), url)
	}

	var body io.Reader = io.LimitReader(resp.Body, maxBodyBytes)
	if decoded, err := charset.NewReader(body, resp.Header.Get("Content-Type")); err == nil {
		body = decoded
	}

	raw, err := io.ReadAll(body)
	if err != nil {
		if isTimeout(err) {
			return "", fmt.Errorf("%w: %s: %v", repository.ErrFetchTimeout, url, err)
		}
		return "", fmt.Errorf("read body of %s: %w", url, err)
	}

	text := strings.ToValidUTF8(string(raw), "")
	return strings.ReplaceAll(text, string(utf8.RuneError), ""), nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
