package usecase

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"
	"github.com/user/contacts-scraper/internal/entity"
	"github.com/user/contacts-scraper/internal/repository"
	"github.com/user/contacts-scraper/pkg/metrics"
	"github.com/user/contacts-scraper/pkg/utils"
	"go.uber.org/zap"
	"golang.org/x/net/html"
)

const (
	articleSelector   = "article.item"
	extraInfoSelector = ".item-extra-info, .item-subtitle"
	linkSelector      = "a.item-link"
	priceSelector     = ".item-price span, span.item-price"
	locationSelector  = ".item-location"

	// DefaultDetailDelay is the pause after every detail page request.
	DefaultDetailDelay = 2 * time.Second
)

var (
	agencyPattern    = regexp.MustCompile(`(?i)agencia|inmobiliaria`)
	listingIDPattern = regexp.MustCompile(`/inmueble/(\d+)/`)
)

// ListingScraper turns one search-results page into listing records with contacts.
type ListingScraper interface {
	// Scrape visits at most every candidate on the page and returns up to
	// limit records. Only a failure on the search page itself is returned.
	Scrape(ctx context.Context, baseURL string, page, limit int) ([]entity.ListingRecord, error)
}

// ListingOptions tunes pacing and time for the listing scraper.
type ListingOptions struct {
	// Delay is waited after each detail page request. Zero disables pacing.
	Delay time.Duration
	// Now stamps each record; defaults to time.Now.
	Now func() time.Time
	// Sleep waits d or until ctx ends; defaults to a timer-based wait.
	Sleep func(ctx context.Context, d time.Duration) error
}

type listingUseCase struct {
	fetcher repository.PageFetcher
	details DetailScraper
	delay   time.Duration
	now     func() time.Time
	sleep   func(ctx context.Context, d time.Duration) error
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewListingScraper creates a new instance of the search page use case.
func NewListingScraper(
	fetcher repository.PageFetcher,
	details DetailScraper,
	opts ListingOptions,
	m *metrics.Metrics,
	l *zap.Logger,
) ListingScraper {
	uc := &listingUseCase{
		fetcher: fetcher,
		details: details,
		delay:   opts.Delay,
		now:     opts.Now,
		sleep:   opts.Sleep,
		metrics: m,
		logger:  l,
	}
	if uc.now == nil {
		uc.now = time.Now
	}
	if uc.sleep == nil {
		uc.sleep = sleepContext
	}
	return uc
}

// BuildSearchURL returns the URL of the given 1-based results page.
func BuildSearchURL(baseURL string, page int) string {
	if page <= 1 {
		return baseURL
	}
	return fmt.Sprintf("%spagina-%d.htm", baseURL, page)
}

func (uc *listingUseCase) Scrape(ctx context.Context, baseURL string, page, limit int) ([]entity.ListingRecord, error) {
	logger := uc.logger.With(zap.String("scrape_id", uuid.NewString()))
	searchURL := BuildSearchURL(baseURL, page)

	siteRoot, err := utils.SiteRoot(searchURL)
	if err != nil {
		return nil, fmt.Errorf("invalid search url: %w", err)
	}

	logger.Info("fetching search page", zap.String("url", searchURL), zap.Int("limit", limit))
	startTime := time.Now()
	body, err := uc.fetcher.Fetch(ctx, searchURL)
	uc.metrics.ObserveFetch("search", time.Since(startTime).Seconds())
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse search page %s: %w", searchURL, err)
	}

	records := []entity.ListingRecord{}
	articles := doc.Find(articleSelector)
	for i := range articles.Nodes {
		if len(records) >= limit {
			break
		}
		article := articles.Eq(i)

		if isAgency(article) {
			uc.metrics.IncCandidate("agency")
			logger.Debug("skipping agency listing", zap.Int("position", i))
			continue
		}

		link := article.Find(linkSelector).First()
		listingURL, ok := resolveListingURL(siteRoot, link)
		if !ok {
			uc.metrics.IncCandidate("no_url")
			logger.Debug("skipping listing without link", zap.Int("position", i))
			continue
		}

		id := listingID(listingURL)
		logger.Info("scraping contacts for listing", zap.String("url", listingURL), zap.Stringp("id", id))
		contacts := uc.details.Scrape(ctx, listingURL)

		if contacts.IsEmpty() {
			uc.metrics.IncCandidate("no_contacts")
		} else {
			uc.metrics.IncCandidate("accepted")
			records = append(records, entity.ListingRecord{
				ID:        id,
				Title:     strippedText(link, ""),
				Price:     strippedText(article.Find(priceSelector).First(), ""),
				Location:  strippedText(article.Find(locationSelector).First(), " "),
				URL:       listingURL,
				Phones:    contacts.Phones,
				Emails:    contacts.Emails,
				ScrapedAt: uc.now().Format(time.RFC3339),
			})
		}

		if err := uc.sleep(ctx, uc.delay); err != nil {
			return nil, fmt.Errorf("scrape of %s interrupted: %w", searchURL, err)
		}
	}

	logger.Info("found listings with contacts", zap.Int("count", len(records)))
	return records, nil
}

func isAgency(article *goquery.Selection) bool {
	extra := article.Find(extraInfoSelector).First()
	if extra.Length() == 0 {
		return false
	}
	return agencyPattern.MatchString(strippedText(extra, ""))
}

// resolveListingURL makes the listing link absolute against the site root.
func resolveListingURL(siteRoot *url.URL, link *goquery.Selection) (string, bool) {
	href, exists := link.Attr("href")
	if !exists || href == "" {
		return "", false
	}
	if strings.HasPrefix(href, "http") {
		return href, true
	}
	abs, err := utils.ToAbsoluteURL(siteRoot, href)
	if err != nil {
		return "", false
	}
	return abs, true
}

func listingID(listingURL string) *string {
	m := listingIDPattern.FindStringSubmatch(listingURL)
	if m == nil {
		return nil
	}
	return &m[1]
}

// strippedText joins the trimmed, non-empty text nodes under the first node
// of sel with sep.
func strippedText(sel *goquery.Selection, sep string) string {
	if sel.Length() == 0 {
		return ""
	}
	var parts []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if t := strings.TrimSpace(n.Data); t != "" {
				parts = append(parts, t)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(sel.Nodes[0])
	return strings.Join(parts, sep)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
