package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/user/contacts-scraper/internal/entity"
	"github.com/user/contacts-scraper/internal/extractor"
	"github.com/user/contacts-scraper/internal/repository"
	"github.com/user/contacts-scraper/pkg/metrics"
	"go.uber.org/zap"
)

// nonTextSelector matches elements whose contents are not visible page text.
const nonTextSelector = "script, style, noscript, template"

// contactSelector narrows the page to elements that look like contact details.
const contactSelector = `.contact-info, .phone, .email, [class*="contact"], [class*="phone"], [class*="email"]`

// DetailScraper extracts contact details from a single listing page.
type DetailScraper interface {
	// Scrape never fails: any fetch or parse problem yields an empty bundle.
	Scrape(ctx context.Context, url string) entity.ContactBundle
}

type detailUseCase struct {
	fetcher repository.PageFetcher
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewDetailScraper creates a new instance of the detail page use case.
func NewDetailScraper(fetcher repository.PageFetcher, m *metrics.Metrics, l *zap.Logger) DetailScraper {
	return &detailUseCase{
		fetcher: fetcher,
		metrics: m,
		logger:  l,
	}
}

func (uc *detailUseCase) Scrape(ctx context.Context, url string) entity.ContactBundle {
	startTime := time.Now()
	html, err := uc.fetcher.Fetch(ctx, url)
	uc.metrics.ObserveFetch("detail", time.Since(startTime).Seconds())
	if err != nil {
		uc.metrics.IncDetailFetch("failure")
		uc.logger.Warn("failed to fetch listing detail", zap.String("url", url), zap.Error(err))
		return entity.EmptyContacts()
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		uc.metrics.IncDetailFetch("failure")
		uc.logger.Warn("failed to parse listing detail", zap.String("url", url), zap.Error(err))
		return entity.EmptyContacts()
	}

	uc.metrics.IncDetailFetch("success")
	doc.Find(nonTextSelector).Remove()
	return extractContacts(doc.Selection)
}

// extractContacts runs both extractors over the whole page and then over each
// contact-like element, unioning the results in first-seen order.
func extractContacts(page *goquery.Selection) entity.ContactBundle {
	pageText := page.Text()
	phones := extractor.Phones(pageText)
	emails := extractor.Emails(pageText)

	var extraPhones, extraEmails [][]string
	page.Find(contactSelector).Each(func(_ int, s *goquery.Selection) {
		text := s.Text()
		extraPhones = append(extraPhones, extractor.Phones(text))
		extraEmails = append(extraEmails, extractor.Emails(text))
	})

	return entity.ContactBundle{
		Phones: extractor.Merge(phones, extraPhones...),
		Emails: extractor.Merge(emails, extraEmails...),
	}
}
