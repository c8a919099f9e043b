package usecase

import (
	"context"
	"strings"
	"unicode"

	"github.com/user/contacts-scraper/internal/entity"
	"go.uber.org/zap"
)

// CityContacts is the result of scraping one results page of a city.
type CityContacts struct {
	Location string
	Page     int
	Records  []entity.ListingRecord
}

// ContactsFinder resolves a city name and scrapes its private-seller listings.
type ContactsFinder interface {
	FindByCity(ctx context.Context, city string, page, limit int) (*CityContacts, error)
}

type contactsUseCase struct {
	listings ListingScraper
	logger   *zap.Logger
}

// NewContactsFinder creates a new instance of the city contacts use case.
func NewContactsFinder(listings ListingScraper, l *zap.Logger) ContactsFinder {
	return &contactsUseCase{listings: listings, logger: l}
}

// FindByCity never rejects a city name: unknown names scrape the default city
// while Location still echoes the requested name.
func (uc *contactsUseCase) FindByCity(ctx context.Context, city string, page, limit int) (*CityContacts, error) {
	key := strings.ToLower(city)
	target, found := entity.LookupCity(key)
	if !found {
		uc.logger.Info("unknown city, using default", zap.String("city", key), zap.String("default", target.Key))
	}

	location := capitalize(key)
	uc.logger.Info("scraping contacts", zap.String("location", location), zap.Int("page", page))

	records, err := uc.listings.Scrape(ctx, target.SearchURL, page, limit)
	if err != nil {
		return nil, err
	}

	return &CityContacts{
		Location: location,
		Page:     page,
		Records:  records,
	}, nil
}

// capitalize upper-cases the first rune and lower-cases the rest.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(strings.ToLower(s))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
