package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/contacts-scraper/internal/delivery/http/response"
	"github.com/user/contacts-scraper/internal/entity"
	"github.com/user/contacts-scraper/internal/usecase"
	"go.uber.org/zap"
)

type stubFinder struct {
	city   string
	page   int
	limit  int
	result *usecase.CityContacts
	err    error
}

func (s *stubFinder) FindByCity(ctx context.Context, city string, page, limit int) (*usecase.CityContacts, error) {
	s.city, s.page, s.limit = city, page, limit
	return s.result, s.err
}

func newTestRouter(finder usecase.ContactsFinder) http.Handler {
	h := NewHandler(finder, "Idealista Contacts Scraper API", zap.NewNop())
	h.now = func() time.Time { return time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC) }

	r := chi.NewRouter()
	r.Get("/health", h.HandleHealthCheck)
	r.Get("/api/cities", h.HandleListCities)
	r.Get("/api/contacts/{city}", h.HandleGetContacts)
	return r
}

func serve(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHealthCheck(t *testing.T) {
	rec := serve(t, newTestRouter(&stubFinder{}), "/health")
	require.Equal(t, http.StatusOK, rec.Code)

	var body response.HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, "2024-03-01T10:30:00Z", body.Timestamp)
	assert.Equal(t, "Idealista Contacts Scraper API", body.Service)
}

func TestListCities(t *testing.T) {
	rec := serve(t, newTestRouter(&stubFinder{}), "/api/cities")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body response.CitiesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, entity.CityKeys(), body.Cities)
}

func TestGetContactsDefaults(t *testing.T) {
	id := "111"
	finder := &stubFinder{result: &usecase.CityContacts{
		Location: "Valencia",
		Page:     1,
		Records: []entity.ListingRecord{{
			ID:        &id,
			Title:     "Piso en Ruzafa",
			URL:       "https://www.idealista.com/inmueble/111/",
			Phones:    []string{"+34612345678"},
			Emails:    []string{},
			ScrapedAt: "2024-03-01T10:30:00Z",
		}},
	}}

	rec := serve(t, newTestRouter(finder), "/api/contacts/valencia")
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, "valencia", finder.city)
	assert.Equal(t, 1, finder.page)
	assert.Equal(t, 10, finder.limit)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Valencia", body["location"])
	assert.Equal(t, float64(1), body["page"])
	assert.Equal(t, float64(1), body["count"])
	assert.Equal(t, "2024-03-01T10:30:00Z", body["timestamp"])

	data := body["data"].([]interface{})
	require.Len(t, data, 1)
	record := data[0].(map[string]interface{})
	for _, key := range []string{"id", "titulo", "precio", "ubicacion", "url", "telefonos", "emails", "fecha_scraping"} {
		assert.Contains(t, record, key)
	}
	assert.Equal(t, "111", record["id"])
}

func TestGetContactsPassesQueryParameters(t *testing.T) {
	finder := &stubFinder{result: &usecase.CityContacts{Location: "Bilbao", Page: 3, Records: []entity.ListingRecord{}}}

	rec := serve(t, newTestRouter(finder), "/api/contacts/Bilbao?page=3&limit=4")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Bilbao", finder.city)
	assert.Equal(t, 3, finder.page)
	assert.Equal(t, 4, finder.limit)

	var body response.ContactsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 0, body.Count)
	assert.NotNil(t, body.Data)
}

func TestGetContactsScrapeFailure(t *testing.T) {
	finder := &stubFinder{err: errors.New("unexpected HTTP status: 403 Forbidden")}

	rec := serve(t, newTestRouter(finder), "/api/contacts/madrid")
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var body response.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "unexpected HTTP status: 403 Forbidden", body.Error)
	assert.Equal(t, "2024-03-01T10:30:00Z", body.Timestamp)
}

func TestGetContactsMalformedQuery(t *testing.T) {
	for _, target := range []string{
		"/api/contacts/madrid?page=abc",
		"/api/contacts/madrid?limit=1.5",
		"/api/contacts/madrid?page=",
	} {
		t.Run(target, func(t *testing.T) {
			finder := &stubFinder{}
			rec := serve(t, newTestRouter(finder), target)
			require.Equal(t, http.StatusInternalServerError, rec.Code)

			var body response.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.False(t, body.Success)
			assert.Contains(t, body.Error, "invalid syntax")
			assert.Empty(t, finder.city, "scrape must not start")
		})
	}
}
