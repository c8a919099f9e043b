package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/user/contacts-scraper/internal/delivery/http/response"
	"github.com/user/contacts-scraper/internal/entity"
	"github.com/user/contacts-scraper/internal/usecase"
	"go.uber.org/zap"
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

type Handler struct {
	finder      usecase.ContactsFinder
	serviceName string
	now         func() time.Time
	logger      *zap.Logger
}

func NewHandler(finder usecase.ContactsFinder, serviceName string, l *zap.Logger) *Handler {
	return &Handler{
		finder:      finder,
		serviceName: serviceName,
		now:         time.Now,
		logger:      l,
	}
}

func (h *Handler) HandleHealthCheck(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, response.HealthResponse{
		Status:    "ok",
		Timestamp: h.timestamp(),
		Service:   h.serviceName,
	})
}

func (h *Handler) HandleListCities(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, response.CitiesResponse{
		Success: true,
		Cities:  entity.CityKeys(),
	})
}

// HandleGetContacts scrapes one results page of the requested city.
// Every failure, including malformed page/limit values, is a 500 envelope.
func (h *Handler) HandleGetContacts(w http.ResponseWriter, r *http.Request) {
	city := chi.URLParam(r, "city")

	page, err := intQuery(r, "page", defaultPage)
	if err != nil {
		h.writeJSONError(w, err)
		return
	}
	limit, err := intQuery(r, "limit", defaultLimit)
	if err != nil {
		h.writeJSONError(w, err)
		return
	}

	result, err := h.finder.FindByCity(r.Context(), city, page, limit)
	if err != nil {
		h.logger.Error("failed to scrape contacts", zap.String("city", city), zap.Int("page", page), zap.Error(err))
		h.writeJSONError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, response.ContactsResponse{
		Success:   true,
		Timestamp: h.timestamp(),
		Location:  result.Location,
		Page:      result.Page,
		Count:     len(result.Records),
		Data:      result.Records,
	})
}

func intQuery(r *http.Request, key string, fallback int) (int, error) {
	query := r.URL.Query()
	if !query.Has(key) {
		return fallback, nil
	}
	return strconv.Atoi(query.Get(key))
}

func (h *Handler) timestamp() string {
	return h.now().Format(time.RFC3339)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}

func (h *Handler) writeJSONError(w http.ResponseWriter, err error) {
	h.writeJSON(w, http.StatusInternalServerError, response.ErrorResponse{
		Success:   false,
		Error:     err.Error(),
		Timestamp: h.timestamp(),
	})
}
