package response

import "github.com/user/contacts-scraper/internal/entity"

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Service   string `json:"service"`
}

type CitiesResponse struct {
	Success bool     `json:"success"`
	Cities  []string `json:"cities"`
}

// ContactsResponse is the success envelope of GET /api/contacts/{city}.
type ContactsResponse struct {
	Success   bool                   `json:"success"`
	Timestamp string                 `json:"timestamp"`
	Location  string                 `json:"location"`
	Page      int                    `json:"page"`
	Count     int                    `json:"count"`
	Data      []entity.ListingRecord `json:"data"`
}

// ErrorResponse is returned with a 500 status whenever a scrape fails.
type ErrorResponse struct {
	Success   bool   `json:"success"`
	Error     string `json:"error"`
	Timestamp string `json:"timestamp"`
}
