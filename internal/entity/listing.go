package entity

// ListingRecord is one private-seller listing with at least one contact.
// JSON keys follow the public API contract.
type ListingRecord struct {
	ID        *string  `json:"id"`
	Title     string   `json:"titulo"`
	Price     string   `json:"precio"`
	Location  string   `json:"ubicacion"`
	URL       string   `json:"url"`
	Phones    []string `json:"telefonos"`
	Emails    []string `json:"emails"`
	ScrapedAt string   `json:"fecha_scraping"`
}
