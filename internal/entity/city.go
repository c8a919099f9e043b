package entity

import "strings"

// City maps a lowercase key to the search-results URL of its private-seller listings.
type City struct {
	Key       string
	SearchURL string
}

// DefaultCityKey is used when a requested city is not in the catalog.
const DefaultCityKey = "madrid"

var cities = []City{
	{Key: "madrid", SearchURL: "https://www.idealista.com/venta-viviendas/madrid-madrid/con-particulares/"},
	{Key: "barcelona", SearchURL: "https://www.idealista.com/venta-viviendas/barcelona-barcelona/con-particulares/"},
	{Key: "valladolid", SearchURL: "https://www.idealista.com/venta-viviendas/valladolid-valladolid/con-particulares/"},
	{Key: "valencia", SearchURL: "https://www.idealista.com/venta-viviendas/valencia-valencia/con-particulares/"},
	{Key: "sevilla", SearchURL: "https://www.idealista.com/venta-viviendas/sevilla-sevilla/con-particulares/"},
	{Key: "zaragoza", SearchURL: "https://www.idealista.com/venta-viviendas/zaragoza-zaragoza/con-particulares/"},
	{Key: "malaga", SearchURL: "https://www.idealista.com/venta-viviendas/malaga-malaga/con-particulares/"},
	{Key: "murcia", SearchURL: "https://www.idealista.com/venta-viviendas/murcia-murcia/con-particulares/"},
	{Key: "bilbao", SearchURL: "https://www.idealista.com/venta-viviendas/bilbao/con-particulares/"},
	{Key: "alicante", SearchURL: "https://www.idealista.com/venta-viviendas/alicante-alicante/con-particulares/"},
}

// CityKeys returns the configured city keys in catalog order.
func CityKeys() []string {
	keys := make([]string, 0, len(cities))
	for _, c := range cities {
		keys = append(keys, c.Key)
	}
	return keys
}

// LookupCity finds a city case-insensitively. Unknown names resolve to the
// default city and found is false.
func LookupCity(name string) (city City, found bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	var fallback City
	for _, c := range cities {
		if c.Key == key {
			return c, true
		}
		if c.Key == DefaultCityKey {
			fallback = c
		}
	}
	return fallback, false
}
