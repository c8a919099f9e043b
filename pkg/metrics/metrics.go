package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus collectors for the service.
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	FetchDuration       *prometheus.HistogramVec
	DetailFetchesTotal  *prometheus.CounterVec
	CandidatesTotal     *prometheus.CounterVec
	CacheLookupsTotal   *prometheus.CounterVec
}

// New registers the collectors on reg. Pass prometheus.DefaultRegisterer in
// main and a fresh registry in tests.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests.",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests.",
				Buckets: []float64{0.1, 1, 5, 15, 30, 60, 120},
			},
			[]string{"method", "path", "status"},
		),
		FetchDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "scraper_fetch_duration_seconds",
				Help:    "Duration of outbound page fetches.",
				Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 25},
			},
			[]string{"kind"}, // search, detail
		),
		DetailFetchesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "scraper_detail_fetches_total",
				Help: "Detail page fetches by outcome.",
			},
			[]string{"outcome"}, // success, failure
		),
		CandidatesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "scraper_candidates_total",
				Help: "Search result candidates by outcome.",
			},
			[]string{"outcome"}, // accepted, agency, no_url, no_contacts
		),
		CacheLookupsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "scraper_cache_lookups_total",
				Help: "Page cache lookups by result.",
			},
			[]string{"result"}, // hit, miss, error
		),
	}
}

func (m *Metrics) IncCandidate(outcome string) {
	m.CandidatesTotal.WithLabelValues(outcome).Inc()
}

func (m *Metrics) IncDetailFetch(outcome string) {
	m.DetailFetchesTotal.WithLabelValues(outcome).Inc()
}

func (m *Metrics) IncCacheLookup(result string) {
	m.CacheLookupsTotal.WithLabelValues(result).Inc()
}

func (m *Metrics) ObserveFetch(kind string, seconds float64) {
	m.FetchDuration.WithLabelValues(kind).Observe(seconds)
}
