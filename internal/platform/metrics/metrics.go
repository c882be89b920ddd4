// Package metrics define los colectores Prometheus del servicio.
package metrics

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcomes de una generación.
const (
	OutcomeRecipe = "recipe"
	OutcomeNone   = "none"
	OutcomeError  = "error"
)

type Metrics struct {
	Generations  *prometheus.CounterVec
	Scores       *prometheus.HistogramVec
	CacheLookups *prometheus.CounterVec
	HTTPRequests *prometheus.CounterVec

	registry *prometheus.Registry
}

// New registra los colectores en un registry propio (uno por router, así los tests
// pueden armar varios sin chocar con el registry global).
func New() (*Metrics, error) {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		Generations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "petplates_generations_total",
			Help: "Recipe generation requests partitioned by species and outcome.",
		}, []string{"species", "outcome"}),
		Scores: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "petplates_recipe_score",
			Help:    "Composite score of returned recipes.",
			Buckets: prometheus.LinearBuckets(10, 10, 10),
		}, []string{"species"}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "petplates_suggestion_cache_lookups_total",
			Help: "Suggestion cache lookups partitioned by result (hit, miss).",
		}, []string{"result"}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "petplates_http_requests_total",
			Help: "HTTP requests partitioned by method, route and status code.",
		}, []string{"method", "route", "status"}),
		registry: reg,
	}

	for _, c := range []prometheus.Collector{
		m.Generations, m.Scores, m.CacheLookups, m.HTTPRequests,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("register metrics: %w", err)
		}
	}
	return m, nil
}

func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Los helpers aceptan receptor nil para que los servicios funcionen sin métricas.

func (m *Metrics) ObserveGeneration(species, outcome string, score int) {
	if m == nil {
		return
	}
	m.Generations.WithLabelValues(species, outcome).Inc()
	if outcome == OutcomeRecipe {
		m.Scores.WithLabelValues(species).Observe(float64(score))
	}
}

func (m *Metrics) ObserveCache(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.CacheLookups.WithLabelValues(result).Inc()
}

func (m *Metrics) ObserveRequest(method, route string, status int) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}
