package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the briefing service.
type Metrics struct {
	PageRenders    *prometheus.CounterVec // labels: format={html,json,terminal}
	Selections     *prometheus.CounterVec // labels: outcome={accepted,rejected}
	CountryViews   *prometheus.CounterVec // labels: country
	RenderDuration prometheus.Histogram
	RegistrySize   prometheus.Gauge

	// Chart figure cache.
	ChartCache *prometheus.CounterVec // labels: result={hit,miss}

	// Briefing publishing.
	MessagesPublished prometheus.Counter
	PublishErrors     prometheus.Counter
	PublishDuration   prometheus.Histogram
}

// NewMetrics creates and registers all service metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.PageRenders,
		m.RenderDuration,
		m.Selections,
		m.CountryViews,
		m.RegistrySize,
		m.ChartCache,
		m.MessagesPublished,
		m.PublishErrors,
		m.PublishDuration,
	)
	return m
}

// NewMetricsForTesting creates unregistered Metrics to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		PageRenders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "latam_briefing",
			Name:      "page_renders_total",
			Help:      "Briefing renders by output format.",
		}, []string{"format"}),
		RenderDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "latam_briefing",
			Name:      "render_duration_seconds",
			Help:      "Duration of a full dashboard render.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5},
		}),
		Selections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "latam_briefing",
			Name:      "selections_total",
			Help:      "Country selection attempts by outcome.",
		}, []string{"outcome"}),
		CountryViews: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "latam_briefing",
			Name:      "country_views_total",
			Help:      "Country detail projections served, by country.",
		}, []string{"country"}),
		RegistrySize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "latam_briefing",
			Name:      "registry_countries",
			Help:      "Number of countries loaded into the registry.",
		}),
		ChartCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "latam_briefing",
			Name:      "chart_cache_total",
			Help:      "Country chart cache lookups by result.",
		}, []string{"result"}),
		MessagesPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "latam_briefing",
			Name:      "messages_published_total",
			Help:      "Total country briefings written to the publish topic.",
		}),
		PublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "latam_briefing",
			Name:      "publish_errors_total",
			Help:      "Total failed publish runs.",
		}),
		PublishDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "latam_briefing",
			Name:      "publish_duration_seconds",
			Help:      "Duration of a complete publish run.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}),
	}
}
