package metrics

import (
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/common/expfmt"
)

const namespace = "conecta"

// Metrics holds the instruments updated by the social network.
// Each instance registers on its own registry so several networks can coexist.
type Metrics struct {
	Registry *prometheus.Registry

	ProfilesCreated     prometheus.Counter
	FriendshipsCreated  prometheus.Counter
	Rejections          *prometheus.CounterVec
	SuggestionQueries   prometheus.Counter
	SuggestionsReturned prometheus.Histogram
	RegistryGrowths     prometheus.Counter
	IndexGrowths        prometheus.Counter
	Components          prometheus.Gauge
	RegisteredUsers     prometheus.Gauge
}

// New creates and registers the instruments on a fresh registry
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		ProfilesCreated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "profiles_created_total",
			Help:      "Number of profiles created",
		}),
		FriendshipsCreated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "friendships_created_total",
			Help:      "Number of friendships established (including quality updates)",
		}),
		Rejections: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rejections_total",
			Help:      "Writes rejected by validation, by reason",
		}, []string{"reason"}),
		SuggestionQueries: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "suggestion_queries_total",
			Help:      "Number of suggestion queries served",
		}),
		SuggestionsReturned: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "suggestions_returned",
			Help:      "Suggestions returned per query",
			Buckets:   []float64{0, 1, 2, 5, 10, 25, 50, 100},
		}),
		RegistryGrowths: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "registry_growths_total",
			Help:      "Times the profile registry doubled its buckets",
		}),
		IndexGrowths: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "index_growths_total",
			Help:      "Times the connectivity index doubled its capacity",
		}),
		Components: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "components",
			Help:      "Current number of connected components",
		}),
		RegisteredUsers: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "registered_users",
			Help:      "Users registered in the connectivity index",
		}),
	}
}

// WriteText writes every metric in the Prometheus text exposition format
func (m *Metrics) WriteText(w io.Writer) error {
	families, err := m.Registry.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
