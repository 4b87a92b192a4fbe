package metrics

import "github.com/prometheus/client_golang/prometheus"

// Ingestion outcomes recorded by the point-creation flow.
const (
	OutcomeCreated   = "created"
	OutcomeForced    = "forced"
	OutcomeDuplicate = "duplicate"
	OutcomeInvalid   = "invalid"
	OutcomeError     = "error"
)

// Ingestion holds domain counters for donation point ingestion and listing.
// A nil *Ingestion is valid and records nothing.
type Ingestion struct {
	outcomes *prometheus.CounterVec
	cache    *prometheus.CounterVec
}

// NewIngestion creates the counters and registers them on reg.
func NewIngestion(reg prometheus.Registerer) (*Ingestion, error) {
	m := &Ingestion{
		outcomes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "donationpoints",
				Name:      "ingestions_total",
				Help:      "Donation point submissions by outcome.",
			},
			[]string{"outcome"},
		),
		cache: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "donationpoints",
				Name:      "list_cache_total",
				Help:      "List cache lookups by result.",
			},
			[]string{"result"},
		),
	}

	for _, c := range []prometheus.Collector{m.outcomes, m.cache} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Observe counts one submission outcome.
func (m *Ingestion) Observe(outcome string) {
	if m == nil {
		return
	}
	m.outcomes.WithLabelValues(outcome).Inc()
}

// CacheLookup counts one list cache hit or miss.
func (m *Ingestion) CacheLookup(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cache.WithLabelValues(result).Inc()
}
