package registry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Label values used by Metrics.
const (
	kindDefinition = "definition"
	kindOperation  = "operation"

	outcomeOK    = "ok"
	outcomeError = "error"

	resultHit  = "hit"
	resultMiss = "miss"
)

// Metrics counts registry activity. A nil *Metrics records nothing.
type Metrics struct {
	compiles        *prometheus.CounterVec
	compileDuration *prometheus.HistogramVec
	cacheLookups    *prometheus.CounterVec
	resolves        *prometheus.CounterVec
}

// NewMetrics creates the registry collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		compiles: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "oasresolver_compiles_total",
				Help: "Total number of definitions compiled into resolution specs",
			},
			[]string{"kind", "outcome"},
		),
		compileDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "oasresolver_compile_duration_seconds",
				Help: "Duration of definition compilation",
			},
			[]string{"kind"},
		),
		cacheLookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "oasresolver_store_lookups_total",
				Help: "Total number of definition store lookups",
			},
			[]string{"kind", "result"},
		),
		resolves: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "oasresolver_resolves_total",
				Help: "Total number of resolve calls",
			},
			[]string{"kind", "outcome"},
		),
	}
	if reg == nil {
		return m, nil
	}
	for _, c := range m.collectors() {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{m.compiles, m.compileDuration, m.cacheLookups, m.resolves}
}

func outcome(err error) string {
	if err != nil {
		return outcomeError
	}
	return outcomeOK
}

func (m *Metrics) observeCompile(kind string, started time.Time, err error) {
	if m == nil {
		return
	}
	m.compiles.WithLabelValues(kind, outcome(err)).Inc()
	m.compileDuration.WithLabelValues(kind).Observe(time.Since(started).Seconds())
}

func (m *Metrics) observeLookup(kind string, hit bool) {
	if m == nil {
		return
	}
	result := resultMiss
	if hit {
		result = resultHit
	}
	m.cacheLookups.WithLabelValues(kind, result).Inc()
}

func (m *Metrics) observeResolve(kind string, err error) {
	if m == nil {
		return
	}
	m.resolves.WithLabelValues(kind, outcome(err)).Inc()
}
