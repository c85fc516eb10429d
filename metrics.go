package inertia

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "inertia"

// Metrics records response outcomes. Create it with NewMetrics and pass it to
// WithMetrics; a nil *Metrics records nothing.
type Metrics struct {
	responses        *prometheus.CounterVec
	renderSeconds    *prometheus.HistogramVec
	versionConflicts prometheus.Counter
	ssrFallbacks     prometheus.Counter
	propErrors       prometheus.Counter
}

// NewMetrics creates the collectors and registers them with reg.
//
//	reg := prometheus.NewRegistry()
//	m, err := inertia.NewMetrics(reg)
//	if err != nil {
//	    return err
//	}
//	in := inertia.New(inertia.WithMetrics(m))
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		responses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "responses_total",
			Help:      "Rendered pages by response type (json, html) and whether it was a partial reload",
		}, []string{"type", "partial"}),
		renderSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "render_duration_seconds",
			Help:      "Time to resolve props and write a page",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"type"}),
		versionConflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "version_conflicts_total",
			Help:      "Inertia visits answered with 409 because of a stale asset version",
		}),
		ssrFallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "ssr_fallbacks_total",
			Help:      "Full page loads rendered client-side because SSR failed",
		}),
		propErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "prop_errors_total",
			Help:      "Renders aborted by a failing prop producer",
		}),
	}

	for _, c := range []prometheus.Collector{m.responses, m.renderSeconds, m.versionConflicts, m.ssrFallbacks, m.propErrors} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) observeRender(typ string, partial bool, start time.Time) {
	if m == nil {
		return
	}
	p := "false"
	if partial {
		p = "true"
	}
	m.responses.WithLabelValues(typ, p).Inc()
	m.renderSeconds.WithLabelValues(typ).Observe(time.Since(start).Seconds())
}

func (m *Metrics) versionConflict() {
	if m != nil {
		m.versionConflicts.Inc()
	}
}

func (m *Metrics) ssrFallback() {
	if m != nil {
		m.ssrFallbacks.Inc()
	}
}

func (m *Metrics) propError() {
	if m != nil {
		m.propErrors.Inc()
	}
}
