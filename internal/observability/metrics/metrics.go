package metrics

import "github.com/prometheus/client_golang/prometheus"

// GatewayMetrics exposes counters/histograms for AI gateway calls.
type GatewayMetrics struct {
	callsTotal      *prometheus.CounterVec
	callLatency     *prometheus.HistogramVec
	droppedElements *prometheus.CounterVec
}

func NewGatewayMetrics(reg prometheus.Registerer) *GatewayMetrics {
	m := &GatewayMetrics{
		callsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "medmatch",
			Subsystem: "gateway",
			Name:      "calls_total",
			Help:      "AI gateway calls by operation and outcome",
		}, []string{"operation", "outcome"}),
		callLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "medmatch",
			Subsystem: "gateway",
			Name:      "call_latency_seconds",
			Help:      "Latency of AI gateway round trips",
			Buckets:   []float64{0.25, 0.5, 1, 2, 4, 8, 16, 32},
		}, []string{"operation"}),
		droppedElements: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "medmatch",
			Subsystem: "gateway",
			Name:      "dropped_elements_total",
			Help:      "Malformed elements discarded from AI payloads",
		}, []string{"operation", "reason"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.callsTotal, m.callLatency, m.droppedElements)
	return m
}

// ObserveCall records one gateway round trip. outcome is "ok" or "fallback".
func (m *GatewayMetrics) ObserveCall(operation, outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.callsTotal.WithLabelValues(operation, outcome).Inc()
	m.callLatency.WithLabelValues(operation).Observe(seconds)
}

func (m *GatewayMetrics) ObserveDropped(operation, reason string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.droppedElements.WithLabelValues(operation, reason).Add(float64(n))
}

// SearchMetrics tracks the listings produced for specialist searches.
type SearchMetrics struct {
	viewsTotal   *prometheus.CounterVec
	droppedTotal *prometheus.CounterVec
}

func NewSearchMetrics(reg prometheus.Registerer) *SearchMetrics {
	m := &SearchMetrics{
		viewsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "medmatch",
			Subsystem: "search",
			Name:      "views_total",
			Help:      "Specialist search listings by state",
		}, []string{"state"}),
		droppedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "medmatch",
			Subsystem: "search",
			Name:      "dropped_matches_total",
			Help:      "Match results dropped while reconciling against the directory",
		}, []string{"reason"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.viewsTotal, m.droppedTotal)
	return m
}

func (m *SearchMetrics) ObserveView(state string) {
	if m == nil {
		return
	}
	m.viewsTotal.WithLabelValues(state).Inc()
}

func (m *SearchMetrics) ObserveDropped(unknown, duplicate int) {
	if m == nil {
		return
	}
	if unknown > 0 {
		m.droppedTotal.WithLabelValues("unknown_id").Add(float64(unknown))
	}
	if duplicate > 0 {
		m.droppedTotal.WithLabelValues("duplicate_id").Add(float64(duplicate))
	}
}
