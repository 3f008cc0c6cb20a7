package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestGatewayMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewGatewayMetrics(reg)
	m.ObserveCall("find_specialist", "ok", 0.4)
	m.ObserveCall("find_specialist", "fallback", 1.2)
	m.ObserveDropped("find_specialist", "invalid_element", 2)
	m.ObserveDropped("find_specialist", "invalid_element", 0)

	if got := testutil.ToFloat64(m.callsTotal.WithLabelValues("find_specialist", "fallback")); got != 1 {
		t.Fatalf("expected 1 fallback call, got %v", got)
	}
	if got := testutil.ToFloat64(m.droppedElements.WithLabelValues("find_specialist", "invalid_element")); got != 2 {
		t.Fatalf("expected 2 dropped elements, got %v", got)
	}
}

func TestSearchMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewSearchMetrics(reg)
	m.ObserveView("matched")
	m.ObserveDropped(1, 3)

	if got := testutil.ToFloat64(m.droppedTotal.WithLabelValues("duplicate_id")); got != 3 {
		t.Fatalf("expected 3 duplicate drops, got %v", got)
	}
}

func TestMetricsNilSafe(t *testing.T) {
	var g *GatewayMetrics
	g.ObserveCall("op", "ok", 0.1)
	g.ObserveDropped("op", "reason", 1)

	var s *SearchMetrics
	s.ObserveView("all")
	s.ObserveDropped(1, 1)
}
