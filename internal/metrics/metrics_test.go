package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		t.Fatalf("write metric: %v", err)
	}
	return m.GetCounter().GetValue()
}

func TestRegisterExposesCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	Register(reg)

	ObserveUpstream("tmdb", "search", 200, 120*time.Millisecond)
	ObserveCache("memory", "hit")
	ObserveRank("profile", 7)

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	names := map[string]bool{}
	for _, mf := range families {
		names[mf.GetName()] = true
	}
	for _, want := range []string{
		"cinetier_upstream_requests_total",
		"cinetier_upstream_request_duration_seconds",
		"cinetier_film_cache_lookups_total",
		"cinetier_rank_results_total",
	} {
		if !names[want] {
			t.Fatalf("expected %s to be registered, got %v", want, names)
		}
	}
}

func TestObserveUpstreamLabelsTransportErrors(t *testing.T) {
	counter := UpstreamRequestsTotal.WithLabelValues("letterboxd", "profile", "error")
	before := counterValue(t, counter)
	ObserveUpstream("letterboxd", "profile", 0, time.Second)
	after := counterValue(t, counter)
	if after != before+1 {
		t.Fatalf("expected error counter to increase by 1, got %v -> %v", before, after)
	}
}
