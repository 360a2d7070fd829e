package metrics

import (
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestHTTPMetricsExportsCountersAndHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewHTTPMetrics(reg)
	metrics.ObserveRequest("GET", "/ferias", "200", 120*time.Millisecond)
	metrics.ObserveRequest("GET", "/ferias", "200", 80*time.Millisecond)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got, err := fetchCounterValue(mfs, "http_requests_total"); err != nil {
		t.Fatalf("fetch requests: %v", err)
	} else if got != 2 {
		t.Fatalf("expected requests=2, got %f", got)
	}

	if got, err := fetchHistogramSum(mfs, "http_request_duration_seconds"); err != nil {
		t.Fatalf("fetch duration: %v", err)
	} else if got <= 0 {
		t.Fatalf("expected duration sum > 0, got %f", got)
	}
}

func TestWeatherMetricsCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewWeatherMetrics(reg)
	metrics.IncCacheHit()
	metrics.IncCacheMiss()
	metrics.IncCacheMiss()
	metrics.IncFailure()

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	cases := map[string]float64{
		"weather_cache_hits_total":      1,
		"weather_cache_misses_total":    2,
		"weather_lookup_failures_total": 1,
	}
	for name, want := range cases {
		got, err := fetchCounterValue(mfs, name)
		if err != nil {
			t.Fatalf("fetch %s: %v", name, err)
		}
		if got != want {
			t.Fatalf("expected %s=%f, got %f", name, want, got)
		}
	}
}

func TestNilRegistererIsNoop(t *testing.T) {
	httpMetrics := NewHTTPMetrics(nil)
	httpMetrics.ObserveRequest("GET", "/ferias", "200", time.Millisecond)

	weatherMetrics := NewWeatherMetrics(nil)
	weatherMetrics.IncCacheHit()
	weatherMetrics.IncFailure()
}

func fetchCounterValue(mfs []*dto.MetricFamily, name string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	total := 0.0
	for _, metric := range mf.GetMetric() {
		total += metric.GetCounter().GetValue()
	}
	return total, nil
}

func fetchHistogramSum(mfs []*dto.MetricFamily, name string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	total := 0.0
	for _, metric := range mf.GetMetric() {
		total += metric.GetHistogram().GetSampleSum()
	}
	return total, nil
}

func findMetricFamily(mfs []*dto.MetricFamily, name string) *dto.MetricFamily {
	for _, mf := range mfs {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}
