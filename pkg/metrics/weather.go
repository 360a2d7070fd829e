package metrics

import "github.com/prometheus/client_golang/prometheus"

// WeatherMetrics tracks cache effectiveness and upstream failures for the
// weather lookups shown on fair pages.
type WeatherMetrics struct {
	cacheHits   prometheus.Counter
	cacheMisses prometheus.Counter
	failures    prometheus.Counter
}

// NewWeatherMetrics registers the weather metrics on the provided registerer.
func NewWeatherMetrics(reg prometheus.Registerer) *WeatherMetrics {
	if reg == nil {
		return &WeatherMetrics{}
	}
	cacheHits := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "weather_cache_hits_total",
		Help: "Weather lookups answered from the cache.",
	})
	cacheMisses := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "weather_cache_misses_total",
		Help: "Weather lookups that reached the upstream API.",
	})
	failures := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "weather_lookup_failures_total",
		Help: "Weather lookups that failed upstream or while decoding.",
	})
	reg.MustRegister(cacheHits, cacheMisses, failures)
	return &WeatherMetrics{cacheHits: cacheHits, cacheMisses: cacheMisses, failures: failures}
}

// IncCacheHit counts a lookup served from the cache.
func (w *WeatherMetrics) IncCacheHit() {
	if w == nil || w.cacheHits == nil {
		return
	}
	w.cacheHits.Inc()
}

// IncCacheMiss counts a lookup that went upstream.
func (w *WeatherMetrics) IncCacheMiss() {
	if w == nil || w.cacheMisses == nil {
		return
	}
	w.cacheMisses.Inc()
}

// IncFailure counts a failed upstream lookup.
func (w *WeatherMetrics) IncFailure() {
	if w == nil || w.failures == nil {
		return
	}
	w.failures.Inc()
}
