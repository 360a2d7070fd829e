package weather

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Gortyum/feriadigital/pkg/config"
	"github.com/Gortyum/feriadigital/pkg/logger"
	"github.com/Gortyum/feriadigital/pkg/metrics"
	redisclient "github.com/Gortyum/feriadigital/pkg/redis"
)

type conditionsFetcher interface {
	CurrentByCity(ctx context.Context, city string) (*Snapshot, error)
}

type snapshotCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	WeatherKey(lookup string) string
}

// Service answers weather lookups through a Redis cache. Lookups never fail a
// page render: any cache or upstream error degrades to a nil snapshot.
type Service struct {
	client  conditionsFetcher
	cache   snapshotCache
	log     *logger.Logger
	metrics *metrics.WeatherMetrics
	ttl     time.Duration
}

// NewService wires the weather service.
func NewService(client conditionsFetcher, cache snapshotCache, log *logger.Logger, weatherMetrics *metrics.WeatherMetrics, cfg config.WeatherConfig) *Service {
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &Service{client: client, cache: cache, log: log, metrics: weatherMetrics, ttl: ttl}
}

// ForCity returns the current conditions for a city, served from the cache
// when fresh. Returns nil when the city is blank or the lookup fails.
func (s *Service) ForCity(ctx context.Context, city string) *Snapshot {
	if s == nil || s.client == nil {
		return nil
	}
	lookup := CacheLookup(city)
	if lookup == "" {
		return nil
	}

	if snap := s.fromCache(ctx, lookup); snap != nil {
		s.metrics.IncCacheHit()
		return snap
	}
	s.metrics.IncCacheMiss()

	snap, err := s.client.CurrentByCity(ctx, city)
	if err != nil {
		s.metrics.IncFailure()
		s.warn(ctx, city, err)
		return nil
	}

	s.store(ctx, lookup, snap)
	return snap
}

func (s *Service) fromCache(ctx context.Context, lookup string) *Snapshot {
	if s.cache == nil {
		return nil
	}
	raw, err := s.cache.Get(ctx, s.cache.WeatherKey(lookup))
	if err != nil {
		if !redisclient.IsMiss(err) {
			s.warn(ctx, lookup, err)
		}
		return nil
	}
	var snap Snapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		s.warn(ctx, lookup, err)
		return nil
	}
	return &snap
}

func (s *Service) store(ctx context.Context, lookup string, snap *Snapshot) {
	if s.cache == nil || snap == nil {
		return
	}
	payload, err := json.Marshal(snap)
	if err != nil {
		s.warn(ctx, lookup, err)
		return
	}
	if err := s.cache.Set(ctx, s.cache.WeatherKey(lookup), payload, s.ttl); err != nil {
		s.warn(ctx, lookup, err)
	}
}

func (s *Service) warn(ctx context.Context, city string, err error) {
	if s.log == nil {
		return
	}
	ctx = s.log.WithField(ctx, "city", city)
	ctx = s.log.WithField(ctx, "error", err.Error())
	s.log.Warn(ctx, "weather lookup degraded")
}
