// Package rediscache wraps a Geocoder with a Redis-backed result cache.
package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"fabmap/internal/domain"
	"fabmap/internal/logger"
	"fabmap/internal/metrics"
	"fabmap/internal/ports"
)

const keyPrefix = "fabmap:geocode:"

// DefaultTTL is how long a lookup stays cached
const DefaultTTL = 24 * time.Hour

// Geocoder serves repeated queries from Redis and falls through to next on a miss.
// Redis failures never fail a lookup; they are logged and bypassed.
type Geocoder struct {
	rc   *redis.Client
	next ports.Geocoder
	ttl  time.Duration
}

var _ ports.Geocoder = (*Geocoder)(nil)

// New wraps next. A nil client disables caching.
func New(rc *redis.Client, next ports.Geocoder, ttl time.Duration) *Geocoder {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Geocoder{rc: rc, next: next, ttl: ttl}
}

type cachedPlace struct {
	Label string  `json:"label"`
	Lat   float64 `json:"lat"`
	Lng   float64 `json:"lng"`
}

// Key returns the cache key for a query. Case and surrounding space are ignored.
func Key(query string) string {
	return keyPrefix + strings.ToLower(strings.Join(strings.Fields(query), " "))
}

func (g *Geocoder) Search(ctx context.Context, query string) ([]domain.Place, error) {
	if strings.TrimSpace(query) == "" {
		return nil, nil
	}
	if g.rc == nil {
		return g.next.Search(ctx, query)
	}

	key := Key(query)
	if places, ok := g.lookup(ctx, key); ok {
		metrics.GeocodeCacheHitsTotal.Inc()
		return places, nil
	}
	metrics.GeocodeCacheMissesTotal.Inc()

	places, err := g.next.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	g.store(ctx, key, places)
	return places, nil
}

func (g *Geocoder) lookup(ctx context.Context, key string) ([]domain.Place, bool) {
	raw, err := g.rc.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		logger.L().Warn("geocode_cache_get_error", "key", key, "err", err)
		return nil, false
	}
	var cached []cachedPlace
	if err := json.Unmarshal(raw, &cached); err != nil {
		logger.L().Warn("geocode_cache_decode_error", "key", key, "err", err)
		return nil, false
	}
	places := make([]domain.Place, len(cached))
	for i, c := range cached {
		places[i] = domain.Place{Label: c.Label, Position: domain.Coordinate{Lat: c.Lat, Lng: c.Lng}}
	}
	logger.L().Debug("geocode_cache_hit", "key", key, "results", len(places))
	return places, true
}

func (g *Geocoder) store(ctx context.Context, key string, places []domain.Place) {
	cached := make([]cachedPlace, len(places))
	for i, p := range places {
		cached[i] = cachedPlace{Label: p.Label, Lat: p.Position.Lat, Lng: p.Position.Lng}
	}
	raw, err := json.Marshal(cached)
	if err != nil {
		return
	}
	if err := g.rc.Set(ctx, key, raw, g.ttl).Err(); err != nil {
		logger.L().Warn("geocode_cache_set_error", "key", key, "err", err)
	}
}
