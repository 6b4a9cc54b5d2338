package mapbox

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/couchcryptid/clima-metrics-etl/internal/domain"
	"github.com/couchcryptid/clima-metrics-etl/internal/observability"
)

// DefaultCacheSize is used when a non-positive size is requested.
const DefaultCacheSize = 1000

// CachedGeocoder wraps a Geocoder with an in-memory LRU cache keyed by the
// normalized place name.
type CachedGeocoder struct {
	inner   domain.Geocoder
	cache   *lru.Cache[string, domain.GeocodingResult]
	metrics *observability.Metrics
}

// NewCachedGeocoder creates a cache decorator around a geocoder.
func NewCachedGeocoder(inner domain.Geocoder, maxEntries int, metrics *observability.Metrics) *CachedGeocoder {
	if maxEntries <= 0 {
		maxEntries = DefaultCacheSize
	}
	// New only fails on a non-positive size.
	cache, _ := lru.New[string, domain.GeocodingResult](maxEntries)
	return &CachedGeocoder{inner: inner, cache: cache, metrics: metrics}
}

func (c *CachedGeocoder) ForwardGeocode(ctx context.Context, name, country string) (domain.GeocodingResult, error) {
	key := domain.NormalizeProvince(name) + "|" + domain.NormalizeProvince(country)
	if result, ok := c.cache.Get(key); ok {
		c.metrics.GeocodeCache.WithLabelValues("hit").Inc()
		return result, nil
	}
	c.metrics.GeocodeCache.WithLabelValues("miss").Inc()

	result, err := c.inner.ForwardGeocode(ctx, name, country)
	if err != nil {
		return result, err
	}
	// Only cache matches so a transient "not found" can be retried.
	if result.Lat != 0 || result.Lon != 0 {
		c.cache.Add(key, result)
	}
	return result, nil
}

// Len reports the number of cached places.
func (c *CachedGeocoder) Len() int {
	return c.cache.Len()
}
