package mapbox

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/clima-metrics-etl/internal/domain"
)

// --- mock for cache tests ---

type countingGeocoder struct {
	calls  int
	result domain.GeocodingResult
	err    error
}

func (m *countingGeocoder) ForwardGeocode(_ context.Context, _, _ string) (domain.GeocodingResult, error) {
	m.calls++
	return m.result, m.err
}

// --- CachedGeocoder tests ---

func TestCachedGeocoder_CacheHit(t *testing.T) {
	inner := &countingGeocoder{
		result: domain.GeocodingResult{Lat: -34.6, Lon: -58.4, PlaceName: "CABA"},
	}
	metrics := testMetrics()
	cached := NewCachedGeocoder(inner, 10, metrics)

	r1, err := cached.ForwardGeocode(context.Background(), "CABA", "Argentina")
	require.NoError(t, err)
	assert.Equal(t, "CABA", r1.PlaceName)

	r2, err := cached.ForwardGeocode(context.Background(), "caba", "ARGENTINA")
	require.NoError(t, err)
	assert.Equal(t, r1, r2)

	assert.Equal(t, 1, inner.calls, "should only call inner once")
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.GeocodeCache.WithLabelValues("hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.GeocodeCache.WithLabelValues("miss")))
}

func TestCachedGeocoder_DifferentKeysMiss(t *testing.T) {
	inner := &countingGeocoder{result: domain.GeocodingResult{Lat: 1, Lon: 1}}
	cached := NewCachedGeocoder(inner, 10, testMetrics())

	_, _ = cached.ForwardGeocode(context.Background(), "CABA", "Argentina")
	_, _ = cached.ForwardGeocode(context.Background(), "Islas Malvinas", "Argentina")

	assert.Equal(t, 2, inner.calls)
	assert.Equal(t, 2, cached.Len())
}

func TestCachedGeocoder_EmptyAndErrorsNotCached(t *testing.T) {
	inner := &countingGeocoder{}
	cached := NewCachedGeocoder(inner, 10, testMetrics())

	_, _ = cached.ForwardGeocode(context.Background(), "Atlantis", "Argentina")
	_, _ = cached.ForwardGeocode(context.Background(), "Atlantis", "Argentina")
	assert.Equal(t, 2, inner.calls)

	inner.err = errors.New("timeout")
	_, err := cached.ForwardGeocode(context.Background(), "CABA", "Argentina")
	require.Error(t, err)
	assert.Equal(t, 0, cached.Len())
}

func TestCachedGeocoder_Eviction(t *testing.T) {
	inner := &countingGeocoder{result: domain.GeocodingResult{Lat: 1, Lon: 1}}
	cached := NewCachedGeocoder(inner, 2, testMetrics())

	ctx := context.Background()
	_, _ = cached.ForwardGeocode(ctx, "a", "")
	_, _ = cached.ForwardGeocode(ctx, "b", "")
	_, _ = cached.ForwardGeocode(ctx, "a", "") // promotes a
	_, _ = cached.ForwardGeocode(ctx, "c", "") // evicts b
	assert.Equal(t, 3, inner.calls)

	_, _ = cached.ForwardGeocode(ctx, "a", "")
	assert.Equal(t, 3, inner.calls, "a was used recently and should still be cached")

	_, _ = cached.ForwardGeocode(ctx, "b", "")
	assert.Equal(t, 4, inner.calls, "b should have been evicted")
}

func TestNewCachedGeocoder_DefaultSize(t *testing.T) {
	cached := NewCachedGeocoder(&countingGeocoder{}, 0, testMetrics())
	assert.NotNil(t, cached.cache)
}
