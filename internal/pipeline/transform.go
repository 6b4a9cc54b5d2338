package pipeline

import (
	"context"
	"log/slog"

	"github.com/couchcryptid/clima-metrics-etl/internal/domain"
	"github.com/couchcryptid/clima-metrics-etl/internal/observability"
)

// ObservationTransformer implements Transformer using the domain calculators
// and classifiers, with optional geocoding for provinces outside the table.
type ObservationTransformer struct {
	opts     domain.EnrichOptions
	geocoder domain.Geocoder
	metrics  *observability.Metrics
	logger   *slog.Logger
}

// NewTransformer creates an ObservationTransformer. Pass a nil geocoder to
// rely on the built-in province table only.
func NewTransformer(opts domain.EnrichOptions, geocoder domain.Geocoder, metrics *observability.Metrics, logger *slog.Logger) *ObservationTransformer {
	return &ObservationTransformer{
		opts:     opts,
		geocoder: geocoder,
		metrics:  metrics,
		logger:   logger,
	}
}

func (t *ObservationTransformer) Transform(ctx context.Context, raw domain.RawEvent) (domain.DashboardReading, error) {
	obs, err := domain.ParseRawObservation(raw, t.opts.Location)
	if err != nil {
		return domain.DashboardReading{}, err
	}

	reading := domain.EnrichObservation(obs, t.opts)
	reading = domain.LocateProvince(ctx, reading, t.geocoder, t.logger)
	t.record(reading)

	return reading, nil
}

// record counts missing metrics and band labels.
func (t *ObservationTransformer) record(r domain.DashboardReading) {
	c := r.Classifications

	missing := map[string]bool{
		"feels_like":    r.Derived.FeelsLikeC == nil,
		"uv_estimate":   r.Derived.UVEstimate == nil,
		"visibility":    c.Visibility == nil,
		"precipitation": c.Precipitation == nil,
		"humidity":      c.Humidity == nil,
		"wind":          c.Wind == nil,
	}
	for metric, isMissing := range missing {
		if isMissing {
			t.metrics.DerivedMissing.WithLabelValues(metric).Inc()
		}
	}

	if c.Visibility != nil {
		t.metrics.Classifications.WithLabelValues("visibility", c.Visibility.Label).Inc()
	}
	if c.Precipitation != nil {
		t.metrics.Classifications.WithLabelValues("precipitation", c.Precipitation.Label).Inc()
	}
	if c.Humidity != nil {
		t.metrics.Classifications.WithLabelValues("humidity", c.Humidity.Label).Inc()
	}
	if c.FeelsLike != nil {
		t.metrics.Classifications.WithLabelValues("feels_like", c.FeelsLike.Label).Inc()
	}
	if c.Wind != nil {
		t.metrics.Classifications.WithLabelValues("wind", c.Wind.Label).Inc()
	}
	if c.UV != nil {
		t.metrics.Classifications.WithLabelValues("uv", c.UV.Label).Inc()
	}
}
