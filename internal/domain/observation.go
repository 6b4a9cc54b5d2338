package domain

import (
	"context"
	"errors"
	"time"
)

// RawEvent represents an unprocessed message from the source topic.
type RawEvent struct {
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	Commit    func(ctx context.Context) error
}

// Observation is one province's weather at one instant, after field-name
// normalization. Nil pointers mean the producer had no value.
type Observation struct {
	Provincia       string     `json:"provincia"`
	ObservedAt      *time.Time `json:"observed_at,omitempty"`
	TemperatureC    *float64   `json:"temperature_c"`
	HumidityPct     *float64   `json:"humidity_pct"`
	WindKmh         *float64   `json:"wind_kmh"`
	VisibilityKm    *float64   `json:"visibility_km"`
	PrecipitationMM *float64   `json:"precipitation_mm"`
	UVIndex         *float64   `json:"uv_index"`
	ConditionCode   *int       `json:"condition_code"`
	DewPointC       *float64   `json:"dew_point_c,omitempty"`
	PressureHPa     *float64   `json:"pressure_hpa,omitempty"`
	SnowMM          *float64   `json:"snow_mm,omitempty"`
	Condition       string     `json:"condition,omitempty"` // free text from the producer, may be empty
}

// DerivedMetrics holds the computed values. A nil field means a required
// input was missing.
type DerivedMetrics struct {
	FeelsLikeC *float64 `json:"feels_like_c"`
	UVEstimate *float64 `json:"uv_estimate"`
}

// Classifications groups the presentation buckets of a reading. A nil entry
// means the metric had no value and was not classified.
type Classifications struct {
	Visibility    *VisibilityClass    `json:"visibility,omitempty"`
	Precipitation *PrecipitationClass `json:"precipitation,omitempty"`
	Humidity      *HumidityClass      `json:"humidity,omitempty"`
	FeelsLike     *FeelsLikeClass     `json:"feels_like,omitempty"`
	Wind          *WindClass          `json:"wind,omitempty"`
	UV            *UVClass            `json:"uv,omitempty"`
}

// Geo represents a WGS-84 latitude/longitude coordinate pair.
type Geo struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// DashboardReading is the enriched record published for the dashboard.
type DashboardReading struct {
	ID string `json:"id"`
	Observation

	Derived         DerivedMetrics  `json:"derived"`
	Classifications Classifications `json:"classifications"`
	Icon            string          `json:"icon"`
	Description     string          `json:"description"`
	Night           bool            `json:"night"`

	// Observation fields filled in by estimation rather than reported.
	Estimated []string `json:"estimated,omitempty"`

	// Map placement.
	Geo       *Geo   `json:"geo,omitempty"`
	GeoSource string `json:"geo_source,omitempty"` // "table", "forward", "failed", "unknown"

	ProcessedAt time.Time `json:"processed_at"`
}

// Names used in DashboardReading.Estimated.
const (
	EstimatedConditionCode = "condition_code"
	EstimatedVisibility    = "visibility_km"
)

// OutputEvent is the serialized form destined for the sink topic.
type OutputEvent struct {
	Key     []byte
	Value   []byte
	Headers map[string]string
}

// ErrReadingNotFound is returned by snapshot lookups for a province with no
// stored reading.
var ErrReadingNotFound = errors.New("reading not found")
