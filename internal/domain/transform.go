package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultParticleBudget is the droplet count drawn for 100 mm of rain or more.
const DefaultParticleBudget = 60

// Accepted JSON keys per field, preferred spelling first.
var (
	provinciaKeys   = []string{"provincia", "province"}
	temperatureKeys = []string{"temperatura", "temp", "temperature", "temperature_c"}
	humidityKeys    = []string{"humedad", "hum", "humidity", "rhum", "humidity_pct"}
	windKeys        = []string{"viento", "wind", "wspd", "wind_kmh"}
	visibilityKeys  = []string{"visibilidad", "visibility", "visibility_km"}
	precipKeys      = []string{"precipitacion", "prcp", "precipitation", "precipitation_mm"}
	uvKeys          = []string{"uvIndex", "uv", "uv_index"}
	cocoKeys        = []string{"coco", "condition_code"}
	timestampKeys   = []string{"fecha_hora", "timestamp", "observed_at"}
	conditionKeys   = []string{"condicion", "condition"}
	dewPointKeys    = []string{"punto_rocio", "dwpt", "dew_point_c"}
	pressureKeys    = []string{"presion", "pres", "pressure_hpa"}
	snowKeys        = []string{"nieve", "snow", "snow_mm"}
)

// timestampLayouts are tried in order. Layouts without a zone are read in the
// caller's location.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05 -07",
	"2006-01-02 15:04:05 -0700",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// readingNamespace seeds the UUIDv5 reading IDs.
var readingNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("clima-metrics-etl/readings"))

// ParseRawObservation decodes a RawEvent's value into an Observation,
// accepting every known spelling of each field. Zone-less timestamps are read
// in loc (UTC when loc is nil).
func ParseRawObservation(raw RawEvent, loc *time.Location) (Observation, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw.Value, &fields); err != nil {
		return Observation{}, fmt.Errorf("parse raw observation: %w", err)
	}
	if loc == nil {
		loc = time.UTC
	}

	provincia := strings.TrimSpace(stringField(fields, provinciaKeys))
	if provincia == "" {
		return Observation{}, errors.New("parse raw observation: missing provincia")
	}

	obs := Observation{
		Provincia:       provincia,
		TemperatureC:    numberField(fields, temperatureKeys),
		HumidityPct:     numberField(fields, humidityKeys),
		WindKmh:         numberField(fields, windKeys),
		VisibilityKm:    numberField(fields, visibilityKeys),
		PrecipitationMM: numberField(fields, precipKeys),
		UVIndex:         numberField(fields, uvKeys),
		ConditionCode:   intField(fields, cocoKeys),
		DewPointC:       numberField(fields, dewPointKeys),
		PressureHPa:     numberField(fields, pressureKeys),
		SnowMM:          numberField(fields, snowKeys),
		Condition:       strings.TrimSpace(stringField(fields, conditionKeys)),
	}

	if ts := strings.TrimSpace(stringField(fields, timestampKeys)); ts != "" {
		at, err := ParseTimestamp(ts, loc)
		if err != nil {
			return Observation{}, fmt.Errorf("parse raw observation: %w", err)
		}
		obs.ObservedAt = &at
	}

	return obs, nil
}

// ParseTimestamp parses an observation time in any of the producer formats.
func ParseTimestamp(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

// lookup returns the first present, non-null value among keys.
func lookup(fields map[string]json.RawMessage, keys []string) (json.RawMessage, bool) {
	for _, k := range keys {
		v, ok := fields[k]
		if !ok || string(v) == "null" {
			continue
		}
		return v, true
	}
	return nil, false
}

func stringField(fields map[string]json.RawMessage, keys []string) string {
	v, ok := lookup(fields, keys)
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		return ""
	}
	return s
}

// numberField accepts JSON numbers and numeric strings. Anything else,
// including NaN and ±Inf, is treated as missing.
func numberField(fields map[string]json.RawMessage, keys []string) *float64 {
	v, ok := lookup(fields, keys)
	if !ok {
		return nil
	}

	var f float64
	if err := json.Unmarshal(v, &f); err != nil {
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			return nil
		}
		parsed, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return nil
		}
		f = parsed
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

func intField(fields map[string]json.RawMessage, keys []string) *int {
	f := numberField(fields, keys)
	if f == nil || *f != math.Trunc(*f) {
		return nil
	}
	n := int(*f)
	return &n
}

// EnrichOptions configures EnrichObservation.
type EnrichOptions struct {
	Icons          IconSet
	Location       *time.Location // dashboard local time; UTC when nil
	ParticleBudget int            // DefaultParticleBudget when <= 0
}

// EnrichObservation backfills a missing condition code and visibility,
// computes derived metrics, classifies every metric that has a value, and
// resolves the condition icon. The night icon follows the observation's own
// hour, not the processing time.
func EnrichObservation(obs Observation, opts EnrichOptions) DashboardReading {
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}
	budget := opts.ParticleBudget
	if budget <= 0 {
		budget = DefaultParticleBudget
	}

	local := clock.Now()
	if obs.ObservedAt != nil {
		local = *obs.ObservedAt
	}
	local = local.In(loc)
	hour := local.Hour()

	obs, estimated := backfill(obs)

	derived := DerivedMetrics{
		FeelsLikeC: ComputeFeelsLike(obs.TemperatureC, obs.HumidityPct, obs.WindKmh),
		UVEstimate: ComputeUVEstimate(obs.TemperatureC, obs.ConditionCode, &local),
	}

	icon := opts.Icons.Lookup(obs.ConditionCode, hour)

	return DashboardReading{
		ID:              readingID(obs.Provincia, obs.ObservedAt),
		Observation:     obs,
		Derived:         derived,
		Classifications: classify(obs, derived, hour, budget),
		Icon:            icon.Icon,
		Description:     icon.Description,
		Night:           IsNight(hour),
		Estimated:       estimated,
		ProcessedAt:     clock.Now(),
	}
}

// backfill estimates the condition code, then visibility from it, when the
// producer left them out.
func backfill(obs Observation) (Observation, []string) {
	var estimated []string
	if obs.ConditionCode == nil {
		if code := EstimateConditionCode(obs); code != nil {
			obs.ConditionCode = code
			estimated = append(estimated, EstimatedConditionCode)
		}
	}
	if obs.VisibilityKm == nil {
		if vis := EstimateVisibility(obs, obs.ConditionCode); vis != nil {
			obs.VisibilityKm = vis
			estimated = append(estimated, EstimatedVisibility)
		}
	}
	return obs, estimated
}

// classify runs each classifier whose input is present.
func classify(obs Observation, derived DerivedMetrics, hour, budget int) Classifications {
	var c Classifications

	if obs.VisibilityKm != nil {
		v := ClassifyVisibility(*obs.VisibilityKm)
		c.Visibility = &v
	}
	if obs.PrecipitationMM != nil {
		p := ClassifyPrecipitation(*obs.PrecipitationMM, budget)
		c.Precipitation = &p
	}
	if obs.HumidityPct != nil {
		h := ClassifyHumidity(*obs.HumidityPct)
		c.Humidity = &h
	}
	if derived.FeelsLikeC != nil && obs.TemperatureC != nil {
		f := ClassifyFeelsLike(*derived.FeelsLikeC, *obs.TemperatureC)
		c.FeelsLike = &f
	}
	if obs.WindKmh != nil {
		w := ClassifyWind(*obs.WindKmh)
		c.Wind = &w
	}

	// A measured index wins over the estimate.
	uv := obs.UVIndex
	if uv == nil {
		uv = derived.UVEstimate
	}
	if uv != nil {
		u := ClassifyUV(*uv, hour)
		c.UV = &u
	}

	return c
}

// readingID derives a stable ID from the province and observation time.
// Readings without a time are keyed on the province alone.
func readingID(provincia string, at *time.Time) string {
	name := strings.ToLower(provincia)
	if at != nil {
		name += "|" + at.UTC().Format(time.RFC3339)
	}
	return uuid.NewSHA1(readingNamespace, []byte(name)).String()
}

// SerializeDashboardReading marshals a reading into an OutputEvent keyed by
// its ID.
func SerializeDashboardReading(reading DashboardReading) (OutputEvent, error) {
	data, err := json.Marshal(reading)
	if err != nil {
		return OutputEvent{}, fmt.Errorf("serialize dashboard reading: %w", err)
	}
	return OutputEvent{
		Key:   []byte(reading.ID),
		Value: data,
		Headers: map[string]string{
			"provincia":    reading.Provincia,
			"processed_at": reading.ProcessedAt.Format(time.RFC3339),
		},
	}, nil
}
