package domain

import "math"

// band is one row of a classification table. The last row of every table is
// the catch-all and has a nil match.
type band[C any] struct {
	match func(v float64) bool
	class C
}

// firstMatch walks bands in order and returns the class of the first row whose
// predicate holds. NaN fails every comparison and lands in the catch-all.
func firstMatch[C any](bands []band[C], v float64) C {
	last := len(bands) - 1
	for _, b := range bands[:last] {
		if b.match(v) {
			return b.class
		}
	}
	return bands[last].class
}

func below(limit float64) func(float64) bool  { return func(v float64) bool { return v < limit } }
func atMost(limit float64) func(float64) bool { return func(v float64) bool { return v <= limit } }
func above(limit float64) func(float64) bool  { return func(v float64) bool { return v > limit } }
func equal(x float64) func(float64) bool      { return func(v float64) bool { return v == x } }

// --- visibility ---

// VisibilityClass buckets visibility in km. ParticleCount is the number of
// haze particles to draw; Gradient holds the two sky colour stops.
type VisibilityClass struct {
	Label         string    `json:"label"`
	ParticleCount int       `json:"particle_count"`
	Gradient      [2]string `json:"gradient"`
}

var visibilityBands = []band[VisibilityClass]{
	{below(2), VisibilityClass{"Muy baja", 22, [2]string{"#9ea7b3", "#6b7480"}}},
	{below(5), VisibilityClass{"Reducida", 16, [2]string{"#b8c1cc", "#8995a3"}}},
	{below(8), VisibilityClass{"Moderada", 10, [2]string{"#d6dee8", "#aab8c8"}}},
	{nil, VisibilityClass{"Buena", 8, [2]string{"#eef4fb", "#cfe0f2"}}},
}

// ClassifyVisibility buckets a visibility in km.
func ClassifyVisibility(km float64) VisibilityClass {
	return firstMatch(visibilityBands, km)
}

// --- precipitation ---

// PrecipitationClass buckets precipitation in mm. DropletCount is the share of
// the particle budget to animate; WaterFill is the 0–1 level of the gauge.
type PrecipitationClass struct {
	Label        string  `json:"label"`
	DropletCount int     `json:"droplet_count"`
	WaterFill    float64 `json:"water_fill"`
}

var precipitationBands = []band[string]{
	{equal(0), "Sin lluvia"},
	{below(2.5), "Llovizna"},
	{below(10), "Lluvia ligera"},
	{below(50), "Lluvia moderada"},
	{below(100), "Lluvia intensa"},
	{nil, "Tormenta"},
}

// ClassifyPrecipitation buckets precipitation in mm. particleBudget is the
// droplet count drawn at 100 mm and above.
func ClassifyPrecipitation(mm float64, particleBudget int) PrecipitationClass {
	fill := clamp(mm/100, 0, 1)
	if math.IsNaN(fill) {
		fill = 0
	}
	return PrecipitationClass{
		Label:        firstMatch(precipitationBands, mm),
		DropletCount: int(math.Floor(fill * float64(particleBudget))),
		WaterFill:    fill,
	}
}

// --- humidity ---

// HumidityClass buckets relative humidity. RingFill is humidity / 100.
type HumidityClass struct {
	Label    string  `json:"label"`
	RingFill float64 `json:"ring_fill"`
}

var humidityBands = []band[string]{
	{below(30), "Seco"},
	{below(60), "Moderado"},
	{below(85), "Húmedo"},
	{nil, "Condensado"},
}

// ClassifyHumidity buckets relative humidity in percent.
func ClassifyHumidity(pct float64) HumidityClass {
	return HumidityClass{
		Label:    firstMatch(humidityBands, pct),
		RingFill: pct / 100,
	}
}

// --- feels-like ---

// Bulb glow for the thermometer.
const (
	GlowWarm = "warm"
	GlowCool = "cool"
)

// FeelsLikeClass buckets the gap between feels-like and actual temperature.
type FeelsLikeClass struct {
	Label    string    `json:"label"`
	Delta    float64   `json:"delta"`
	Gradient [2]string `json:"gradient"`
	BulbGlow string    `json:"bulb_glow"`
}

type feelsLikeBand struct {
	label    string
	gradient [2]string
}

var feelsLikeBands = []band[feelsLikeBand]{
	{atMost(-5), feelsLikeBand{"Mucho más frío", [2]string{"#1e3a8a", "#60a5fa"}}},
	{below(-3), feelsLikeBand{"Más frío", [2]string{"#3b82f6", "#93c5fd"}}},
	{above(5), feelsLikeBand{"Mucho más cálido", [2]string{"#b91c1c", "#f97316"}}},
	{above(3), feelsLikeBand{"Más cálido", [2]string{"#f97316", "#fcd34d"}}},
	{nil, feelsLikeBand{"Similar", [2]string{"#10b981", "#6ee7b7"}}},
}

// ClassifyFeelsLike buckets feelsLikeC − actualC. Bands use the exact
// difference; the published Delta is rounded to one decimal.
func ClassifyFeelsLike(feelsLikeC, actualC float64) FeelsLikeClass {
	delta := feelsLikeC - actualC
	b := firstMatch(feelsLikeBands, delta)

	glow := GlowWarm
	if delta < 0 {
		glow = GlowCool
	}
	return FeelsLikeClass{
		Label:    b.label,
		Delta:    round1(delta),
		Gradient: b.gradient,
		BulbGlow: glow,
	}
}

// --- wind ---

// WindClass buckets wind speed in km/h. ArcFill is the 0–1 gauge level;
// AnimationSeconds is the period of one wind-line sweep, shorter when windier.
type WindClass struct {
	Label            string  `json:"label"`
	ArcFill          float64 `json:"arc_fill"`
	AnimationSeconds float64 `json:"animation_seconds"`
}

type windBand struct {
	label  string
	period float64
}

var windBands = []band[windBand]{
	{below(5), windBand{"Calma", 4}},
	{below(15), windBand{"Brisa ligera", 3}},
	{below(30), windBand{"Hay brisa", 2}},
	{below(50), windBand{"Viento fuerte", 1.2}},
	{nil, windBand{"Temporal", 0.6}},
}

// ClassifyWind buckets a wind speed in km/h.
func ClassifyWind(kmh float64) WindClass {
	b := firstMatch(windBands, kmh)
	return WindClass{
		Label:            b.label,
		ArcFill:          math.Min(kmh/100, 1),
		AnimationSeconds: b.period,
	}
}

// --- UV ---

// uvScaleMax is the UV value at which the sun stops growing.
const uvScaleMax = 11.0

// UVClass buckets a UV index. SunScale and GlowIntensity grow with the index;
// Night tells the renderer to draw the moon instead.
type UVClass struct {
	Label         string  `json:"label"`
	SunScale      float64 `json:"sun_scale"`
	GlowIntensity float64 `json:"glow_intensity"`
	Night         bool    `json:"night"`
}

var uvBands = []band[string]{
	{atMost(2), "Bajo"},
	{atMost(5), "Moderado"},
	{atMost(7), "Alto"},
	{atMost(10), "Muy alto"},
	{nil, "Extremo"},
}

// ClassifyUV buckets a UV index; hour is the local hour of day (0–23).
func ClassifyUV(uv float64, hour int) UVClass {
	intensity := clamp(uv/uvScaleMax, 0, 1)
	if math.IsNaN(intensity) {
		intensity = 0
	}
	return UVClass{
		Label:         firstMatch(uvBands, uv),
		SunScale:      0.8 + 0.6*intensity,
		GlowIntensity: intensity,
		Night:         IsNight(hour),
	}
}

// IsNight reports whether hour falls in the dashboard's night window,
// 20:00–06:59.
func IsNight(hour int) bool {
	return hour >= 20 || hour < 7
}
