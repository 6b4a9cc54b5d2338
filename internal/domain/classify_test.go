package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyVisibility(t *testing.T) {
	tests := []struct {
		km        float64
		label     string
		particles int
	}{
		{0, "Muy baja", 22},
		{1.9, "Muy baja", 22},
		{2.0, "Reducida", 16},
		{4.99, "Reducida", 16},
		{5, "Moderada", 10},
		{8, "Buena", 8},
		{25, "Buena", 8},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			got := ClassifyVisibility(tt.km)
			assert.Equal(t, tt.label, got.Label, "km=%v", tt.km)
			assert.Equal(t, tt.particles, got.ParticleCount, "km=%v", tt.km)
			assert.NotEmpty(t, got.Gradient[0])
			assert.NotEmpty(t, got.Gradient[1])
		})
	}
}

func TestClassifyPrecipitation(t *testing.T) {
	tests := []struct {
		name     string
		mm       float64
		label    string
		droplets int
		fill     float64
	}{
		{"dry", 0, "Sin lluvia", 0, 0},
		{"drizzle", 1, "Llovizna", 0, 0.01},
		{"drizzle edge", 2.4, "Llovizna", 1, 0.024},
		{"light rain", 5, "Lluvia ligera", 3, 0.05},
		{"moderate rain", 10, "Lluvia moderada", 6, 0.1},
		{"heavy rain", 50, "Lluvia intensa", 30, 0.5},
		{"storm at budget", 100, "Tormenta", 60, 1},
		{"storm caps droplets", 250, "Tormenta", 60, 1},
		{"negative reads as drizzle", -1, "Llovizna", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyPrecipitation(tt.mm, DefaultParticleBudget)
			assert.Equal(t, tt.label, got.Label)
			assert.Equal(t, tt.droplets, got.DropletCount)
			assert.InDelta(t, tt.fill, got.WaterFill, 1e-9)
		})
	}
}

func TestClassifyPrecipitation_CustomBudget(t *testing.T) {
	got := ClassifyPrecipitation(50, 10)
	assert.Equal(t, 5, got.DropletCount)
}

func TestClassifyHumidity(t *testing.T) {
	tests := []struct {
		pct   float64
		label string
	}{
		{10, "Seco"},
		{29.9, "Seco"},
		{30, "Moderado"},
		{59.9, "Moderado"},
		{60, "Húmedo"},
		{84.9, "Húmedo"},
		{85, "Condensado"},
		{100, "Condensado"},
	}

	for _, tt := range tests {
		got := ClassifyHumidity(tt.pct)
		assert.Equal(t, tt.label, got.Label, "pct=%v", tt.pct)
		assert.InDelta(t, tt.pct/100, got.RingFill, 1e-9)
	}
}

func TestClassifyFeelsLike(t *testing.T) {
	tests := []struct {
		name   string
		feels  float64
		actual float64
		label  string
		delta  float64
		glow   string
	}{
		{"much colder", -5.2, 0, "Mucho más frío", -5.2, GlowCool},
		{"much colder edge", 15, 20, "Mucho más frío", -5, GlowCool},
		{"colder", 16, 20, "Más frío", -4, GlowCool},
		{"similar at cold edge", 17, 20, "Similar", -3, GlowCool},
		{"similar", 20, 20, "Similar", 0, GlowWarm},
		{"similar at warm edge", 23, 20, "Similar", 3, GlowWarm},
		{"warmer", 24, 20, "Más cálido", 4, GlowWarm},
		{"warmer just above edge", 23.1, 20, "Más cálido", 3.1, GlowWarm},
		{"warmer at upper edge", 35, 30, "Más cálido", 5, GlowWarm},
		{"much warmer beyond", 35.1, 30, "Mucho más cálido", 5.1, GlowWarm},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyFeelsLike(tt.feels, tt.actual)
			assert.Equal(t, tt.label, got.Label)
			assert.InDelta(t, tt.delta, got.Delta, 1e-9)
			assert.Equal(t, tt.glow, got.BulbGlow)
		})
	}
}

func TestClassifyFeelsLike_BandsUnroundedDelta(t *testing.T) {
	tests := []struct {
		name   string
		feels  float64
		actual float64
		label  string
		delta  float64
	}{
		{"just above warm edge", 25, 21.96, "Más cálido", 3.0},
		{"float noise above warm edge", 6.4, 3.4, "Más cálido", 3.0},
		{"just above much warmer edge", 35.04, 30, "Mucho más cálido", 5.0},
		{"just below cold edge", 20, 23.04, "Más frío", -3.0},
		{"just inside much colder edge", 15.04, 20, "Más frío", -5.0},
		{"just beyond much colder edge", 14.96, 20, "Mucho más frío", -5.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyFeelsLike(tt.feels, tt.actual)
			assert.Equal(t, tt.label, got.Label)
			assert.InDelta(t, tt.delta, got.Delta, 1e-9)
		})
	}
}

func TestClassifyWind(t *testing.T) {
	tests := []struct {
		kmh    float64
		label  string
		period float64
	}{
		{0, "Calma", 4},
		{4.9, "Calma", 4},
		{5, "Brisa ligera", 3},
		{15, "Hay brisa", 2},
		{30, "Viento fuerte", 1.2},
		{50, "Temporal", 0.6},
	}

	for _, tt := range tests {
		got := ClassifyWind(tt.kmh)
		assert.Equal(t, tt.label, got.Label, "kmh=%v", tt.kmh)
		assert.Equal(t, tt.period, got.AnimationSeconds, "kmh=%v", tt.kmh)
	}

	assert.InDelta(t, 0.049, ClassifyWind(4.9).ArcFill, 1e-9)
	assert.Equal(t, 1.0, ClassifyWind(120).ArcFill)
}

func TestClassifyUV(t *testing.T) {
	tests := []struct {
		uv    float64
		label string
	}{
		{0, "Bajo"},
		{2, "Bajo"},
		{2.1, "Moderado"},
		{5, "Moderado"},
		{7, "Alto"},
		{10, "Muy alto"},
		{10.1, "Extremo"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.label, ClassifyUV(tt.uv, 12).Label, "uv=%v", tt.uv)
	}
}

func TestClassifyUV_Scale(t *testing.T) {
	low := ClassifyUV(0, 12)
	assert.InDelta(t, 0.8, low.SunScale, 1e-9)
	assert.Equal(t, 0.0, low.GlowIntensity)

	mid := ClassifyUV(5.5, 12)
	assert.InDelta(t, 1.1, mid.SunScale, 1e-9)
	assert.InDelta(t, 0.5, mid.GlowIntensity, 1e-9)

	high := ClassifyUV(14, 12)
	assert.InDelta(t, 1.4, high.SunScale, 1e-9)
	assert.Equal(t, 1.0, high.GlowIntensity)
}

func TestClassifyUV_Night(t *testing.T) {
	assert.True(t, ClassifyUV(0, 22).Night)
	assert.True(t, ClassifyUV(0, 6).Night)
	assert.False(t, ClassifyUV(0, 7).Night)
	assert.False(t, ClassifyUV(0, 19).Night)
}

func TestClassifiers_NaN(t *testing.T) {
	nan := math.NaN()

	assert.Equal(t, "Buena", ClassifyVisibility(nan).Label)
	assert.Equal(t, "Condensado", ClassifyHumidity(nan).Label)
	assert.Equal(t, "Temporal", ClassifyWind(nan).Label)
	assert.Equal(t, "Extremo", ClassifyUV(nan, 12).Label)
	assert.Equal(t, 0.0, ClassifyUV(nan, 12).GlowIntensity)

	p := ClassifyPrecipitation(nan, DefaultParticleBudget)
	assert.Equal(t, "Tormenta", p.Label)
	assert.Equal(t, 0, p.DropletCount)
	assert.Equal(t, 0.0, p.WaterFill)
}

func TestClassifiers_Deterministic(t *testing.T) {
	for _, v := range []float64{0, 1.9, 2, 7.5, 49.9, 100} {
		assert.Equal(t, ClassifyVisibility(v), ClassifyVisibility(v))
		assert.Equal(t, ClassifyPrecipitation(v, 60), ClassifyPrecipitation(v, 60))
		assert.Equal(t, ClassifyWind(v), ClassifyWind(v))
		assert.Equal(t, ClassifyUV(v, 12), ClassifyUV(v, 12))
	}
}

func TestIsNight(t *testing.T) {
	for h := 0; h < 24; h++ {
		assert.Equal(t, h >= 20 || h < 7, IsNight(h), "hour %d", h)
	}
}
