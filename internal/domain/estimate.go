package domain

import "math"

// Fallbacks for inputs the backfill needs but the station did not report.
const (
	defaultDewPointSpread = 2.0    // °C below the air temperature
	defaultPressureHPa    = 1013.0 // sea-level standard
	defaultConditionCode  = 2
)

// EstimateConditionCode infers a condition code from station readings for
// rows that arrive without one. Snow and precipitation take precedence, then
// fog (near-saturated air with a small dew-point spread), then cloud cover
// from humidity. Missing dew point defaults to temperature − 2 °C, missing
// pressure to 1013 hPa, missing precipitation and snow to zero. Returns nil
// without a temperature.
func EstimateConditionCode(obs Observation) *int {
	if obs.TemperatureC == nil {
		return nil
	}
	code := conditionCode(
		*obs.TemperatureC,
		valueOr(obs.DewPointC, *obs.TemperatureC-defaultDewPointSpread),
		valueOr(obs.HumidityPct, 50),
		valueOr(obs.PressureHPa, defaultPressureHPa),
		valueOr(obs.PrecipitationMM, 0),
		valueOr(obs.SnowMM, 0),
	)
	return &code
}

func conditionCode(temp, dwpt, rhum, pres, precip, snow float64) int {
	spread := math.Abs(temp - dwpt)

	switch {
	case snow >= 5:
		return 23
	case snow >= 2:
		return 22
	case snow > 0:
		return 21
	case precip >= 50:
		return 27
	case precip >= 20 && pres < 1005:
		return 27
	case precip >= 20:
		return 26
	case precip >= 15:
		return 9
	case precip >= 5:
		return 8
	case precip >= 2.5:
		return 7
	case rhum >= 98 && spread <= 1:
		return 5
	case rhum >= 95 && spread <= 2:
		return 4
	case rhum >= 85:
		return 3
	case rhum >= 70:
		return 2
	case rhum < 55 && spread > 6:
		return 1
	default:
		return defaultConditionCode
	}
}

// EstimateVisibility approximates visibility in km from precipitation, the
// dew-point spread, humidity, fog codes and wind, clamped to [0.2, 22] and
// rounded to one decimal. code may be nil. Returns nil without temperature
// and humidity.
func EstimateVisibility(obs Observation, code *int) *float64 {
	if obs.TemperatureC == nil || obs.HumidityPct == nil {
		return nil
	}
	v := visibilityKm(
		*obs.TemperatureC,
		*obs.HumidityPct,
		valueOr(obs.DewPointC, *obs.TemperatureC-defaultDewPointSpread),
		valueOr(obs.PrecipitationMM, 0),
		valueOr(obs.SnowMM, 0),
		valueOr(obs.WindKmh, 0),
		code,
	)
	return &v
}

func visibilityKm(temp, rhum, dwpt, prcp, snow, wspd float64, code *int) float64 {
	if snow > 0 {
		return round1(math.Max(100, 1500-snow*80) / 1000)
	}
	if prcp > 0 {
		return round1(math.Max(300, 6000-prcp*1000) / 1000)
	}

	switch spread := temp - dwpt; {
	case spread < 0.5:
		return 0.2
	case spread < 1:
		return 0.4
	case spread < 2:
		return 0.8
	case spread < 3:
		return 2
	}

	vis := 22.0
	switch {
	case rhum > 95:
		vis -= 15
	case rhum > 85:
		vis -= 10
	case rhum > 75:
		vis -= 5
	case rhum > 65:
		vis -= 3
	}
	if code != nil && (*code == 4 || *code == 5) {
		vis = 0.5
	}
	// Wind lifts dust.
	if wspd > 35 {
		vis -= 5
	}
	return round1(clamp(vis, 0.2, 22))
}

func valueOr(p *float64, fallback float64) float64 {
	if p == nil {
		return fallback
	}
	return *p
}
