package domain

import "time"

// ComputeUVEstimate approximates the UV index from hour of day, condition
// code, and temperature. It is a dashboard heuristic, not a radiative model.
// A nil at uses the current time. Returns nil when tempC or conditionCode is
// missing.
func ComputeUVEstimate(tempC *float64, conditionCode *int, at *time.Time) *float64 {
	if tempC == nil || conditionCode == nil {
		return nil
	}

	now := clock.Now()
	if at != nil {
		now = *at
	}

	uv := uvBase(now.Hour()) * (1 - cloudFactor(*conditionCode)) * uvTempFactor(*tempC)
	uv = round1(uv)
	return &uv
}

func uvBase(hour int) float64 {
	switch {
	case hour >= 10 && hour <= 15:
		return 8
	case (hour >= 8 && hour < 10) || (hour > 15 && hour <= 17):
		return 4
	default:
		return 1
	}
}

// cloudFactor is the share of UV blocked by the sky condition.
func cloudFactor(code int) float64 {
	switch code {
	case 1, 2:
		return 0
	case 3:
		return 0.3
	case 7, 17:
		return 0.6
	default:
		return 0.4
	}
}

func uvTempFactor(tempC float64) float64 {
	return clamp((tempC-10)/15, 0.8, 1.2)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
