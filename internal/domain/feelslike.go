package domain

import "math"

// Wind chill only applies at or below this temperature and at or above this
// wind speed.
const (
	windChillMaxTempC   = 10.0
	windChillMinWindKmh = 4.8
)

// ComputeFeelsLike returns the perceived temperature in °C, rounded to one
// decimal, or nil if any input is missing.
func ComputeFeelsLike(tempC, humidityPct, windKmh *float64) *float64 {
	if tempC == nil || humidityPct == nil || windKmh == nil {
		return nil
	}

	var v float64
	if *tempC <= windChillMaxTempC && *windKmh >= windChillMinWindKmh {
		v = windChill(*tempC, *windKmh)
	} else {
		v = heatIndex(*tempC, *humidityPct)
	}

	v = round1(v)
	return &v
}

// windChill is the North American wind chill index (°C, km/h).
func windChill(t, w float64) float64 {
	w16 := math.Pow(w, 0.16)
	return 13.12 + 0.6215*t - 11.37*w16 + 0.3965*t*w16
}

// heatIndex applies the Rothfusz regression in Fahrenheit and returns °C.
func heatIndex(t, h float64) float64 {
	tf := t*9/5 + 32
	hi := -42.379 +
		2.04901523*tf +
		10.14333127*h -
		0.22475541*tf*h -
		0.00683783*tf*tf -
		0.05481717*h*h +
		0.00122874*tf*tf*h +
		0.00085282*tf*h*h -
		0.00000199*tf*tf*h*h
	return (hi - 32) * 5 / 9
}

// round1 rounds to one decimal place, half away from zero.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
