// Package domain turns raw per-province weather observations into dashboard
// readings: derived metrics plus the presentation buckets the dashboard draws.
//
// # Data Source
//
// Observations are the hourly records the dashboard's data job publishes for
// each Argentine province, one flat JSON object per province:
//
//	{"provincia":"Córdoba","temperatura":24.1,"humedad":61,"viento":12.4,
//	 "visibilidad":18.0,"precipitacion":0.0,"uvIndex":null,"coco":2,
//	 "fecha_hora":"2024-06-15 12:00:00 -03","condicion":"Parcialmente despejado"}
//
// Field names drift between producers ("hum", "humidity", "humedad"; "wind",
// "viento", "wspd"). ParseRawObservation accepts every alias; JSON null and a
// missing key both mean "no data".
//
// # Derived Metrics
//
// Feels-like temperature:
//
//	T <= 10°C and W >= 4.8 km/h  →  wind chill
//	  13.12 + 0.6215·T − 11.37·W^0.16 + 0.3965·T·W^0.16
//	anything else               →  Rothfusz heat index, evaluated in °F
//	                               and converted back to °C
//
// Cold calm air therefore falls through to the heat index. That is how the
// dashboard has always behaved and is kept as-is.
//
// UV estimate (a heuristic, not a radiative-transfer model):
//
//	base      hour 10–15 → 8 | hour 8–9 or 16–17 → 4 | otherwise 1
//	cloud     coco 1,2 → 0.0 | 3 → 0.3 | 7,17 → 0.6 | other → 0.4
//	temp      clamp((T − 10) / 15, 0.8, 1.2)
//	uv        base · (1 − cloud) · temp
//
// Both results are rounded to one decimal, half away from zero.
//
// # Classification
//
// Every classifier walks an ordered band table and stops at the first match;
// the last band is the catch-all, so every finite input lands in exactly one
// bucket:
//
//	Visibility (km)     <2 Muy baja | <5 Reducida | <8 Moderada | Buena
//	Precipitation (mm)  =0 Sin lluvia | <2.5 Llovizna | <10 Lluvia ligera |
//	                    <50 Lluvia moderada | <100 Lluvia intensa | Tormenta
//	Humidity (%)        <30 Seco | <60 Moderado | <85 Húmedo | Condensado
//	Feels-like delta    ≤−5 Mucho más frío | <−3 Más frío | >5 Mucho más cálido |
//	                    >3 Más cálido | Similar
//	Wind (km/h)         <5 Calma | <15 Brisa ligera | <30 Hay brisa |
//	                    <50 Viento fuerte | Temporal
//	UV index            ≤2 Bajo | ≤5 Moderado | ≤7 Alto | ≤10 Muy alto | Extremo
//
// Night is hour 20–23 or 0–6 local time. It drives the UV sun/moon swap and
// the night variants of the clear and fair condition icons.
//
// # Reading IDs
//
// Reading IDs are UUIDv5 values over provincia|observed-time. Replaying the
// same observation yields the same ID, so downstream upserts stay idempotent.
package domain
