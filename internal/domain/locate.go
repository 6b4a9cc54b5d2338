package domain

import (
	"context"
	"log/slog"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Values of DashboardReading.GeoSource.
const (
	GeoSourceTable   = "table"
	GeoSourceForward = "forward"
	GeoSourceFailed  = "failed"
	GeoSourceUnknown = "unknown"
)

// geocodeCountry scopes geocoder lookups for provinces outside the table.
const geocodeCountry = "Argentina"

// provinceCoords holds the reference point of each province's representative
// station, keyed by NormalizeProvince.
var provinceCoords = map[string]Geo{
	"buenos aires":        {Lat: -34.9, Lon: -57.9},
	"catamarca":           {Lat: -28.4, Lon: -65.7},
	"chaco":               {Lat: -27.4, Lon: -58.9},
	"chubut":              {Lat: -43.3, Lon: -65.1},
	"cordoba":             {Lat: -31.4, Lon: -64.1},
	"corrientes":          {Lat: -27.9, Lon: -58.0},
	"entre rios":          {Lat: -31.7, Lon: -60.5},
	"formosa":             {Lat: -26.1, Lon: -58.1},
	"jujuy":               {Lat: -24.1, Lon: -65.2},
	"la pampa":            {Lat: -36.6, Lon: -64.2},
	"la rioja":            {Lat: -29.4, Lon: -66.8},
	"mendoza":             {Lat: -32.8, Lon: -68.8},
	"misiones":            {Lat: -27.3, Lon: -55.8},
	"neuquen":             {Lat: -38.9, Lon: -68.0},
	"rio negro":           {Lat: -40.8, Lon: -65.4},
	"salta":               {Lat: -24.7, Lon: -65.4},
	"san juan":            {Lat: -31.5, Lon: -68.5},
	"san luis":            {Lat: -33.3, Lon: -66.3},
	"santa cruz":          {Lat: -51.6, Lon: -69.2},
	"santa fe":            {Lat: -31.6, Lon: -60.7},
	"santiago del estero": {Lat: -27.8, Lon: -64.2},
	"tierra del fuego":    {Lat: -54.8, Lon: -68.3},
	"tucuman":             {Lat: -26.8, Lon: -65.2},
}

// NormalizeProvince folds a province name to its lookup key: accents
// stripped, lower case, underscores and repeated spaces collapsed.
func NormalizeProvince(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, name)
	if err != nil {
		folded = name
	}
	folded = strings.ReplaceAll(folded, "_", " ")
	return strings.ToLower(strings.Join(strings.Fields(folded), " "))
}

// ProvinceCoordinates returns the built-in reference point for a province.
func ProvinceCoordinates(name string) (Geo, bool) {
	g, ok := provinceCoords[NormalizeProvince(name)]
	return g, ok
}

// LocateProvince attaches map coordinates to a reading. Known provinces are
// resolved from the built-in table; anything else goes to geocoder when one is
// configured. A failed lookup never drops the reading.
func LocateProvince(ctx context.Context, reading DashboardReading, geocoder Geocoder, logger *slog.Logger) DashboardReading {
	if g, ok := ProvinceCoordinates(reading.Provincia); ok {
		reading.Geo = &g
		reading.GeoSource = GeoSourceTable
		return reading
	}

	if geocoder == nil {
		reading.GeoSource = GeoSourceUnknown
		return reading
	}

	result, err := geocoder.ForwardGeocode(ctx, reading.Provincia, geocodeCountry)
	if err != nil {
		logger.Warn("forward geocoding failed",
			"reading_id", reading.ID,
			"provincia", reading.Provincia,
			"error", err,
		)
		reading.GeoSource = GeoSourceFailed
		return reading
	}
	if result.Lat == 0 && result.Lon == 0 {
		reading.GeoSource = GeoSourceUnknown
		return reading
	}

	reading.Geo = &Geo{Lat: result.Lat, Lon: result.Lon}
	reading.GeoSource = GeoSourceForward
	return reading
}
