package domain

// Fallbacks used when a condition code is missing or unmapped.
const (
	FallbackIcon        = "unknown.svg"
	FallbackDescription = "Desconocido"
)

// ConditionIcon pairs an icon file with a human-readable description.
type ConditionIcon struct {
	Icon        string
	Description string
}

// IconSet maps condition codes (coco) to icons. The zero value is usable and
// resolves every code to the fallbacks.
type IconSet struct {
	byCode map[int]ConditionIcon
	night  map[string]string
}

// NewIconSet builds an IconSet from a code table and a day→night icon table.
// Either map may be nil.
func NewIconSet(byCode map[int]ConditionIcon, night map[string]string) IconSet {
	return IconSet{byCode: byCode, night: night}
}

// Lookup resolves a condition code for a local hour of day, swapping in the
// night variant of the icon when one exists and the hour is at night.
func (s IconSet) Lookup(code *int, hour int) ConditionIcon {
	if code == nil {
		return ConditionIcon{Icon: FallbackIcon, Description: FallbackDescription}
	}
	ci, ok := s.byCode[*code]
	if !ok {
		return ConditionIcon{Icon: FallbackIcon, Description: FallbackDescription}
	}
	if IsNight(hour) {
		if n, ok := s.night[ci.Icon]; ok {
			ci.Icon = n
		}
	}
	return ci
}

// DefaultIconSet returns the icon table of the upstream weather feed.
func DefaultIconSet() IconSet {
	return NewIconSet(map[int]ConditionIcon{
		1:  {"clear.svg", "Despejado"},
		2:  {"fair.svg", "Parcialmente despejado"},
		3:  {"cloudy.svg", "Nublado"},
		4:  {"overcast.svg", "Cubierto"},
		5:  {"fog.svg", "Niebla"},
		6:  {"freezing_fog.svg", "Niebla helada"},
		7:  {"light_rain.svg", "Lluvia ligera"},
		8:  {"rain.svg", "Lluvia"},
		9:  {"heavy_rain.svg", "Lluvia intensa"},
		10: {"freezing_rain.svg", "Lluvia helada"},
		11: {"heavy_sleet.svg", "Lluvia helada intensa"},
		12: {"sleet.svg", "Aguanieve"},
		13: {"heavy_sleet.svg", "Aguanieve intensa"},
		14: {"light_snowfall.svg", "Nevada ligera"},
		15: {"snowfall.svg", "Nevada"},
		16: {"heavy_snowfall.svg", "Nevada intensa"},
		17: {"rain.svg", "Chubasco de lluvia"},
		18: {"heavy_rain.svg", "Chubasco de lluvia intensa"},
		19: {"sleet.svg", "Chubasco de aguanieve"},
		20: {"heavy_sleet.svg", "Chubasco de aguanieve intensa"},
		21: {"light_snowfall.svg", "Chubasco de nieve"},
		22: {"heavy_snowfall.svg", "Chubasco de nieve intensa"},
		23: {"lightning.svg", "Relámpagos"},
		24: {"hail.svg", "Granizo"},
		25: {"thunderstorms.svg", "Tormenta eléctrica"},
		26: {"heavy_thunderstorm.svg", "Tormenta eléctrica fuerte"},
		27: {"storm.svg", "Tormenta"},
		28: {"wind.svg", FallbackDescription}, // the feed ships an icon but no text for 28
	}, map[string]string{
		"clear.svg": "clear_night.svg",
		"fair.svg":  "fair_night.svg",
	})
}
