package domain

import (
	"sort"
	"time"
)

// DefaultHourlySlots is the length of the dashboard's hourly strip.
const DefaultHourlySlots = 6

// NowLabel marks the first slot of the hourly strip.
const NowLabel = "AHORA"

// HourlySlot is one entry of the hourly strip.
type HourlySlot struct {
	Label         string    `json:"time"`
	Icon          string    `json:"icon"`
	TemperatureC  *float64  `json:"temp"`
	ConditionCode *int      `json:"coco"`
	ObservedAt    time.Time `json:"fecha_hora"`
}

// timed returns the observations that carry a timestamp, oldest first.
func timed(series []Observation) []Observation {
	out := make([]Observation, 0, len(series))
	for _, o := range series {
		if o.ObservedAt != nil {
			out = append(out, o)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ObservedAt.Before(*out[j].ObservedAt)
	})
	return out
}

// currentIndex is the position of the newest observation at or before now,
// or 0 when every observation is in the future.
func currentIndex(sorted []Observation, now time.Time) int {
	idx := 0
	for i, o := range sorted {
		if o.ObservedAt.After(now) {
			break
		}
		idx = i
	}
	return idx
}

// CurrentObservation returns the newest observation at or before now, falling
// back to the oldest one. Observations without a timestamp are ignored.
func CurrentObservation(series []Observation, now time.Time) (Observation, bool) {
	sorted := timed(series)
	if len(sorted) == 0 {
		return Observation{}, false
	}
	return sorted[currentIndex(sorted, now)], true
}

// HourlyStrip builds up to limit slots starting at the current observation.
// Labels and night icons use now's location; limit <= 0 means
// DefaultHourlySlots.
func HourlyStrip(series []Observation, now time.Time, limit int, icons IconSet) []HourlySlot {
	if limit <= 0 {
		limit = DefaultHourlySlots
	}
	sorted := timed(series)
	if len(sorted) == 0 {
		return nil
	}

	upcoming := sorted[currentIndex(sorted, now):]
	if len(upcoming) > limit {
		upcoming = upcoming[:limit]
	}

	slots := make([]HourlySlot, 0, len(upcoming))
	for i, o := range upcoming {
		local := o.ObservedAt.In(now.Location())
		label := NowLabel
		if i > 0 {
			label = local.Format("3 PM")
		}
		slots = append(slots, HourlySlot{
			Label:         label,
			Icon:          icons.Lookup(o.ConditionCode, local.Hour()).Icon,
			TemperatureC:  o.TemperatureC,
			ConditionCode: o.ConditionCode,
			ObservedAt:    local,
		})
	}
	return slots
}
