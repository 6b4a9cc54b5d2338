package domain

import "github.com/jonboulle/clockwork"

// clock is the package-level time source. It supplies the UV estimate's
// default observation time and every reading's ProcessedAt.
var clock = clockwork.NewRealClock()

// SetClock swaps the time source. Pass nil to reset to real time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}
