package animation

import "time"

// DefaultConfig returns the alert pulse timing: a slightly irregular
// half-second blink.
func DefaultConfig() Config {
	return Config{
		LitDuration: Range{
			Min: 450 * time.Millisecond,
			Max: 550 * time.Millisecond,
		},
		DimDuration: Range{
			Min: 250 * time.Millisecond,
			Max: 350 * time.Millisecond,
		},
	}
}
