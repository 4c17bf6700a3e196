package model

import "time"

// CycleConfig contains runtime settings for a timer session.
type CycleConfig struct {
	Phases        PhaseTable
	DefaultAlerts []int
	TickInterval  time.Duration
	SoundEnabled  bool
}

// DefaultCycleConfig returns the reference cycle with a single 30 second alert.
func DefaultCycleConfig() CycleConfig {
	return CycleConfig{
		Phases:        DefaultPhases(),
		DefaultAlerts: []int{DefaultWarningSeconds},
		TickInterval:  time.Second,
		SoundEnabled:  true,
	}
}
