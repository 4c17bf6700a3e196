package preferences

import (
	"sort"
	"time"

	"nightcircle/internal/core/model"
)

// Settings defines editable user preferences.
type Settings struct {
	Alerts       []int
	SoundEnabled bool

	// Phases overrides the reference cycle when non-empty.
	Phases model.PhaseTable

	AlwaysShowTimer bool
	// TimerOpacity is the timer window opacity in percent.
	TimerOpacity int
}

const (
	DefaultTimerOpacity = 92
	MinTimerOpacity     = 30
	MaxTimerOpacity     = 100
)

// DefaultSettings returns default settings for NightCircle.
func DefaultSettings() Settings {
	return Settings{
		Alerts:          []int{model.DefaultWarningSeconds},
		SoundEnabled:    true,
		AlwaysShowTimer: true,
		TimerOpacity:    DefaultTimerOpacity,
	}
}

// ValidTimerOpacity reports whether percent is an accepted opacity.
func ValidTimerOpacity(percent int) bool {
	return percent >= MinTimerOpacity && percent <= MaxTimerOpacity
}

// TimerAlpha converts TimerOpacity to an 8-bit alpha. Out-of-range values
// use the default.
func (settings Settings) TimerAlpha() uint8 {
	percent := settings.TimerOpacity
	if !ValidTimerOpacity(percent) {
		percent = DefaultTimerOpacity
	}
	return uint8((percent*255 + 50) / 100)
}

// PhaseTable returns the override table, or the reference cycle when none is set.
func (settings Settings) PhaseTable() model.PhaseTable {
	if len(settings.Phases) == 0 {
		return model.DefaultPhases()
	}
	return settings.Phases.Clone()
}

// CycleConfig converts settings to the timer session configuration.
func (settings Settings) CycleConfig() model.CycleConfig {
	return model.CycleConfig{
		Phases:        settings.PhaseTable(),
		DefaultAlerts: append([]int(nil), settings.Alerts...),
		TickInterval:  time.Second,
		SoundEnabled:  settings.SoundEnabled,
	}
}

// AlertChanges lists thresholds to add and remove to go from previous to next.
func AlertChanges(previous, next []int) (added, removed []int) {
	before := make(map[int]bool, len(previous))
	for _, threshold := range previous {
		before[threshold] = true
	}
	after := make(map[int]bool, len(next))
	for _, threshold := range next {
		after[threshold] = true
		if !before[threshold] {
			added = append(added, threshold)
		}
	}
	for threshold := range before {
		if !after[threshold] {
			removed = append(removed, threshold)
		}
	}
	sort.Ints(added)
	sort.Ints(removed)
	return added, removed
}
