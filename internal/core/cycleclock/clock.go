// Package cycleclock drives the day cycle: which phase is active, how many
// seconds are left in it and which alert thresholds already fired.
package cycleclock

import (
	"fmt"
	"sort"

	"nightcircle/internal/core/alerts"
	"nightcircle/internal/core/cue"
	"nightcircle/internal/core/model"
)

// Status is the externally visible state of the clock.
type Status string

const (
	StatusIdle     Status = "idle"
	StatusRunning  Status = "running"
	StatusPaused   Status = "paused"
	StatusFinished Status = "finished"
)

const noPhase = -1

// Step reports what a single Advance did.
type Step struct {
	Fired        []int
	PhaseChanged bool
	Finished     bool
}

// Clock is the cycle state machine. It is not safe for concurrent use;
// Session serialises access to it.
type Clock struct {
	phases           model.PhaseTable
	alerts           *alerts.Set
	player           cue.Player
	phaseIndex       int
	secondsRemaining int
	running          bool
	fired            map[int]struct{}
}

// New creates an idle clock over a validated phase table.
func New(phases model.PhaseTable, set *alerts.Set, player cue.Player) (*Clock, error) {
	if err := phases.Validate(); err != nil {
		return nil, fmt.Errorf("validate phases: %w", err)
	}
	if set == nil {
		set = alerts.New()
	}
	if player == nil {
		player = cue.Nop{}
	}
	return &Clock{
		phases:     phases.Clone(),
		alerts:     set,
		player:     player,
		phaseIndex: noPhase,
		fired:      make(map[int]struct{}),
	}, nil
}

// Start restarts the cycle from the first phase.
func (clock *Clock) Start() {
	clock.phaseIndex = 0
	clock.secondsRemaining = clock.phases[0].DurationSeconds
	clock.clearFired()
	clock.running = true
}

// Stop freezes the countdown in place and reports whether it was running.
func (clock *Clock) Stop() bool {
	if !clock.running {
		return false
	}
	clock.running = false
	return true
}

// Resume continues a paused countdown from where it stopped.
func (clock *Clock) Resume() bool {
	if clock.Status() != StatusPaused {
		return false
	}
	clock.running = true
	return true
}

// Reset returns the clock to idle regardless of its current state.
func (clock *Clock) Reset() {
	clock.phaseIndex = noPhase
	clock.secondsRemaining = 0
	clock.running = false
	clock.clearFired()
}

// Advance moves the countdown forward by one second. Thresholds are checked
// before the phase boundary so a cue can fire on the last second of a phase.
func (clock *Clock) Advance() Step {
	var step Step
	if !clock.running || clock.secondsRemaining <= 0 {
		return step
	}

	next := clock.secondsRemaining - 1
	for _, threshold := range clock.alerts.Values() {
		if next <= threshold && next > threshold-1 {
			if _, done := clock.fired[threshold]; done {
				continue
			}
			clock.player.Fire()
			clock.fired[threshold] = struct{}{}
			step.Fired = append(step.Fired, threshold)
		}
	}

	if next > 0 {
		clock.secondsRemaining = next
		return step
	}

	clock.clearFired()
	if clock.phaseIndex >= len(clock.phases)-1 {
		clock.running = false
		clock.secondsRemaining = 0
		step.Finished = true
		return step
	}
	clock.phaseIndex++
	clock.secondsRemaining = clock.phases[clock.phaseIndex].DurationSeconds
	step.PhaseChanged = true
	return step
}

// Status derives the externally visible state.
func (clock *Clock) Status() Status {
	switch {
	case clock.running:
		return StatusRunning
	case clock.phaseIndex == noPhase:
		return StatusIdle
	case clock.secondsRemaining == 0:
		return StatusFinished
	default:
		return StatusPaused
	}
}

// PhaseIndex returns the active phase index, or -1 when idle.
func (clock *Clock) PhaseIndex() int {
	return clock.phaseIndex
}

// SecondsRemaining returns the countdown within the active phase.
func (clock *Clock) SecondsRemaining() int {
	return clock.secondsRemaining
}

// Running reports whether the clock is advancing.
func (clock *Clock) Running() bool {
	return clock.running
}

// Alerts exposes the threshold set the clock checks on every tick.
func (clock *Clock) Alerts() *alerts.Set {
	return clock.alerts
}

// Snapshot copies the current state for presentation.
func (clock *Clock) Snapshot() Snapshot {
	snapshot := Snapshot{
		Status:           clock.Status(),
		PhaseIndex:       clock.phaseIndex,
		SecondsRemaining: clock.secondsRemaining,
		Running:          clock.running,
		Thresholds:       clock.alerts.Values(),
		Fired:            clock.firedValues(),
		Phases:           clock.phases.Clone(),
	}
	if clock.phaseIndex != noPhase {
		snapshot.Phase = clock.phases[clock.phaseIndex]
		snapshot.HasPhase = true
	}
	return snapshot
}

func (clock *Clock) clearFired() {
	clear(clock.fired)
}

func (clock *Clock) firedValues() []int {
	values := make([]int, 0, len(clock.fired))
	for threshold := range clock.fired {
		values = append(values, threshold)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(values)))
	return values
}
