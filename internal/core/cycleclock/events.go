package cycleclock

import (
	"time"

	"nightcircle/internal/core/model"
)

// EventType defines the type of Session event.
type EventType string

const (
	EventStateChange   EventType = "state_change"
	EventTick          EventType = "tick"
	EventAlert         EventType = "alert"
	EventPhaseChange   EventType = "phase_change"
	EventFinished      EventType = "finished"
	EventAlertsChanged EventType = "alerts_changed"
)

// Snapshot is an immutable copy of the clock state.
type Snapshot struct {
	Status           Status
	PhaseIndex       int
	Phase            model.PhaseDefinition
	HasPhase         bool
	SecondsRemaining int
	Running          bool
	Thresholds       []int
	Fired            []int
	Phases           model.PhaseTable
}

// Event represents a Session update for observers. Every tick produces
// exactly one event, typed after the most significant thing that happened.
type Event struct {
	Type     EventType
	Snapshot Snapshot
	Fired    []int
	At       time.Time
}
