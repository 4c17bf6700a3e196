package model

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyPhaseTable indicates a cycle without phases.
	ErrEmptyPhaseTable = errors.New("phase table is empty")
	// ErrInvalidDuration indicates a phase whose duration is not positive.
	ErrInvalidDuration = errors.New("phase duration must be positive")
	// ErrUnknownCategory indicates a phase category outside the known variants.
	ErrUnknownCategory = errors.New("unknown phase category")
)

// Category tags a phase as open exploration or a closing circle.
type Category string

const (
	CategoryExploration Category = "exploration"
	CategoryClosing     Category = "closing"
)

// Valid reports whether the category is one of the known variants.
func (category Category) Valid() bool {
	return category == CategoryExploration || category == CategoryClosing
}

// PhaseDefinition describes one segment of the day cycle.
type PhaseDefinition struct {
	Name            string
	DurationSeconds int
	WarningSeconds  int
	Category        Category
}

// PhaseTable is the ordered cycle of phases.
type PhaseTable []PhaseDefinition

// WarningOptions lists the thresholds offered to the player, in seconds.
var WarningOptions = []int{10, 20, 30, 60, 90}

// DefaultWarningSeconds is the threshold a new session starts with.
const DefaultWarningSeconds = 30

// DefaultPhases returns the reference day cycle.
func DefaultPhases() PhaseTable {
	return PhaseTable{
		{Name: "Exploration", DurationSeconds: 270, WarningSeconds: DefaultWarningSeconds, Category: CategoryExploration},
		{Name: "Circle 1 Closing", DurationSeconds: 180, WarningSeconds: DefaultWarningSeconds, Category: CategoryClosing},
		{Name: "Between Circles", DurationSeconds: 210, WarningSeconds: DefaultWarningSeconds, Category: CategoryExploration},
		{Name: "Circle 2 Closing", DurationSeconds: 180, WarningSeconds: DefaultWarningSeconds, Category: CategoryClosing},
	}
}

// Validate checks that the table is non-empty and every phase is well formed.
func (table PhaseTable) Validate() error {
	if len(table) == 0 {
		return ErrEmptyPhaseTable
	}
	for index, phase := range table {
		if phase.DurationSeconds <= 0 {
			return fmt.Errorf("phase %d (%s): %w", index, phase.Name, ErrInvalidDuration)
		}
		if !phase.Category.Valid() {
			return fmt.Errorf("phase %d (%s): %w: %q", index, phase.Name, ErrUnknownCategory, phase.Category)
		}
	}
	return nil
}

// TotalSeconds returns the length of the full cycle.
func (table PhaseTable) TotalSeconds() int {
	total := 0
	for _, phase := range table {
		total += phase.DurationSeconds
	}
	return total
}

// Clone returns a copy that shares no memory with the receiver.
func (table PhaseTable) Clone() PhaseTable {
	if table == nil {
		return nil
	}
	return append(PhaseTable(nil), table...)
}
