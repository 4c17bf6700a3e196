// Package display projects cycle clock snapshots into presentation values.
package display

import (
	"fmt"
	"strconv"

	"nightcircle/internal/core/cycleclock"
	"nightcircle/internal/core/model"
)

// View bundles everything a presenter needs for one frame.
type View struct {
	PhaseName   string
	Category    model.Category
	Remaining   string
	Progress    float64
	AlertActive bool
	Status      string
	Tags        []string
	Segments    []Segment
}

// Segment is one phase in the cycle bar.
type Segment struct {
	Name     string
	Category model.Category
	Width    float64
	Active   bool
	Past     bool
}

// NewView builds the presentation view for a snapshot.
func NewView(snapshot cycleclock.Snapshot) View {
	view := View{
		Remaining:   FormatRemaining(snapshot.SecondsRemaining),
		Progress:    ProgressFraction(snapshot),
		AlertActive: IsAlertActive(snapshot),
		Status:      StatusLabel(snapshot.Status),
		Segments:    Segments(snapshot.Phases, snapshot.PhaseIndex),
	}
	if snapshot.HasPhase {
		view.PhaseName = snapshot.Phase.Name
		view.Category = snapshot.Phase.Category
	}
	for _, threshold := range snapshot.Thresholds {
		view.Tags = append(view.Tags, FormatThreshold(threshold))
	}
	return view
}

// FormatRemaining renders seconds as m:SS.
func FormatRemaining(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// ProgressFraction returns how much of the active phase has elapsed, in [0,1].
func ProgressFraction(snapshot cycleclock.Snapshot) float64 {
	if !snapshot.HasPhase || snapshot.Phase.DurationSeconds <= 0 {
		return 0
	}
	duration := float64(snapshot.Phase.DurationSeconds)
	progress := (duration - float64(snapshot.SecondsRemaining)) / duration
	if progress < 0 {
		return 0
	}
	if progress > 1 {
		return 1
	}
	return progress
}

// IsAlertActive reports whether the countdown is inside any threshold window.
func IsAlertActive(snapshot cycleclock.Snapshot) bool {
	if snapshot.SecondsRemaining <= 0 {
		return false
	}
	for _, threshold := range snapshot.Thresholds {
		if snapshot.SecondsRemaining <= threshold {
			return true
		}
	}
	return false
}

// FormatThreshold renders a threshold as a compact tag: 30s, 1m, 1.5m.
func FormatThreshold(seconds int) string {
	if seconds < 60 {
		return fmt.Sprintf("%ds", seconds)
	}
	return formatMinutes(seconds) + "m"
}

// OptionLabel renders a threshold for a picker: 30 seconds, 1 minute, 1.5 minutes.
func OptionLabel(seconds int) string {
	if seconds < 60 {
		return fmt.Sprintf("%d seconds", seconds)
	}
	if seconds == 60 {
		return "1 minute"
	}
	return formatMinutes(seconds) + " minutes"
}

// StatusLabel returns a short human label for a clock status.
func StatusLabel(status cycleclock.Status) string {
	switch status {
	case cycleclock.StatusRunning:
		return "Running"
	case cycleclock.StatusPaused:
		return "Paused"
	case cycleclock.StatusFinished:
		return "Cycle complete"
	default:
		return "Ready"
	}
}

// Segments splits the cycle bar proportionally to phase durations.
func Segments(phases model.PhaseTable, activeIndex int) []Segment {
	total := phases.TotalSeconds()
	if total <= 0 {
		return nil
	}
	segments := make([]Segment, 0, len(phases))
	for index, phase := range phases {
		segments = append(segments, Segment{
			Name:     phase.Name,
			Category: phase.Category,
			Width:    float64(phase.DurationSeconds) / float64(total),
			Active:   index == activeIndex,
			Past:     activeIndex >= 0 && index < activeIndex,
		})
	}
	return segments
}

func formatMinutes(seconds int) string {
	return strconv.FormatFloat(float64(seconds)/60, 'f', -1, 64)
}
