// Package terminal renders the cycle and the reference tables for a text terminal.
package terminal

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"nightcircle/internal/core/display"
	"nightcircle/internal/core/model"
)

const progressWidth = 24

var (
	explorationStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("36"))
	closingStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("160"))
	remainingStyle   = lipgloss.NewStyle().Bold(true)
	alertStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("226"))
	mutedStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	headerStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("33"))
)

// StatusLine renders one view as a single line:
// phase, remaining time, progress bar, alert tags and status.
func StatusLine(view display.View) string {
	name := view.PhaseName
	if name == "" {
		name = view.Status
	}

	remaining := remainingStyle.Render(view.Remaining)
	if view.AlertActive {
		remaining = alertStyle.Render(view.Remaining + " !")
	}

	tags := "no alerts"
	if len(view.Tags) > 0 {
		tags = "alerts " + strings.Join(view.Tags, " ")
	}

	parts := []string{
		phaseStyle(view.Category).Render(name),
		remaining,
		ProgressBar(view.Progress, progressWidth),
		mutedStyle.Render(tags),
		mutedStyle.Render(view.Status),
	}
	return strings.Join(parts, "  ")
}

// ProgressBar draws fraction as a fixed-width bar of full and empty blocks.
func ProgressBar(fraction float64, width int) string {
	if width <= 0 {
		return ""
	}
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	filled := int(fraction*float64(width) + 0.5)
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

func phaseStyle(category model.Category) lipgloss.Style {
	if category == model.CategoryClosing {
		return closingStyle
	}
	return explorationStyle
}

// Watcher redraws the status line in place on a terminal and prints one
// line per update elsewhere.
type Watcher struct {
	out         io.Writer
	interactive bool
	drawn       bool
}

// NewWatcher creates a watcher writing to out.
func NewWatcher(out io.Writer) *Watcher {
	return &Watcher{out: out, interactive: IsTerminal(out)}
}

// Render draws view.
func (watcher *Watcher) Render(view display.View) error {
	line := StatusLine(view)
	var err error
	if watcher.interactive {
		_, err = fmt.Fprintf(watcher.out, "\r\033[K%s", line)
	} else {
		_, err = fmt.Fprintln(watcher.out, line)
	}
	watcher.drawn = true
	return err
}

// Announce prints a message on its own line, keeping the status line below it.
func (watcher *Watcher) Announce(message string) error {
	prefix := ""
	if watcher.interactive && watcher.drawn {
		prefix = "\r\033[K"
	}
	_, err := fmt.Fprintf(watcher.out, "%s%s\n", prefix, headerStyle.Render(message))
	watcher.drawn = false
	return err
}

// Finish ends the in-place line.
func (watcher *Watcher) Finish() error {
	if !watcher.interactive || !watcher.drawn {
		return nil
	}
	watcher.drawn = false
	_, err := fmt.Fprintln(watcher.out)
	return err
}
