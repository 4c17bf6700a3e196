package terminal

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// ConfigureColorProfile picks the lipgloss color profile for w, honouring
// NO_COLOR, CLICOLOR=0, TERM=dumb and CLICOLOR_FORCE.
func ConfigureColorProfile(w io.Writer) termenv.Profile {
	profile := detectColorProfile(w)
	lipgloss.SetColorProfile(profile)
	return profile
}

func detectColorProfile(w io.Writer) termenv.Profile {
	if disableColorOutput() {
		return termenv.Ascii
	}
	if forceColorOutput() {
		return termenv.EnvColorProfile()
	}
	if IsTerminal(w) {
		return termenv.NewOutput(w).ColorProfile()
	}
	return termenv.Ascii
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	return ok && term.IsTerminal(int(file.Fd()))
}

func disableColorOutput() bool {
	if termenv.EnvNoColor() {
		return true
	}
	if value, ok := os.LookupEnv("CLICOLOR"); ok && strings.TrimSpace(value) == "0" {
		return true
	}
	if value, ok := os.LookupEnv("TERM"); ok && strings.EqualFold(strings.TrimSpace(value), "dumb") {
		return true
	}
	return false
}

func forceColorOutput() bool {
	value, ok := os.LookupEnv("CLICOLOR_FORCE")
	if !ok {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "0", "false", "no", "off":
		return false
	default:
		return true
	}
}
