package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"nightcircle/internal/core/model"
	"nightcircle/internal/ui/preferences"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", settingsFileName)
	settings, err := LoadSettings(path, zerolog.Nop())
	require.NoError(t, err)
	require.Equal(t, preferences.DefaultSettings(), settings)
}

func TestSettingsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "NightCircle", settingsFileName)
	saved := preferences.Settings{
		Alerts:          []int{10, 90},
		SoundEnabled:    false,
		AlwaysShowTimer: false,
		TimerOpacity:    75,
		Phases: model.PhaseTable{
			{Name: "Day", DurationSeconds: 120, WarningSeconds: 20, Category: model.CategoryExploration},
			{Name: "Night", DurationSeconds: 60, WarningSeconds: 10, Category: model.CategoryClosing},
		},
	}
	require.NoError(t, SaveSettings(path, saved))

	loaded, err := LoadSettings(path, zerolog.Nop())
	require.NoError(t, err)
	require.Equal(t, saved, loaded)
}

func TestEmptyAlertListIsKept(t *testing.T) {
	path := writeSettings(t, "alerts: []\n")
	settings, err := LoadSettings(path, zerolog.Nop())
	require.NoError(t, err)
	require.Empty(t, settings.Alerts)
	require.True(t, settings.SoundEnabled)
}

func TestNegativeAndDuplicateAlertsAreDropped(t *testing.T) {
	path := writeSettings(t, "alerts: [0, -5, 30, 30, 60]\n")
	settings, err := LoadSettings(path, zerolog.Nop())
	require.NoError(t, err)
	require.Equal(t, []int{0, 30, 60}, settings.Alerts)
}

func TestInvalidPhaseOverrideFallsBack(t *testing.T) {
	path := writeSettings(t, `phases:
  - name: Broken
    duration_seconds: 0
    category: exploration
sound_enabled: false
`)
	settings, err := LoadSettings(path, zerolog.Nop())
	require.NoError(t, err)
	require.Empty(t, settings.Phases)
	require.Equal(t, model.DefaultPhases(), settings.PhaseTable())
	require.False(t, settings.SoundEnabled)
}

func TestApplyRejectsUnknownCategory(t *testing.T) {
	settings := preferences.DefaultSettings()
	err := applyYamlSettings(&settings, yamlSettings{
		Phases: []yamlPhase{{Name: "Dusk", DurationSeconds: 30, Category: "twilight"}},
	})
	require.ErrorIs(t, err, model.ErrUnknownCategory)
}

func TestPhaseWarningDefaults(t *testing.T) {
	path := writeSettings(t, `phases:
  - name: Day
    duration_seconds: 100
    category: exploration
`)
	settings, err := LoadSettings(path, zerolog.Nop())
	require.NoError(t, err)
	require.Len(t, settings.Phases, 1)
	require.Equal(t, model.DefaultWarningSeconds, settings.Phases[0].WarningSeconds)
}

func TestMalformedYamlReturnsError(t *testing.T) {
	path := writeSettings(t, "alerts: [unterminated\n")
	settings, err := LoadSettings(path, zerolog.Nop())
	require.Error(t, err)
	require.Equal(t, preferences.DefaultSettings(), settings)
}

func TestDefaultConfigPath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("AppData", dir)
	t.Setenv("HOME", dir)

	path, err := DefaultConfigPath("NightCircle")
	require.NoError(t, err)
	require.Equal(t, settingsFileName, filepath.Base(path))
	require.Equal(t, "NightCircle", filepath.Base(filepath.Dir(path)))
}

func writeSettings(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), settingsFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestOutOfRangeTimerOpacityFallsBack(t *testing.T) {
	path := writeSettings(t, "timer_opacity: 12\n")
	settings, err := LoadSettings(path, zerolog.Nop())
	require.NoError(t, err)
	require.Equal(t, preferences.DefaultTimerOpacity, settings.TimerOpacity)

	path = writeSettings(t, "timer_opacity: 60\n")
	settings, err = LoadSettings(path, zerolog.Nop())
	require.NoError(t, err)
	require.Equal(t, 60, settings.TimerOpacity)
}
