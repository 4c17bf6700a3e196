package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"nightcircle/internal/core/model"
	"nightcircle/internal/ui/preferences"
)

const settingsFileName = "settings.yaml"

type yamlPhase struct {
	Name            string `yaml:"name"`
	DurationSeconds int    `yaml:"duration_seconds"`
	WarningSeconds  int    `yaml:"warning_seconds,omitempty"`
	Category        string `yaml:"category"`
}

type yamlSettings struct {
	Alerts          []int       `yaml:"alerts"`
	SoundEnabled    *bool       `yaml:"sound_enabled,omitempty"`
	AlwaysShowTimer *bool       `yaml:"always_show_timer,omitempty"`
	TimerOpacity    *int        `yaml:"timer_opacity,omitempty"`
	Phases          []yamlPhase `yaml:"phases,omitempty"`
}

// DefaultConfigPath returns settings.yaml under the user config directory.
func DefaultConfigPath(appName string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appName, settingsFileName), nil
}

// LoadSettings reads user preferences from YAML.
// If the config file does not exist, default settings are returned.
// An invalid phase override is logged and replaced by the reference cycle.
func LoadSettings(configPath string, logger zerolog.Logger) (preferences.Settings, error) {
	settings := preferences.DefaultSettings()

	rawData, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	if err := applyYamlSettings(&settings, fileData); err != nil {
		logger.Warn().Err(err).Str("path", configPath).Msg("ignoring phase override")
	}
	return settings, nil
}

// SaveSettings writes user preferences to YAML.
func SaveSettings(configPath string, settings preferences.Settings) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	fileData := yamlSettings{
		Alerts:          append([]int{}, settings.Alerts...),
		SoundEnabled:    &settings.SoundEnabled,
		AlwaysShowTimer: &settings.AlwaysShowTimer,
		TimerOpacity:    &settings.TimerOpacity,
	}
	for _, phase := range settings.Phases {
		fileData.Phases = append(fileData.Phases, yamlPhase{
			Name:            phase.Name,
			DurationSeconds: phase.DurationSeconds,
			WarningSeconds:  phase.WarningSeconds,
			Category:        string(phase.Category),
		})
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := os.WriteFile(configPath, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	return nil
}

func applyYamlSettings(settings *preferences.Settings, fileData yamlSettings) error {
	if fileData.Alerts != nil {
		settings.Alerts = settings.Alerts[:0:0]
		seen := make(map[int]bool, len(fileData.Alerts))
		for _, threshold := range fileData.Alerts {
			if threshold >= 0 && !seen[threshold] {
				seen[threshold] = true
				settings.Alerts = append(settings.Alerts, threshold)
			}
		}
	}
	if fileData.SoundEnabled != nil {
		settings.SoundEnabled = *fileData.SoundEnabled
	}
	if fileData.AlwaysShowTimer != nil {
		settings.AlwaysShowTimer = *fileData.AlwaysShowTimer
	}
	if fileData.TimerOpacity != nil && preferences.ValidTimerOpacity(*fileData.TimerOpacity) {
		settings.TimerOpacity = *fileData.TimerOpacity
	}

	if len(fileData.Phases) == 0 {
		return nil
	}
	phases := make(model.PhaseTable, 0, len(fileData.Phases))
	for _, phase := range fileData.Phases {
		warning := phase.WarningSeconds
		if warning <= 0 {
			warning = model.DefaultWarningSeconds
		}
		phases = append(phases, model.PhaseDefinition{
			Name:            phase.Name,
			DurationSeconds: phase.DurationSeconds,
			WarningSeconds:  warning,
			Category:        model.Category(phase.Category),
		})
	}
	if err := phases.Validate(); err != nil {
		return fmt.Errorf("validate phases: %w", err)
	}
	settings.Phases = phases
	return nil
}
