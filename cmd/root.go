package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"nightcircle/internal/platform"
	"nightcircle/internal/storage"
	"nightcircle/internal/ui/preferences"
)

type globalOptions struct {
	logLevel   string
	noSound    bool
	configPath string
	logger     zerolog.Logger
}

func newRootCommand() *cobra.Command {
	options := &globalOptions{logger: zerolog.Nop()}

	root := &cobra.Command{
		Use:          "nightcircle",
		Short:        "Day/night circle timer with boss, power and weapon reference",
		Long:         "nightcircle tracks the phases of a day cycle, warns before each circle closes\nand looks up reference tables. Without a subcommand it starts the tray app.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := newLogger(options.logLevel, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			options.logger = logger
			log.Logger = logger
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDesktop(options)
		},
	}

	defaultLevel := os.Getenv(logLevelEnv)
	if defaultLevel == "" {
		defaultLevel = zerolog.InfoLevel.String()
	}

	flags := root.PersistentFlags()
	flags.StringVar(&options.logLevel, "log-level", defaultLevel, "log level: trace, debug, info, warn, error (env "+logLevelEnv+")")
	flags.BoolVar(&options.noSound, "no-sound", false, "never play the alert tone")
	flags.StringVar(&options.configPath, "config", "", "settings file (default: settings.yaml in the user config directory)")

	root.AddCommand(
		newWatchCommand(options),
		newBossesCommand(options),
		newWeaponsCommand(options),
		newPowersCommand(options),
	)
	return root
}

func newLogger(level string, out io.Writer) (zerolog.Logger, error) {
	parsed, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("parse log level %q: %w", level, err)
	}
	if parsed == zerolog.NoLevel {
		parsed = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: out, TimeFormat: time.TimeOnly}).
		Level(parsed).
		With().
		Timestamp().
		Logger(), nil
}

// loadSettings never fails: unreadable settings fall back to defaults.
func loadSettings(options *globalOptions) (preferences.Settings, string) {
	configPath := options.configPath
	if configPath == "" {
		resolved, err := storage.DefaultConfigPath(appName)
		if err != nil {
			options.logger.Warn().Err(err).Msg("settings directory unavailable, using defaults")
			return preferences.DefaultSettings(), ""
		}
		configPath = resolved
	}

	settings, err := storage.LoadSettings(configPath, options.logger)
	if err != nil {
		options.logger.Warn().Err(err).Str("path", configPath).Msg("could not load settings, using defaults")
	}
	return settings, configPath
}

func saveSettings(options *globalOptions, configPath string, settings preferences.Settings) {
	if configPath == "" {
		return
	}
	if err := storage.SaveSettings(configPath, settings); err != nil {
		options.logger.Warn().Err(err).Str("path", configPath).Msg("could not save settings")
	}
}

// newCuePlayer degrades to a silent player when audio setup fails.
func newCuePlayer(options *globalOptions) *platform.CuePlayer {
	player, err := platform.NewCuePlayer(options.logger, !options.noSound)
	if err != nil {
		options.logger.Warn().Err(err).Msg("alert tone unavailable")
		player, _ = platform.NewCuePlayer(options.logger, false)
	}
	return player
}
