package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"

	"nightcircle/internal/core/cue"
	"nightcircle/internal/core/cycleclock"
	"nightcircle/internal/core/display"
	"nightcircle/internal/ui/terminal"
)

func newWatchCommand(options *globalOptions) *cobra.Command {
	var alertOverride []int

	command := &cobra.Command{
		Use:   "watch",
		Short: "Run one cycle in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			var override []int
			if cmd.Flags().Changed("alert") {
				override = append([]int{}, alertOverride...)
			}
			return runWatch(ctx, cmd.OutOrStdout(), options, override, clockwork.NewRealClock())
		},
	}
	command.Flags().IntSliceVar(&alertOverride, "alert", nil, "alert thresholds in seconds, replacing the saved ones")
	return command
}

// runWatch plays one full cycle. A nil override keeps the saved alerts.
func runWatch(ctx context.Context, out io.Writer, options *globalOptions, override []int, clock clockwork.Clock) error {
	terminal.ConfigureColorProfile(out)

	settings, _ := loadSettings(options)
	config := settings.CycleConfig()
	if override != nil {
		config.DefaultAlerts = override
	}

	player := newCuePlayer(options)
	defer func() {
		_ = player.Close()
	}()

	session, err := cycleclock.NewSession(config, cue.NewToggle(player, settings.SoundEnabled), cycleclock.Options{
		Clock:  clock,
		Logger: options.logger,
	})
	if err != nil {
		return err
	}
	defer session.Close()

	events := session.Subscribe(16)
	watcher := terminal.NewWatcher(out)
	session.Start()
	return watchEvents(ctx, events, session.Done(), watcher)
}

// watchEvents prints events until the cycle ends. done covers a slow writer
// whose buffer overflowed and lost the finished event.
func watchEvents(ctx context.Context, events <-chan cycleclock.Event, done <-chan struct{}, watcher *terminal.Watcher) error {
	for {
		select {
		case <-ctx.Done():
			return watcher.Finish()
		case event, ok := <-events:
			if !ok {
				return watcher.Finish()
			}
			finished, err := showEvent(event, watcher)
			if err != nil || finished {
				return err
			}
		case <-done:
			return drainEvents(events, watcher)
		}
	}
}

func drainEvents(events <-chan cycleclock.Event, watcher *terminal.Watcher) error {
	for {
		select {
		case event, ok := <-events:
			if !ok {
				return watcher.Finish()
			}
			finished, err := showEvent(event, watcher)
			if err != nil || finished {
				return err
			}
		default:
			if err := watcher.Finish(); err != nil {
				return err
			}
			return watcher.Announce(display.StatusLabel(cycleclock.StatusFinished))
		}
	}
}

// showEvent prints one event and reports whether it ended the cycle.
func showEvent(event cycleclock.Event, watcher *terminal.Watcher) (bool, error) {
	if message := announcement(event); message != "" {
		if err := watcher.Announce(message); err != nil {
			return false, err
		}
	}
	if event.Type == cycleclock.EventFinished {
		return true, watcher.Finish()
	}
	return false, watcher.Render(display.NewView(event.Snapshot))
}

func announcement(event cycleclock.Event) string {
	snapshot := event.Snapshot
	switch event.Type {
	case cycleclock.EventPhaseChange:
		return fmt.Sprintf("%s (%s)", snapshot.Phase.Name, display.FormatRemaining(snapshot.Phase.DurationSeconds))
	case cycleclock.EventAlert:
		return fmt.Sprintf("%s ends in %s", snapshot.Phase.Name, display.FormatRemaining(snapshot.SecondsRemaining))
	case cycleclock.EventFinished:
		return display.StatusLabel(cycleclock.StatusFinished)
	default:
		return ""
	}
}
