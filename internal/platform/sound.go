package platform

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/rs/zerolog"

	"nightcircle/internal/core/cue"
)

// CuePlayer plays the alert tone through the operating system's audio player.
// Close releases the worker goroutine and removes the temporary tone file.
type CuePlayer struct {
	async *cue.Async
	path  string
}

// NewCuePlayer returns a silent player when enabled is false. Otherwise the
// tone is written to a temporary WAV file once and replayed on every Fire.
// When no player binary is installed the terminal bell is rung instead.
func NewCuePlayer(logger zerolog.Logger, enabled bool) (*CuePlayer, error) {
	logger = logger.With().Str("component", "cue").Logger()
	if !enabled {
		return &CuePlayer{}, nil
	}

	path, err := writeToneFile(cue.AlertTone)
	if err != nil {
		return nil, err
	}

	sink := bellSink(os.Stderr)
	if name, args, ok := audioCommand(path); ok {
		logger.Debug().Str("player", name).Msg("audio player found")
		sink = commandSink(name, args)
	} else {
		logger.Info().Msg("no audio player found, using terminal bell")
	}
	return &CuePlayer{async: cue.NewAsync(sink, logger), path: path}, nil
}

// Fire plays one pulse without blocking.
func (player *CuePlayer) Fire() {
	if player == nil || player.async == nil {
		return
	}
	player.async.Fire()
}

// Close stops playback and deletes the tone file.
func (player *CuePlayer) Close() error {
	if player == nil || player.async == nil {
		return nil
	}
	player.async.Close()
	if err := os.Remove(player.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove tone file: %w", err)
	}
	return nil
}

func writeToneFile(tone cue.Tone) (string, error) {
	file, err := os.CreateTemp("", "nightcircle-cue-*.wav")
	if err != nil {
		return "", fmt.Errorf("create tone file: %w", err)
	}
	if _, err := file.Write(tone.WAV()); err != nil {
		_ = file.Close()
		_ = os.Remove(file.Name())
		return "", fmt.Errorf("write tone file: %w", err)
	}
	if err := file.Close(); err != nil {
		_ = os.Remove(file.Name())
		return "", fmt.Errorf("close tone file: %w", err)
	}
	return file.Name(), nil
}

func commandSink(name string, args []string) cue.Sink {
	return func(ctx context.Context) error {
		output, err := exec.CommandContext(ctx, name, args...).CombinedOutput()
		if err != nil {
			return fmt.Errorf("%s: %w: %s", name, err, output)
		}
		return nil
	}
}

func bellSink(out io.Writer) cue.Sink {
	return func(context.Context) error {
		_, err := io.WriteString(out, "\a")
		return err
	}
}
