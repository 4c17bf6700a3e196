// Package cue emits the short audible pulse played when an alert threshold is crossed.
package cue

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"
)

// Player produces one audible pulse per call. Implementations must not block
// the caller and must swallow output failures.
type Player interface {
	Fire()
}

// Nop is a Player that stays silent.
type Nop struct{}

// Fire does nothing.
func (Nop) Fire() {}

// Sink plays a single pulse and blocks until it is done.
type Sink func(ctx context.Context) error

const defaultQueueSize = 4

// Async decouples callers from a blocking Sink through a small queue drained
// by one worker goroutine. Pulses that do not fit in the queue are dropped.
type Async struct {
	sink    Sink
	logger  zerolog.Logger
	queue   chan struct{}
	cancel  context.CancelFunc
	done    chan struct{}
	closeMu sync.Once
}

// NewAsync starts the worker goroutine. Call Close to release it.
func NewAsync(sink Sink, logger zerolog.Logger) *Async {
	ctx, cancel := context.WithCancel(context.Background())
	player := &Async{
		sink:   sink,
		logger: logger,
		queue:  make(chan struct{}, defaultQueueSize),
		cancel: cancel,
		done:   make(chan struct{}),
	}
	go player.run(ctx)
	return player
}

// Fire enqueues a pulse without waiting for it to play.
func (player *Async) Fire() {
	select {
	case player.queue <- struct{}{}:
	default:
		player.logger.Debug().Msg("cue queue full, pulse dropped")
	}
}

// Close stops the worker and waits for it to exit.
func (player *Async) Close() {
	player.closeMu.Do(func() {
		player.cancel()
		<-player.done
	})
}

func (player *Async) run(ctx context.Context) {
	defer close(player.done)
	for {
		select {
		case <-ctx.Done():
			return
		case <-player.queue:
			if err := player.sink(ctx); err != nil && ctx.Err() == nil {
				player.logger.Debug().Err(err).Msg("cue playback failed")
			}
		}
	}
}

// Toggle gates another Player behind a switch that can be flipped at any time.
type Toggle struct {
	player  Player
	enabled atomic.Bool
}

// NewToggle wraps player. A nil player stays silent.
func NewToggle(player Player, enabled bool) *Toggle {
	if player == nil {
		player = Nop{}
	}
	toggle := &Toggle{player: player}
	toggle.enabled.Store(enabled)
	return toggle
}

// SetEnabled switches playback on or off.
func (toggle *Toggle) SetEnabled(enabled bool) {
	toggle.enabled.Store(enabled)
}

// Enabled reports whether Fire reaches the wrapped player.
func (toggle *Toggle) Enabled() bool {
	return toggle.enabled.Load()
}

// Fire forwards to the wrapped player when enabled.
func (toggle *Toggle) Fire() {
	if toggle.enabled.Load() {
		toggle.player.Fire()
	}
}
