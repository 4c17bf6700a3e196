// Package animation blinks an indicator while a phase is inside an alert window.
package animation

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"fyne.io/fyne/v2"
)

// Range defines a duration range with random sampling.
type Range struct {
	Min time.Duration
	Max time.Duration
}

// Random returns a random duration within the range.
func (value Range) Random(rng *rand.Rand) time.Duration {
	if value.Max <= value.Min {
		return value.Min
	}
	delta := value.Max - value.Min
	return value.Min + time.Duration(rng.Int63n(int64(delta)))
}

// Config contains animation timing values.
type Config struct {
	LitDuration Range
	DimDuration Range
}

// Engine runs at most one pulse at a time and hands every frame to update.
type Engine struct {
	mu      sync.Mutex
	config  Config
	update  func(fyne.Resource)
	rng     *rand.Rand
	cancel  context.CancelFunc
	done    chan struct{}
	current PulseSpec
}

// New creates a new animation engine.
func New(config Config, update func(fyne.Resource)) *Engine {
	return &Engine{
		config: config,
		update: update,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// StartPulse starts blinking between the lit and dim frames. Calling it while
// a pulse is already running is a no-op, so it is safe to call on every tick.
func (engine *Engine) StartPulse(ctx context.Context, spec PulseSpec) {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.cancel != nil {
		return
	}

	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	engine.cancel = cancel
	engine.done = done
	engine.current = spec

	go func() {
		defer close(done)
		engine.runPulse(runCtx, spec)
	}()
}

// Stop terminates the pulse, waits for it to exit and shows the rest frame.
func (engine *Engine) Stop() {
	engine.mu.Lock()
	cancel, done, spec := engine.cancel, engine.done, engine.current
	engine.cancel = nil
	engine.done = nil
	engine.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
	if spec.Rest != nil {
		engine.update(spec.Rest)
	}
}

// Active reports whether a pulse is running.
func (engine *Engine) Active() bool {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.cancel != nil
}

func (engine *Engine) runPulse(ctx context.Context, spec PulseSpec) {
	for {
		engine.update(spec.Lit)
		if !sleepWithContext(ctx, engine.sample(engine.config.LitDuration)) {
			return
		}
		engine.update(spec.Dim)
		if !sleepWithContext(ctx, engine.sample(engine.config.DimDuration)) {
			return
		}
	}
}

// sample guards the shared rng, which is not safe for concurrent use.
func (engine *Engine) sample(value Range) time.Duration {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return value.Random(engine.rng)
}

func sleepWithContext(ctx context.Context, duration time.Duration) bool {
	timer := time.NewTimer(duration)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
