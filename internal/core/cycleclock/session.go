package cycleclock

import (
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"nightcircle/internal/core/alerts"
	"nightcircle/internal/core/cue"
	"nightcircle/internal/core/model"
)

// Options contains runtime options for a Session.
type Options struct {
	TickInterval time.Duration
	// Clock supplies tickers. In production, use clockwork.NewRealClock(). In tests, a FakeClock.
	Clock  clockwork.Clock
	Logger zerolog.Logger
}

// driver is one acquisition of the periodic ticker.
type driver struct {
	stop chan struct{}
	done chan struct{}
}

// Session owns a Clock, its alert set and the ticker that advances it.
// All methods are safe for concurrent use.
type Session struct {
	mu      sync.Mutex
	clock   *Clock
	options Options
	logger  zerolog.Logger
	driver  *driver
	events  []chan Event
	done    chan struct{}
	closed  bool
}

// NewSession creates an idle session for the configured cycle.
func NewSession(config model.CycleConfig, player cue.Player, options Options) (*Session, error) {
	if options.TickInterval <= 0 {
		options.TickInterval = config.TickInterval
	}
	if options.TickInterval <= 0 {
		options.TickInterval = time.Second
	}
	if options.Clock == nil {
		options.Clock = clockwork.NewRealClock()
	}

	clock, err := New(config.Phases, alerts.New(config.DefaultAlerts...), player)
	if err != nil {
		return nil, fmt.Errorf("create cycle clock: %w", err)
	}

	return &Session{
		clock:   clock,
		options: options,
		logger:  options.Logger.With().Str("component", "cycleclock").Logger(),
		done:    make(chan struct{}),
	}, nil
}

// Subscribe registers a new observer channel.
func (session *Session) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	session.mu.Lock()
	defer session.mu.Unlock()
	if session.closed {
		close(ch)
		return ch
	}
	session.events = append(session.events, ch)
	return ch
}

// Start restarts the cycle from the first phase and (re)acquires the ticker.
func (session *Session) Start() {
	session.mu.Lock()
	if session.closed {
		session.mu.Unlock()
		return
	}
	session.clock.Start()
	session.endCycleLocked()
	session.done = make(chan struct{})
	stale := session.releaseDriverLocked()
	session.acquireDriverLocked()
	session.logger.Info().Str("phase", session.clock.phases[0].Name).Msg("cycle started")
	session.emitLocked(EventStateChange, nil)
	session.mu.Unlock()

	waitDriver(stale)
}

// Stop pauses the countdown and releases the ticker.
func (session *Session) Stop() {
	session.mu.Lock()
	if session.closed || !session.clock.Stop() {
		session.mu.Unlock()
		return
	}
	released := session.releaseDriverLocked()
	session.logger.Info().
		Int("phase", session.clock.PhaseIndex()).
		Int("remaining", session.clock.SecondsRemaining()).
		Msg("cycle paused")
	session.emitLocked(EventStateChange, nil)
	session.mu.Unlock()

	waitDriver(released)
}

// Resume continues a paused countdown. It reports false when there is nothing to resume.
func (session *Session) Resume() bool {
	session.mu.Lock()
	defer session.mu.Unlock()
	if session.closed || !session.clock.Resume() {
		return false
	}
	session.acquireDriverLocked()
	session.logger.Info().
		Int("phase", session.clock.PhaseIndex()).
		Int("remaining", session.clock.SecondsRemaining()).
		Msg("cycle resumed")
	session.emitLocked(EventStateChange, nil)
	return true
}

// Reset returns the clock to idle and releases the ticker. Alerts are kept.
func (session *Session) Reset() {
	session.mu.Lock()
	if session.closed {
		session.mu.Unlock()
		return
	}
	session.clock.Reset()
	session.endCycleLocked()
	released := session.releaseDriverLocked()
	session.logger.Info().Msg("cycle reset")
	session.emitLocked(EventStateChange, nil)
	session.mu.Unlock()

	waitDriver(released)
}

// Close releases the ticker, waits for it to exit and closes observers.
func (session *Session) Close() {
	session.mu.Lock()
	if session.closed {
		session.mu.Unlock()
		return
	}
	session.closed = true
	session.endCycleLocked()
	released := session.releaseDriverLocked()
	events := session.events
	session.events = nil
	session.mu.Unlock()

	waitDriver(released)
	for _, ch := range events {
		close(ch)
	}
}

// AddAlert adds a threshold and reports whether the set changed.
func (session *Session) AddAlert(threshold int) bool {
	session.mu.Lock()
	defer session.mu.Unlock()
	if session.closed || !session.clock.Alerts().Add(threshold) {
		return false
	}
	session.logger.Debug().Int("threshold", threshold).Msg("alert added")
	session.emitLocked(EventAlertsChanged, nil)
	return true
}

// RemoveAlert removes a threshold and reports whether the set changed.
func (session *Session) RemoveAlert(threshold int) bool {
	session.mu.Lock()
	defer session.mu.Unlock()
	if session.closed || !session.clock.Alerts().Remove(threshold) {
		return false
	}
	session.logger.Debug().Int("threshold", threshold).Msg("alert removed")
	session.emitLocked(EventAlertsChanged, nil)
	return true
}

// Snapshot returns the current clock state.
func (session *Session) Snapshot() Snapshot {
	session.mu.Lock()
	defer session.mu.Unlock()
	return session.clock.Snapshot()
}

// Done returns a channel closed when the current cycle ends: it finished,
// was reset, was restarted or the session closed. Unlike EventFinished it
// cannot be dropped by a full observer buffer.
func (session *Session) Done() <-chan struct{} {
	session.mu.Lock()
	defer session.mu.Unlock()
	return session.done
}

// Driving reports whether a ticker is currently held.
func (session *Session) Driving() bool {
	session.mu.Lock()
	defer session.mu.Unlock()
	return session.driver != nil
}

func (session *Session) acquireDriverLocked() {
	if session.driver != nil {
		return
	}
	current := &driver{
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
	session.driver = current
	ticker := session.options.Clock.NewTicker(session.options.TickInterval)
	go session.run(current, ticker)
}

// releaseDriverLocked signals the active driver to exit and returns it so the
// caller can wait for it after dropping the lock.
func (session *Session) releaseDriverLocked() *driver {
	released := session.driver
	if released == nil {
		return nil
	}
	close(released.stop)
	session.driver = nil
	return released
}

func (session *Session) endCycleLocked() {
	select {
	case <-session.done:
	default:
		close(session.done)
	}
}

func waitDriver(released *driver) {
	if released != nil {
		<-released.done
	}
}

func (session *Session) run(current *driver, ticker clockwork.Ticker) {
	defer close(current.done)
	defer ticker.Stop()

	for {
		select {
		case <-current.stop:
			return
		case <-ticker.Chan():
			session.tick(current)
		}
	}
}

func (session *Session) tick(current *driver) {
	session.mu.Lock()
	defer session.mu.Unlock()

	// A tick that lost the race against Stop/Reset/Close belongs to a released driver.
	select {
	case <-current.stop:
		return
	default:
	}

	step := session.clock.Advance()
	eventType := EventTick
	switch {
	case step.Finished:
		eventType = EventFinished
		session.releaseDriverLocked()
		session.logger.Info().Msg("cycle finished")
		defer session.endCycleLocked()
	case step.PhaseChanged:
		eventType = EventPhaseChange
		session.logger.Info().
			Int("phase", session.clock.PhaseIndex()).
			Str("name", session.clock.phases[session.clock.PhaseIndex()].Name).
			Msg("phase changed")
	case len(step.Fired) > 0:
		eventType = EventAlert
	}
	if len(step.Fired) > 0 {
		session.logger.Info().Ints("thresholds", step.Fired).Msg("alert cue fired")
	}
	session.emitLocked(eventType, step.Fired)
}

func (session *Session) emitLocked(eventType EventType, fired []int) {
	event := Event{
		Type:     eventType,
		Snapshot: session.clock.Snapshot(),
		Fired:    fired,
		At:       session.options.Clock.Now(),
	}
	for _, ch := range session.events {
		select {
		case ch <- event:
		default:
		}
	}
}
