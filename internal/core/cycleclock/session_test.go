package cycleclock

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"nightcircle/internal/core/model"
)

type countingPlayer struct {
	fires atomic.Int32
}

func (player *countingPlayer) Fire() {
	player.fires.Add(1)
}

func newTestSession(t *testing.T, phases model.PhaseTable, thresholds ...int) (*Session, *clockwork.FakeClock, *countingPlayer, <-chan Event) {
	t.Helper()
	fake := clockwork.NewFakeClock()
	player := &countingPlayer{}
	config := model.CycleConfig{Phases: phases, DefaultAlerts: thresholds, TickInterval: time.Second}
	session, err := NewSession(config, player, Options{Clock: fake, Logger: zerolog.Nop()})
	require.NoError(t, err)
	t.Cleanup(session.Close)
	return session, fake, player, session.Subscribe(64)
}

func nextEvent(t *testing.T, events <-chan Event) Event {
	t.Helper()
	select {
	case event, ok := <-events:
		require.True(t, ok, "event channel closed")
		return event
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func requireNoEvent(t *testing.T, events <-chan Event) {
	t.Helper()
	select {
	case event, ok := <-events:
		if ok {
			t.Fatalf("unexpected event %s", event.Type)
		}
	case <-time.After(50 * time.Millisecond):
	}
}

// tick advances the fake clock by one interval and waits for the resulting event.
func tick(t *testing.T, fake *clockwork.FakeClock, events <-chan Event) Event {
	t.Helper()
	fake.Advance(time.Second)
	return nextEvent(t, events)
}

func TestNewSessionRejectsInvalidPhases(t *testing.T) {
	_, err := NewSession(model.CycleConfig{}, nil, Options{Logger: zerolog.Nop()})
	require.ErrorIs(t, err, model.ErrEmptyPhaseTable)
}

func TestSessionStartPublishesStateChange(t *testing.T) {
	session, _, _, events := newTestSession(t, model.DefaultPhases(), 30)

	session.Start()
	event := nextEvent(t, events)
	require.Equal(t, EventStateChange, event.Type)
	require.Equal(t, StatusRunning, event.Snapshot.Status)
	require.Equal(t, 270, event.Snapshot.SecondsRemaining)
	require.True(t, session.Driving())
}

func TestSessionTicksAdvanceClock(t *testing.T) {
	session, fake, _, events := newTestSession(t, model.DefaultPhases(), 30)
	session.Start()
	nextEvent(t, events)

	for i := 1; i <= 3; i++ {
		event := tick(t, fake, events)
		require.Equal(t, EventTick, event.Type)
		require.Equal(t, 270-i, event.Snapshot.SecondsRemaining)
	}
	require.Equal(t, 267, session.Snapshot().SecondsRemaining)
}

func TestSessionPublishesAlertAndPhaseChange(t *testing.T) {
	phases := model.PhaseTable{
		{Name: "a", DurationSeconds: 4, Category: model.CategoryExploration},
		{Name: "b", DurationSeconds: 4, Category: model.CategoryClosing},
	}
	session, fake, player, events := newTestSession(t, phases, 2)
	session.Start()
	nextEvent(t, events)

	require.Equal(t, EventTick, tick(t, fake, events).Type)
	alert := tick(t, fake, events)
	require.Equal(t, EventAlert, alert.Type)
	require.Equal(t, []int{2}, alert.Fired)
	require.Equal(t, int32(1), player.fires.Load())

	require.Equal(t, EventTick, tick(t, fake, events).Type)
	change := tick(t, fake, events)
	require.Equal(t, EventPhaseChange, change.Type)
	require.Equal(t, 1, change.Snapshot.PhaseIndex)
	require.Equal(t, "b", change.Snapshot.Phase.Name)
	require.Empty(t, change.Snapshot.Fired)
}

func TestSessionReleasesDriverWhenCycleFinishes(t *testing.T) {
	phases := model.PhaseTable{{Name: "only", DurationSeconds: 2, Category: model.CategoryClosing}}
	session, fake, _, events := newTestSession(t, phases)
	session.Start()
	nextEvent(t, events)

	tick(t, fake, events)
	finished := tick(t, fake, events)
	require.Equal(t, EventFinished, finished.Type)
	require.Equal(t, StatusFinished, finished.Snapshot.Status)
	require.False(t, session.Driving())

	fake.Advance(5 * time.Second)
	requireNoEvent(t, events)
}

func TestSessionStopPreventsFurtherTicks(t *testing.T) {
	session, fake, _, events := newTestSession(t, model.DefaultPhases(), 30)
	session.Start()
	nextEvent(t, events)
	tick(t, fake, events)

	session.Stop()
	stopped := nextEvent(t, events)
	require.Equal(t, EventStateChange, stopped.Type)
	require.Equal(t, StatusPaused, stopped.Snapshot.Status)
	require.False(t, session.Driving())

	for i := 0; i < 5; i++ {
		fake.Advance(time.Second)
	}
	requireNoEvent(t, events)
	require.Equal(t, 269, session.Snapshot().SecondsRemaining)
}

func TestSessionResumeContinuesFromPause(t *testing.T) {
	session, fake, _, events := newTestSession(t, model.DefaultPhases(), 30)
	session.Start()
	nextEvent(t, events)
	tick(t, fake, events)
	tick(t, fake, events)

	session.Stop()
	nextEvent(t, events)

	require.True(t, session.Resume())
	resumed := nextEvent(t, events)
	require.Equal(t, StatusRunning, resumed.Snapshot.Status)
	require.Equal(t, 268, resumed.Snapshot.SecondsRemaining)

	event := tick(t, fake, events)
	require.Equal(t, 267, event.Snapshot.SecondsRemaining)
	require.False(t, session.Resume())
}

func TestSessionResetReturnsToIdleAndStopsDriver(t *testing.T) {
	session, fake, _, events := newTestSession(t, model.DefaultPhases(), 30)
	session.Start()
	nextEvent(t, events)
	tick(t, fake, events)

	session.Reset()
	reset := nextEvent(t, events)
	require.Equal(t, StatusIdle, reset.Snapshot.Status)
	require.Equal(t, -1, reset.Snapshot.PhaseIndex)
	require.False(t, session.Driving())

	fake.Advance(3 * time.Second)
	requireNoEvent(t, events)
	require.Equal(t, []int{30}, session.Snapshot().Thresholds)
}

func TestSessionRestartReplacesDriver(t *testing.T) {
	session, fake, _, events := newTestSession(t, model.DefaultPhases(), 30)
	session.Start()
	nextEvent(t, events)
	tick(t, fake, events)

	session.Start()
	restarted := nextEvent(t, events)
	require.Equal(t, 270, restarted.Snapshot.SecondsRemaining)

	event := tick(t, fake, events)
	require.Equal(t, 269, event.Snapshot.SecondsRemaining)
	requireNoEvent(t, events)
}

func TestSessionAlertEditsPublishEvents(t *testing.T) {
	session, _, _, events := newTestSession(t, model.DefaultPhases(), 30)

	require.True(t, session.AddAlert(60))
	added := nextEvent(t, events)
	require.Equal(t, EventAlertsChanged, added.Type)
	require.Equal(t, []int{60, 30}, added.Snapshot.Thresholds)

	require.False(t, session.AddAlert(60))
	require.True(t, session.RemoveAlert(30))
	removed := nextEvent(t, events)
	require.Equal(t, []int{60}, removed.Snapshot.Thresholds)
	require.False(t, session.RemoveAlert(30))
}

func TestSessionCloseClosesObserversAndIgnoresCalls(t *testing.T) {
	session, fake, _, events := newTestSession(t, model.DefaultPhases(), 30)
	session.Start()
	nextEvent(t, events)

	session.Close()
	_, ok := <-events
	require.False(t, ok)
	require.False(t, session.Driving())

	session.Start()
	fake.Advance(time.Second)
	require.Equal(t, StatusRunning, session.Snapshot().Status)
	require.Equal(t, 270, session.Snapshot().SecondsRemaining)
	require.False(t, session.AddAlert(10))

	late := session.Subscribe(1)
	_, ok = <-late
	require.False(t, ok)
}

func TestSessionDoneSurvivesFullObserverBuffer(t *testing.T) {
	phases := model.PhaseTable{{Name: "only", DurationSeconds: 30, Category: model.CategoryClosing}}
	session, fake, _, _ := newTestSession(t, phases)
	slow := session.Subscribe(4)

	session.Start()
	done := session.Done()
	require.Eventually(t, func() bool {
		select {
		case <-done:
			return true
		default:
			fake.Advance(time.Second)
			return false
		}
	}, 5*time.Second, 5*time.Millisecond)

	require.Equal(t, StatusFinished, session.Snapshot().Status)
	require.False(t, session.Driving())

	require.Len(t, slow, 4)
	for range 4 {
		require.NotEqual(t, EventFinished, (<-slow).Type)
	}
}

func TestSessionDoneClosesOnResetAndRenewsOnStart(t *testing.T) {
	session, _, _, events := newTestSession(t, model.DefaultPhases(), 30)
	session.Start()
	nextEvent(t, events)
	first := session.Done()

	session.Reset()
	_, open := <-first
	require.False(t, open)

	session.Start()
	select {
	case <-session.Done():
		t.Fatal("new cycle reported done")
	default:
	}
}
