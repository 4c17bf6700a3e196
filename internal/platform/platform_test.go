package platform

import (
	"bytes"
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"nightcircle/internal/core/cue"
)

func TestPortFromNameIsStableAndInRange(t *testing.T) {
	port := portFromName("NightCircle")
	require.Equal(t, port, portFromName("NightCircle"))
	require.GreaterOrEqual(t, port, 20000)
	require.LessOrEqual(t, port, 39999)
}

func TestSecondInstanceActivatesFirst(t *testing.T) {
	name := "nightcircle-test-" + t.Name()
	guard, err := AcquireSingleInstance(name)
	require.NoError(t, err)
	t.Cleanup(func() { _ = guard.Release() })

	activated := make(chan struct{}, 1)
	guard.OnActivate(func() { activated <- struct{}{} })

	second, err := AcquireSingleInstance(name)
	require.Nil(t, second)
	require.True(t, errors.Is(err, ErrAlreadyRunning))

	select {
	case <-activated:
	case <-time.After(2 * time.Second):
		t.Fatal("running instance was not activated")
	}
}

func TestReleaseFreesLock(t *testing.T) {
	name := "nightcircle-test-" + t.Name()
	guard, err := AcquireSingleInstance(name)
	require.NoError(t, err)
	require.NotEmpty(t, guard.Address())
	require.NoError(t, guard.Release())

	again, err := AcquireSingleInstance(name)
	require.NoError(t, err)
	require.NoError(t, again.Release())
}

func TestNilGuardIsSafe(t *testing.T) {
	var guard *InstanceGuard
	guard.OnActivate(func() {})
	require.NoError(t, guard.Release())
	require.Empty(t, guard.Address())
}

func TestDisabledCuePlayerIsSilent(t *testing.T) {
	player, err := NewCuePlayer(zerolog.Nop(), false)
	require.NoError(t, err)
	player.Fire()
	require.NoError(t, player.Close())
}

func TestWriteToneFile(t *testing.T) {
	path, err := writeToneFile(cue.AlertTone)
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.Remove(path) })

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, cue.AlertTone.WAV(), data)
}

func TestBellSinkWritesBell(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, bellSink(&out)(context.Background()))
	require.Equal(t, "\a", out.String())
}

func TestCommandSinkReportsFailure(t *testing.T) {
	err := commandSink("nightcircle-no-such-player", nil)(context.Background())
	require.Error(t, err)
}
