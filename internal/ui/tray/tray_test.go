package tray

import (
	"testing"

	"github.com/stretchr/testify/require"

	"nightcircle/internal/core/cycleclock"
)

func TestSetStateUpdatesItems(t *testing.T) {
	manager := New(nil, Callbacks{})
	require.True(t, manager.pauseItem.Disabled)
	require.True(t, manager.resetItem.Disabled)
	require.Equal(t, "Start cycle", manager.startItem.Label)

	manager.SetState(cycleclock.StatusRunning)
	require.False(t, manager.pauseItem.Disabled)
	require.Equal(t, "Pause", manager.pauseItem.Label)
	require.Equal(t, "Restart cycle", manager.startItem.Label)

	manager.SetState(cycleclock.StatusPaused)
	require.Equal(t, "Resume", manager.pauseItem.Label)

	manager.SetState(cycleclock.StatusFinished)
	require.True(t, manager.pauseItem.Disabled)
	require.False(t, manager.resetItem.Disabled)
}

func TestSetAlertsChecksItems(t *testing.T) {
	manager := New(nil, Callbacks{})
	manager.SetAlerts([]int{30, 90})
	require.True(t, manager.alertItems[30].Checked)
	require.True(t, manager.alertItems[90].Checked)
	require.False(t, manager.alertItems[10].Checked)
}

func TestAlertItemsCallBackWithThreshold(t *testing.T) {
	var toggled []int
	manager := New(nil, Callbacks{OnToggleAlert: func(seconds int) { toggled = append(toggled, seconds) }})
	manager.alertItems[60].Action()
	manager.alertItems[10].Action()
	require.Equal(t, []int{60, 10}, toggled)
}

func TestMenuActions(t *testing.T) {
	started, quit := false, false
	manager := New(nil, Callbacks{
		OnStart: func() { started = true },
		OnQuit:  func() { quit = true },
	})
	manager.SetStatus("Exploration 4:30")
	require.Equal(t, "Status: Exploration 4:30", manager.statusItem.Label)

	menu := manager.menu()
	manager.startItem.Action()
	menu.Items[len(menu.Items)-1].Action()
	require.True(t, started)
	require.True(t, quit)

	// unset callbacks are ignored
	manager.pauseItem.Action()
}
