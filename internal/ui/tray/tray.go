package tray

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"

	"nightcircle/internal/core/cycleclock"
	"nightcircle/internal/core/display"
	"nightcircle/internal/core/model"
)

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShowTimer   func()
	OnStart       func()
	OnTogglePause func()
	OnReset       func()
	OnToggleAlert func(seconds int)
	OnReference   func()
	OnPreferences func()
	OnQuit        func()
}

// Manager handles system tray state.
type Manager struct {
	app        desktop.App
	callbacks  Callbacks
	statusItem *fyne.MenuItem
	startItem  *fyne.MenuItem
	pauseItem  *fyne.MenuItem
	resetItem  *fyne.MenuItem
	alertsItem *fyne.MenuItem
	alertItems map[int]*fyne.MenuItem
	status     cycleclock.Status
	statusText string
}

// New creates a tray manager with the provided callbacks.
func New(app desktop.App, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:        app,
		callbacks:  callbacks,
		alertItems: make(map[int]*fyne.MenuItem, len(model.WarningOptions)),
		status:     cycleclock.StatusIdle,
		statusText: display.StatusLabel(cycleclock.StatusIdle),
	}

	manager.statusItem = fyne.NewMenuItem("", nil)
	manager.statusItem.Disabled = true

	manager.startItem = fyne.NewMenuItem("Start cycle", func() { call(manager.callbacks.OnStart) })
	manager.pauseItem = fyne.NewMenuItem("Pause", func() { call(manager.callbacks.OnTogglePause) })
	manager.resetItem = fyne.NewMenuItem("Reset", func() { call(manager.callbacks.OnReset) })

	children := make([]*fyne.MenuItem, 0, len(model.WarningOptions))
	for _, seconds := range model.WarningOptions {
		seconds := seconds
		item := fyne.NewMenuItem(display.OptionLabel(seconds), func() {
			if manager.callbacks.OnToggleAlert != nil {
				manager.callbacks.OnToggleAlert(seconds)
			}
		})
		manager.alertItems[seconds] = item
		children = append(children, item)
	}
	manager.alertsItem = fyne.NewMenuItem("Alerts", nil)
	manager.alertsItem.ChildMenu = fyne.NewMenu("", children...)

	manager.refreshStatus()
	return manager
}

// SetStatus updates the status label.
func (manager *Manager) SetStatus(status string) {
	manager.statusText = status
	manager.refreshStatus()
}

// SetState updates the pause and reset items for the clock status.
func (manager *Manager) SetState(status cycleclock.Status) {
	manager.status = status
	manager.refreshStatus()
}

// SetAlerts checks the alert items that are in the active set.
func (manager *Manager) SetAlerts(thresholds []int) {
	active := make(map[int]bool, len(thresholds))
	for _, seconds := range thresholds {
		active[seconds] = true
	}
	for seconds, item := range manager.alertItems {
		item.Checked = active[seconds]
	}
	manager.refreshMenu()
}

func (manager *Manager) refreshStatus() {
	switch manager.status {
	case cycleclock.StatusPaused:
		manager.pauseItem.Label = "Resume"
		manager.pauseItem.Disabled = false
	case cycleclock.StatusRunning:
		manager.pauseItem.Label = "Pause"
		manager.pauseItem.Disabled = false
	default:
		manager.pauseItem.Label = "Pause"
		manager.pauseItem.Disabled = true
	}
	if manager.status == cycleclock.StatusIdle {
		manager.startItem.Label = "Start cycle"
	} else {
		manager.startItem.Label = "Restart cycle"
	}
	manager.resetItem.Disabled = manager.status == cycleclock.StatusIdle
	manager.statusItem.Label = fmt.Sprintf("Status: %s", manager.statusText)
	manager.refreshMenu()
}

func (manager *Manager) menu() *fyne.Menu {
	return fyne.NewMenu("NightCircle",
		manager.statusItem,
		fyne.NewMenuItem("Show timer", func() { call(manager.callbacks.OnShowTimer) }),
		fyne.NewMenuItemSeparator(),
		manager.startItem,
		manager.pauseItem,
		manager.resetItem,
		manager.alertsItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Reference", func() { call(manager.callbacks.OnReference) }),
		fyne.NewMenuItem("Preferences", func() { call(manager.callbacks.OnPreferences) }),
		fyne.NewMenuItem("Quit", func() { call(manager.callbacks.OnQuit) }),
	)
}

func (manager *Manager) refreshMenu() {
	if manager.app != nil {
		manager.app.SetSystemTrayMenu(manager.menu())
	}
}

func call(callback func()) {
	if callback != nil {
		callback()
	}
}
