package main

import (
	"errors"
	"fmt"
	"slices"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/rs/zerolog"

	"nightcircle/internal/core/cue"
	"nightcircle/internal/core/cycleclock"
	"nightcircle/internal/core/display"
	"nightcircle/internal/platform"
	"nightcircle/internal/reference"
	"nightcircle/internal/ui/animation"
	"nightcircle/internal/ui/preferences"
	"nightcircle/internal/ui/referenceview"
	"nightcircle/internal/ui/timerview"
	"nightcircle/internal/ui/tray"
	"nightcircle/resources"
)

type desktopApp struct {
	options    *globalOptions
	logger     zerolog.Logger
	fyneApp    fyne.App
	tray       desktop.App
	session    *cycleclock.Session
	sound      *cue.Toggle
	settings   preferences.Settings
	configPath string

	timerWindow     *timerview.Window
	prefsWindow     *preferences.Window
	referenceWindow *referenceview.Window
	trayManager     *tray.Manager

	activeIcon fyne.Resource
	pausedIcon fyne.Resource
	alertIcon  fyne.Resource
}

func runDesktop(options *globalOptions) error {
	logger := options.logger

	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		if errors.Is(err, platform.ErrAlreadyRunning) {
			logger.Info().Err(err).Msg("another instance is running")
			return nil
		}
		return fmt.Errorf("single instance: %w", err)
	}
	defer func() {
		_ = guard.Release()
	}()

	settings, configPath := loadSettings(options)

	player := newCuePlayer(options)
	defer func() {
		_ = player.Close()
	}()
	sound := cue.NewToggle(player, settings.SoundEnabled)

	session, err := cycleclock.NewSession(settings.CycleConfig(), sound, cycleclock.Options{Logger: logger})
	if err != nil {
		return err
	}
	defer session.Close()

	fyneApp := app.NewWithID(appID)
	trayApp, ok := fyneApp.(desktop.App)
	if !ok {
		return errors.New("system tray unsupported on this platform")
	}

	desk := &desktopApp{
		options:    options,
		logger:     logger,
		fyneApp:    fyneApp,
		tray:       trayApp,
		session:    session,
		sound:      sound,
		settings:   settings,
		configPath: configPath,
		activeIcon: resources.MustIcon("logo_active.svg"),
		pausedIcon: resources.MustIcon("logo_paused.svg"),
		alertIcon:  resources.MustIcon("logo_alert.svg"),
	}
	fyneApp.SetIcon(desk.activeIcon)
	desk.buildWindows(reference.Load(resources.Data(), logger))

	guard.OnActivate(func() {
		fyne.Do(desk.timerWindow.Show)
	})

	events := session.Subscribe(16)
	go desk.consume(events)
	desk.render(cycleclock.Event{Type: cycleclock.EventStateChange, Snapshot: session.Snapshot()})

	if settings.AlwaysShowTimer {
		desk.timerWindow.Show()
	}
	logger.Info().Str("config", configPath).Msg("tray app started")
	fyneApp.Run()
	return nil
}

func (desk *desktopApp) buildWindows(catalog reference.Catalog) {
	desk.timerWindow = timerview.New(desk.fyneApp, timerview.Callbacks{
		OnStart:       desk.session.Start,
		OnTogglePause: desk.togglePause,
		OnReset:       desk.session.Reset,
	}, animation.PulseSpec{Lit: desk.alertIcon, Dim: desk.activeIcon, Rest: desk.activeIcon})

	engine := animation.New(animation.DefaultConfig(), desk.timerWindow.SetIndicator)
	desk.timerWindow.SetEngine(engine)
	desk.timerWindow.SetOpacity(desk.settings.TimerAlpha())

	desk.referenceWindow = referenceview.New(desk.fyneApp, catalog)
	desk.prefsWindow = preferences.New(desk.fyneApp, desk.settings, desk.applySettings)

	desk.trayManager = tray.New(desk.tray, tray.Callbacks{
		OnShowTimer:   desk.timerWindow.Show,
		OnStart:       desk.session.Start,
		OnTogglePause: desk.togglePause,
		OnReset:       desk.session.Reset,
		OnToggleAlert: desk.toggleAlert,
		OnReference:   desk.referenceWindow.Show,
		OnPreferences: desk.prefsWindow.Show,
		OnQuit: func() {
			desk.session.Close()
			desk.fyneApp.Quit()
		},
	})
	desk.tray.SetSystemTrayIcon(desk.activeIcon)
}

func (desk *desktopApp) togglePause() {
	switch desk.session.Snapshot().Status {
	case cycleclock.StatusRunning:
		desk.session.Stop()
	case cycleclock.StatusPaused:
		desk.session.Resume()
	}
}

// toggleAlert flips one threshold from the tray and remembers the new set.
func (desk *desktopApp) toggleAlert(seconds int) {
	if slices.Contains(desk.session.Snapshot().Thresholds, seconds) {
		desk.session.RemoveAlert(seconds)
	} else {
		desk.session.AddAlert(seconds)
	}
	desk.settings.Alerts = desk.session.Snapshot().Thresholds
	desk.prefsWindow.UpdateSettings(desk.settings)
	saveSettings(desk.options, desk.configPath, desk.settings)
}

func (desk *desktopApp) applySettings(updated preferences.Settings) {
	added, removed := preferences.AlertChanges(desk.session.Snapshot().Thresholds, updated.Alerts)
	for _, threshold := range removed {
		desk.session.RemoveAlert(threshold)
	}
	for _, threshold := range added {
		desk.session.AddAlert(threshold)
	}
	desk.sound.SetEnabled(updated.SoundEnabled)
	desk.timerWindow.SetOpacity(updated.TimerAlpha())
	desk.settings = updated
	saveSettings(desk.options, desk.configPath, updated)
}

func (desk *desktopApp) consume(events <-chan cycleclock.Event) {
	for event := range events {
		desk.notify(event)
		desk.timerWindow.Update(event.Snapshot)
		fyne.Do(func() {
			desk.render(event)
		})
	}
}

func (desk *desktopApp) render(event cycleclock.Event) {
	snapshot := event.Snapshot
	view := display.NewView(snapshot)

	desk.trayManager.SetState(snapshot.Status)
	desk.trayManager.SetAlerts(snapshot.Thresholds)
	desk.trayManager.SetStatus(trayStatus(view))

	switch {
	case snapshot.Status == cycleclock.StatusPaused:
		desk.tray.SetSystemTrayIcon(desk.pausedIcon)
	case view.AlertActive && snapshot.Running:
		desk.tray.SetSystemTrayIcon(desk.alertIcon)
	default:
		desk.tray.SetSystemTrayIcon(desk.activeIcon)
	}
}

func (desk *desktopApp) notify(event cycleclock.Event) {
	var message string
	switch event.Type {
	case cycleclock.EventPhaseChange, cycleclock.EventAlert, cycleclock.EventFinished:
		message = announcement(event)
	default:
		return
	}
	desk.fyneApp.SendNotification(fyne.NewNotification("NightCircle", message))
}

func trayStatus(view display.View) string {
	if view.PhaseName == "" {
		return view.Status
	}
	return fmt.Sprintf("%s %s", view.PhaseName, view.Remaining)
}
