package preferences

import (
	"sort"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"nightcircle/internal/core/display"
	"nightcircle/internal/core/model"
)

// Window handles the preferences UI.
type Window struct {
	window     fyne.Window
	settings   Settings
	onSave     func(Settings)
	alerts     *widget.CheckGroup
	sound      *widget.Check
	alwaysShow *widget.Check
	opacity    *widget.Slider
	phases     *widget.Label
	labels     map[string]int
}

// New creates a preferences window.
func New(app fyne.App, settings Settings, onSave func(Settings)) *Window {
	window := app.NewWindow("NightCircle Settings")

	labels := make(map[string]int, len(model.WarningOptions))
	options := make([]string, 0, len(model.WarningOptions))
	for _, seconds := range model.WarningOptions {
		label := display.OptionLabel(seconds)
		labels[label] = seconds
		options = append(options, label)
	}

	alerts := widget.NewCheckGroup(options, nil)
	sound := widget.NewCheck("Play a sound when an alert fires", nil)
	alwaysShow := widget.NewCheck("Show the timer window on launch", nil)
	phases := widget.NewLabel("")
	phases.Wrapping = fyne.TextWrapWord
	opacity := widget.NewSlider(MinTimerOpacity, MaxTimerOpacity)
	opacity.Step = 1

	form := container.NewVBox(
		widget.NewLabelWithStyle("Alerts", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabel("Warn when a phase has this much time left:"),
		alerts,
		sound,
		widget.NewSeparator(),
		widget.NewLabelWithStyle("Cycle", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		phases,
		alwaysShow,
		widget.NewLabel("Timer window opacity (%):"),
		opacity,
	)

	saveButton := widget.NewButton("Save", nil)
	cancelButton := widget.NewButton("Cancel", nil)
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.Resize(fyne.NewSize(380, 420))

	prefs := &Window{
		window:     window,
		onSave:     onSave,
		alerts:     alerts,
		sound:      sound,
		alwaysShow: alwaysShow,
		opacity:    opacity,
		phases:     phases,
		labels:     labels,
	}
	prefs.UpdateSettings(settings)

	saveButton.OnTapped = prefs.handleSave
	cancelButton.OnTapped = func() {
		prefs.UpdateSettings(prefs.settings)
		window.Hide()
	}
	window.SetCloseIntercept(func() {
		window.Hide()
	})

	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings Settings) {
	prefs.settings = settings

	selected := make([]string, 0, len(settings.Alerts))
	for _, seconds := range settings.Alerts {
		selected = append(selected, display.OptionLabel(seconds))
	}
	prefs.alerts.SetSelected(selected)
	prefs.sound.SetChecked(settings.SoundEnabled)
	prefs.alwaysShow.SetChecked(settings.AlwaysShowTimer)
	opacity := settings.TimerOpacity
	if !ValidTimerOpacity(opacity) {
		opacity = DefaultTimerOpacity
	}
	prefs.opacity.SetValue(float64(opacity))
	prefs.phases.SetText(describePhases(settings.PhaseTable()))
}

func (prefs *Window) handleSave() {
	settings := prefs.settings
	settings.Alerts = prefs.selectedAlerts()
	settings.SoundEnabled = prefs.sound.Checked
	settings.AlwaysShowTimer = prefs.alwaysShow.Checked
	settings.TimerOpacity = int(prefs.opacity.Value)

	prefs.settings = settings
	if prefs.onSave != nil {
		prefs.onSave(settings)
	}
	prefs.window.Hide()
}

// selectedAlerts keeps thresholds that are not offered as options, such as
// ones added by hand in the settings file.
func (prefs *Window) selectedAlerts() []int {
	offered := make(map[int]bool, len(prefs.labels))
	for _, seconds := range prefs.labels {
		offered[seconds] = true
	}

	var alerts []int
	for _, seconds := range prefs.settings.Alerts {
		if !offered[seconds] {
			alerts = append(alerts, seconds)
		}
	}
	for _, label := range prefs.alerts.Selected {
		if seconds, ok := prefs.labels[label]; ok {
			alerts = append(alerts, seconds)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(alerts)))
	if alerts == nil {
		alerts = []int{}
	}
	return alerts
}

func describePhases(phases model.PhaseTable) string {
	lines := make([]string, 0, len(phases))
	for _, phase := range phases {
		lines = append(lines, phase.Name+"  "+display.FormatRemaining(phase.DurationSeconds))
	}
	return strings.Join(lines, "\n")
}
