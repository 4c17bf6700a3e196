// Package timerview is the compact desktop window showing the running cycle.
package timerview

import (
	"context"
	"image/color"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"nightcircle/internal/core/cycleclock"
	"nightcircle/internal/core/display"
	"nightcircle/internal/core/model"
	"nightcircle/internal/ui/animation"
)

// Callbacks defines the window's button handlers.
type Callbacks struct {
	OnStart       func()
	OnTogglePause func()
	OnReset       func()
}

// Window manages the timer UI.
type Window struct {
	window         fyne.Window
	callbacks      Callbacks
	phaseLabel     *canvas.Text
	categoryLabel  *canvas.Text
	remainingLabel *canvas.Text
	statusLabel    *widget.Label
	tagsLabel      *widget.Label
	progress       *widget.ProgressBar
	indicator      *canvas.Image
	segmentBar     *fyne.Container
	segmentLayout  *segmentBarLayout
	startButton    *widget.Button
	pauseButton    *widget.Button
	resetButton    *widget.Button
	engine         *animation.Engine
	pulse          animation.PulseSpec
	alpha          uint8
}

const (
	segmentHeight = float32(10)
	segmentGap    = float32(2)
)

var (
	explorationColor = color.NRGBA{R: 56, G: 189, B: 148, A: 255}
	closingColor     = color.NRGBA{R: 220, G: 68, B: 68, A: 255}
	alertTextColor   = color.NRGBA{R: 250, G: 204, B: 21, A: 255}
	plainTextColor   = color.NRGBA{R: 240, G: 240, B: 240, A: 255}
	mutedTextColor   = color.NRGBA{R: 160, G: 160, B: 170, A: 255}
)

// New creates the timer window. The pulse frames blink in the corner
// indicator while an alert window is open.
func New(app fyne.App, callbacks Callbacks, pulse animation.PulseSpec) *Window {
	window := app.NewWindow("NightCircle")
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}

	phaseLabel := canvas.NewText("Ready", plainTextColor)
	phaseLabel.TextStyle = fyne.TextStyle{Bold: true}
	phaseLabel.TextSize = 20

	categoryLabel := canvas.NewText("", mutedTextColor)
	categoryLabel.TextSize = 12

	remainingLabel := canvas.NewText(display.FormatRemaining(0), plainTextColor)
	remainingLabel.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	remainingLabel.TextSize = 44
	remainingLabel.Alignment = fyne.TextAlignCenter

	indicator := canvas.NewImageFromResource(pulse.Rest)
	indicator.FillMode = canvas.ImageFillContain
	indicator.SetMinSize(fyne.NewSize(40, 40))

	segmentLayout := &segmentBarLayout{}
	segmentBar := container.New(segmentLayout)

	timer := &Window{
		window:         window,
		callbacks:      callbacks,
		phaseLabel:     phaseLabel,
		categoryLabel:  categoryLabel,
		remainingLabel: remainingLabel,
		statusLabel:    widget.NewLabel(""),
		tagsLabel:      widget.NewLabel(""),
		progress:       widget.NewProgressBar(),
		indicator:      indicator,
		segmentBar:     segmentBar,
		segmentLayout:  segmentLayout,
		pulse:          pulse,
		alpha:          255,
	}
	timer.progress.TextFormatter = func() string { return "" }

	timer.startButton = widget.NewButton("Start", func() { call(timer.callbacks.OnStart) })
	timer.pauseButton = widget.NewButton("Pause", func() { call(timer.callbacks.OnTogglePause) })
	timer.resetButton = widget.NewButton("Reset", func() { call(timer.callbacks.OnReset) })

	header := container.NewBorder(nil, nil, nil, indicator, container.NewVBox(phaseLabel, categoryLabel))
	buttons := container.NewHBox(timer.startButton, timer.pauseButton, layout.NewSpacer(), timer.resetButton)
	content := container.NewVBox(
		header,
		remainingLabel,
		timer.progress,
		segmentBar,
		container.NewHBox(timer.statusLabel, layout.NewSpacer(), timer.tagsLabel),
		buttons,
	)

	window.SetContent(container.NewPadded(content))
	window.Resize(fyne.NewSize(320, 260))
	window.SetCloseIntercept(func() {
		window.Hide()
	})

	timer.render(cycleclock.Snapshot{Status: cycleclock.StatusIdle, PhaseIndex: -1})
	return timer
}

// SetEngine attaches the animation engine driving the alert indicator.
func (timer *Window) SetEngine(engine *animation.Engine) {
	timer.engine = engine
}

// Show brings the window forward.
func (timer *Window) Show() {
	timer.window.Show()
	timer.window.RequestFocus()
	timer.applyNativeOpacity()
}

// SetOpacity changes the window alpha, 255 being opaque. It applies right
// away when the window is already shown.
func (timer *Window) SetOpacity(alpha uint8) {
	timer.alpha = alpha
	timer.applyNativeOpacity()
}

// Opacity returns the configured window alpha.
func (timer *Window) Opacity() uint8 {
	return timer.alpha
}

// Hide hides the window and stops the indicator.
func (timer *Window) Hide() {
	if timer.engine != nil {
		timer.engine.Stop()
	}
	timer.window.Hide()
}

// Update renders a snapshot. It may be called from any goroutine.
func (timer *Window) Update(snapshot cycleclock.Snapshot) {
	if timer.engine != nil {
		if display.IsAlertActive(snapshot) && snapshot.Running {
			timer.engine.StartPulse(context.Background(), timer.pulse)
		} else {
			timer.engine.Stop()
		}
	}
	fyne.Do(func() {
		timer.render(snapshot)
	})
}

// SetIndicator shows one pulse frame. It may be called from any goroutine.
func (timer *Window) SetIndicator(resource fyne.Resource) {
	fyne.Do(func() {
		timer.indicator.Resource = resource
		timer.indicator.Refresh()
	})
}

func (timer *Window) render(snapshot cycleclock.Snapshot) {
	view := display.NewView(snapshot)

	timer.phaseLabel.Text = view.PhaseName
	if timer.phaseLabel.Text == "" {
		timer.phaseLabel.Text = view.Status
	}
	timer.phaseLabel.Refresh()

	timer.categoryLabel.Text = categoryText(view.Category)
	timer.categoryLabel.Refresh()

	timer.remainingLabel.Text = view.Remaining
	timer.remainingLabel.Color = plainTextColor
	if view.AlertActive {
		timer.remainingLabel.Color = alertTextColor
	}
	timer.remainingLabel.Refresh()

	timer.progress.SetValue(view.Progress)
	timer.statusLabel.SetText(view.Status)
	timer.tagsLabel.SetText(tagsText(view.Tags))
	timer.renderSegments(view.Segments)

	controls := controlsFor(snapshot.Status)
	timer.startButton.SetText(controls.startLabel)
	timer.pauseButton.SetText(controls.pauseLabel)
	setEnabled(timer.pauseButton, controls.pauseEnabled)
	setEnabled(timer.resetButton, controls.resetEnabled)
}

func (timer *Window) renderSegments(segments []display.Segment) {
	timer.segmentLayout.widths = timer.segmentLayout.widths[:0]
	objects := make([]fyne.CanvasObject, 0, len(segments))
	for _, segment := range segments {
		rect := canvas.NewRectangle(segmentColor(segment))
		rect.CornerRadius = 2
		objects = append(objects, rect)
		timer.segmentLayout.widths = append(timer.segmentLayout.widths, float32(segment.Width))
	}
	timer.segmentBar.Objects = objects
	timer.segmentBar.Refresh()
}

type controls struct {
	startLabel   string
	pauseLabel   string
	pauseEnabled bool
	resetEnabled bool
}

func controlsFor(status cycleclock.Status) controls {
	switch status {
	case cycleclock.StatusRunning:
		return controls{startLabel: "Restart", pauseLabel: "Pause", pauseEnabled: true, resetEnabled: true}
	case cycleclock.StatusPaused:
		return controls{startLabel: "Restart", pauseLabel: "Resume", pauseEnabled: true, resetEnabled: true}
	case cycleclock.StatusFinished:
		return controls{startLabel: "Start again", pauseLabel: "Pause", resetEnabled: true}
	default:
		return controls{startLabel: "Start", pauseLabel: "Pause"}
	}
}

// segmentColor fades phases that are over and dims upcoming ones.
func segmentColor(segment display.Segment) color.NRGBA {
	base := explorationColor
	if segment.Category == model.CategoryClosing {
		base = closingColor
	}
	switch {
	case segment.Active:
		base.A = 255
	case segment.Past:
		base.A = 60
	default:
		base.A = 140
	}
	return base
}

func categoryText(category model.Category) string {
	switch category {
	case model.CategoryClosing:
		return "Circle closing"
	case model.CategoryExploration:
		return "Exploration"
	default:
		return ""
	}
}

func tagsText(tags []string) string {
	if len(tags) == 0 {
		return "no alerts"
	}
	return "alerts " + strings.Join(tags, " ")
}

func setEnabled(button *widget.Button, enabled bool) {
	if enabled {
		button.Enable()
		return
	}
	button.Disable()
}

func call(callback func()) {
	if callback != nil {
		callback()
	}
}

// segmentBarLayout lays objects out left to right, each taking its share
// of the width.
type segmentBarLayout struct {
	widths []float32
}

func (bar *segmentBarLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	gaps := float32(0)
	if len(objects) > 1 {
		gaps = segmentGap * float32(len(objects)-1)
	}
	available := size.Width - gaps
	if available < 0 {
		available = 0
	}

	x := float32(0)
	for index, object := range objects {
		width := float32(0)
		if index < len(bar.widths) {
			width = available * bar.widths[index]
		}
		object.Move(fyne.NewPos(x, 0))
		object.Resize(fyne.NewSize(width, size.Height))
		x += width + segmentGap
	}
}

func (bar *segmentBarLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	if len(objects) == 0 {
		return fyne.NewSize(0, 0)
	}
	return fyne.NewSize(float32(len(objects))*segmentGap, segmentHeight)
}
