package animation

import "fyne.io/fyne/v2"

// PulseSpec defines the two frames an alert pulse alternates between.
// Rest is shown once the pulse stops.
type PulseSpec struct {
	Lit  fyne.Resource
	Dim  fyne.Resource
	Rest fyne.Resource
}
