//go:build !windows

package timerview

// Window opacity is left to the window manager outside Windows.
func (timer *Window) applyNativeOpacity() {}
