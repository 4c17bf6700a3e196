//go:build windows

package timerview

import (
	"syscall"

	"fyne.io/fyne/v2/driver"
)

const (
	gwlExStyle  int32 = -20
	wsExLayered       = 0x00080000
	lwaAlpha          = 0x2
)

var (
	user32                     = syscall.NewLazyDLL("user32.dll")
	getWindowLongPtr           = user32.NewProc("GetWindowLongPtrW")
	setWindowLongPtr           = user32.NewProc("SetWindowLongPtrW")
	setLayeredWindowAttributes = user32.NewProc("SetLayeredWindowAttributes")
)

// applyNativeOpacity makes the timer window translucent so the game shows
// through it. Windows that are not mapped yet have no handle and are skipped;
// Show applies the alpha again.
func (timer *Window) applyNativeOpacity() {
	native, ok := timer.window.(driver.NativeWindow)
	if !ok {
		return
	}
	alpha := timer.alpha
	native.RunNative(func(context any) {
		if hwnd := windowHandle(context); hwnd != 0 {
			setWindowAlpha(hwnd, alpha)
		}
	})
}

func windowHandle(context any) uintptr {
	switch value := context.(type) {
	case driver.WindowsWindowContext:
		return value.HWND
	case *driver.WindowsWindowContext:
		if value != nil {
			return value.HWND
		}
	}
	return 0
}

// setWindowAlpha needs WS_EX_LAYERED before the alpha takes effect. Opaque
// windows drop the layered style again.
func setWindowAlpha(hwnd uintptr, alpha uint8) {
	index := styleIndex(gwlExStyle)
	style, _, _ := getWindowLongPtr.Call(hwnd, index)
	if alpha == 255 {
		if style&wsExLayered != 0 {
			setWindowLongPtr.Call(hwnd, index, style&^wsExLayered)
		}
		return
	}
	if style&wsExLayered == 0 {
		setWindowLongPtr.Call(hwnd, index, style|wsExLayered)
	}
	setLayeredWindowAttributes.Call(hwnd, 0, uintptr(alpha), lwaAlpha)
}

func styleIndex(index int32) uintptr {
	return uintptr(uint32(index))
}
