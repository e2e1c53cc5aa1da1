package assistant

import "fyne.io/fyne/v2"

// Runtime runs the GUI toolkit on its own execution context.
type Runtime interface {
	// Start opens a window and calls entry once with its live page.
	Start(entry func(Page)) error
	// Poll reports whether the window has exited, and with which code.
	Poll() (code int, exited bool)
	// Close requests the window to close. Safe to call more than once.
	Close()
}

// Page is the live page of an open window.
type Page interface {
	SetTitle(title string)
	// Resize sets the window size. A zero height means size to content.
	Resize(width, height int)
	SetAlwaysOnTop(onTop bool)
	Center()
	Move(x, y int)

	Add(objs ...fyne.CanvasObject)
	AddOverlay(obj fyne.CanvasObject)
	SetAppBar(obj fyne.CanvasObject)
	SetAutoScroll(enabled bool)
	Clear()
	Refresh()

	// OnDisconnect registers fn to run when the page is torn down by the toolkit.
	OnDisconnect(fn func())
	// Do schedules fn on the toolkit's context. It may be called from any
	// goroutine, including handlers already running on that context.
	Do(fn func())
}
