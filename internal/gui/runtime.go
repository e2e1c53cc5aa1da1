package gui

import (
	"errors"
	"sync"

	"fyne.io/fyne/v2"
	"go.uber.org/zap"

	"github.com/trade-engine/assistant/internal/assistant"
)

// ErrWindowRunning is returned by Start while the previous window is still open.
var ErrWindowRunning = errors.New("a window is already running")

var (
	_ assistant.Runtime = (*Runtime)(nil)
	_ assistant.Page    = (*Page)(nil)
)

// Runtime opens assistant windows on a fyne app. The app's Run loop owns the
// main goroutine; Runtime only hands work to it.
type Runtime struct {
	logger *zap.Logger
	app    fyne.App

	mu             sync.Mutex
	window         fyne.Window
	done           chan struct{}
	closeRequested bool
}

// NewRuntime creates a runtime for app.
func NewRuntime(logger *zap.Logger, app fyne.App) *Runtime {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runtime{
		logger: logger,
		app:    app,
	}
}

// Start creates a window on the fyne event loop, runs entry with its page and
// shows it.
func (r *Runtime) Start(entry func(assistant.Page)) error {
	r.mu.Lock()
	if r.done != nil {
		select {
		case <-r.done:
		default:
			r.mu.Unlock()
			return ErrWindowRunning
		}
	}
	done := make(chan struct{})
	r.done = done
	r.closeRequested = false
	r.mu.Unlock()

	fyne.Do(func() {
		w := r.app.NewWindow("")
		page := newPage(r.logger, w)
		w.SetOnClosed(func() {
			page.disconnected()
			r.finish(done)
		})

		r.mu.Lock()
		r.window = w
		closeEarly := r.closeRequested
		r.mu.Unlock()

		if closeEarly {
			w.Close()
			return
		}
		entry(page)
		w.Show()
		r.logger.Debug("Window shown")
	})
	return nil
}

func (r *Runtime) finish(done chan struct{}) {
	r.mu.Lock()
	defer r.mu.Unlock()

	select {
	case <-done:
	default:
		close(done)
	}
	if r.done == done {
		r.window = nil
	}
}

// Poll reports whether the current window has been closed.
func (r *Runtime) Poll() (int, bool) {
	r.mu.Lock()
	done := r.done
	r.mu.Unlock()

	if done == nil {
		return 0, true
	}
	select {
	case <-done:
		return 0, true
	default:
		return 0, false
	}
}

// Close closes the current window. A window that is not created yet is
// closed as soon as it is.
func (r *Runtime) Close() {
	r.mu.Lock()
	w := r.window
	if w == nil {
		r.closeRequested = true
	}
	r.mu.Unlock()

	if w != nil {
		fyne.Do(w.Close)
	}
}

// Quit stops the fyne app, ending its Run loop.
func (r *Runtime) Quit() {
	fyne.Do(r.app.Quit)
}
