package assistant

import (
	"errors"
	"sync"
	"time"

	"fyne.io/fyne/v2"
)

type fakePage struct {
	title      string
	width      int
	height     int
	onTop      bool
	centered   bool
	moved      bool
	x, y       int
	autoScroll bool

	objects    []fyne.CanvasObject
	overlays   []fyne.CanvasObject
	appBar     fyne.CanvasObject
	refreshes  int
	disconnect func()
}

func (p *fakePage) SetTitle(title string) { p.title = title }
func (p *fakePage) Resize(width, height int) { p.width, p.height = width, height }
func (p *fakePage) SetAlwaysOnTop(onTop bool) { p.onTop = onTop }
func (p *fakePage) Center() { p.centered = true }
func (p *fakePage) Move(x, y int) { p.moved, p.x, p.y = true, x, y }
func (p *fakePage) SetAutoScroll(enabled bool) {
	p.autoScroll = enabled
}

func (p *fakePage) Add(objs ...fyne.CanvasObject) { p.objects = append(p.objects, objs...) }
func (p *fakePage) AddOverlay(obj fyne.CanvasObject) { p.overlays = append(p.overlays, obj) }
func (p *fakePage) SetAppBar(obj fyne.CanvasObject) { p.appBar = obj }

func (p *fakePage) Clear() {
	p.objects = nil
	p.overlays = nil
	p.appBar = nil
}

func (p *fakePage) Refresh() { p.refreshes++ }
func (p *fakePage) OnDisconnect(fn func()) { p.disconnect = fn }
func (p *fakePage) Do(fn func()) { fn() }

// fakeRuntime runs the page entry synchronously and exits once closed.
type fakeRuntime struct {
	mu       sync.Mutex
	page     *fakePage
	exited   bool
	closes   int
	startErr error

	// closeDelay makes Close asynchronous, like a toolkit event loop.
	closeDelay time.Duration

	// onOpen runs after the entry callback, while the session is open.
	onOpen func(p *fakePage)
}

func (r *fakeRuntime) Start(entry func(Page)) error {
	if r.startErr != nil {
		return r.startErr
	}
	page := &fakePage{}
	r.mu.Lock()
	r.page = page
	r.exited = false
	r.mu.Unlock()

	entry(page)
	if r.onOpen != nil {
		r.onOpen(page)
	}
	return nil
}

func (r *fakeRuntime) Poll() (int, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return 0, r.exited
}

func (r *fakeRuntime) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closes++
	if r.closeDelay == 0 {
		r.exited = true
		return
	}
	time.AfterFunc(r.closeDelay, func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.exited = true
	})
}

func (r *fakeRuntime) closeCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closes
}

var errStart = errors.New("no display")
