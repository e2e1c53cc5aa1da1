package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"go.uber.org/zap"
)

// Page is the live page of a fyne window. Its methods must run on the fyne
// event loop, except Do which hands work to it.
type Page struct {
	logger *zap.Logger
	window fyne.Window

	body       *fyne.Container
	appBar     fyne.CanvasObject
	autoScroll bool

	width, height int
	onDisconnect  func()
}

func newPage(logger *zap.Logger, window fyne.Window) *Page {
	p := &Page{
		logger: logger,
		window: window,
		body:   container.NewVBox(),
	}
	p.arrange()
	return p
}

// arrange rebuilds the window content from the app bar and the body.
func (p *Page) arrange() {
	var center fyne.CanvasObject = p.body
	if p.autoScroll {
		center = container.NewVScroll(p.body)
	}
	p.window.SetContent(container.NewBorder(p.appBar, nil, nil, nil, center))
}

func (p *Page) SetTitle(title string) {
	p.window.SetTitle(title)
}

// Resize sets the window size. A zero height fits the content.
func (p *Page) Resize(width, height int) {
	p.width, p.height = width, height
	p.fit()
}

func (p *Page) fit() {
	if p.width == 0 {
		return
	}
	height := float32(p.height)
	if p.height == 0 {
		// measure the body, a scroll container has no useful min height
		height = p.body.MinSize().Height + 2*theme.Padding()
		if p.appBar != nil {
			height += p.appBar.MinSize().Height + theme.Padding()
		}
	}
	p.window.Resize(fyne.NewSize(float32(p.width), height))
}

// SetAlwaysOnTop is not supported by the fyne drivers.
func (p *Page) SetAlwaysOnTop(onTop bool) {
	if onTop {
		p.logger.Debug("Always on top is not supported by this driver")
	}
}

func (p *Page) Center() {
	p.window.CenterOnScreen()
}

// Move is not supported by the fyne drivers, which leave placement to the
// window manager.
func (p *Page) Move(x, y int) {
	p.logger.Debug("Absolute window position is not supported by this driver",
		zap.Int("x", x), zap.Int("y", y))
}

func (p *Page) Add(objs ...fyne.CanvasObject) {
	p.body.Objects = append(p.body.Objects, objs...)
}

func (p *Page) AddOverlay(obj fyne.CanvasObject) {
	p.window.Canvas().Overlays().Add(obj)
}

func (p *Page) SetAppBar(obj fyne.CanvasObject) {
	p.appBar = obj
	p.arrange()
}

func (p *Page) SetAutoScroll(enabled bool) {
	if p.autoScroll == enabled {
		return
	}
	p.autoScroll = enabled
	p.arrange()
}

// Clear removes every element, overlay and the app bar from the page.
func (p *Page) Clear() {
	p.body.RemoveAll()
	overlays := p.window.Canvas().Overlays()
	for _, obj := range overlays.List() {
		overlays.Remove(obj)
	}
	if p.appBar != nil {
		p.appBar = nil
		p.arrange()
	}
}

func (p *Page) Refresh() {
	p.body.Refresh()
	if p.height == 0 {
		p.fit()
	}
	p.window.Content().Refresh()
}

func (p *Page) OnDisconnect(fn func()) {
	p.onDisconnect = fn
}

func (p *Page) disconnected() {
	if p.onDisconnect != nil {
		p.onDisconnect()
	}
}

// Do queues fn on the fyne event loop. It does not wait, so change handlers
// running on the loop can use it too. Queued calls run in order.
func (p *Page) Do(fn func()) {
	fyne.Do(fn)
}

// Objects returns the visible elements on the page.
func (p *Page) Objects() []fyne.CanvasObject {
	return p.body.Objects
}
