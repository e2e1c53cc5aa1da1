package gui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// Toggle is a two state button showing a different caption and colour for
// each state. It reports changes as bool.
type Toggle struct {
	widget.BaseWidget
	on        bool
	offText   string
	onText    string
	disabled  bool
	onChanged func(any)
}

func NewToggle(offText, onText string, on bool) *Toggle {
	t := &Toggle{
		on:      on,
		offText: offText,
		onText:  onText,
	}
	t.ExtendBaseWidget(t)
	return t
}

type toggleRenderer struct {
	t    *Toggle
	rect *canvas.Rectangle
	txt  *canvas.Text
}

func (r *toggleRenderer) Layout(size fyne.Size) {
	r.rect.Resize(size)
	r.txt.Resize(r.txt.MinSize())
	r.txt.Move(fyne.NewPos(theme.InnerPadding(), (size.Height-r.txt.MinSize().Height)/2))
}

func (r *toggleRenderer) MinSize() fyne.Size {
	text := r.txt.MinSize()
	return fyne.NewSize(text.Width+2*theme.InnerPadding(), text.Height+theme.InnerPadding())
}

func (r *toggleRenderer) Refresh() {
	r.rect.FillColor = r.t.fill()
	r.txt.Text = r.t.Text()
	r.rect.Refresh()
	r.txt.Refresh()
}

func (r *toggleRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.rect, r.txt}
}

func (r *toggleRenderer) Destroy() {}

func (t *Toggle) CreateRenderer() fyne.WidgetRenderer {
	rect := canvas.NewRectangle(t.fill())
	rect.CornerRadius = theme.InputRadiusSize()
	txt := canvas.NewText(t.Text(), color.White)
	txt.TextSize = theme.TextSize()
	return &toggleRenderer{t: t, rect: rect, txt: txt}
}

func (t *Toggle) fill() color.Color {
	th := t.Theme()
	v := fyne.CurrentApp().Settings().ThemeVariant()
	switch {
	case t.disabled:
		return th.Color(theme.ColorNameDisabledButton, v)
	case t.on:
		return th.Color(theme.ColorNamePrimary, v)
	default:
		return th.Color(theme.ColorNameButton, v)
	}
}

// Text returns the caption for the current state.
func (t *Toggle) Text() string {
	if t.on {
		return t.onText
	}
	return t.offText
}

func (t *Toggle) Tapped(*fyne.PointEvent) {
	if t.disabled {
		return
	}
	t.Set(!t.on)
}

// Set changes the state, reporting it when it differs.
func (t *Toggle) Set(on bool) {
	if t.on == on {
		return
	}
	t.on = on
	t.Refresh()
	if t.onChanged != nil {
		t.onChanged(on)
	}
}

func (t *Toggle) On() bool {
	return t.on
}

func (t *Toggle) SetOnChanged(fn func(any)) {
	t.onChanged = fn
}

func (t *Toggle) Disable() {
	t.disabled = true
	t.Refresh()
}

func (t *Toggle) Enable() {
	t.disabled = false
	t.Refresh()
}

func (t *Toggle) Disabled() bool {
	return t.disabled
}
