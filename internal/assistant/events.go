package assistant

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"
)

// ChangeEvent carries the new value of a named element.
type ChangeEvent struct {
	Name string
	Data any
}

// ChangeHandler reacts to a change event. Handlers run on the toolkit's event
// loop, so they must not block. The live-page methods of Client only schedule
// work on that loop and are safe to call from a handler.
type ChangeHandler func(ChangeEvent)

// Changer is implemented by custom widgets that emit change events.
type Changer interface {
	SetOnChanged(fn func(value any))
}

// makeChangeListener returns a listener recording the event data under name.
// When extra is set it runs before the value is recorded.
func (c *Client) makeChangeListener(name string, extra ChangeHandler) ChangeHandler {
	if extra == nil {
		return func(e ChangeEvent) {
			c.record(name, e.Data)
		}
	}
	return func(e ChangeEvent) {
		extra(e)
		c.record(name, e.Data)
	}
}

// bindChange installs listener as the change callback of obj.
func bindChange(obj fyne.CanvasObject, name string, listener ChangeHandler) error {
	install, err := changeHook(obj, name)
	if err != nil {
		return err
	}
	install(listener)
	return nil
}

// changeHook returns a function installing a listener as the change callback
// of obj, or ErrNoChangeEvents when obj emits none. Nothing is installed
// until the returned function is called.
func changeHook(obj fyne.CanvasObject, name string) (func(ChangeHandler), error) {
	var set func(emit func(any))

	switch w := obj.(type) {
	case *widget.Entry:
		set = func(emit func(any)) { w.OnChanged = func(s string) { emit(s) } }
	case *widget.SelectEntry:
		set = func(emit func(any)) { w.OnChanged = func(s string) { emit(s) } }
	case *widget.Select:
		set = func(emit func(any)) { w.OnChanged = func(s string) { emit(s) } }
	case *widget.RadioGroup:
		set = func(emit func(any)) { w.OnChanged = func(s string) { emit(s) } }
	case *widget.Check:
		set = func(emit func(any)) { w.OnChanged = func(b bool) { emit(b) } }
	case *widget.Slider:
		set = func(emit func(any)) { w.OnChanged = func(f float64) { emit(f) } }
	case *widget.CheckGroup:
		set = func(emit func(any)) { w.OnChanged = func(selected []string) { emit(selected) } }
	case Changer:
		set = w.SetOnChanged
	default:
		return nil, fmt.Errorf("%w: %T named %q", ErrNoChangeEvents, obj, name)
	}

	return func(listener ChangeHandler) {
		set(func(data any) {
			listener(ChangeEvent{Name: name, Data: data})
		})
	}, nil
}
