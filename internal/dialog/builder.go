package dialog

import (
	"errors"
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/trade-engine/assistant/internal/assistant"
	"github.com/trade-engine/assistant/internal/gui"
)

// SubmitResult is the result name holding the label of the pressed submit button.
const SubmitResult = "submit"

// Builder adds the elements of a Definition to a client.
type Builder struct {
	logger *zap.Logger
	client *assistant.Client
}

func NewBuilder(logger *zap.Logger, client *assistant.Client) *Builder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Builder{logger: logger, client: client}
}

// Build adds every element of def, in order.
func (b *Builder) Build(def *Definition) error {
	for i := range def.Elements {
		if err := b.add(&def.Elements[i]); err != nil {
			return err
		}
	}
	return nil
}

func (b *Builder) add(el *Element) error {
	switch el.Type {
	case "row":
		return b.layout(assistant.NewRow(), el.Children)
	case "column":
		return b.layout(assistant.NewColumn(), el.Children)
	case "stack":
		return b.layout(assistant.NewStack(), el.Children)
	case "container":
		return b.layout(assistant.NewBox(), el.Children)
	case "app_bar":
		if err := b.client.SetAppBar(assistant.NewAppBar(el.Text)); err != nil {
			return err
		}
		if err := b.children(el.Children); err != nil {
			return err
		}
		return b.client.CloseLayout(assistant.KindAppBar)
	case "overlay":
		if el.Child == nil {
			return errors.New("overlay needs a child")
		}
		c, err := b.control(el.Child)
		if err != nil {
			return err
		}
		if err := b.bind(el.Child, c); err != nil {
			return err
		}
		return b.client.AddInvisibleElement(c.object, "")
	case "submit_buttons":
		return b.submitButtons(el.Buttons)
	}

	c, err := b.control(el)
	if err != nil {
		return err
	}
	if err := b.bind(el, c); err != nil {
		return err
	}
	return b.client.AddElement(c.object, "", nil)
}

func (b *Builder) layout(l assistant.Layout, children []Element) error {
	if err := b.client.OpenLayout(l); err != nil {
		return err
	}
	if err := b.children(children); err != nil {
		return err
	}
	return b.client.CloseLayout(l.Kind())
}

func (b *Builder) children(children []Element) error {
	for i := range children {
		if err := b.add(&children[i]); err != nil {
			return err
		}
	}
	return nil
}

// control is a leaf element: object is what gets placed, input is the
// widget emitting change events, if any.
type control struct {
	object   fyne.CanvasObject
	input    fyne.CanvasObject
	value    interface{}
	hasValue bool
}

func (b *Builder) bind(el *Element, c control) error {
	if el.Name == "" || c.input == nil {
		return nil
	}
	if err := b.client.Bind(c.input, el.Name, nil); err != nil {
		return err
	}
	if c.hasValue {
		b.client.SetResult(el.Name, c.value)
	}
	return nil
}

func labeled(label string, input fyne.CanvasObject) fyne.CanvasObject {
	if label == "" {
		return input
	}
	return container.NewVBox(widget.NewLabel(label), input)
}

func (b *Builder) control(el *Element) (control, error) {
	switch el.Type {
	case "heading":
		return control{object: widget.NewLabelWithStyle(el.Text, fyne.TextAlignLeading, fyne.TextStyle{Bold: true})}, nil

	case "text":
		return control{object: widget.NewRichTextFromMarkdown(el.Text)}, nil

	case "text_input", "password_input":
		entry := widget.NewEntry()
		if el.Type == "password_input" {
			entry = widget.NewPasswordEntry()
		}
		entry.SetPlaceHolder(el.Placeholder)
		c := control{object: labeled(el.Label, entry), input: entry}
		if el.Default != nil {
			text := fmt.Sprint(el.Default)
			entry.SetText(text)
			c.value, c.hasValue = text, true
		}
		return c, nil

	case "checkbox":
		check := widget.NewCheck(el.Label, nil)
		checked, _ := el.Default.(bool)
		check.SetChecked(checked)
		return control{object: check, input: check, value: checked, hasValue: true}, nil

	case "drop_down":
		sel := widget.NewSelect(el.Options, nil)
		c := control{object: labeled(el.Label, sel), input: sel}
		if s, ok := el.Default.(string); ok {
			sel.SetSelected(s)
			c.value, c.hasValue = s, true
		}
		return c, nil

	case "radio_buttons":
		radio := widget.NewRadioGroup(el.Options, nil)
		c := control{object: labeled(el.Label, radio), input: radio}
		if s, ok := el.Default.(string); ok {
			radio.SetSelected(s)
			c.value, c.hasValue = s, true
		}
		return c, nil

	case "slider":
		lo, hi := 0.0, 100.0
		if el.Min != nil {
			lo = *el.Min
		}
		if el.Max != nil {
			hi = *el.Max
		}
		if hi <= lo {
			return control{}, fmt.Errorf("slider %q: max must be greater than min", el.Name)
		}
		slider := widget.NewSlider(lo, hi)
		if el.Step > 0 {
			slider.Step = el.Step
		}
		value := lo
		if f, ok := toFloat(el.Default); ok {
			value = f
		}
		slider.SetValue(value)
		return control{object: labeled(el.Label, slider), input: slider, value: slider.Value, hasValue: true}, nil

	case "toggle":
		captions := []string{"Off", "On"}
		if len(el.Options) > 0 {
			if len(el.Options) != 2 {
				return control{}, fmt.Errorf("toggle %q: options must be the off and on captions", el.Name)
			}
			captions = el.Options
		}
		on, _ := el.Default.(bool)
		toggle := gui.NewToggle(captions[0], captions[1], on)
		return control{object: labeled(el.Label, toggle), input: toggle, value: on, hasValue: true}, nil

	case "date_input":
		var initial time.Time
		switch d := el.Default.(type) {
		case time.Time:
			// unquoted YAML dates decode as timestamps
			initial = d
		case string:
			t, err := time.Parse(gui.DateLayout, d)
			if err != nil {
				return control{}, fmt.Errorf("date input %q: %w", el.Name, err)
			}
			initial = t
		}
		input := gui.NewDateInput(el.Label, initial)
		c := control{object: input, input: input}
		if !initial.IsZero() {
			c.value, c.hasValue = initial.Format(gui.DateLayout), true
		}
		return c, nil

	default:
		return control{}, fmt.Errorf("element type %q cannot be used here", el.Type)
	}
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

// submitButtons adds a row of buttons. Pressing one records its label under
// SubmitResult and closes the window.
func (b *Builder) submitButtons(labels []string) error {
	row := container.NewHBox()
	for _, label := range labels {
		if label == "" {
			return errors.New("submit button needs a label")
		}
		btn := widget.NewButton(label, func() {
			err := b.client.RunLocked(func() {
				b.client.SetResult(SubmitResult, label)
				b.client.CloseWindow()
			})
			if errors.Is(err, assistant.ErrOperationPending) {
				b.logger.Debug("Ignoring submit while an operation is pending", zap.String("button", label))
			}
		})
		row.Add(btn)
		b.client.AddToDisableList(btn)
	}
	return b.client.AddElement(row, "", nil)
}
