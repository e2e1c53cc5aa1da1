package gui

import (
	"fmt"
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// DateLayout is the format DateInput reads and reports dates in.
const DateLayout = "2006-01-02"

// DateInput is a date entry with a picker popup. It reports changes as
// DateLayout formatted strings.
type DateInput struct {
	widget.BaseWidget
	date      time.Time
	onChanged func(any)

	label     *widget.Label
	entry     *widget.Entry
	pickerBtn *widget.Button
}

// NewDateInput creates a date input showing initial. A zero initial date
// leaves the entry empty.
func NewDateInput(label string, initial time.Time) *DateInput {
	d := &DateInput{
		label: widget.NewLabel(label),
		entry: widget.NewEntry(),
	}
	d.entry.SetPlaceHolder("YYYY-MM-DD")
	if !initial.IsZero() {
		d.date = midnight(initial)
		d.entry.SetText(d.date.Format(DateLayout))
	}
	d.entry.OnChanged = d.updateFromEntry
	d.pickerBtn = widget.NewButton("📅", d.showPicker)
	d.ExtendBaseWidget(d)
	return d
}

func (d *DateInput) CreateRenderer() fyne.WidgetRenderer {
	content := container.NewBorder(nil, nil, d.label, d.pickerBtn, d.entry)
	return widget.NewSimpleRenderer(content)
}

// SetOnChanged registers the change callback.
func (d *DateInput) SetOnChanged(fn func(any)) {
	d.onChanged = fn
}

// Date returns the selected date; zero if none.
func (d *DateInput) Date() time.Time {
	return d.date
}

// SetDate selects t and reports the change.
func (d *DateInput) SetDate(t time.Time) {
	d.date = midnight(t)
	d.entry.SetText(d.date.Format(DateLayout))
	d.notify()
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func (d *DateInput) updateFromEntry(text string) {
	t, err := time.Parse(DateLayout, text)
	if err != nil || t.Equal(d.date) {
		return
	}
	d.date = t
	d.notify()
}

func (d *DateInput) notify() {
	if d.onChanged != nil {
		d.onChanged(d.date.Format(DateLayout))
	}
}

func (d *DateInput) Disable() {
	d.entry.Disable()
	d.pickerBtn.Disable()
}

func (d *DateInput) Enable() {
	d.entry.Enable()
	d.pickerBtn.Enable()
}

func (d *DateInput) Disabled() bool {
	return d.entry.Disabled()
}

// showPicker opens a year / month / day selector over the window.
func (d *DateInput) showPicker() {
	canvas := fyne.CurrentApp().Driver().CanvasForObject(d)
	if canvas == nil {
		return
	}

	current := d.date
	if current.IsZero() {
		current = time.Now()
	}

	years := make([]string, 11)
	for i := range years {
		years[i] = strconv.Itoa(current.Year() - 5 + i)
	}
	months := make([]string, 12)
	for i := range months {
		months[i] = fmt.Sprintf("%02d", i+1)
	}
	days := make([]string, 31)
	for i := range days {
		days[i] = fmt.Sprintf("%02d", i+1)
	}

	yearSelect := widget.NewSelect(years, nil)
	monthSelect := widget.NewSelect(months, nil)
	daySelect := widget.NewSelect(days, nil)
	yearSelect.SetSelected(strconv.Itoa(current.Year()))
	monthSelect.SetSelected(fmt.Sprintf("%02d", current.Month()))
	daySelect.SetSelected(fmt.Sprintf("%02d", current.Day()))

	var popup *widget.PopUp
	ok := widget.NewButton("OK", func() {
		picked := fmt.Sprintf("%s-%s-%s", yearSelect.Selected, monthSelect.Selected, daySelect.Selected)
		if t, err := time.Parse(DateLayout, picked); err == nil {
			d.SetDate(t)
		}
		popup.Hide()
	})
	today := widget.NewButton("Today", func() {
		d.SetDate(time.Now())
		popup.Hide()
	})
	cancel := widget.NewButton("Cancel", func() {
		popup.Hide()
	})

	content := container.NewVBox(
		widget.NewLabel("Select date"),
		widget.NewSeparator(),
		container.NewHBox(yearSelect, monthSelect, daySelect),
		widget.NewSeparator(),
		container.NewHBox(today, cancel, ok),
	)
	popup = widget.NewModalPopUp(content, canvas)
	popup.Show()
}
