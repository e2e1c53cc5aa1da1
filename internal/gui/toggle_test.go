package gui

import (
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
)

func TestToggle(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	tg := NewToggle("Off", "On", false)
	w := test.NewWindow(tg)
	defer w.Close()

	var got []any
	tg.SetOnChanged(func(v any) { got = append(got, v) })

	test.Tap(tg)
	assert.True(t, tg.On())
	assert.Equal(t, "On", tg.Text())

	tg.Disable()
	test.Tap(tg)
	assert.True(t, tg.On())

	tg.Enable()
	tg.Set(true)
	tg.Set(false)
	assert.Equal(t, []any{true, false}, got)
	assert.Equal(t, "Off", tg.Text())
}
