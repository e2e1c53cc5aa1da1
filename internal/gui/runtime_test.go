package gui

import (
	"context"
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/trade-engine/assistant/internal/assistant"
)

func TestRuntimeLifecycle(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()
	rt := NewRuntime(zaptest.NewLogger(t), a)

	_, exited := rt.Poll()
	assert.True(t, exited, "no window started yet")

	var page assistant.Page
	require.NoError(t, rt.Start(func(p assistant.Page) {
		page = p
		p.SetTitle("Dialog")
		p.Add(widget.NewLabel("hello"))
	}))

	require.Eventually(t, func() bool { return page != nil }, time.Second, 5*time.Millisecond)
	_, exited = rt.Poll()
	assert.False(t, exited)
	assert.ErrorIs(t, rt.Start(func(assistant.Page) {}), ErrWindowRunning)

	disconnected := false
	page.OnDisconnect(func() { disconnected = true })

	rt.Close()
	require.Eventually(t, func() bool {
		_, exited := rt.Poll()
		return exited
	}, time.Second, 5*time.Millisecond)
	assert.True(t, disconnected)
}

func TestRuntimeCloseWithoutWindow(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()
	rt := NewRuntime(zaptest.NewLogger(t), a)

	rt.Close()

	shown := false
	require.NoError(t, rt.Start(func(assistant.Page) { shown = true }))
	require.Eventually(t, func() bool { return shown }, time.Second, 5*time.Millisecond)
	_, exited := rt.Poll()
	assert.False(t, exited)

	rt.Close()
	require.Eventually(t, func() bool {
		_, exited := rt.Poll()
		return exited
	}, time.Second, 5*time.Millisecond)
}

func TestPageContent(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()
	w := a.NewWindow("")
	p := newPage(zaptest.NewLogger(t), w)

	label := widget.NewLabel("visible")
	overlay := widget.NewLabel("overlay")
	p.SetAutoScroll(true)
	p.Add(label)
	p.AddOverlay(overlay)
	p.SetAppBar(widget.NewLabel("bar"))
	p.SetTitle("Title")
	p.Resize(300, 0)
	p.Refresh()

	assert.Equal(t, "Title", w.Title())
	assert.Len(t, p.Objects(), 1)
	assert.Same(t, overlay, w.Canvas().Overlays().Top())

	p.Clear()
	assert.Empty(t, p.Objects())
	assert.Nil(t, w.Canvas().Overlays().Top())
	assert.Nil(t, p.appBar)
}

func TestDisplayOnFyne(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()
	rt := NewRuntime(zaptest.NewLogger(t), a)
	c := assistant.NewClient(zaptest.NewLogger(t), rt, assistant.WithPollInterval(5*time.Millisecond))

	entry := widget.NewEntry()
	require.NoError(t, c.AddElement(entry, "name", nil))
	require.NoError(t, c.AddElement(widget.NewLabel("info"), "", nil))

	go func() {
		for c.State() != assistant.StateOpen {
			time.Sleep(time.Millisecond)
		}
		entry.OnChanged("fyne")
		c.CloseWindow()
	}()

	err := c.Display(context.Background(), assistant.WindowOptions{
		Title:   "Test",
		Width:   320,
		Height:  200,
		Timeout: 5 * time.Second,
	})
	require.NoError(t, err)
	assert.Equal(t, "fyne", c.Results()["name"])
	assert.Equal(t, assistant.StateClosed, c.State())
}

func TestChangeHandlerSetsWindowTitle(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()
	rt := NewRuntime(zaptest.NewLogger(t), a)
	c := assistant.NewClient(zaptest.NewLogger(t), rt, assistant.WithPollInterval(5*time.Millisecond))

	entry := widget.NewEntry()
	require.NoError(t, c.AddElement(entry, "title", func(e assistant.ChangeEvent) {
		assert.NoError(t, c.SetTitle(e.Data.(string)))
	}))

	titles := make(chan string, 1)
	go func() {
		for c.State() != assistant.StateOpen {
			time.Sleep(time.Millisecond)
		}
		fyne.DoAndWait(func() {
			entry.SetText("Renamed")
		})
		fyne.DoAndWait(func() {
			rt.mu.Lock()
			titles <- rt.window.Title()
			rt.mu.Unlock()
		})
		c.CloseWindow()
	}()

	require.NoError(t, c.Display(context.Background(), assistant.WindowOptions{
		Title:   "Test",
		Width:   320,
		Height:  200,
		Timeout: 5 * time.Second,
	}))
	assert.Equal(t, "Renamed", <-titles)
	assert.Equal(t, "Renamed", c.Results()["title"])
}
