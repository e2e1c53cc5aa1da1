package dialog

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
	"github.com/trade-engine/assistant/internal/config"
	"github.com/trade-engine/assistant/internal/gui"
)

const approvalDialog = `
title: Approve invoice
width: 520
height: auto
location: center
timeout: 30
elements:
  - type: app_bar
    text: Invoices
    children:
      - type: text
        text: "**Help**"
  - type: heading
    text: Invoice 1001
  - type: row
    children:
      - type: text_input
        name: approver
        label: Approver
        default: alice
      - type: date_input
        name: due
        label: Due date
        default: "2024-07-01"
  - type: container
    children:
      - type: checkbox
        name: urgent
        label: Urgent
  - type: toggle
    name: notify
    options: [Quiet, Notify]
    default: true
  - type: slider
    name: priority
    min: 1
    max: 5
    step: 1
    default: 3
  - type: overlay
    child:
      type: drop_down
      name: currency
      options: [EUR, USD]
      default: EUR
  - type: submit_buttons
    buttons: [Approve, Reject]
`

func TestParse(t *testing.T) {
	def, err := Parse([]byte(approvalDialog))
	require.NoError(t, err)

	assert.Equal(t, "Approve invoice", def.Title)
	require.Len(t, def.Elements, 8)
	assert.Equal(t, "row", def.Elements[2].Type)
	assert.Len(t, def.Elements[2].Children, 2)
	require.NotNil(t, def.Elements[6].Child)
	assert.Equal(t, []string{"EUR", "USD"}, def.Elements[6].Child.Options)

	opts := def.WindowOptions(config.Default().Window)
	assert.Equal(t, 520, opts.Width)
	assert.Equal(t, assistant.AutoHeight, opts.Height)
	assert.Equal(t, 30*time.Second, opts.Timeout)
	assert.Equal(t, assistant.Anchored(assistant.AnchorCenter), opts.Location)
	assert.False(t, opts.OnTop)
}

func TestParseRejectsInvalid(t *testing.T) {
	tests := map[string]string{
		"no elements":       "title: x\n",
		"unknown type":      "elements:\n  - type: video\n",
		"unnamed input":     "elements:\n  - type: text_input\n",
		"drop down options": "elements:\n  - type: drop_down\n    name: pick\n",
		"overlay child":     "elements:\n  - type: overlay\n",
		"unnamed toggle":    "elements:\n  - type: toggle\n",
		"zero timeout":      "timeout: 0\nelements: []\n",
	}

	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(body))
			assert.Error(t, err)
		})
	}
}

func TestWindowOptionsDefaults(t *testing.T) {
	def, err := Parse([]byte("elements: []\n"))
	require.NoError(t, err)

	defaults := config.Default().Window
	defaults.OnTop = true
	assert.Equal(t, defaults.WindowOptions(), def.WindowOptions(defaults))
}

func TestBuildLayoutErrors(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	def, err := Parse([]byte(`
elements:
  - type: container
    children:
      - type: heading
        text: one
      - type: heading
        text: two
`))
	require.NoError(t, err)

	c := assistant.NewClient(zaptest.NewLogger(t), gui.NewRuntime(zaptest.NewLogger(t), a))
	err = NewBuilder(zaptest.NewLogger(t), c).Build(def)
	assert.ErrorIs(t, err, assistant.ErrLayout)
}

func TestBuildAndSubmit(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	def, err := Parse([]byte(approvalDialog))
	require.NoError(t, err)

	logger := zaptest.NewLogger(t)
	c := assistant.NewClient(logger, gui.NewRuntime(logger, a), assistant.WithPollInterval(5*time.Millisecond))
	require.NoError(t, NewBuilder(logger, c).Build(def))

	elements := c.Elements()
	require.NotNil(t, elements.AppBar)
	assert.Len(t, elements.AppBar.Actions(), 1)
	assert.Len(t, elements.Invisible, 1)
	require.Len(t, elements.Visible, 6)

	buttons := elements.Visible[5].(*fyne.Container).Objects[0].(*fyne.Container)
	reject := buttons.Objects[1].(*widget.Button)
	assert.Equal(t, "Reject", reject.Text)

	assert.Equal(t, map[string]any{
		"approver": "alice",
		"due":      "2024-07-01",
		"urgent":   false,
		"notify":   true,
		"priority": 3.0,
		"currency": "EUR",
	}, c.Results())

	go func() {
		for c.State() != assistant.StateOpen {
			time.Sleep(time.Millisecond)
		}
		reject.OnTapped()
	}()

	require.NoError(t, c.Display(context.Background(), def.WindowOptions(config.Default().Window)))
	assert.Equal(t, "Reject", c.Results()[SubmitResult])
	assert.False(t, reject.Disabled())
}
