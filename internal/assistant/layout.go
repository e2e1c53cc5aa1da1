package assistant

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// LayoutKind tags the container variants a Layout can be.
type LayoutKind int

const (
	KindRow LayoutKind = iota
	KindColumn
	KindStack
	KindAppBar
	KindBox
)

func (k LayoutKind) String() string {
	switch k {
	case KindRow:
		return "Row"
	case KindColumn:
		return "Column"
	case KindStack:
		return "Stack"
	case KindAppBar:
		return "AppBar"
	case KindBox:
		return "Container"
	default:
		return fmt.Sprintf("LayoutKind(%d)", int(k))
	}
}

// Layout is a container that governs how new elements are placed.
// The set of implementations is closed: Group, AppBar and Box.
type Layout interface {
	Kind() LayoutKind
	Object() fyne.CanvasObject
	accept(element fyne.CanvasObject) error
}

// withMargin wraps an element so it gets some room around it.
func withMargin(element fyne.CanvasObject) fyne.CanvasObject {
	return container.NewPadded(element)
}

// Group holds any number of children laid out as a row, column or stack.
type Group struct {
	kind LayoutKind
	box  *fyne.Container
}

func NewRow() *Group {
	return &Group{kind: KindRow, box: container.NewHBox()}
}

func NewColumn() *Group {
	return &Group{kind: KindColumn, box: container.NewVBox()}
}

func NewStack() *Group {
	return &Group{kind: KindStack, box: container.NewStack()}
}

func (g *Group) Kind() LayoutKind { return g.kind }
func (g *Group) Object() fyne.CanvasObject { return g.box }

// Children returns the placed (margin wrapped) children.
func (g *Group) Children() []fyne.CanvasObject {
	return g.box.Objects
}

func (g *Group) accept(element fyne.CanvasObject) error {
	g.box.Add(withMargin(element))
	return nil
}

// AppBar is the navigation bar at the top of the window. Elements added
// while it is open become its actions.
type AppBar struct {
	title   *widget.Label
	actions *fyne.Container
	bar     *fyne.Container
}

func NewAppBar(title string) *AppBar {
	label := widget.NewLabelWithStyle(title, fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	actions := container.NewHBox()
	return &AppBar{
		title:   label,
		actions: actions,
		bar:     container.NewBorder(nil, nil, label, actions),
	}
}

func (a *AppBar) Kind() LayoutKind { return KindAppBar }
func (a *AppBar) Object() fyne.CanvasObject { return a.bar }
func (a *AppBar) Title() string { return a.title.Text }

func (a *AppBar) Actions() []fyne.CanvasObject {
	return a.actions.Objects
}

func (a *AppBar) accept(element fyne.CanvasObject) error {
	a.actions.Add(withMargin(element))
	return nil
}

// Box holds exactly one child. The child is placed as is, without a margin,
// so callers can control its spacing.
type Box struct {
	box     *fyne.Container
	content fyne.CanvasObject
}

func NewBox() *Box {
	return &Box{box: container.NewPadded()}
}

func (b *Box) Kind() LayoutKind { return KindBox }
func (b *Box) Object() fyne.CanvasObject { return b.box }
func (b *Box) Content() fyne.CanvasObject { return b.content }

func (b *Box) accept(element fyne.CanvasObject) error {
	if b.content != nil {
		return fmt.Errorf("%w: Attempting to place two content in one Container", ErrLayout)
	}
	b.content = element
	b.box.Add(element)
	return nil
}
