package assistant

import (
	"fmt"
	"time"
)

// AutoHeight lets the window size itself to its content.
const AutoHeight = 0

// Anchor is a named window location.
type Anchor string

const (
	AnchorCenter  Anchor = "center"
	AnchorTopLeft Anchor = "top-left"
)

// Location is where the window opens: either a named anchor or absolute coordinates.
type Location struct {
	Anchor Anchor
	X, Y   int
}

// At returns an absolute location.
func At(x, y int) *Location {
	return &Location{X: x, Y: y}
}

// Anchored returns a named location.
func Anchored(a Anchor) *Location {
	return &Location{Anchor: a}
}

func (l Location) String() string {
	if l.Anchor != "" {
		return string(l.Anchor)
	}
	return fmt.Sprintf("(%d, %d)", l.X, l.Y)
}

// ResolvePosition converts a location into absolute coordinates.
// Center has no fixed coordinates and is resolved by the page itself.
func ResolvePosition(loc Location) (x, y int, err error) {
	switch loc.Anchor {
	case "":
		return loc.X, loc.Y, nil
	case AnchorTopLeft:
		return 0, 0, nil
	default:
		return 0, 0, fmt.Errorf("invalid location %s", loc)
	}
}

// WindowOptions describes the window requested by Display.
type WindowOptions struct {
	Title string
	Width int
	// Height in pixels, or AutoHeight.
	Height   int
	OnTop    bool
	Location *Location
	Timeout  time.Duration
}

func (o WindowOptions) validate() error {
	if o.Width <= 0 {
		return fmt.Errorf("window width must be positive, got %d", o.Width)
	}
	if o.Height < 0 {
		return fmt.Errorf("window height must be positive or auto, got %d", o.Height)
	}
	if o.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", o.Timeout)
	}
	if o.Location != nil && o.Location.Anchor != AnchorCenter {
		if _, _, err := ResolvePosition(*o.Location); err != nil {
			return err
		}
	}
	return nil
}

// State is the lifecycle state of a window session.
type State int

const (
	StateClosed State = iota
	StateOpening
	StateOpen
	StateClosing
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpening:
		return "opening"
	case StateOpen:
		return "open"
	case StateClosing:
		return "closing"
	default:
		return "unknown"
	}
}
