//go:build !gui
// +build !gui

package main

import (
	"errors"

	"fyne.io/fyne/v2"
)

// newFyneApp is a stub when GUI support is not enabled.
func newFyneApp() (fyne.App, error) {
	return nil, errors.New("GUI support is not enabled in this build, rebuild with -tags gui")
}
