//go:build gui
// +build gui

package main

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
)

const appID = "com.github.trade-engine.assistant"

// newFyneApp creates the desktop fyne app. It must be called on the main goroutine.
func newFyneApp() (fyne.App, error) {
	return app.NewWithID(appID), nil
}
