// Package dialog reads declarative dialog definitions and builds them with
// an assistant.Client.
package dialog

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/trade-engine/assistant/internal/assistant"
	"github.com/trade-engine/assistant/internal/config"
)

//go:embed schema.json
var dialogSchema string

// Definition is a dialog as written in YAML.
type Definition struct {
	Title    string           `yaml:"title"`
	Width    int              `yaml:"width"`
	Height   *config.Height   `yaml:"height"`
	OnTop    *bool            `yaml:"on_top"`
	Location *config.Location `yaml:"location"`
	// Timeout in seconds.
	Timeout  int       `yaml:"timeout"`
	Elements []Element `yaml:"elements"`
}

// Element is one entry of a dialog. Layout types hold Children; overlay
// holds a single Child.
type Element struct {
	Type        string      `yaml:"type"`
	Name        string      `yaml:"name"`
	Label       string      `yaml:"label"`
	Text        string      `yaml:"text"`
	Placeholder string      `yaml:"placeholder"`
	Default     interface{} `yaml:"default"`
	Options     []string    `yaml:"options"`
	Min         *float64    `yaml:"min"`
	Max         *float64    `yaml:"max"`
	Step        float64     `yaml:"step"`
	Buttons     []string    `yaml:"buttons"`
	Children    []Element   `yaml:"children"`
	Child       *Element    `yaml:"child"`
}

// Parse validates data against the dialog schema and decodes it.
func Parse(data []byte) (*Definition, error) {
	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal dialog: %w", err)
	}
	if err := config.ValidateSchema(dialogSchema, doc); err != nil {
		return nil, fmt.Errorf("dialog: %w", err)
	}

	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("decode dialog: %w", err)
	}
	return &def, nil
}

// Load reads and parses the dialog definition at path.
func Load(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dialog: %w", err)
	}
	return Parse(data)
}

// WindowOptions applies the dialog's window settings over defaults.
func (d *Definition) WindowOptions(defaults config.Window) assistant.WindowOptions {
	opts := defaults.WindowOptions()
	if d.Title != "" {
		opts.Title = d.Title
	}
	if d.Width > 0 {
		opts.Width = d.Width
	}
	if d.Height != nil {
		opts.Height = int(*d.Height)
	}
	if d.OnTop != nil {
		opts.OnTop = *d.OnTop
	}
	if d.Location != nil {
		opts.Location = d.Location.Assistant()
	}
	if d.Timeout > 0 {
		opts.Timeout = time.Duration(d.Timeout) * time.Second
	}
	return opts
}
