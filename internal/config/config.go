package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/trade-engine/assistant/internal/assistant"
)

type Config struct {
	Application Application   `yaml:"application"`
	Window      Window        `yaml:"window"`
	Session     Session       `yaml:"session"`
	Logging     LoggingConfig `yaml:"logging"`
}

type Application struct {
	Name     string `yaml:"name"`
	Version  string `yaml:"version"`
	LogLevel string `yaml:"log_level"`
}

// Window holds the defaults for dialogs that do not set their own.
type Window struct {
	Title    string        `yaml:"title"`
	Width    int           `yaml:"width"`
	Height   Height        `yaml:"height"`
	OnTop    bool          `yaml:"on_top"`
	Location *Location     `yaml:"location,omitempty"`
	Timeout  time.Duration `yaml:"timeout"`
}

type Session struct {
	PollInterval time.Duration `yaml:"poll_interval"`
}

type LoggingConfig struct {
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Application: Application{
			Name:     "assistant",
			Version:  "0.1.0",
			LogLevel: "info",
		},
		Window: Window{
			Title:   "Assistant",
			Width:   480,
			Height:  Height(assistant.AutoHeight),
			Timeout: 180 * time.Second,
		},
		Session: Session{
			PollInterval: assistant.DefaultPollInterval,
		},
		Logging: LoggingConfig{
			Format: "console",
			Output: "stderr",
		},
	}
}

// WindowOptions converts the window defaults for assistant.Client.Display.
func (w Window) WindowOptions() assistant.WindowOptions {
	opts := assistant.WindowOptions{
		Title:   w.Title,
		Width:   w.Width,
		Height:  int(w.Height),
		OnTop:   w.OnTop,
		Timeout: w.Timeout,
	}
	if w.Location != nil {
		opts.Location = w.Location.Assistant()
	}
	return opts
}

// Height is a window height in pixels; "auto" decodes to assistant.AutoHeight.
type Height int

func (h *Height) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: height must be a number or \"auto\"", value.Line)
	}
	if strings.EqualFold(value.Value, "auto") {
		*h = Height(assistant.AutoHeight)
		return nil
	}
	var n int
	if err := value.Decode(&n); err != nil {
		return fmt.Errorf("line %d: height must be a number or \"auto\": %w", value.Line, err)
	}
	if n <= 0 {
		return fmt.Errorf("line %d: height must be positive, got %d", value.Line, n)
	}
	*h = Height(n)
	return nil
}

func (h Height) MarshalYAML() (interface{}, error) {
	if int(h) == assistant.AutoHeight {
		return "auto", nil
	}
	return int(h), nil
}

// Location is either a named anchor ("center", "top-left") or an [x, y] pair.
type Location struct {
	Anchor string
	X, Y   int
}

func (l *Location) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		switch a := assistant.Anchor(strings.ToLower(value.Value)); a {
		case assistant.AnchorCenter, assistant.AnchorTopLeft:
			l.Anchor = string(a)
			return nil
		default:
			return fmt.Errorf("line %d: unknown location %q", value.Line, value.Value)
		}
	case yaml.SequenceNode:
		var xy []int
		if err := value.Decode(&xy); err != nil {
			return fmt.Errorf("line %d: location: %w", value.Line, err)
		}
		if len(xy) != 2 {
			return fmt.Errorf("line %d: location needs exactly two coordinates", value.Line)
		}
		l.X, l.Y = xy[0], xy[1]
		return nil
	default:
		return fmt.Errorf("line %d: location must be an anchor name or [x, y]", value.Line)
	}
}

func (l Location) MarshalYAML() (interface{}, error) {
	if l.Anchor != "" {
		return l.Anchor, nil
	}
	return []int{l.X, l.Y}, nil
}

// Assistant converts the location for assistant.WindowOptions.
func (l Location) Assistant() *assistant.Location {
	if l.Anchor != "" {
		return assistant.Anchored(assistant.Anchor(l.Anchor))
	}
	return assistant.At(l.X, l.Y)
}

func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
