// ABOUTME: Settings loading with global + project YAML merge and CLI overrides
// ABOUTME: Missing files are ignored; malformed files and invalid values are errors

package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"maps"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mauromedda/stopwatch-go/pkg/tui/theme"
)

// Front-end modes.
const (
	ModeConsole = "console"
	ModeTUI     = "tui"
)

// Poll interval bounds and default.
const (
	DefaultPollInterval = 10 * time.Millisecond
	MinPollInterval     = time.Millisecond
	MaxPollInterval     = time.Second
)

// Settings holds the merged configuration.
type Settings struct {
	Mode         string              `yaml:"mode,omitempty"`
	PollInterval time.Duration       `yaml:"poll_interval,omitempty"`
	Color        *bool               `yaml:"color,omitempty"`
	Theme        string              `yaml:"theme,omitempty"`
	Keys         map[Action][]string `yaml:"keys,omitempty"`
}

// Defaults returns the built-in settings.
func Defaults() *Settings {
	color := true
	return &Settings{
		Mode:         ModeConsole,
		PollInterval: DefaultPollInterval,
		Color:        &color,
		Theme:        "default",
		Keys:         DefaultKeys(),
	}
}

// ColorEnabled reports whether styled output is requested.
func (s *Settings) ColorEnabled() bool {
	return s.Color == nil || *s.Color
}

// layer is one settings file in precedence order.
type layer struct {
	name     string
	path     string
	required bool
}

// LoadAll builds the effective settings: defaults, then the global file,
// then the project file under projectRoot, then explicitPath if set (which
// must exist), then overrides. The result is validated.
func LoadAll(projectRoot, explicitPath string, overrides *Settings) (*Settings, error) {
	result := Defaults()

	layers := []layer{
		{name: "global", path: GlobalConfigFile()},
		{name: "project", path: ProjectConfigFile(projectRoot)},
	}
	if explicitPath != "" {
		layers = append(layers, layer{name: "explicit", path: explicitPath, required: true})
	}

	for _, l := range layers {
		s, err := loadFile(l.path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) && !l.required {
				continue
			}
			return nil, fmt.Errorf("loading %s config: %w", l.name, err)
		}
		result = merge(result, s)
	}

	result = merge(result, overrides)
	if err := result.Validate(); err != nil {
		return nil, err
	}
	return result, nil
}

// loadFile reads Settings from a YAML file. Unknown fields are rejected so
// typos surface instead of being ignored.
func loadFile(path string) (*Settings, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var s Settings
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return &s, nil
		}
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &s, nil
}

// merge overlays non-zero fields of over onto base. Key bindings merge per
// action.
func merge(base, over *Settings) *Settings {
	if base == nil {
		base = &Settings{}
	}
	result := *base
	result.Keys = maps.Clone(base.Keys)
	if over == nil {
		return &result
	}

	if over.Mode != "" {
		result.Mode = over.Mode
	}
	if over.PollInterval != 0 {
		result.PollInterval = over.PollInterval
	}
	if over.Color != nil {
		color := *over.Color
		result.Color = &color
	}
	if over.Theme != "" {
		result.Theme = over.Theme
	}
	if len(over.Keys) > 0 {
		if result.Keys == nil {
			result.Keys = make(map[Action][]string, len(over.Keys))
		}
		for action, keys := range over.Keys {
			result.Keys[action] = keys
		}
	}
	return &result
}

// Validate checks that every setting is usable.
func (s *Settings) Validate() error {
	switch s.Mode {
	case ModeConsole, ModeTUI:
	default:
		return fmt.Errorf("mode: %q is not one of %q, %q", s.Mode, ModeConsole, ModeTUI)
	}
	if s.PollInterval < MinPollInterval || s.PollInterval > MaxPollInterval {
		return fmt.Errorf("poll_interval: %v is outside [%v, %v]", s.PollInterval, MinPollInterval, MaxPollInterval)
	}
	if !theme.Exists(s.Theme) {
		return fmt.Errorf("theme: unknown theme %q (available: %v)", s.Theme, theme.Names())
	}
	return validateKeys(s.Keys)
}
