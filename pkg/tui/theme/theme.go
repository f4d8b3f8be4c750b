// ABOUTME: Semantic lipgloss styles for the stopwatch console: title, hints, notices, elapsed time
// ABOUTME: A Theme renders through its own lipgloss.Renderer so color follows the output, not os.Stdout

package theme

import (
	"fmt"
	"io"
	"slices"
	"sort"

	"github.com/charmbracelet/lipgloss"
)

// Role is a semantic text category.
type Role int

const (
	RoleTitle   Role = iota // Banner heading
	RoleHint                // Command hint line
	RoleElapsed             // Live elapsed time
	RoleSuccess             // Started notice
	RoleWarning             // Stopped notice, advisories
	RoleInfo                // Reset notice, exit message
	RoleError               // Invalid input
)

// Palette maps every role to a color. Empty colors leave text unstyled.
type Palette map[Role]lipgloss.TerminalColor

// Theme renders text for a role.
type Theme struct {
	Name    string
	enabled bool
	styles  map[Role]lipgloss.Style
}

var builtins = map[string]Palette{
	"default": {
		RoleTitle:   lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7571F9"},
		RoleHint:    lipgloss.AdaptiveColor{Light: "#6C6C6C", Dark: "#8A8A8A"},
		RoleElapsed: lipgloss.AdaptiveColor{Light: "#005F87", Dark: "#87D7FF"},
		RoleSuccess: lipgloss.AdaptiveColor{Light: "#008700", Dark: "#87D787"},
		RoleWarning: lipgloss.AdaptiveColor{Light: "#AF5F00", Dark: "#FFD75F"},
		RoleInfo:    lipgloss.AdaptiveColor{Light: "#005FAF", Dark: "#87AFFF"},
		RoleError:   lipgloss.AdaptiveColor{Light: "#D70000", Dark: "#FF5F5F"},
	},
	"ansi": {
		RoleTitle:   lipgloss.Color("5"),
		RoleHint:    lipgloss.Color("8"),
		RoleElapsed: lipgloss.Color("6"),
		RoleSuccess: lipgloss.Color("2"),
		RoleWarning: lipgloss.Color("3"),
		RoleInfo:    lipgloss.Color("4"),
		RoleError:   lipgloss.Color("1"),
	},
	"mono": {},
}

// Names returns the built-in theme names, sorted.
func Names() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Exists reports whether name is a built-in theme.
func Exists(name string) bool {
	return slices.Contains(Names(), name)
}

// New builds the named theme for output written to w. Color and text
// attributes are dropped when w is not a color-capable terminal.
func New(w io.Writer, name string) (*Theme, error) {
	palette, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("unknown theme %q (available: %v)", name, Names())
	}

	r := lipgloss.NewRenderer(w)
	// Assume a dark background instead of querying the terminal with OSC 11;
	// the reply would arrive on stdin and be read as key presses.
	r.SetHasDarkBackground(true)

	styles := make(map[Role]lipgloss.Style, len(palette)+1)
	for role, color := range palette {
		styles[role] = r.NewStyle().Foreground(color)
	}
	title, ok := styles[RoleTitle]
	if !ok {
		title = r.NewStyle()
	}
	styles[RoleTitle] = title.Bold(true)
	if s, ok := styles[RoleElapsed]; ok {
		styles[RoleElapsed] = s.Bold(true)
	}

	return &Theme{Name: name, enabled: true, styles: styles}, nil
}

// Plain returns a theme that leaves text untouched.
func Plain() *Theme {
	return &Theme{Name: "plain"}
}

// Render styles text for role.
func (t *Theme) Render(role Role, text string) string {
	if t == nil || !t.enabled {
		return text
	}
	style, ok := t.styles[role]
	if !ok {
		return text
	}
	return style.Render(text)
}
