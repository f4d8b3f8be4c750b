// ABOUTME: Keybindings manager with O(1) case-insensitive key-to-action lookup
// ABOUTME: Also renders the command hint and invalid-input lines from the active bindings

package keybindings

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/mauromedda/stopwatch-go/internal/config"
	"github.com/mauromedda/stopwatch-go/pkg/tui/key"
)

// Manager maps key presses to stopwatch actions.
type Manager struct {
	bindings map[config.Action][]string
	lookup   map[string]config.Action // folded key -> action
}

// New creates a Manager from validated bindings. Actions missing from
// bindings fall back to their defaults.
func New(bindings map[config.Action][]string) *Manager {
	merged := config.DefaultKeys()
	for action, keys := range bindings {
		if len(keys) > 0 {
			merged[action] = keys
		}
	}

	m := &Manager{
		bindings: merged,
		lookup:   make(map[string]config.Action),
	}
	for _, action := range config.Actions {
		for _, k := range merged[action] {
			m.lookup[config.FoldKey(k)] = action
		}
	}
	return m
}

// ActionForKey returns the action bound to k. Ctrl+C and Ctrl+D always
// quit, since raw mode delivers them as keys instead of signals.
func (m *Manager) ActionForKey(k key.Key) (config.Action, bool) {
	switch k.Type {
	case key.KeyCtrlC, key.KeyCtrlD:
		return config.ActionQuit, true
	case key.KeyRune:
		if k.Alt {
			return "", false
		}
		action, ok := m.lookup[config.FoldKey(string(k.Rune))]
		return action, ok
	}
	return "", false
}

// Keys returns the keys bound to action.
func (m *Manager) Keys(action config.Action) []string {
	return append([]string(nil), m.bindings[action]...)
}

// HintLine describes the primary key of every action, e.g.
// "Press S to Start, T to Stop, R to Reset, Q to Quit".
func (m *Manager) HintLine() string {
	parts := make([]string, 0, len(config.Actions))
	for _, action := range config.Actions {
		parts = append(parts, fmt.Sprintf("%s to %s", m.display(action), action.Label()))
	}
	return "Press " + strings.Join(parts, ", ")
}

// InvalidInputLine asks for one of the primary keys, e.g.
// "Invalid input! Please enter S, T, R, or Q."
func (m *Manager) InvalidInputLine() string {
	keys := make([]string, 0, len(config.Actions))
	for _, action := range config.Actions {
		keys = append(keys, m.display(action))
	}
	last := len(keys) - 1
	return fmt.Sprintf("Invalid input! Please enter %s, or %s.", strings.Join(keys[:last], ", "), keys[last])
}

// display returns the first key bound to action in upper case.
func (m *Manager) display(action config.Action) string {
	keys := m.bindings[action]
	if len(keys) == 0 {
		return "?"
	}
	return cases.Upper(language.Und).String(keys[0])
}
