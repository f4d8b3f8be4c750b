// ABOUTME: Key binding actions and their defaults for the stopwatch console
// ABOUTME: Validates that every key is a single printable character bound to one action

package config

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
)

// Action is a stopwatch command that can be bound to keys.
type Action string

const (
	ActionStart Action = "start"
	ActionStop  Action = "stop"
	ActionReset Action = "reset"
	ActionQuit  Action = "quit"
)

// Actions lists every bindable action in display order.
var Actions = []Action{ActionStart, ActionStop, ActionReset, ActionQuit}

// Label returns the capitalised action name used in hint text.
func (a Action) Label() string {
	s := string(a)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// DefaultKeys returns the default bindings: S, T, R and Q.
func DefaultKeys() map[Action][]string {
	return map[Action][]string{
		ActionStart: {"s"},
		ActionStop:  {"t"},
		ActionReset: {"r"},
		ActionQuit:  {"q"},
	}
}

// FoldKey returns the case-folded form under which keys are compared, both
// when validating bindings and when looking up a pressed key.
func FoldKey(k string) string {
	return cases.Fold().String(k)
}

// validateKeys checks bindings. Keys are compared after FoldKey.
func validateKeys(keys map[Action][]string) error {
	owner := make(map[string]Action)
	for _, action := range Actions {
		bound := keys[action]
		if len(bound) == 0 {
			return fmt.Errorf("keys: action %q has no key", action)
		}
		for _, k := range bound {
			r, size := utf8.DecodeRuneInString(k)
			if size == 0 || size != len(k) || !unicode.IsPrint(r) || unicode.IsSpace(r) {
				return fmt.Errorf("keys: %q for %q must be a single printable character", k, action)
			}
			folded := FoldKey(k)
			if prev, ok := owner[folded]; ok && prev != action {
				return fmt.Errorf("keys: %q is bound to both %q and %q", k, prev, action)
			}
			owner[folded] = action
		}
	}
	for action := range keys {
		if !isAction(action) {
			return fmt.Errorf("keys: unknown action %q", action)
		}
	}
	return nil
}

func isAction(a Action) bool {
	for _, known := range Actions {
		if a == known {
			return true
		}
	}
	return false
}
