// ABOUTME: Defines the Terminal interface for raw mode, size queries, and output.
// ABOUTME: Implementations target the process TTY or an in-memory terminal for tests.

package terminal

import "errors"

// ErrNotTerminal is returned by EnterRawMode when input is not a TTY.
var ErrNotTerminal = errors.New("input is not a terminal")

// Control sequences used by the console front-end.
const (
	HideCursor = "\x1b[?25l"
	ShowCursor = "\x1b[?25h"
)

// Terminal abstracts low-level terminal operations: raw mode, size queries
// and output writing.
type Terminal interface {
	EnterRawMode() error
	ExitRawMode() error
	IsRaw() bool
	Size() (width, height int, err error)
	Write(p []byte) (n int, err error)
}
