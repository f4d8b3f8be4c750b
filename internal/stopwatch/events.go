// ABOUTME: Lifecycle notification kinds, messages and the advisory Start/Stop errors
// ABOUTME: AdvisoryMessage maps an advisory error to the text front-ends print

package stopwatch

import (
	"errors"
	"time"
)

// State is the stopwatch mode.
type State string

const (
	StateStopped State = "stopped"
	StateRunning State = "running"
)

// Kind names a lifecycle notification.
type Kind string

const (
	KindStarted Kind = "started"
	KindStopped Kind = "stopped"
	KindReset   Kind = "reset"
)

// Kinds lists every notification kind in lifecycle order.
var Kinds = []Kind{KindStarted, KindStopped, KindReset}

// Notification messages.
const (
	MessageStarted = "Stopwatch Started!"
	MessageStopped = "Stopwatch Stopped!"
	MessageReset   = "Stopwatch Reset!"
)

// Message returns the fixed human-readable text for the kind.
func (k Kind) Message() string {
	switch k {
	case KindStarted:
		return MessageStarted
	case KindStopped:
		return MessageStopped
	case KindReset:
		return MessageReset
	}
	return ""
}

// Notification is delivered to observers when the stopwatch changes state.
type Notification struct {
	Kind    Kind
	Message string
	// Elapsed is the time on the stopwatch at the moment of the transition.
	Elapsed Elapsed
	At      time.Time
}

// Advisory conditions returned by Start and Stop. Neither changes state.
var (
	ErrAlreadyRunning = errors.New("stopwatch is already running")
	ErrNotRunning     = errors.New("stopwatch is not running")
)

// Console text for the advisory conditions.
const (
	MessageAlreadyRunning = "Stopwatch is already running!"
	MessageNotRunning     = "Stopwatch is not running!"
)

// AdvisoryMessage returns the console text for an advisory error returned by
// Start or Stop. ok is false for any other error.
func AdvisoryMessage(err error) (msg string, ok bool) {
	switch {
	case errors.Is(err, ErrAlreadyRunning):
		return MessageAlreadyRunning, true
	case errors.Is(err, ErrNotRunning):
		return MessageNotRunning, true
	}
	return "", false
}
