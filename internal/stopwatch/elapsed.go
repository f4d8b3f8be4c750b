// ABOUTME: Elapsed snapshot of seconds and centiseconds with M:SS:CC formatting
// ABOUTME: advance adds one tick and rolls 100 centiseconds into a second

package stopwatch

import (
	"fmt"
	"time"
)

// CentisPerSecond is the number of ticks that roll over into one second.
const CentisPerSecond = 100

// Elapsed is a snapshot of accumulated running time.
type Elapsed struct {
	Seconds      int
	Centiseconds int // always in [0, 99]
}

// String formats the elapsed time as M:SS:CC. Minutes are not padded and
// have no upper bound.
func (e Elapsed) String() string {
	return fmt.Sprintf("%d:%02d:%02d", e.Seconds/60, e.Seconds%60, e.Centiseconds)
}

// IsZero reports whether no time has accumulated.
func (e Elapsed) IsZero() bool {
	return e.Seconds == 0 && e.Centiseconds == 0
}

// Duration converts the snapshot to a time.Duration at tick resolution.
func (e Elapsed) Duration() time.Duration {
	return time.Duration(e.Seconds)*time.Second + time.Duration(e.Centiseconds)*TickInterval
}

// advance adds one tick, rolling centiseconds over into seconds.
func (e *Elapsed) advance() {
	e.Centiseconds++
	if e.Centiseconds >= CentisPerSecond {
		e.Centiseconds = 0
		e.Seconds++
	}
}
