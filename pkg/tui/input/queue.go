// ABOUTME: Queue hands parsed keys from the reader goroutine to a polling loop
// ABOUTME: Push blocks while the queue is full so no key press is ever lost

package input

import (
	"context"

	"github.com/mauromedda/stopwatch-go/pkg/tui/key"
)

// DefaultQueueSize is the number of keys a Queue buffers before Push blocks.
const DefaultQueueSize = 64

// Queue hands keys from a reader goroutine to a polling loop.
type Queue struct {
	ch chan key.Key
}

// NewQueue creates a Queue buffering up to size keys.
func NewQueue(size int) *Queue {
	if size <= 0 {
		size = DefaultQueueSize
	}
	return &Queue{ch: make(chan key.Key, size)}
}

// Push enqueues k, waiting for room while the queue is full. It returns
// ctx.Err() if ctx is done first; k is then discarded.
func (q *Queue) Push(ctx context.Context, k key.Key) error {
	select {
	case q.ch <- k:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Poll returns the oldest pending key without blocking.
func (q *Queue) Poll() (key.Key, bool) {
	select {
	case k := <-q.ch:
		return k, true
	default:
		return key.Key{}, false
	}
}

// Len returns the number of pending keys.
func (q *Queue) Len() int {
	return len(q.ch)
}
