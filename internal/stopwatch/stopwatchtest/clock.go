// ABOUTME: ManualClock and hand-fired Tickers for deterministic stopwatch tests
// ABOUTME: Advance fires n ticks and waits until the stopwatch has counted them

// Package stopwatchtest provides a manually driven Clock for tests.
package stopwatchtest

import (
	"sync"
	"testing"
	"time"

	"github.com/mauromedda/stopwatch-go/internal/stopwatch"
)

// ManualClock hands out Tickers that only tick when the test says so.
type ManualClock struct {
	mu      sync.Mutex
	now     time.Time
	tickers []*Ticker
}

// NewClock returns a ManualClock whose Now is fixed at start.
func NewClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

// Now returns the clock's current time.
func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves Now forward by d. It does not fire tickers.
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// NewTicker implements stopwatch.Clock.
func (c *ManualClock) NewTicker(d time.Duration) stopwatch.Ticker {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &Ticker{Period: d, ch: make(chan time.Time)}
	c.tickers = append(c.tickers, t)
	return t
}

// Created returns how many tickers have been created.
func (c *ManualClock) Created() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.tickers)
}

// Active returns how many tickers have not been stopped.
func (c *ManualClock) Active() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.tickers {
		if !t.Stopped() {
			n++
		}
	}
	return n
}

// Latest returns the most recently created ticker, or nil.
func (c *ManualClock) Latest() *Ticker {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.tickers) == 0 {
		return nil
	}
	return c.tickers[len(c.tickers)-1]
}

// Ticker is a stopwatch.Ticker fired by hand. Its channel is unbuffered, so
// Fire returns once the stopwatch has received the tick.
type Ticker struct {
	Period time.Duration

	mu      sync.Mutex
	stopped bool
	ch      chan time.Time
}

// C implements stopwatch.Ticker.
func (t *Ticker) C() <-chan time.Time { return t.ch }

// Stop implements stopwatch.Ticker.
func (t *Ticker) Stop() {
	t.mu.Lock()
	t.stopped = true
	t.mu.Unlock()
}

// Stopped reports whether Stop was called.
func (t *Ticker) Stopped() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stopped
}

// Fire delivers one tick. It returns false if nothing received it within
// a second.
func (t *Ticker) Fire() bool {
	select {
	case t.ch <- time.Time{}:
		return true
	case <-time.After(time.Second):
		return false
	}
}

// Advance fires n ticks on the latest ticker of clock and waits until sw
// has counted them.
func Advance(tb testing.TB, sw *stopwatch.Stopwatch, clock *ManualClock, n int) {
	tb.Helper()
	ticker := clock.Latest()
	if ticker == nil {
		tb.Fatal("no ticker: stopwatch was never started")
	}
	want := Ticks(sw.Elapsed()) + n
	for i := range n {
		if !ticker.Fire() {
			tb.Fatalf("tick %d was not received", i)
		}
	}
	deadline := time.Now().Add(time.Second)
	for Ticks(sw.Elapsed()) != want {
		if time.Now().After(deadline) {
			tb.Fatalf("ticks counted = %d, want %d", Ticks(sw.Elapsed()), want)
		}
		time.Sleep(time.Millisecond)
	}
}

// Ticks converts an elapsed snapshot to a tick count.
func Ticks(e stopwatch.Elapsed) int {
	return e.Seconds*stopwatch.CentisPerSecond + e.Centiseconds
}
