// ABOUTME: Tests for Elapsed formatting and rollover, advisory messages and stale tick handling
// ABOUTME: In-package so it can drive advance and tick directly

package stopwatch

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestElapsed_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		e    Elapsed
		want string
	}{
		{name: "zero", e: Elapsed{}, want: "0:00:00"},
		{name: "centiseconds only", e: Elapsed{Centiseconds: 7}, want: "0:00:07"},
		{name: "just under a minute", e: Elapsed{Seconds: 59, Centiseconds: 99}, want: "0:59:99"},
		{name: "two minutes five", e: Elapsed{Seconds: 125, Centiseconds: 7}, want: "2:05:07"},
		{name: "minutes unbounded", e: Elapsed{Seconds: 6000}, want: "100:00:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.e.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestElapsed_Advance(t *testing.T) {
	t.Parallel()

	var e Elapsed
	for i := 1; i <= 100; i++ {
		e.advance()
		if e.Centiseconds < 0 || e.Centiseconds > 99 {
			t.Fatalf("tick %d: centiseconds = %d", i, e.Centiseconds)
		}
	}
	if e != (Elapsed{Seconds: 1}) {
		t.Errorf("after 100 ticks = %+v, want 1s", e)
	}
}

func TestElapsed_Duration(t *testing.T) {
	t.Parallel()

	e := Elapsed{Seconds: 3, Centiseconds: 25}
	if got, want := e.Duration(), 3250*time.Millisecond; got != want {
		t.Errorf("Duration() = %v, want %v", got, want)
	}
}

func TestAdvisoryMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err    error
		want   string
		wantOK bool
	}{
		{err: ErrAlreadyRunning, want: "Stopwatch is already running!", wantOK: true},
		{err: fmt.Errorf("start: %w", ErrNotRunning), want: "Stopwatch is not running!", wantOK: true},
		{err: errors.New("other"), wantOK: false},
		{err: nil, wantOK: false},
	}

	for _, tt := range tests {
		got, ok := AdvisoryMessage(tt.err)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("AdvisoryMessage(%v) = (%q, %v), want (%q, %v)", tt.err, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestKind_Message(t *testing.T) {
	t.Parallel()

	want := map[Kind]string{
		KindStarted: "Stopwatch Started!",
		KindStopped: "Stopwatch Stopped!",
		KindReset:   "Stopwatch Reset!",
		Kind("lap"): "",
	}
	for k, msg := range want {
		if got := k.Message(); got != msg {
			t.Errorf("%q.Message() = %q, want %q", k, got, msg)
		}
	}
}

func TestTick_StaleRunIsDropped(t *testing.T) {
	t.Parallel()

	sw := New()
	defer sw.Close()

	if err := sw.Start(); err != nil {
		t.Fatal(err)
	}
	sw.mu.Lock()
	run := sw.run
	sw.mu.Unlock()

	if err := sw.Stop(); err != nil {
		t.Fatal(err)
	}
	before := sw.Elapsed()

	// A tick that was already in flight when Stop ran.
	sw.tick(run)

	if got := sw.Elapsed(); got != before {
		t.Errorf("Elapsed() = %+v after stale tick, want %+v", got, before)
	}
}
