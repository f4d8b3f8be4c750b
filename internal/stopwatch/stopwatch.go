// ABOUTME: Stopwatch is the Stopped/Running state machine driven by a 10ms tick source
// ABOUTME: Start/Stop/Reset publish lifecycle notifications synchronously to ordered observers

package stopwatch

import (
	"sync"
	"time"

	"github.com/mauromedda/stopwatch-go/internal/eventbus"
	"github.com/mauromedda/stopwatch-go/internal/log"
)

// TickInterval is the fixed period of the tick source. Each tick adds one
// centisecond.
const TickInterval = 10 * time.Millisecond

// Option configures a Stopwatch.
type Option func(*Stopwatch)

// WithClock replaces the system clock used to create the tick source.
func WithClock(c Clock) Option {
	return func(sw *Stopwatch) {
		if c != nil {
			sw.clock = c
		}
	}
}

// Stopwatch accumulates elapsed time while running.
//
// Commands may be called from any goroutine. Observers are invoked on the
// goroutine that issued the command, after the internal lock is released, so
// they may query the stopwatch freely.
type Stopwatch struct {
	mu      sync.Mutex
	clock   Clock
	state   State
	elapsed Elapsed
	run     *tickRun // non-nil exactly while running
	wg      sync.WaitGroup

	buses map[Kind]*eventbus.Bus[Notification]
}

// tickRun is one activation of the tick source, from Start to Stop or Reset.
type tickRun struct {
	ticker Ticker
	stop   chan struct{}
}

// New creates a stopped Stopwatch with zero elapsed time.
func New(opts ...Option) *Stopwatch {
	sw := &Stopwatch{
		clock: SystemClock{},
		state: StateStopped,
		buses: make(map[Kind]*eventbus.Bus[Notification], len(Kinds)),
	}
	for _, k := range Kinds {
		sw.buses[k] = eventbus.New[Notification]()
	}
	for _, opt := range opts {
		opt(sw)
	}
	return sw
}

// Subscribe registers an observer for one notification kind and returns a
// function that removes it. Observers of a kind run in registration order.
func (sw *Stopwatch) Subscribe(kind Kind, handler eventbus.Handler[Notification]) func() {
	bus, ok := sw.buses[kind]
	if !ok {
		return func() {}
	}
	return bus.Subscribe(handler)
}

// SubscribeAll registers the same observer for every notification kind.
func (sw *Stopwatch) SubscribeAll(handler eventbus.Handler[Notification]) func() {
	unsubs := make([]func(), 0, len(Kinds))
	for _, k := range Kinds {
		unsubs = append(unsubs, sw.Subscribe(k, handler))
	}
	return func() {
		for _, u := range unsubs {
			u()
		}
	}
}

// Start begins accumulating time. It returns ErrAlreadyRunning, without
// creating a second tick source or notifying, if the stopwatch is running.
func (sw *Stopwatch) Start() error {
	sw.mu.Lock()
	if sw.state == StateRunning {
		sw.mu.Unlock()
		log.Debug("stopwatch: start ignored, already running")
		return ErrAlreadyRunning
	}

	run := &tickRun{
		ticker: sw.clock.NewTicker(TickInterval),
		stop:   make(chan struct{}),
	}
	sw.run = run
	sw.state = StateRunning
	n := sw.notificationLocked(KindStarted)
	sw.wg.Add(1)
	sw.mu.Unlock()

	go sw.loop(run)

	log.Debug("stopwatch: started at %s", n.Elapsed)
	sw.publish(n)
	return nil
}

// Stop cancels the tick source. Once Stop returns no further ticks are
// counted. It returns ErrNotRunning, without notifying, if already stopped.
func (sw *Stopwatch) Stop() error {
	sw.mu.Lock()
	if sw.state != StateRunning {
		sw.mu.Unlock()
		log.Debug("stopwatch: stop ignored, not running")
		return ErrNotRunning
	}
	sw.haltLocked()
	n := sw.notificationLocked(KindStopped)
	sw.mu.Unlock()

	log.Debug("stopwatch: stopped at %s (%v)", n.Elapsed, n.Elapsed.Duration())
	sw.publish(n)
	return nil
}

// Reset cancels any tick source, zeroes the elapsed time and notifies,
// whatever the prior state.
func (sw *Stopwatch) Reset() {
	sw.mu.Lock()
	sw.haltLocked()
	sw.elapsed = Elapsed{}
	n := sw.notificationLocked(KindReset)
	sw.mu.Unlock()

	log.Debug("stopwatch: reset")
	sw.publish(n)
}

// Close releases the tick source without notifying and waits for every tick
// goroutine to exit. Elapsed time is preserved.
func (sw *Stopwatch) Close() {
	sw.mu.Lock()
	sw.haltLocked()
	sw.mu.Unlock()

	sw.wg.Wait()
}

// GetFormattedTime returns the elapsed time as M:SS:CC.
func (sw *Stopwatch) GetFormattedTime() string {
	return sw.Elapsed().String()
}

// Elapsed returns a snapshot of the accumulated time.
func (sw *Stopwatch) Elapsed() Elapsed {
	sw.mu.Lock()
	defer sw.mu.Unlock()
	return sw.elapsed
}

// State returns the current mode.
func (sw *Stopwatch) State() State {
	sw.mu.Lock()
	defer sw.mu.Unlock()
	return sw.state
}

// Running reports whether the tick source is active.
func (sw *Stopwatch) Running() bool {
	return sw.State() == StateRunning
}

func (sw *Stopwatch) loop(run *tickRun) {
	defer sw.wg.Done()
	for {
		select {
		case <-run.stop:
			return
		case <-run.ticker.C():
			sw.tick(run)
		}
	}
}

// tick adds one centisecond. Ticks from a run that has since been halted
// are dropped, which keeps Stop and Reset final even when a tick races them.
func (sw *Stopwatch) tick(run *tickRun) {
	sw.mu.Lock()
	defer sw.mu.Unlock()
	if sw.run != run {
		return
	}
	sw.elapsed.advance()
}

// haltLocked stops the active tick source, if any, and enters StateStopped.
func (sw *Stopwatch) haltLocked() {
	sw.state = StateStopped
	if sw.run == nil {
		return
	}
	sw.run.ticker.Stop()
	close(sw.run.stop)
	sw.run = nil
}

func (sw *Stopwatch) notificationLocked(kind Kind) Notification {
	return Notification{
		Kind:    kind,
		Message: kind.Message(),
		Elapsed: sw.elapsed,
		At:      sw.clock.Now(),
	}
}

func (sw *Stopwatch) publish(n Notification) {
	sw.buses[n.Kind].Publish(n)
}
