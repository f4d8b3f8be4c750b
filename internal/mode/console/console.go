// ABOUTME: Console mode: polls the keyboard every tick and redraws the elapsed time in place
// ABOUTME: A StdinBuffer goroutine feeds a key queue; the loop maps keys to stopwatch commands

package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mauromedda/stopwatch-go/internal/config"
	"github.com/mauromedda/stopwatch-go/internal/keybindings"
	"github.com/mauromedda/stopwatch-go/internal/log"
	"github.com/mauromedda/stopwatch-go/internal/stopwatch"
	"github.com/mauromedda/stopwatch-go/pkg/tui/input"
	"github.com/mauromedda/stopwatch-go/pkg/tui/key"
	"github.com/mauromedda/stopwatch-go/pkg/tui/terminal"
	"github.com/mauromedda/stopwatch-go/pkg/tui/theme"
	"github.com/mauromedda/stopwatch-go/pkg/tui/width"
)

const (
	// Title is the first banner line.
	Title = "Stopwatch Application"
	// ExitMessage is printed when the loop ends.
	ExitMessage = "Exiting Stopwatch..."

	elapsedPrefix = "Time Elapsed: "
	newline       = "\r\n"
)

// Deps provides dependencies for console mode.
type Deps struct {
	Stopwatch    *stopwatch.Stopwatch
	Terminal     terminal.Terminal
	Input        io.Reader
	Bindings     *keybindings.Manager
	Theme        *theme.Theme  // nil renders plain text
	PollInterval time.Duration // 0 = config.DefaultPollInterval
}

// driver owns the output side of one console session. All writes happen on
// the loop goroutine, including notifications, which the stopwatch delivers
// on the goroutine that issued the command.
type driver struct {
	deps      Deps
	lineMode  bool
	liveShown bool   // cursor is on the live elapsed line
	lastDrawn string // formatted time of the last redraw
	liveWidth int    // visible width of the last redraw
}

// Run prints the banner and drives the stopwatch from keyboard input until
// a quit key, end of input, or ctx cancellation. It returns nil on a normal
// exit and an error only when input cannot be read.
func Run(ctx context.Context, deps Deps) error {
	if deps.Stopwatch == nil || deps.Terminal == nil || deps.Input == nil {
		return errors.New("console: stopwatch, terminal and input are required")
	}
	if deps.Bindings == nil {
		deps.Bindings = keybindings.New(nil)
	}
	if deps.PollInterval <= 0 {
		deps.PollInterval = config.DefaultPollInterval
	}

	d := &driver{deps: deps}

	if err := deps.Terminal.EnterRawMode(); err != nil {
		if !errors.Is(err, terminal.ErrNotTerminal) {
			return fmt.Errorf("entering raw mode: %w", err)
		}
		d.lineMode = true
		log.Debug("console: input is not a terminal, using line mode")
	}
	defer func() {
		if err := deps.Terminal.ExitRawMode(); err != nil {
			log.Warn("console: restoring terminal: %v", err)
		}
	}()

	d.write(terminal.HideCursor)
	defer d.write(terminal.ShowCursor)

	unsubscribe := deps.Stopwatch.SubscribeAll(d.notify)
	defer unsubscribe()

	d.println(d.render(theme.RoleTitle, Title))
	d.println(d.render(theme.RoleHint, deps.Bindings.HintLine()))

	queue := input.NewQueue(input.DefaultQueueSize)
	inputDone := make(chan struct{})

	g, gctx := errgroup.WithContext(ctx)
	readCtx, stopReading := context.WithCancel(gctx)

	g.Go(func() error {
		defer terminal.RecoverGoroutine(deps.Terminal)
		// Push blocks while the loop catches up, so pasted or piped input
		// is never dropped.
		push := func(k key.Key) {
			if err := queue.Push(readCtx, k); err != nil {
				log.Debug("console: key %s discarded on shutdown", k)
			}
		}
		err := input.NewStdinBuffer(deps.Input, push).Start(readCtx)
		switch {
		case err == nil:
			close(inputDone)
			return nil
		case errors.Is(err, context.Canceled):
			return nil
		default:
			return fmt.Errorf("reading input: %w", err)
		}
	})

	g.Go(func() error {
		defer stopReading()
		d.loop(gctx, queue, inputDone)
		return nil
	})

	err := g.Wait()
	stopReading()

	d.endLiveLine()
	d.println(d.render(theme.RoleInfo, ExitMessage))
	return err
}

// loop polls once per interval: redraw, then at most one key.
func (d *driver) loop(ctx context.Context, queue *input.Queue, inputDone <-chan struct{}) {
	ticker := time.NewTicker(d.deps.PollInterval)
	defer ticker.Stop()

	for {
		d.drawElapsed()

		if k, ok := queue.Poll(); ok {
			if d.handleKey(k) {
				return
			}
		} else {
			select {
			case <-inputDone:
				// End of input with nothing left to process.
				if queue.Len() == 0 {
					if d.deps.Stopwatch.Running() {
						d.quit()
					}
					return
				}
			default:
			}
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// handleKey runs the command bound to k and reports whether to quit.
func (d *driver) handleKey(k key.Key) bool {
	if d.lineMode && k.Type == key.KeyEnter {
		return false
	}

	action, ok := d.deps.Bindings.ActionForKey(k)
	if !ok {
		log.Debug("console: unbound key %s", k)
		d.noticeLine(theme.RoleError, d.deps.Bindings.InvalidInputLine())
		d.println(d.render(theme.RoleHint, d.deps.Bindings.HintLine()))
		return false
	}

	switch action {
	case config.ActionStart:
		d.advise(d.deps.Stopwatch.Start())
	case config.ActionStop:
		d.advise(d.deps.Stopwatch.Stop())
	case config.ActionReset:
		d.deps.Stopwatch.Reset()
	case config.ActionQuit:
		d.quit()
		return true
	}
	return false
}

func (d *driver) quit() {
	d.advise(d.deps.Stopwatch.Stop())
}

// advise prints the console text for an advisory command error.
func (d *driver) advise(err error) {
	if err == nil {
		return
	}
	if msg, ok := stopwatch.AdvisoryMessage(err); ok {
		d.noticeLine(theme.RoleWarning, msg)
		return
	}
	log.Error("console: %v", err)
}

func (d *driver) notify(n stopwatch.Notification) {
	d.noticeLine(noticeRole(n.Kind), n.Message)
}

func noticeRole(kind stopwatch.Kind) theme.Role {
	switch kind {
	case stopwatch.KindStarted:
		return theme.RoleSuccess
	case stopwatch.KindStopped:
		return theme.RoleWarning
	default:
		return theme.RoleInfo
	}
}

// drawElapsed rewrites the live line when the time changed. A zero time is
// never drawn.
func (d *driver) drawElapsed() {
	e := d.deps.Stopwatch.Elapsed()
	if e.IsZero() {
		return
	}
	formatted := e.String()
	if d.liveShown && formatted == d.lastDrawn {
		return
	}

	plain := elapsedPrefix + formatted
	if w := d.termWidth(); w > 0 {
		plain = width.Truncate(plain, w-1)
	}
	visible := width.VisibleWidth(plain)

	var line string
	if visible > len(elapsedPrefix) {
		line = elapsedPrefix + d.render(theme.RoleElapsed, plain[len(elapsedPrefix):])
	} else {
		line = plain
	}
	if d.liveWidth > visible {
		line += strings.Repeat(" ", d.liveWidth-visible)
	}

	d.write("\r" + line)
	d.liveShown = true
	d.lastDrawn = formatted
	d.liveWidth = visible
}

// noticeLine prints text on its own line, closing the live line first.
func (d *driver) noticeLine(role theme.Role, text string) {
	d.endLiveLine()
	d.println(d.render(role, text))
}

// endLiveLine moves below the live line so the next redraw starts fresh.
func (d *driver) endLiveLine() {
	if !d.liveShown {
		return
	}
	d.write(newline)
	d.liveShown = false
	d.liveWidth = 0
}

func (d *driver) termWidth() int {
	w, _, err := d.deps.Terminal.Size()
	if err != nil {
		return 0
	}
	return w
}

func (d *driver) render(role theme.Role, text string) string {
	return d.deps.Theme.Render(role, text)
}

func (d *driver) println(s string) {
	d.write(s + newline)
}

func (d *driver) write(s string) {
	if _, err := io.WriteString(d.deps.Terminal, s); err != nil {
		log.Debug("console: write: %v", err)
	}
}
