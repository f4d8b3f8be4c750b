// ABOUTME: StdinBuffer reads raw bytes from an io.Reader and dispatches parsed key events.
// ABOUTME: Handles split escape sequences and split UTF-8 runes with a short lone-ESC timeout.

package input

import (
	"context"
	"io"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/mauromedda/stopwatch-go/pkg/tui/key"
)

const (
	readBufSize = 256
	escTimeout  = 50 * time.Millisecond
	maxSeqLen   = 8
)

// StdinBuffer reads from a reader and dispatches parsed key events via onKey.
type StdinBuffer struct {
	reader io.Reader
	onKey  func(key.Key)
	buf    []byte
	mu     sync.Mutex
}

// NewStdinBuffer creates a StdinBuffer that reads from r and calls onKey for each parsed key.
func NewStdinBuffer(r io.Reader, onKey func(key.Key)) *StdinBuffer {
	return &StdinBuffer{
		reader: r,
		onKey:  onKey,
		buf:    make([]byte, 0, readBufSize),
	}
}

// Start reads until ctx is cancelled or the reader returns an error, which
// includes io.EOF. Leftover bytes are flushed as keys before returning.
// It blocks; run it in a goroutine.
func (b *StdinBuffer) Start(ctx context.Context) error {
	readCh := make(chan readResult)
	done := make(chan struct{})

	go b.readLoop(readCh, done)
	defer close(done)

	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		// While a split sequence is pending, wait at most escTimeout for the rest.
		var timeout <-chan time.Time
		if timer != nil {
			timeout = timer.C
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case result, ok := <-readCh:
			if !ok || result.err != nil {
				b.flushRemaining()
				if !ok || result.err == io.EOF {
					return nil
				}
				return result.err
			}
			if b.processBytes(ctx, result.data) {
				if timer == nil {
					timer = time.NewTimer(escTimeout)
				}
			} else if timer != nil {
				timer.Stop()
				timer = nil
			}
		case <-timeout:
			timer = nil
			b.flushRemaining()
		}
	}
}

type readResult struct {
	data []byte
	err  error
}

// readLoop forwards reads to ch until the reader fails or done is closed.
// A Read blocked on a terminal cannot be interrupted; the goroutine then
// lingers until the next byte or process exit.
func (b *StdinBuffer) readLoop(ch chan<- readResult, done <-chan struct{}) {
	defer close(ch)
	tmp := make([]byte, readBufSize)
	for {
		n, err := b.reader.Read(tmp)
		if n > 0 {
			data := make([]byte, n)
			copy(data, tmp[:n])
			select {
			case ch <- readResult{data: data}:
			case <-done:
				return
			}
		}
		if err != nil {
			select {
			case ch <- readResult{err: err}:
			case <-done:
			}
			return
		}
	}
}

// processBytes appends data and dispatches every complete key. It reports
// whether an incomplete sequence remains buffered.
func (b *StdinBuffer) processBytes(ctx context.Context, data []byte) bool {
	b.mu.Lock()
	b.buf = append(b.buf, data...)
	b.mu.Unlock()

	return b.dispatchKeys(ctx)
}

func (b *StdinBuffer) dispatchKeys(ctx context.Context) bool {
	for ctx.Err() == nil {
		b.mu.Lock()
		if len(b.buf) == 0 {
			b.mu.Unlock()
			return false
		}
		consumed, k, needsWait := b.tryParse()
		if needsWait {
			b.mu.Unlock()
			return true
		}
		b.buf = b.buf[consumed:]
		b.mu.Unlock()

		b.onKey(k)
	}
	return false
}

// tryParse parses one key from the front of b.buf.
// Returns (consumed bytes, parsed key, needs-wait flag). Must be called with b.mu held.
func (b *StdinBuffer) tryParse() (int, key.Key, bool) {
	if b.buf[0] == 0x1b {
		if len(b.buf) == 1 {
			// Lone ESC or the start of a sequence.
			return 0, key.Key{}, true
		}
		return b.parseEscapeFromBuf()
	}

	if !utf8.FullRune(b.buf) {
		return 0, key.Key{}, true
	}

	r, size := utf8.DecodeRune(b.buf)
	if r == utf8.RuneError {
		return 1, key.Key{Type: key.KeyUnknown}, false
	}
	return size, key.ParseKey(string(b.buf[:size])), false
}

// parseEscapeFromBuf matches the longest known sequence at the front of the
// buffer. Must be called with b.mu held and len(b.buf) >= 2.
func (b *StdinBuffer) parseEscapeFromBuf() (int, key.Key, bool) {
	for end := min(len(b.buf), maxSeqLen); end >= 3; end-- {
		if k := key.ParseKey(string(b.buf[:end])); k.Type != key.KeyUnknown {
			return end, k, false
		}
	}

	if b.buf[1] != '[' && b.buf[1] != 'O' {
		// ESC + byte: Alt chord or unknown.
		return 2, key.ParseKey(string(b.buf[:2])), false
	}

	// A short CSI/SS3 prefix may still be arriving.
	if len(b.buf) <= 3 {
		return 0, key.Key{}, true
	}

	// Unrecognised sequence: swallow it up to its final byte so it surfaces
	// as a single unknown key.
	end := len(b.buf)
	for i := 2; i < len(b.buf); i++ {
		if b.buf[i] >= 0x40 && b.buf[i] <= 0x7e {
			end = i + 1
			break
		}
	}
	return end, key.Key{Type: key.KeyUnknown}, false
}

// flushRemaining dispatches any leftover bytes, treating incomplete data as
// final: a lone ESC becomes Escape and a broken rune becomes Unknown.
func (b *StdinBuffer) flushRemaining() {
	b.mu.Lock()
	for len(b.buf) > 0 {
		consumed, k, needsWait := b.tryParse()
		if needsWait {
			consumed = 1
			k = key.Key{Type: key.KeyUnknown}
			if b.buf[0] == 0x1b {
				k = key.Key{Type: key.KeyEscape}
			}
		}
		b.buf = b.buf[consumed:]
		b.mu.Unlock()
		b.onKey(k)
		b.mu.Lock()
	}
	b.mu.Unlock()
}
