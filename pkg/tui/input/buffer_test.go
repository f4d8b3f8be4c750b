// ABOUTME: Tests for StdinBuffer key reading and dispatch from an io.Reader.
// ABOUTME: Uses in-memory readers and pipes for split sequences, EOF and context cancellation.

package input

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/mauromedda/stopwatch-go/pkg/tui/key"
)

type collector struct {
	mu   sync.Mutex
	keys []key.Key
}

func (c *collector) add(k key.Key) {
	c.mu.Lock()
	c.keys = append(c.keys, k)
	c.mu.Unlock()
}

func (c *collector) snapshot() []key.Key {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]key.Key(nil), c.keys...)
}

func runBuffer(t *testing.T, data string) []key.Key {
	t.Helper()
	var c collector
	buf := NewStdinBuffer(bytes.NewBufferString(data), c.add)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := buf.Start(ctx); err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	return c.snapshot()
}

func TestStdinBuffer_Keys(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data string
		want []key.Key
	}{
		{
			name: "single key",
			data: "s",
			want: []key.Key{{Type: key.KeyRune, Rune: 's'}},
		},
		{
			name: "several keys in one read",
			data: "str",
			want: []key.Key{
				{Type: key.KeyRune, Rune: 's'},
				{Type: key.KeyRune, Rune: 't'},
				{Type: key.KeyRune, Rune: 'r'},
			},
		},
		{
			name: "line mode input",
			data: "q\n",
			want: []key.Key{{Type: key.KeyRune, Rune: 'q'}, {Type: key.KeyEnter}},
		},
		{
			name: "arrow is one key",
			data: "\x1b[Aq",
			want: []key.Key{{Type: key.KeyUp}, {Type: key.KeyRune, Rune: 'q'}},
		},
		{
			name: "unknown sequence is one key",
			data: "\x1b[99~s",
			want: []key.Key{{Type: key.KeyUnknown}, {Type: key.KeyRune, Rune: 's'}},
		},
		{
			name: "lone escape at EOF",
			data: "\x1b",
			want: []key.Key{{Type: key.KeyEscape}},
		},
		{
			name: "ctrl+c",
			data: "\x03",
			want: []key.Key{{Type: key.KeyCtrlC, Ctrl: true}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := runBuffer(t, tt.data)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d keys %+v, want %+v", len(got), got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("key %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestStdinBuffer_SplitSequence(t *testing.T) {
	t.Parallel()

	pr, pw := io.Pipe()
	var c collector
	buf := NewStdinBuffer(pr, c.add)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	errCh := make(chan error, 1)
	go func() { errCh <- buf.Start(ctx) }()

	// Both halves arrive well inside escTimeout.
	if _, err := pw.Write([]byte("\x1b[")); err != nil {
		t.Fatal(err)
	}
	if _, err := pw.Write([]byte("B")); err != nil {
		t.Fatal(err)
	}
	pw.Close()

	if err := <-errCh; err != nil {
		t.Fatalf("Start() error: %v", err)
	}

	got := c.snapshot()
	if len(got) != 1 || got[0].Type != key.KeyDown {
		t.Errorf("keys = %+v, want a single KeyDown", got)
	}
}

func TestStdinBuffer_ContextCancellation(t *testing.T) {
	t.Parallel()

	pr, pw := io.Pipe()
	defer pw.Close()

	buf := NewStdinBuffer(pr, func(key.Key) {})
	ctx, cancel := context.WithCancel(context.Background())

	errCh := make(chan error, 1)
	go func() { errCh <- buf.Start(ctx) }()

	cancel()

	select {
	case err := <-errCh:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Start() error = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Start did not return after cancellation")
	}
}

func TestStdinBuffer_ReaderError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	pr, pw := io.Pipe()
	buf := NewStdinBuffer(pr, func(key.Key) {})

	pw.CloseWithError(boom)

	if err := buf.Start(context.Background()); !errors.Is(err, boom) {
		t.Errorf("Start() error = %v, want %v", err, boom)
	}
}
