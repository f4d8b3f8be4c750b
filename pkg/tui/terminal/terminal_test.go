// ABOUTME: Tests for VirtualTerminal and ProcessTerminal raw mode, output capture, and sizing.
// ABOUTME: ProcessTerminal is exercised over a pipe, where raw mode must be refused.

package terminal

import (
	"errors"
	"io"
	"os"
	"testing"
)

// compile-time checks: both implementations satisfy Terminal.
var (
	_ Terminal = (*VirtualTerminal)(nil)
	_ Terminal = (*ProcessTerminal)(nil)
)

func TestVirtualTerminal_Size(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		width, height int
	}{
		{name: "standard 80x24", width: 80, height: 24},
		{name: "wide 200x50", width: 200, height: 50},
		{name: "zero dimensions", width: 0, height: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			vt := NewVirtualTerminal(tt.width, tt.height)

			w, h, err := vt.Size()
			if err != nil {
				t.Fatalf("Size() unexpected error: %v", err)
			}
			if w != tt.width || h != tt.height {
				t.Errorf("Size() = (%d, %d), want (%d, %d)", w, h, tt.width, tt.height)
			}
		})
	}
}

func TestVirtualTerminal_RawMode(t *testing.T) {
	t.Parallel()
	vt := NewVirtualTerminal(80, 24)

	if vt.IsRaw() {
		t.Fatal("expected raw mode to be off initially")
	}
	if err := vt.EnterRawMode(); err != nil {
		t.Fatalf("EnterRawMode() unexpected error: %v", err)
	}
	if !vt.IsRaw() {
		t.Fatal("expected raw mode to be on after EnterRawMode")
	}
	if err := vt.ExitRawMode(); err != nil {
		t.Fatalf("ExitRawMode() unexpected error: %v", err)
	}
	if vt.IsRaw() {
		t.Fatal("expected raw mode to be off after ExitRawMode")
	}
	if vt.EnterCount() != 1 || vt.ExitCount() != 1 {
		t.Errorf("counts = (%d, %d), want (1, 1)", vt.EnterCount(), vt.ExitCount())
	}
}

func TestVirtualTerminal_DisableRawMode(t *testing.T) {
	t.Parallel()
	vt := NewVirtualTerminal(80, 24)
	vt.DisableRawMode()

	if err := vt.EnterRawMode(); !errors.Is(err, ErrNotTerminal) {
		t.Errorf("EnterRawMode() error = %v, want ErrNotTerminal", err)
	}
	if vt.IsRaw() {
		t.Error("raw mode should stay off")
	}
}

func TestVirtualTerminal_WriteAndReset(t *testing.T) {
	t.Parallel()
	vt := NewVirtualTerminal(80, 24)

	if _, err := vt.Write([]byte("one")); err != nil {
		t.Fatal(err)
	}
	n, err := vt.Write([]byte("two"))
	if err != nil || n != 3 {
		t.Fatalf("Write() = (%d, %v), want (3, nil)", n, err)
	}
	if got := vt.Output(); got != "onetwo" {
		t.Errorf("Output() = %q, want %q", got, "onetwo")
	}

	vt.Reset()
	if got := vt.Output(); got != "" {
		t.Errorf("Output() after Reset = %q, want empty", got)
	}
}

func TestVirtualTerminal_SetSize(t *testing.T) {
	t.Parallel()
	vt := NewVirtualTerminal(80, 24)
	vt.SetSize(120, 40)

	w, h, _ := vt.Size()
	if w != 120 || h != 40 {
		t.Errorf("Size() = (%d, %d), want (120, 40)", w, h)
	}
}

func TestProcessTerminal_PipeIsNotATerminal(t *testing.T) {
	t.Parallel()

	inR, inW, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	defer inR.Close()
	defer inW.Close()
	outR, outW, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	defer outR.Close()

	pt := NewProcessTerminal(inR, outW)

	if err := pt.EnterRawMode(); !errors.Is(err, ErrNotTerminal) {
		t.Errorf("EnterRawMode() error = %v, want ErrNotTerminal", err)
	}
	if pt.IsRaw() {
		t.Error("IsRaw() = true on a pipe")
	}
	if err := pt.ExitRawMode(); err != nil {
		t.Errorf("ExitRawMode() without raw mode: %v", err)
	}
	if _, _, err := pt.Size(); err == nil {
		t.Error("Size() on a pipe should fail")
	}

	if _, err := pt.Write([]byte("hi")); err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	outW.Close()
	got, err := io.ReadAll(outR)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "hi" {
		t.Errorf("output = %q, want %q", got, "hi")
	}
	if pt.Input() != inR {
		t.Error("Input() should return the input file")
	}
}
