// ABOUTME: PTY harness for e2e tests: builds the stopwatch binary once and drives it via creack/pty
// ABOUTME: Output is collected in the background so expectations can poll with a timeout

package e2e

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/creack/pty"
)

var binPath string

func TestMain(m *testing.M) {
	os.Exit(runMain(m))
}

func runMain(m *testing.M) int {
	flag.Parse()
	if testing.Short() {
		return m.Run()
	}

	dir, err := os.MkdirTemp("", "stopwatch-e2e")
	if err != nil {
		fmt.Fprintf(os.Stderr, "e2e: temp dir: %v\n", err)
		return 1
	}
	defer os.RemoveAll(dir)

	binPath = filepath.Join(dir, "stopwatch")
	build := exec.Command("go", "build", "-o", binPath, "../cmd/stopwatch")
	build.Stdout = os.Stderr
	build.Stderr = os.Stderr
	if err := build.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "e2e: building binary: %v\n", err)
		return 1
	}
	return m.Run()
}

// session is one running binary attached to a pseudo-terminal.
type session struct {
	cmd  *exec.Cmd
	ptmx *os.File
	done chan error

	mu  sync.Mutex
	out bytes.Buffer
}

// startStopwatch launches the binary with args in an empty HOME so no user
// config is picked up.
func startStopwatch(t *testing.T, args ...string) *session {
	t.Helper()

	cmd := exec.Command(binPath, args...)
	cmd.Dir = t.TempDir()
	cmd.Env = append(os.Environ(), "HOME="+t.TempDir(), "TERM=xterm-256color")

	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{Rows: 24, Cols: 80})
	if err != nil {
		t.Fatalf("starting binary in pty: %v", err)
	}

	s := &session{cmd: cmd, ptmx: ptmx, done: make(chan error, 1)}
	go s.collect()
	go func() { s.done <- cmd.Wait() }()
	return s
}

func (s *session) collect() {
	buf := make([]byte, 4096)
	for {
		n, err := s.ptmx.Read(buf)
		if n > 0 {
			s.mu.Lock()
			s.out.Write(buf[:n])
			s.mu.Unlock()
		}
		if err != nil {
			return
		}
	}
}

func (s *session) output() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.out.String()
}

func (s *session) send(t *testing.T, text string) {
	t.Helper()
	if _, err := io.WriteString(s.ptmx, text); err != nil {
		t.Fatalf("writing to pty: %v", err)
	}
}

// sendCtrl sends Ctrl+<letter>.
func (s *session) sendCtrl(t *testing.T, letter byte) {
	t.Helper()
	s.send(t, string([]byte{letter & 0x1f}))
}

func (s *session) expectStringTimeout(t *testing.T, want string, timeout time.Duration) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for !strings.Contains(s.output(), want) {
		if time.Now().After(deadline) {
			t.Fatalf("timed out after %v waiting for %q; output:\n%q", timeout, want, s.output())
		}
		time.Sleep(20 * time.Millisecond)
	}
}

// waitExit waits for the process to exit and returns its exit code.
func (s *session) waitExit(t *testing.T, timeout time.Duration) int {
	t.Helper()
	select {
	case err := <-s.done:
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode()
		}
		if err != nil {
			t.Fatalf("waiting for binary: %v", err)
		}
		return 0
	case <-time.After(timeout):
		t.Fatalf("binary did not exit within %v; output:\n%q", timeout, s.output())
		return -1
	}
}

func (s *session) close() {
	if s.cmd.ProcessState == nil && s.cmd.Process != nil {
		_ = s.cmd.Process.Kill()
	}
	_ = s.ptmx.Close()
}
