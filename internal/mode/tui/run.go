// ABOUTME: Entry point for the Bubble Tea stopwatch front-end
// ABOUTME: Builds the tea.Program over the given input/output and blocks until the user quits

package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mauromedda/stopwatch-go/internal/keybindings"
	"github.com/mauromedda/stopwatch-go/internal/log"
	"github.com/mauromedda/stopwatch-go/internal/stopwatch"
	"github.com/mauromedda/stopwatch-go/pkg/tui/theme"
)

// Deps provides dependencies for TUI mode.
type Deps struct {
	Stopwatch       *stopwatch.Stopwatch
	Bindings        *keybindings.Manager
	Theme           *theme.Theme
	RefreshInterval time.Duration
	Input           io.Reader // nil = os.Stdin
	Output          io.Writer // nil = os.Stdout
}

// Run starts the Bubble Tea program. Blocks until the user quits or ctx is
// cancelled; both are a normal exit.
func Run(ctx context.Context, deps Deps) error {
	if deps.Stopwatch == nil {
		return errors.New("tui: stopwatch is required")
	}

	m := NewModel(deps.Stopwatch, deps.Bindings, deps.Theme, deps.RefreshInterval)
	defer m.Close()

	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if deps.Input != nil {
		opts = append(opts, tea.WithInput(deps.Input))
	}
	if deps.Output != nil {
		opts = append(opts, tea.WithOutput(deps.Output))
	}

	_, err := tea.NewProgram(m, opts...).Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		log.Debug("tui: %v", ctx.Err())
		return nil
	}
	if err != nil {
		return fmt.Errorf("bubble tea: %w", err)
	}
	return nil
}
