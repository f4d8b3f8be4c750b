// ABOUTME: CLI entry point for the stopwatch with terminal crash recovery
// ABOUTME: Parses flags, loads config, builds the stopwatch and dispatches to console or TUI mode

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	// termfix must be imported before any package that imports bubbletea.
	_ "github.com/mauromedda/stopwatch-go/internal/termfix"

	"github.com/mauromedda/stopwatch-go/internal/config"
	"github.com/mauromedda/stopwatch-go/internal/keybindings"
	swlog "github.com/mauromedda/stopwatch-go/internal/log"
	"github.com/mauromedda/stopwatch-go/internal/mode/console"
	"github.com/mauromedda/stopwatch-go/internal/mode/tui"
	"github.com/mauromedda/stopwatch-go/internal/stopwatch"
	"github.com/mauromedda/stopwatch-go/pkg/tui/terminal"
	"github.com/mauromedda/stopwatch-go/pkg/tui/theme"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	args, err := parseFlags(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if args.version {
		fmt.Printf("stopwatch %s (%s) built %s\n", version, commit, date)
		os.Exit(0)
	}

	if err := run(args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// run loads configuration and runs the selected front-end until the user
// quits or the process is interrupted.
func run(args cliArgs) error {
	if args.verbose {
		swlog.SetLevel(swlog.LevelDebug)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting working directory: %w", err)
	}

	cfg, err := config.LoadAll(cwd, args.configPath, buildCLIOverrides(args))
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	swlog.Debug("config: mode=%s poll=%s color=%t theme=%s", cfg.Mode, cfg.PollInterval, cfg.ColorEnabled(), cfg.Theme)

	th := theme.Plain()
	if cfg.ColorEnabled() {
		th, err = theme.New(os.Stdout, cfg.Theme)
		if err != nil {
			return fmt.Errorf("loading theme: %w", err)
		}
	}

	term := terminal.NewProcessTerminal(os.Stdin, os.Stdout)
	defer terminal.RestoreOnPanic(term)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sw := stopwatch.New()
	defer sw.Close()

	bindings := keybindings.New(cfg.Keys)

	switch cfg.Mode {
	case config.ModeTUI:
		err := tui.Run(ctx, tui.Deps{
			Stopwatch:       sw,
			Bindings:        bindings,
			Theme:           th,
			RefreshInterval: cfg.PollInterval,
			Input:           term.Input(),
			Output:          term,
		})
		if err != nil {
			return err
		}
		_, _ = io.WriteString(os.Stdout, th.Render(theme.RoleInfo, console.ExitMessage)+"\n")
		return nil

	default:
		return console.Run(ctx, console.Deps{
			Stopwatch:    sw,
			Terminal:     term,
			Input:        term.Input(),
			Bindings:     bindings,
			Theme:        th,
			PollInterval: cfg.PollInterval,
		})
	}
}

// buildCLIOverrides turns flags into the highest-precedence config layer.
func buildCLIOverrides(args cliArgs) *config.Settings {
	s := &config.Settings{}
	if args.tui {
		s.Mode = config.ModeTUI
	}
	if args.noColor {
		f := false
		s.Color = &f
	}
	return s
}
