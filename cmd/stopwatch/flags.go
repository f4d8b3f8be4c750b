// ABOUTME: CLI flag parsing using stdlib flag package
// ABOUTME: Supports -config, -tui, -no-color, -verbose, -version

package main

import (
	"flag"
	"fmt"
	"io"
)

type cliArgs struct {
	configPath string
	tui        bool
	noColor    bool
	verbose    bool
	version    bool
}

// parseFlags parses argv (without the program name). Usage goes to errOut.
func parseFlags(argv []string, errOut io.Writer) (cliArgs, error) {
	var args cliArgs

	fs := flag.NewFlagSet("stopwatch", flag.ContinueOnError)
	fs.SetOutput(errOut)
	fs.StringVar(&args.configPath, "config", "", "Path to a YAML config file (applied after global and project config)")
	fs.BoolVar(&args.tui, "tui", false, "Use the full-screen TUI instead of the console loop")
	fs.BoolVar(&args.noColor, "no-color", false, "Disable styled output")
	fs.BoolVar(&args.verbose, "verbose", false, "Enable debug logging to stderr")
	fs.BoolVar(&args.version, "version", false, "Show version and exit")

	if err := fs.Parse(argv); err != nil {
		return args, err
	}
	if fs.NArg() > 0 {
		return args, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	return args, nil
}
