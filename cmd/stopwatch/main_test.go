// ABOUTME: Tests for flag parsing and CLI override construction
// ABOUTME: Parses into a fresh FlagSet per case so tests run in parallel

package main

import (
	"errors"
	"flag"
	"io"
	"testing"

	"github.com/mauromedda/stopwatch-go/internal/config"
)

func TestParseFlags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		argv    []string
		want    cliArgs
		wantErr bool
	}{
		{name: "defaults", argv: nil, want: cliArgs{}},
		{
			name: "all flags",
			argv: []string{"-config", "sw.yaml", "-tui", "-no-color", "-verbose", "-version"},
			want: cliArgs{configPath: "sw.yaml", tui: true, noColor: true, verbose: true, version: true},
		},
		{name: "double dash", argv: []string{"--tui"}, want: cliArgs{tui: true}},
		{name: "unknown flag", argv: []string{"-nope"}, wantErr: true},
		{name: "positional argument", argv: []string{"extra"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := parseFlags(tt.argv, io.Discard)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseFlags() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("parseFlags() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseFlags_Help(t *testing.T) {
	t.Parallel()
	_, err := parseFlags([]string{"-h"}, io.Discard)
	if !errors.Is(err, flag.ErrHelp) {
		t.Errorf("parseFlags(-h) error = %v, want flag.ErrHelp", err)
	}
}

func TestBuildCLIOverrides(t *testing.T) {
	t.Parallel()

	empty := buildCLIOverrides(cliArgs{})
	if empty.Mode != "" || empty.Color != nil {
		t.Errorf("no flags should leave overrides empty, got %+v", empty)
	}

	s := buildCLIOverrides(cliArgs{tui: true, noColor: true})
	if s.Mode != config.ModeTUI {
		t.Errorf("Mode = %q, want %q", s.Mode, config.ModeTUI)
	}
	if s.Color == nil || *s.Color {
		t.Error("Color should be overridden to false")
	}
}
