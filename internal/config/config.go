// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package config parses the command-line arguments of cargoscan.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"

	"github.com/creachadair/cargoscan"
	"github.com/creachadair/cargoscan/internal/source"
)

var (
	// ErrHelp is returned by Parse when -h or --help is given.
	ErrHelp = errors.New("help requested")

	// ErrTooManyFiles is returned by Parse for more than one FILE argument.
	ErrTooManyFiles = errors.New("at most one input file may be given")

	// ErrJWCCNeedFile is returned by Parse when --jwcc is set without FILE.
	ErrJWCCNeedFile = errors.New("--jwcc requires an input file")
)

// Config defines CLI options for the cargoscan command.
type Config struct {
	// File is the metadata file to scan. If empty, the output of
	// "cargo metadata" is scanned instead.
	File     string
	JWCC     bool
	Target   cargoscan.Target
	Decode   bool
	LogLevel slog.Level
}

// Parse parses and validates CLI arguments. The first argument is the program
// name. Flags may appear before or after FILE; arguments after "--" are
// taken as positional.
func Parse(args []string) (*Config, error) {
	name := "cargoscan"
	if len(args) != 0 {
		name, args = args[0], args[1:]
	}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}

	path := fs.String("path", cargoscan.ManifestPaths.String(), "JSONPath of the values to extract")
	decode := fs.Bool("decode", false, "Decode escape sequences in extracted values")
	jwcc := fs.Bool("jwcc", false, "Accept comments and trailing commas in the input file")
	verbose := fs.Bool("v", false, "Log each scanner event and state transition")

	files, err := parseInterspersed(fs, args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, ErrHelp
		}
		return nil, fmt.Errorf("parse arguments: %w", err)
	}

	cfg := &Config{
		Decode:   *decode,
		JWCC:     *jwcc,
		LogLevel: slog.LevelWarn,
	}
	switch len(files) {
	case 0:
	case 1:
		cfg.File = files[0]
	default:
		return nil, fmt.Errorf("%w, got %d", ErrTooManyFiles, len(files))
	}
	if cfg.JWCC && cfg.File == "" {
		return nil, ErrJWCCNeedFile
	}
	if *verbose {
		cfg.LogLevel = slog.LevelDebug
	}

	t, err := cargoscan.ParseTarget(*path)
	if err != nil {
		return nil, fmt.Errorf("--path: %w", err)
	}
	cfg.Target = t
	return cfg, nil
}

// parseInterspersed parses args with fs, resuming after each positional
// argument so that flags may follow it. It returns the positional arguments.
func parseInterspersed(fs *flag.FlagSet, args []string) ([]string, error) {
	var pos []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		rest := fs.Args()
		if len(rest) == 0 {
			return pos, nil
		}
		if used := len(args) - len(rest); used > 0 && args[used-1] == "--" {
			return append(pos, rest...), nil
		}
		pos = append(pos, rest[0])
		args = rest[1:]
	}
}

// Source returns the input source selected by c.
func (c *Config) Source() source.Source {
	if c.File != "" {
		return source.File{Path: c.File, JWCC: c.JWCC}
	}
	return source.CargoMetadata
}

// Usage returns command usage text.
func Usage() string {
	return `cargoscan - list the manifest paths of a Cargo workspace and its dependencies

Usage:
  cargoscan [options] [FILE]

With no FILE, runs "cargo metadata --format-version 1" in the current
directory and scans its output. Otherwise FILE must contain that output.
Options may be given before or after FILE.

Options:
  --path EXPR   Values to extract (default: $.packages[*].manifest_path)
  --decode      Decode escape sequences in extracted values
  --jwcc        Accept comments and trailing commas in FILE
  -v            Log each scanner event and state transition to stderr
  -h, --help    Show this help message`
}
