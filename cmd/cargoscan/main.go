// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Program cargoscan prints the manifest paths of the packages reported by
// "cargo metadata", one per line.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/creachadair/cargoscan"
	"github.com/creachadair/cargoscan/internal/config"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args, os.Stdout, os.Stderr)
	cancel()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cfg, err := config.Parse(args)
	if err != nil {
		if errors.Is(err, config.ErrHelp) {
			fmt.Fprintln(stdout, config.Usage())
			return 0
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
	src := cfg.Source()
	logger.Debug("loading input", "source", src)

	data, err := src.Load(ctx)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	logger.Debug("loaded input", "bytes", len(data), "target", cfg.Target)

	ex := cargoscan.Extractor{Target: cfg.Target, Logger: logger}
	if err := printValues(stdout, ex.Extract(data), cfg.Decode); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// printValues writes values to w one per line, decoding them first if decode
// is true. Nothing is written unless every value decodes.
func printValues(w io.Writer, values []string, decode bool) error {
	if decode {
		for i, v := range values {
			dec, err := cargoscan.Decode(v)
			if err != nil {
				return fmt.Errorf("decode %q: %w", v, err)
			}
			values[i] = dec
		}
	}
	bw := bufio.NewWriter(w)
	for _, v := range values {
		bw.WriteString(v)
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
