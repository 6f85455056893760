// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package source acquires the JSON text to be scanned, either from the output
// of a command or from a file.
package source

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/tailscale/hujson"
	"go4.org/mem"
)

var (
	// ErrAcquire is wrapped by errors reporting that the input could not be
	// obtained.
	ErrAcquire = errors.New("cannot read input")

	// ErrEncoding is wrapped by errors reporting that the input is not valid
	// UTF-8.
	ErrEncoding = errors.New("input is not valid UTF-8")
)

// A Source produces a complete JSON text.
type Source interface {
	// Load reads the entire input into memory. Any resources held for
	// reading are released before Load returns.
	Load(ctx context.Context) ([]byte, error)
}

// CargoMetadata is the command whose output is scanned by default.
var CargoMetadata = Command{Name: "cargo", Args: []string{"metadata", "--format-version", "1"}}

// Command is a Source that runs a program and captures its standard output.
type Command struct {
	Name string
	Args []string
	Dir  string // working directory; if empty, the current directory
}

// Load runs the command and returns its standard output. If the command exits
// unsuccessfully, the error is an *ExitError carrying its standard error.
func (c Command) Load(ctx context.Context) ([]byte, error) {
	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Dir = c.Dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var xerr *exec.ExitError
		if errors.As(err, &xerr) {
			return nil, &ExitError{Command: c.String(), Code: xerr.ExitCode(), Stderr: stderr.String()}
		}
		return nil, fmt.Errorf("%w: run %s: %w", ErrAcquire, c.Name, err)
	}
	if err := checkEncoding(c.Name, stdout.Bytes()); err != nil {
		return nil, err
	}
	return stdout.Bytes(), nil
}

func (c Command) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// ExitError reports that a command ran but did not succeed.
type ExitError struct {
	Command string
	Code    int    // exit status, or -1 if the command was terminated by a signal
	Stderr  string // everything the command wrote to standard error
}

// Error returns the standard error text of the command, or a summary of the
// failure if the command did not write anything there.
func (e *ExitError) Error() string {
	if msg := strings.TrimSpace(e.Stderr); msg != "" {
		return msg
	}
	return fmt.Sprintf("%s: exit status %d", e.Command, e.Code)
}

// Unwrap reports that e is an acquisition failure.
func (e *ExitError) Unwrap() error { return ErrAcquire }

// File is a Source that reads the contents of a file.
type File struct {
	Path string

	// If true, the file may contain comments and trailing commas (JWCC), and
	// is reduced to minimal standard JSON before it is returned.
	JWCC bool
}

func (f File) String() string { return f.Path }

// Load reads the complete contents of the file.
func (f File) Load(_ context.Context) ([]byte, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAcquire, err)
	}
	if err := checkEncoding(f.Path, data); err != nil {
		return nil, err
	}
	if f.JWCC {
		data, err = hujson.Minimize(data)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrAcquire, f.Path, err)
		}
	}
	return data, nil
}

func checkEncoding(name string, data []byte) error {
	if !mem.ValidUTF8(mem.B(data)) {
		return fmt.Errorf("%s: %w", name, ErrEncoding)
	}
	return nil
}
