// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeInput(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Write input: %v", err)
	}
	return path
}

func runArgs(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var outBuf, errBuf bytes.Buffer
	code = run(context.Background(), append([]string{"cargoscan"}, args...), &outBuf, &errBuf)
	return code, outBuf.String(), errBuf.String()
}

func TestRun(t *testing.T) {
	tests := []struct {
		name, input string
		flags       []string
		want        string
	}{
		{"TwoPackages",
			`{"packages":[{"manifest_path":"/a/Cargo.toml"},{"manifest_path":"/b/Cargo.toml"}]}`, nil,
			"/a/Cargo.toml\n/b/Cargo.toml\n"},
		{"NoPackages", `{"packages":[]}`, nil, ""},
		{"NoPackagesKey", `{"other":1}`, nil, ""},
		{"KeyOrder", `{"packages":[{"name":"x","manifest_path":"/c/Cargo.toml"}]}`, nil, "/c/Cargo.toml\n"},
		{"RawEscapes", `{"packages":[{"manifest_path":"C:\\src\\caf\u00e9\\Cargo.toml"}]}`, nil,
			`C:\\src\\caf\u00e9\\Cargo.toml` + "\n"},
		{"Decode", `{"packages":[{"manifest_path":"C:\\src\\caf\u00e9\\Cargo.toml"}]}`, []string{"-decode"},
			`C:\src\café\Cargo.toml` + "\n"},
		{"OtherTarget", `{"packages":[{"name":"a","manifest_path":"/a"},{"name":"b"}]}`,
			[]string{"--path", "$.packages[*].name"}, "a\nb\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := writeInput(t, "metadata.json", tc.input)
			code, stdout, stderr := runArgs(t, append(tc.flags, path)...)
			if code != 0 {
				t.Fatalf("run: exit %d, stderr:\n%s", code, stderr)
			}
			if diff := cmp.Diff(tc.want, stdout); diff != "" {
				t.Errorf("Output (-want, +got):\n%s", diff)
			}
			if stderr != "" {
				t.Errorf("Unexpected stderr:\n%s", stderr)
			}
		})
	}
}

func TestRunMetadata(t *testing.T) {
	code, stdout, stderr := runArgs(t, "../../testdata/metadata.json")
	if code != 0 {
		t.Fatalf("run: exit %d, stderr:\n%s", code, stderr)
	}
	want := []string{
		"/home/user/.cargo/registry/src/index.crates.io-6f17d22bba15001f/cfg-if-1.0.0/Cargo.toml",
		"/home/user/.cargo/registry/src/index.crates.io-6f17d22bba15001f/libc-0.2.155/Cargo.toml",
		"/home/user/src/scanner/Cargo.toml",
	}
	if diff := cmp.Diff(want, strings.Split(strings.TrimSuffix(stdout, "\n"), "\n")); diff != "" {
		t.Errorf("Output (-want, +got):\n%s", diff)
	}
}

func TestRunJWCC(t *testing.T) {
	code, stdout, stderr := runArgs(t, "-jwcc", "../../testdata/workspace.jwcc")
	if code != 0 {
		t.Fatalf("run: exit %d, stderr:\n%s", code, stderr)
	}
	if diff := cmp.Diff("/ws/alpha/Cargo.toml\n/ws/gamma/Cargo.toml\n", stdout); diff != "" {
		t.Errorf("Output (-want, +got):\n%s", diff)
	}
}

func TestRunErrors(t *testing.T) {
	t.Run("MissingFile", func(t *testing.T) {
		code, stdout, stderr := runArgs(t, filepath.Join(t.TempDir(), "nonesuch.json"))
		if code == 0 {
			t.Error("run: got exit 0, want failure")
		}
		if stdout != "" {
			t.Errorf("Unexpected stdout:\n%s", stdout)
		}
		if !strings.HasPrefix(stderr, "Error: ") {
			t.Errorf("Stderr: got %q, want an error message", stderr)
		}
	})

	t.Run("BadFlag", func(t *testing.T) {
		code, stdout, stderr := runArgs(t, "--path", "$..manifest_path")
		if code == 0 {
			t.Error("run: got exit 0, want failure")
		}
		if stdout != "" {
			t.Errorf("Unexpected stdout:\n%s", stdout)
		}
		if !strings.Contains(stderr, "--path") {
			t.Errorf("Stderr: got %q, want mention of --path", stderr)
		}
	})

	t.Run("BadDecode", func(t *testing.T) {
		path := writeInput(t, "metadata.json", `{"packages":[{"manifest_path":"/ok"},{"manifest_path":"/x\u12"}]}`)
		code, stdout, stderr := runArgs(t, "-decode", path)
		if code == 0 {
			t.Error("run: got exit 0, want failure")
		}
		if stdout != "" {
			t.Errorf("Unexpected stdout:\n%s", stdout)
		}
		if !strings.Contains(stderr, "incomplete escape") {
			t.Errorf("Stderr: got %q, want incomplete escape error", stderr)
		}
	})
}

func TestRunHelp(t *testing.T) {
	code, stdout, stderr := runArgs(t, "--help")
	if code != 0 {
		t.Errorf("run: got exit %d, want 0", code)
	}
	if !strings.Contains(stdout, "Usage:") {
		t.Errorf("Help output: got %q, want usage text", stdout)
	}
	if stderr != "" {
		t.Errorf("Unexpected stderr:\n%s", stderr)
	}
}

func TestRunVerbose(t *testing.T) {
	path := writeInput(t, "metadata.json", `{"packages":[{"manifest_path":"/a"}],"after":"ignored"}`)
	code, stdout, stderr := runArgs(t, path, "-v")
	if code != 0 {
		t.Fatalf("run: exit %d, stderr:\n%s", code, stderr)
	}
	if stdout != "/a\n" {
		t.Errorf("Output: got %q, want %q", stdout, "/a\n")
	}
	for _, want := range []string{
		"level=DEBUG",
		"msg=step",
		"to=AwaitingValue",
		"stopping early",
	} {
		if !strings.Contains(stderr, want) {
			t.Errorf("Log output missing %q:\n%s", want, stderr)
		}
	}
	if strings.Contains(stderr, `Entry(\"after\")`) {
		t.Errorf("Log output shows events after the target array:\n%s", stderr)
	}
}
