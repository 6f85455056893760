// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package cargoscan

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"slices"

	"github.com/creachadair/cargoscan/jpath"
)

// A Target names the values to extract: for each object element of the
// array stored under key Array in the root object, the string stored under
// key Field. Keys are compared to the raw text of the input, so a key that
// is written with escapes in the input will not match its decoded form.
type Target struct {
	Array string // key of the array in the root object
	Field string // key of the value in each element object
}

// ManifestPaths is the target for the manifest paths of the packages listed
// by "cargo metadata".
var ManifestPaths = MustParseTarget("$.packages[*].manifest_path")

// ParseTarget parses a JSONPath expression of the form $.array[*].field
// into a Target. Names may also be written in subscript form, as in
// $['array'][*]['field'].
func ParseTarget(expr string) (Target, error) {
	e, err := jpath.Parse(expr)
	if err != nil {
		return Target{}, err
	}
	want := []jpath.Op{jpath.Member, jpath.Wildcard, jpath.Member}
	if !slices.Equal(e.Ops(), want) {
		return Target{}, fmt.Errorf("path %q is not of the form $.array[*].field", expr)
	}
	t := Target{Array: e[0].Name, Field: e[2].Name}
	if t.Array == "" || t.Field == "" {
		return Target{}, fmt.Errorf("path %q has an empty key", expr)
	}
	return t, nil
}

// MustParseTarget parses expr as a Target, and panics if it is invalid.
func MustParseTarget(expr string) Target {
	t, err := ParseTarget(expr)
	if err != nil {
		panic(err)
	}
	return t
}

func (t Target) String() string {
	return jpath.Expr{
		{Op: jpath.Member, Name: t.Array},
		{Op: jpath.Wildcard, Bracket: true},
		{Op: jpath.Member, Name: t.Field},
	}.String()
}

// Extract returns the values selected by t from data, in the order they
// occur. See Extractor.
func (t Target) Extract(data []byte) []string { return Extractor{Target: t}.Extract(data) }

// Extract returns the manifest paths listed in data, which must be the output
// of "cargo metadata". It is shorthand for ManifestPaths.Extract(data).
func Extract(data []byte) []string { return ManifestPaths.Extract(data) }

// An Extractor pulls the values named by its Target from JSON input in a
// single pass, without constructing a parse tree.
//
// The input is not validated. Values that are not plain strings are skipped,
// and a missing array produces no values. Scanning stops as soon as the
// target array closes, so content after it is never examined.
type Extractor struct {
	Target Target

	// If not nil, each transition of the walker is logged at debug level.
	Logger *slog.Logger
}

// Extract returns the values selected from data in the order they occur,
// including duplicates. The strings are copies, and do not alias data.
func (e Extractor) Extract(data []byte) []string {
	return slices.Collect(e.Values(NewScanner(data)))
}

// Values returns an iterator over the values selected from the events of s.
// Each value is copied when it is yielded. The iterator stops pulling events
// from s once the target array has closed, or when the consumer stops.
func (e Extractor) Values(s *Scanner) iter.Seq[string] {
	return func(yield func(string) bool) {
		trace := e.Logger != nil && e.Logger.Enabled(context.Background(), slog.LevelDebug)
		w := NewWalker(e.Target)
		for ev := range s.All() {
			next, text, ok := w.Step(ev)
			if trace {
				e.Logger.Debug("step",
					"offset", ev.Span.Pos,
					"depth", next.Depth(),
					"from", w.State(),
					"to", next.State(),
					"event", ev,
				)
			}
			w = next
			if ok && !yield(text.StringCopy()) {
				return
			}
			if w.Done() {
				if trace {
					e.Logger.Debug("target array closed; stopping early", "offset", ev.Span.End)
				}
				return
			}
		}
	}
}
