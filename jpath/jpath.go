// Package jpath implements a parser for the subset of JSONPath expressions
// that can be evaluated by a single forward scan without backtracking: a
// sequence of member names and array wildcards from the root.
package jpath

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

/*
Grammar:

  expr = root steps
  root = "$"
 steps = step [steps]
  step = "." name
  step = "[" "*" "]"
  step = "[" "'" QTEXT "'" "]"
  name = WORD
  name = "*"

  WORD = RE `\w+`
 QTEXT = RE `[^']*`

This is the member and wildcard subset of:
  https://www.ietf.org/archive/id/draft-goessner-dispatch-jsonpath-00.html

Recursive descent (".."), indexes, slices, filters, and scripts are not
supported, and are reported as errors.
*/

// An Expr is a parsed JSONPath expression.
type Expr []Step

// Parse parses s as a JSONPath expression.
func Parse(s string) (Expr, error) {
	t, ok := strings.CutPrefix(s, "$")
	if !ok {
		return nil, &SyntaxError{Input: s, Offset: 0, Message: "missing root marker"}
	}
	var steps Expr
	for t != "" {
		step, rest, err := parseStep(t)
		if err != nil {
			return nil, &SyntaxError{Input: s, Offset: len(s) - len(t), Message: err.Error()}
		}
		steps = append(steps, step)
		t = rest
	}
	return steps, nil
}

func (e Expr) String() string {
	var buf strings.Builder
	buf.WriteString("$")
	for _, s := range e {
		buf.WriteString(s.String())
	}
	return buf.String()
}

// Ops returns the operators of the steps of e, in order.
func (e Expr) Ops() []Op {
	ops := make([]Op, len(e))
	for i, s := range e {
		ops[i] = s.Op
	}
	return ops
}

func parseStep(s string) (_ Step, rest string, _ error) {
	if strings.HasPrefix(s, "..") {
		return Step{}, s, errors.New("recursive descent is not supported")
	}
	if t, ok := strings.CutPrefix(s, "."); ok {
		if u, ok := strings.CutPrefix(t, "*"); ok {
			return Step{Op: Wildcard}, u, nil
		}
		if m := wordRE.FindStringSubmatch(t); m != nil {
			return Step{Op: Member, Name: m[1]}, t[len(m[0]):], nil
		}
		return Step{}, s, errors.New("invalid .name")
	}
	if t, ok := strings.CutPrefix(s, "["); ok {
		var out Step
		if u, ok := strings.CutPrefix(t, "*"); ok {
			out, t = Step{Op: Wildcard, Bracket: true}, u
		} else if m := quoteRE.FindStringSubmatch(t); m != nil {
			out, t = Step{Op: Member, Name: m[1], Bracket: true}, t[len(m[0]):]
		} else {
			return Step{}, s, fmt.Errorf("unsupported subscript %q", clip(t))
		}
		u, ok := strings.CutPrefix(t, "]")
		if !ok {
			return Step{}, s, errors.New("missing close bracket")
		}
		return out, u, nil
	}
	return Step{}, s, errors.New("invalid path step")
}

// clip returns a prefix of s up to and including the first "]", if any.
func clip(s string) string {
	if i := strings.Index(s, "]"); i >= 0 {
		return s[:i+1]
	}
	return s
}

var (
	wordRE  = regexp.MustCompile(`^(\w+)`)
	quoteRE = regexp.MustCompile(`^'([^']*)'`)
	nameRE  = regexp.MustCompile(`^\w+$`)
)

// An Op is a path operator.
type Op byte

const (
	Invalid  Op = iota // invalid operator
	Member             // object member lookup
	Wildcard           // all elements (*)
)

var opText = map[Op]string{
	Invalid:  "invalid",
	Member:   "member",
	Wildcard: "*",
}

func (o Op) String() string {
	if s, ok := opText[o]; ok {
		return s
	}
	return opText[Invalid]
}

// A Step is a single step of a JSONPath expression.
type Step struct {
	Op      Op
	Name    string // for Member, the key
	Bracket bool   // written in subscript form, e.g., ['x'] or [*]
}

func (s Step) String() string {
	switch {
	case s.Op == Wildcard && s.Bracket:
		return "[*]"
	case s.Op == Wildcard:
		return ".*"
	case s.Bracket || !nameRE.MatchString(s.Name):
		return "['" + s.Name + "']"
	default:
		return "." + s.Name
	}
}

// SyntaxError is the concrete type of errors reported by Parse.
type SyntaxError struct {
	Input   string // the complete expression
	Offset  int    // byte offset of the offending step
	Message string
}

// Error satisfies the error interface.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("invalid path %q at offset %d: %s", e.Input, e.Offset, e.Message)
}
