// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package cargoscan

import (
	"iter"

	"go4.org/mem"
)

// A Scanner reports the structural and string events of a JSON text held in
// memory. Each call to Next advances the scanner to the next event.
//
// The scanner recognizes only braces, brackets, and string literals. Numbers,
// constants, commas, and whitespace are skipped without inspection, and the
// input is not checked for well-formedness. A string literal is reported as
// an Entry if the byte immediately following its closing quote is a colon,
// and otherwise as a StringValue.
//
// A Scanner makes a single forward pass over its input. To scan the same input
// again, construct a new Scanner.
type Scanner struct {
	src mem.RO
	pos int // offset of the next unread byte
	ev  Event
}

// NewScanner constructs a new scanner that reports events from data.  The
// text of string events is a view of data, so the caller must not modify
// data while those events are in use.
func NewScanner(data []byte) *Scanner { return &Scanner{src: mem.B(data)} }

// NewStringScanner constructs a new scanner that reports events from s.
func NewStringScanner(s string) *Scanner { return &Scanner{src: mem.S(s)} }

// Next advances s to the next event of the input, and reports whether an
// event is available. Next returns false when the input is exhausted, or when
// it ends inside an unterminated string literal.
func (s *Scanner) Next() bool {
	s.ev = Event{}
	for s.pos < s.src.Len() {
		start := s.pos
		ch := s.src.At(start)
		s.pos++

		switch ch {
		case '{':
			s.setPunct(EnterObject, start)
		case '}':
			s.setPunct(ExitObject, start)
		case '[':
			s.setPunct(EnterArray, start)
		case ']':
			s.setPunct(ExitArray, start)
		case '"':
			return s.scanString(start)
		default:
			continue // not interesting
		}
		return true
	}
	return false
}

// Kind returns the kind of the current event.
func (s *Scanner) Kind() Kind { return s.ev.Kind }

// Text returns the undecoded contents of the current string event, without
// quotation marks. It is empty for structural events.
func (s *Scanner) Text() mem.RO { return s.ev.Text }

// Span returns the location span of the current event.
func (s *Scanner) Span() Span { return s.ev.Span }

// Event returns the current event.
func (s *Scanner) Event() Event { return s.ev }

// All returns an iterator over the remaining events of s.  The iterator
// advances s, and stopping the iteration early leaves the rest of the input
// unscanned.
func (s *Scanner) All() iter.Seq[Event] {
	return func(yield func(Event) bool) {
		for s.Next() {
			if !yield(s.ev) {
				return
			}
		}
	}
}

func (s *Scanner) setPunct(k Kind, pos int) {
	s.ev = Event{Kind: k, Span: Span{Pos: pos, End: pos + 1}}
}

// scanString scans a string literal whose open quote is at offset open.
func (s *Scanner) scanString(open int) bool {
	i := open + 1
	for {
		j := mem.IndexByte(s.src.SliceFrom(i), '"')
		if j < 0 {
			s.pos = s.src.Len() // unterminated; nothing more to report
			return false
		}
		end := i + j
		if s.isEscaped(open, end) {
			i = end + 1
			continue
		}

		s.pos = end + 1
		kind := StringValue
		if s.pos < s.src.Len() && s.src.At(s.pos) == ':' {
			kind = Entry
		}
		s.ev = Event{
			Kind: kind,
			Text: s.src.Slice(open+1, end),
			Span: Span{Pos: open, End: s.pos},
		}
		return true
	}
}

// isEscaped reports whether the quotation mark at offset q is escaped, that
// is, preceded by an odd number of backslashes after the open quote.
func (s *Scanner) isEscaped(open, q int) bool {
	n := 0
	for k := q - 1; k > open && s.src.At(k) == '\\'; k-- {
		n++
	}
	return n%2 == 1
}
