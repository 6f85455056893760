// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package cargoscan

import (
	"fmt"

	"go4.org/mem"
)

// Kind is the type of a scanner event.
type Kind byte

// Constants defining the valid Kind values.
const (
	Invalid     Kind = iota // no event
	EnterObject             // left brace "{"
	ExitObject              // right brace "}"
	EnterArray              // left square bracket "["
	ExitArray               // right square bracket "]"
	Entry                   // object key: a string followed by ":"
	StringValue             // any other string
)

var kindStr = [...]string{
	Invalid:     "invalid event",
	EnterObject: "EnterObject",
	ExitObject:  "ExitObject",
	EnterArray:  "EnterArray",
	ExitArray:   "ExitArray",
	Entry:       "Entry",
	StringValue: "StringValue",
}

func (k Kind) String() string {
	v := int(k)
	if v >= len(kindStr) {
		return kindStr[Invalid]
	}
	return kindStr[v]
}

// Enters reports whether k opens a container.
func (k Kind) Enters() bool { return k == EnterObject || k == EnterArray }

// Exits reports whether k closes a container.
func (k Kind) Exits() bool { return k == ExitObject || k == ExitArray }

// An Event is a single structural or string token reported by a Scanner.
type Event struct {
	Kind Kind

	// For Entry and StringValue events, Text is the raw content of the string
	// literal between its quotation marks. Escape sequences are not decoded.
	// Text is a view of the scanned buffer, not a copy, and is empty for
	// structural events.
	Text mem.RO

	// Span is the location of the token in the scanned buffer. For strings it
	// includes the quotation marks.
	Span Span
}

// Is reports whether e has kind k and its text is exactly s.
func (e Event) Is(k Kind, s string) bool { return e.Kind == k && e.Text.EqualString(s) }

func (e Event) String() string {
	switch e.Kind {
	case Entry, StringValue:
		return fmt.Sprintf(`%v("%s")`, e.Kind, e.Text.StringCopy())
	default:
		return e.Kind.String()
	}
}
