// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package cargoscan

import "go4.org/mem"

// State is the position of a Walker within the structure it follows.
type State byte

// Constants defining the valid State values, in the order a walker
// ordinarily visits them.
const (
	Start         State = iota // before the root object
	InRoot                     // inside the root object
	AwaitingArray              // after the array key, before its value
	InArray                    // inside the target array
	InItem                     // inside an object element of the array
	AwaitingValue              // after the field key, before its value
	Done                       // the target array has closed
)

var stateStr = [...]string{
	Start:         "Start",
	InRoot:        "InRoot",
	AwaitingArray: "AwaitingArray",
	InArray:       "InArray",
	InItem:        "InItem",
	AwaitingValue: "AwaitingValue",
	Done:          "Done",
}

func (s State) String() string {
	if int(s) >= len(stateStr) {
		return "invalid state"
	}
	return stateStr[s]
}

// Depths at which the walker's structures occur, counted after the event that
// opens or closes them has been applied.
const (
	rootDepth  = 1 // members of the root object
	arrayDepth = 2 // elements of the target array
	itemDepth  = 3 // members of an element object
)

// A Walker is a finite-state machine that follows a Target through a stream
// of scanner events. A Walker is a value: Step returns the successor state and
// does not modify its receiver, so a Walker may be copied freely.
type Walker struct {
	target Target
	state  State
	depth  int
}

// NewWalker returns a walker in the Start state that follows t.
func NewWalker(t Target) Walker { return Walker{target: t} }

// State returns the current state of w.
func (w Walker) State() State { return w.state }

// Depth returns the number of containers w has entered and not exited.
func (w Walker) Depth() int { return w.depth }

// Done reports whether w has reached the end of its target array. No further
// event can produce a value once Done is true.
func (w Walker) Done() bool { return w.state == Done }

// Step applies ev to w and returns the resulting walker.  If ev completes a
// match, Step also returns the raw text of the matched value and true.
//
// The depth of w is adjusted for ev before the transition is chosen, so an
// event that closes a container is matched at the depth of its parent.
func (w Walker) Step(ev Event) (Walker, mem.RO, bool) {
	if w.state == Done {
		return w, mem.RO{}, false
	}
	switch {
	case ev.Kind.Enters():
		w.depth++
	case ev.Kind.Exits():
		w.depth--
	}
	return w.transition(ev)
}

func (w Walker) transition(ev Event) (Walker, mem.RO, bool) {
	switch w.state {
	case Start:
		if ev.Kind == EnterObject && w.depth == rootDepth {
			w.state = InRoot
		}

	case InRoot:
		if w.depth == rootDepth && ev.Is(Entry, w.target.Array) {
			w.state = AwaitingArray
		}

	case AwaitingArray:
		if ev.Kind == EnterArray && w.depth == arrayDepth {
			w.state = InArray
			break
		}
		// The key's value is not an array. Give it up, and let the event be
		// handled as part of the root object.
		w.state = InRoot
		return w.transition(ev)

	case InArray:
		if ev.Kind == EnterObject && w.depth == itemDepth {
			w.state = InItem
		} else if ev.Kind == ExitArray && w.depth == rootDepth {
			w.state = Done
		}

	case InItem:
		if w.depth == itemDepth && ev.Is(Entry, w.target.Field) {
			w.state = AwaitingValue
		} else if ev.Kind == ExitObject && w.depth == arrayDepth {
			w.state = InArray
		}

	case AwaitingValue:
		w.state = InItem
		if ev.Kind == StringValue && w.depth == itemDepth {
			return w, ev.Text, true
		}
		// The value is not a plain string, so it is dropped. The event may
		// still close the item or name another key.
		return w.transition(ev)
	}
	return w, mem.RO{}, false
}
