// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package cargoscan extracts selected string values from large JSON documents
// of a known shape, such as the output of "cargo metadata", in a single pass
// and without constructing a parse tree.
//
// # Scanning
//
// The Scanner type reports the structural events of a JSON text held in
// memory. Construct a scanner from a byte slice and call its Next method to
// iterate over the events:
//
//	s := cargoscan.NewScanner(input)
//	for s.Next() {
//	   log.Printf("Next event: %v", s.Event())
//	}
//
// Only braces, brackets, and strings are reported. A string that is
// immediately followed by a colon is an object key and is reported as an
// Entry; any other string is a StringValue. The text of a string event is the
// raw content of the literal, with escapes left as written, and is a view of
// the input rather than a copy.
//
// The scanner does not check that its input is well-formed JSON. Malformed
// input may produce meaningless events, but never an error.
//
// # Extraction
//
// A Walker follows the events of a scanner to find the values named by a
// Target: for each object element of an array in the root object, the string
// stored under a particular key. The Walker is a small state machine with a
// pure transition function:
//
//	State          | Event                    | Next state
//	-------------- | ------------------------ | -------------------------
//	Start          | { (root)                 | InRoot
//	InRoot         | "array": (depth 1)       | AwaitingArray
//	AwaitingArray  | [                        | InArray
//	InArray        | { (depth 3)              | InItem
//	InItem         | "field": (depth 3)       | AwaitingValue
//	AwaitingValue  | "value"                  | InItem, emit value
//	InItem         | } (depth 2)              | InArray
//	InArray        | ] (depth 1)              | Done
//
// The Extractor type drives a scanner and a walker together. It stops reading
// input as soon as the target array closes:
//
//	paths := cargoscan.Extract(metadata) // $.packages[*].manifest_path
//
// To select a different field, parse a Target from a JSONPath expression:
//
//	t, err := cargoscan.ParseTarget("$.packages[*].name")
//	if err != nil {
//	   log.Fatalf("Invalid target: %v", err)
//	}
//	names := t.Extract(metadata)
//
// Extracted values are raw. Use Decode to replace their escape sequences.
package cargoscan
