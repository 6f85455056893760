// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package cargoscan

import (
	"github.com/creachadair/cargoscan/internal/escape"

	"go4.org/mem"
)

// Decode decodes the raw contents of a JSON string, as reported by Extract,
// replacing escape sequences with their unescaped equivalents.
//
// Invalid escapes are replaced by the Unicode replacement rune. Decode
// reports an error for an incomplete escape sequence.
func Decode(raw string) (string, error) { return escape.Unquote(mem.S(raw)) }
