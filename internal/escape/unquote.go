// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package escape decodes the contents of JSON string literals.
package escape

import (
	"errors"
	"fmt"
	"unicode/utf16"
	"unicode/utf8"

	"go4.org/mem"
)

// ErrIncomplete is reported by Unquote for an escape sequence that is cut off
// by the end of its input.
var ErrIncomplete = errors.New("incomplete escape sequence")

// Unquote decodes the raw contents of a JSON string literal, without its
// enclosing quotation marks, and returns the resulting string.
//
// Escape sequences are replaced with their unescaped equivalents, and a
// UTF-16 surrogate pair written as two \u escapes is combined into a single
// rune. Unknown escapes and unpaired surrogates are replaced by the Unicode
// replacement rune. Unquote reports an error wrapping ErrIncomplete if the
// input ends in the middle of an escape.
func Unquote(src mem.RO) (string, error) {
	i := mem.IndexByte(src, '\\')
	if i < 0 {
		return src.StringCopy(), nil // no escapes, nothing to decode
	}

	dec := make([]byte, 0, src.Len())
	for {
		dec = mem.Append(dec, src.SliceTo(i))
		src = src.SliceFrom(i + 1)
		if src.Len() == 0 {
			return "", ErrIncomplete
		}

		c := src.At(0)
		src = src.SliceFrom(1)
		switch c {
		case '"', '\\', '/':
			dec = append(dec, c)
		case 'b':
			dec = append(dec, '\b')
		case 'f':
			dec = append(dec, '\f')
		case 'n':
			dec = append(dec, '\n')
		case 'r':
			dec = append(dec, '\r')
		case 't':
			dec = append(dec, '\t')
		case 'u':
			r, rest, err := decodeU(src)
			if err != nil {
				return "", err
			}
			dec = utf8.AppendRune(dec, r)
			src = rest
		default:
			// Replace the whole rune following the backslash, not just its
			// first byte.
			for src.Len() != 0 && !utf8.RuneStart(src.At(0)) {
				src = src.SliceFrom(1)
			}
			dec = utf8.AppendRune(dec, utf8.RuneError)
		}

		if i = mem.IndexByte(src, '\\'); i < 0 {
			dec = mem.Append(dec, src)
			return string(dec), nil
		}
	}
}

// decodeU decodes the four hex digits of a \u escape at the front of src,
// together with a following low surrogate escape if the first is a high
// surrogate. It returns the decoded rune and the remaining input.
func decodeU(src mem.RO) (rune, mem.RO, error) {
	if src.Len() < 4 {
		return 0, src, fmt.Errorf("%w: short \\u escape", ErrIncomplete)
	}
	v, ok := parseHex(src.SliceTo(4))
	src = src.SliceFrom(4)
	if !ok {
		return utf8.RuneError, src, nil
	}
	r := rune(v)
	if !utf16.IsSurrogate(r) {
		return r, src, nil
	}

	// Look for the second half of a surrogate pair.
	if src.Len() >= 6 && src.At(0) == '\\' && src.At(1) == 'u' {
		if w, ok := parseHex(src.Slice(2, 6)); ok {
			if p := utf16.DecodeRune(r, rune(w)); p != utf8.RuneError {
				return p, src.SliceFrom(6), nil
			}
		}
	}
	return utf8.RuneError, src, nil
}

func parseHex(data mem.RO) (int64, bool) {
	var v int64
	for i := 0; i < data.Len(); i++ {
		b := data.At(i)
		v <<= 4
		switch {
		case '0' <= b && b <= '9':
			v += int64(b - '0')
		case 'a' <= b && b <= 'f':
			v += int64(b - 'a' + 10)
		case 'A' <= b && b <= 'F':
			v += int64(b - 'A' + 10)
		default:
			return 0, false
		}
	}
	return v, true
}
