// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package cargoscan

import "fmt"

// A Span describes a contiguous span of a source input.
type Span struct {
	Pos int // the start offset, 0-based
	End int // the end offset, 0-based (noninclusive)
}

func (s Span) String() string { return fmt.Sprintf("%d-%d", s.Pos, s.End) }

// Len reports the length of s in bytes.
func (s Span) Len() int { return s.End - s.Pos }
