// Copyright (C) 2025 Nat Holloway. All Rights Reserved.

package jev

// A Span describes a contiguous range of byte offsets in the input.
type Span struct {
	Pos int // the start offset, 0-based
	End int // the end offset, 0-based (noninclusive)
}
