// Copyright (C) 2025 Nat Holloway. All Rights Reserved.

package jev

import "fmt"

// SyntaxError is the concrete type of errors reported by the parser.
// The Offset is the number of input bytes consumed when the error was
// detected.
type SyntaxError struct {
	Offset  int
	Message string
}

// Error satisfies the error interface.
func (s *SyntaxError) Error() string {
	return fmt.Sprintf("%s (offset %d)", s.Message, s.Offset)
}
