// Copyright (C) 2025 Nat Holloway. All Rights Reserved.

package jev

import (
	"fmt"
	"strconv"

	"github.com/nholloway/jev/internal/escape"

	"go4.org/mem"
)

// Signed is the constraint on integer widths accepted by [Int].
type Signed interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

// Text decodes the current [FieldName] or [String] token, resolving escape
// sequences (including surrogate-pair Unicode escapes) into plain text.
// It fails if the current event is of any other kind. The result does not
// alias parser memory and remains valid after the next call to Next.
func (p *Parser) Text() (string, error) {
	if p.ev != FieldName && p.ev != String {
		return "", fmt.Errorf("current event is %v, not a string", p.ev)
	}
	dec, err := escape.Unquote(mem.B(p.buf.Bytes()))
	if err != nil {
		return "", err
	}
	return string(dec), nil
}

// Int decodes the current [Integer] token into the signed integer type T.
// It fails if the current event is not [Integer], or if the value does not
// fit in T.
func Int[T Signed](p *Parser) (T, error) {
	if p.ev != Integer {
		return 0, fmt.Errorf("current event is %v, not %v", p.ev, Integer)
	}
	v, err := strconv.ParseInt(p.buf.String(), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid integer: %w", err)
	}
	t := T(v)
	if int64(t) != v {
		return 0, fmt.Errorf("value %d overflows %T", v, t)
	}
	return t, nil
}

// Float64 decodes the current [Number] token into a double-precision
// float, correctly rounded. It fails if the current event is not [Number];
// an [Integer] must be read through [Int] instead, so that overflow is
// reported rather than silently absorbed.
func (p *Parser) Float64() (float64, error) {
	if p.ev != Number {
		return 0, fmt.Errorf("current event is %v, not %v", p.ev, Number)
	}
	v, err := strconv.ParseFloat(p.buf.String(), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number: %w", err)
	}
	return v, nil
}

// Raw returns the undecoded text of the current scalar token: the string
// contents without the enclosing quotes and with escapes unresolved, or
// the literal spelling of a number or constant. It returns nil for
// non-scalar events. The result is only valid until the next call to
// Next; the caller must copy it if needed beyond that.
func (p *Parser) Raw() []byte {
	switch p.ev {
	case FieldName, String, Integer, Number, True, False, Null:
		return p.buf.Bytes()
	}
	return nil
}
