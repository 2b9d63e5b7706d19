// Copyright (C) 2025 Nat Holloway. All Rights Reserved.

package jev

import (
	"bytes"
	"fmt"
)

// DefaultMaxDepth is the container nesting limit used by [NewParser].
const DefaultMaxDepth = 4096

// A context records one open container: its kind (object or array) and
// which syntax element is expected next inside it. The parser's stack of
// contexts stands in for the call stack of a recursive-descent parser, so
// that a parse suspended mid-container can be resumed later.
type context struct {
	kind  byte // '{' or '['
	state expect
}

// expect enumerates the syntax elements the parser may be waiting for.
type expect byte

const (
	expectValue        expect = iota // a value must follow
	expectValueOrClose               // array just opened: a value or "]"
	expectKeyOrClose                 // object just opened: a key or "}"
	expectKey                        // after a comma in an object: a key
	expectColon                      // after a key: ":"
	expectCommaOrClose               // after a value: "," or the closer
	expectEnd                        // top-level value complete: end of input
)

// tokenState identifies a partially-consumed token that must survive a
// suspension.
type tokenState byte

const (
	tokNone      tokenState = iota
	tokLiteral              // inside true, false, or null
	tokString               // inside a string
	tokStringEsc            // immediately after a backslash
	tokStringHex            // inside the hex digits of a \u escape
	tokNumber               // inside a number
)

// numPart identifies how far through the number grammar a partially
// consumed number has progressed.
type numPart byte

const (
	numMinus     numPart = iota // consumed a leading "-", digit required
	numZero                     // integer part is a single "0"
	numDigits                   // in the integer digits
	numDot                      // consumed ".", fraction digit required
	numFrac                     // in the fraction digits
	numExp                      // consumed "e"/"E", sign or digit required
	numExpSign                  // consumed the exponent sign, digit required
	numExpDigits                // in the exponent digits
)

// A Parser is an incremental, non-blocking JSON tokenizer. Each call to
// Next consumes bytes from the feeder and returns exactly one [Event].
// When the feeder cannot currently supply a byte the parser needs, Next
// returns [NeedMoreInput] with all partial-token state preserved; the
// caller supplies more input and calls Next again to resume.
//
// A Parser is not safe for concurrent use, but independent parser-feeder
// pairs share no state and may run in parallel freely.
type Parser struct {
	f        Feeder
	stack    []context
	maxDepth int
	tstate   expect // expectation while no container is open

	ev       Event
	err      error
	pos      int          // total bytes consumed
	tokStart int          // offset of the first byte of the current token
	buf      bytes.Buffer // raw text of the current scalar token

	tok     tokenState
	lit     string // expected spelling of the literal being matched
	litEv   Event
	litPos  int  // bytes of lit matched so far
	hexPos  int  // hex digits of a \u escape consumed so far
	num     numPart
	isFloat bool
}

// NewParser constructs a parser that consumes input from f, with the
// nesting limit [DefaultMaxDepth].
func NewParser(f Feeder) *Parser { return NewParserMaxDepth(f, DefaultMaxDepth) }

// NewParserMaxDepth constructs a parser that consumes input from f and
// fails with an error once more than maxDepth containers are open at once.
// A maxDepth <= 0 means [DefaultMaxDepth].
func NewParserMaxDepth(f Feeder, maxDepth int) *Parser {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &Parser{f: f, maxDepth: maxDepth, tstate: expectValue}
}

// Next advances the parser and returns the next event. Once Next has
// returned [Error] or, after [EndOfInput], been called again, every
// subsequent call returns [Error].
func (p *Parser) Next() Event {
	if p.err != nil {
		p.ev = Error
		return Error
	}
	if p.ev == EndOfInput {
		return p.failf("input already consumed")
	}

	for {
		b, ok := p.f.Peek(0)
		if !ok {
			if !p.f.Done() {
				p.ev = NeedMoreInput
				return NeedMoreInput
			}
			return p.atEOF()
		}

		switch p.tok {
		case tokLiteral:
			if b != p.lit[p.litPos] {
				return p.failf("unknown constant %q", p.buf.String()+string(b))
			}
			p.consume(b)
			p.litPos++
			if p.litPos == len(p.lit) {
				p.tok = tokNone
				return p.emitValue(p.litEv)
			}
			continue

		case tokString:
			switch {
			case b == '"':
				p.skip()
				p.tok = tokNone
				return p.emitString()
			case b == '\\':
				p.consume(b)
				p.tok = tokStringEsc
			case b < ' ':
				return p.failf("unescaped control %q", b)
			default:
				p.consume(b)
			}
			continue

		case tokStringEsc:
			switch b {
			case '"', '\\', '/', 'b', 'f', 'n', 'r', 't':
				p.consume(b)
				p.tok = tokString
			case 'u':
				p.consume(b)
				p.tok = tokStringHex
				p.hexPos = 0
			default:
				return p.failf("invalid %q after escape", b)
			}
			continue

		case tokStringHex:
			if !isHexDigit(b) {
				return p.failf("invalid Unicode escape: not a hex digit: %q", b)
			}
			p.consume(b)
			p.hexPos++
			if p.hexPos == 4 {
				p.tok = tokString
			}
			continue

		case tokNumber:
			ev, done := p.scanNumber(b)
			if !done {
				continue
			}
			return ev
		}

		// Between tokens: discard whitespace.
		if isSpace(b) {
			p.skip()
			continue
		}

		st := p.expectation()
		switch b {
		case '{', '[':
			if st != expectValue && st != expectValueOrClose {
				return p.failf("unexpected %q", b)
			}
			if len(p.stack) >= p.maxDepth {
				return p.failf("exceeds maximum depth %d", p.maxDepth)
			}
			p.tokStart = p.pos
			p.skip()
			if b == '{' {
				p.stack = append(p.stack, context{kind: '{', state: expectKeyOrClose})
				p.ev = StartObject
			} else {
				p.stack = append(p.stack, context{kind: '[', state: expectValueOrClose})
				p.ev = StartArray
			}
			return p.ev

		case '}', ']':
			want, ev := byte('{'), EndObject
			if b == ']' {
				want, ev = '[', EndArray
			}
			if len(p.stack) == 0 || p.stack[len(p.stack)-1].kind != want {
				return p.failf("unexpected %q", b)
			}
			if st != expectCommaOrClose &&
				!(b == '}' && st == expectKeyOrClose) &&
				!(b == ']' && st == expectValueOrClose) {
				return p.failf("unexpected %q", b)
			}
			p.tokStart = p.pos
			p.skip()
			p.stack = p.stack[:len(p.stack)-1]
			p.finishValue()
			p.ev = ev
			return ev

		case ',':
			if st != expectCommaOrClose {
				return p.failf("unexpected %q", b)
			}
			p.skip()
			if p.stack[len(p.stack)-1].kind == '{' {
				p.setExpect(expectKey)
			} else {
				p.setExpect(expectValue)
			}
			continue

		case ':':
			if st != expectColon {
				return p.failf("unexpected %q", b)
			}
			p.skip()
			p.setExpect(expectValue)
			continue

		case '"':
			if st != expectValue && st != expectValueOrClose &&
				st != expectKey && st != expectKeyOrClose {
				return p.failf("unexpected %q", b)
			}
			p.startToken(tokString)
			p.skip() // the open quote is not part of the recorded span
			continue

		default:
			if st != expectValue && st != expectValueOrClose {
				return p.failf("unexpected %q", b)
			}
			switch {
			case b == 't':
				p.startLiteral("true", True, b)
			case b == 'f':
				p.startLiteral("false", False, b)
			case b == 'n':
				p.startLiteral("null", Null, b)
			case b == '-':
				p.startToken(tokNumber)
				p.consume(b)
				p.num, p.isFloat = numMinus, false
			case b == '0':
				p.startToken(tokNumber)
				p.consume(b)
				p.num, p.isFloat = numZero, false
			case isDigit(b):
				p.startToken(tokNumber)
				p.consume(b)
				p.num, p.isFloat = numDigits, false
			default:
				return p.failf("unexpected %q", b)
			}
			continue
		}
	}
}

// Err returns the diagnostic for the error that stopped the parser, or nil
// if no [Error] event has been produced. The returned error has concrete
// type [*SyntaxError].
func (p *Parser) Err() error { return p.err }

// Span returns the byte-offset span of the current token. For numbers the
// end offset excludes the byte that terminated the token; for strings the
// span includes the enclosing quotes.
func (p *Parser) Span() Span { return Span{Pos: p.tokStart, End: p.pos} }

// Depth reports the number of currently open containers.
func (p *Parser) Depth() int { return len(p.stack) }

// scanNumber advances the number scanner by one byte. It reports done when
// an event was produced (a completed value or an error); otherwise the
// caller continues the scan loop.
func (p *Parser) scanNumber(b byte) (Event, bool) {
	switch p.num {
	case numMinus:
		switch {
		case b == '0':
			p.consume(b)
			p.num = numZero
		case isDigit(b):
			p.consume(b)
			p.num = numDigits
		default:
			return p.failf("want digit, got %q", b), true
		}
	case numZero:
		switch {
		case b == '.':
			p.consume(b)
			p.num, p.isFloat = numDot, true
		case b == 'e' || b == 'E':
			p.consume(b)
			p.num, p.isFloat = numExp, true
		case isDigit(b):
			return p.failf("extra leading zeroes"), true
		default:
			return p.finishNumber(), true
		}
	case numDigits:
		switch {
		case isDigit(b):
			p.consume(b)
		case b == '.':
			p.consume(b)
			p.num, p.isFloat = numDot, true
		case b == 'e' || b == 'E':
			p.consume(b)
			p.num, p.isFloat = numExp, true
		default:
			return p.finishNumber(), true
		}
	case numDot:
		if !isDigit(b) {
			return p.failf("no digits after decimal point"), true
		}
		p.consume(b)
		p.num = numFrac
	case numFrac:
		switch {
		case isDigit(b):
			p.consume(b)
		case b == 'e' || b == 'E':
			p.consume(b)
			p.num = numExp
		default:
			return p.finishNumber(), true
		}
	case numExp:
		switch {
		case b == '+' || b == '-':
			p.consume(b)
			p.num = numExpSign
		case isDigit(b):
			p.consume(b)
			p.num = numExpDigits
		default:
			return p.failf("missing exponent digits"), true
		}
	case numExpSign:
		if !isDigit(b) {
			return p.failf("missing exponent digits"), true
		}
		p.consume(b)
		p.num = numExpDigits
	case numExpDigits:
		if !isDigit(b) {
			return p.finishNumber(), true
		}
		p.consume(b)
	}
	return Invalid, false
}

// finishNumber classifies and emits the completed number token. The byte
// that terminated the number, if any, has not been consumed.
func (p *Parser) finishNumber() Event {
	p.tok = tokNone
	if p.isFloat {
		return p.emitValue(Number)
	}
	return p.emitValue(Integer)
}

// atEOF handles a feeder that has run dry and is marked done.
func (p *Parser) atEOF() Event {
	switch p.tok {
	case tokNumber:
		switch p.num {
		case numZero, numDigits, numFrac, numExpDigits:
			return p.finishNumber()
		}
		return p.failf("truncated number")
	case tokString, tokStringEsc, tokStringHex:
		return p.failf("unterminated string")
	case tokLiteral:
		return p.failf("truncated constant %q", p.buf.String())
	}
	if p.expectation() == expectEnd {
		p.tokStart = p.pos
		p.ev = EndOfInput
		return EndOfInput
	}
	return p.failf("unexpected end of input")
}

// emitString resolves whether the string just completed is an object key
// or a value.
func (p *Parser) emitString() Event {
	if st := p.expectation(); st == expectKey || st == expectKeyOrClose {
		p.setExpect(expectColon)
		p.ev = FieldName
		return FieldName
	}
	return p.emitValue(String)
}

// emitValue emits a completed value event and advances the enclosing
// expectation past it.
func (p *Parser) emitValue(ev Event) Event {
	p.finishValue()
	p.ev = ev
	return ev
}

// finishValue records that a complete value was consumed at the current
// nesting level.
func (p *Parser) finishValue() {
	if len(p.stack) == 0 {
		p.tstate = expectEnd
	} else {
		p.stack[len(p.stack)-1].state = expectCommaOrClose
	}
}

func (p *Parser) expectation() expect {
	if n := len(p.stack); n > 0 {
		return p.stack[n-1].state
	}
	return p.tstate
}

func (p *Parser) setExpect(e expect) {
	if n := len(p.stack); n > 0 {
		p.stack[n-1].state = e
	} else {
		p.tstate = e
	}
}

// startToken begins recording a new scalar token at the current offset.
func (p *Parser) startToken(t tokenState) {
	p.tok = t
	p.tokStart = p.pos
	p.buf.Reset()
}

func (p *Parser) startLiteral(want string, ev Event, b byte) {
	p.startToken(tokLiteral)
	p.lit, p.litEv, p.litPos = want, ev, 1
	p.consume(b)
}

// consume advances past b and appends it to the current token.
func (p *Parser) consume(b byte) {
	p.buf.WriteByte(b)
	p.f.Skip(1)
	p.pos++
}

// skip advances past a byte that is not part of any recorded token.
func (p *Parser) skip() {
	p.f.Skip(1)
	p.pos++
}

func (p *Parser) failf(msg string, args ...any) Event {
	p.err = &SyntaxError{Offset: p.pos, Message: fmt.Sprintf(msg, args...)}
	p.ev = Error
	return Error
}

func isSpace(b byte) bool { return b == ' ' || b == '\r' || b == '\n' || b == '\t' }
func isDigit(b byte) bool { return '0' <= b && b <= '9' }

func isHexDigit(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}
