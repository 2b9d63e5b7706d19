// Copyright (C) 2025 Nat Holloway. All Rights Reserved.

package jev

import (
	"io"

	"go4.org/mem"
)

// A Feeder supplies input bytes to a [Parser] on demand. It abstracts
// "entire input already available" delivery from "input arrives over time"
// delivery behind a single capability contract: look ahead without
// consuming, advance the read cursor, and report whether more bytes can
// ever arrive.
//
// A feeder is owned by exactly one parser; neither is safe for concurrent
// use, but independent parser-feeder pairs share no state.
type Feeder interface {
	// Peek returns the byte i positions past the read cursor without
	// consuming it, or false if that byte is not currently available.
	Peek(i int) (byte, bool)

	// Skip advances the read cursor by n bytes. The bytes must have been
	// observed via Peek; skipping past the available input is a contract
	// violation.
	Skip(n int)

	// Done reports whether no further input will ever arrive. Peek may
	// still report buffered bytes after Done returns true.
	Done() bool
}

// A SliceFeeder supplies input from a caller-owned byte slice whose entire
// contents are available up front. It never copies the input; the slice
// must not be mutated while the parser is using it.
type SliceFeeder struct {
	buf mem.RO
	pos int
}

// NewSliceFeeder constructs a feeder that reads from data.
func NewSliceFeeder(data []byte) *SliceFeeder { return &SliceFeeder{buf: mem.B(data)} }

// Peek implements part of the [Feeder] interface.
func (f *SliceFeeder) Peek(i int) (byte, bool) {
	if p := f.pos + i; p < f.buf.Len() {
		return f.buf.At(p), true
	}
	return 0, false
}

// Skip implements part of the [Feeder] interface.
func (f *SliceFeeder) Skip(n int) { f.pos += n }

// Done implements part of the [Feeder] interface. It is always true: once
// the slice is exhausted, no more input can ever arrive.
func (f *SliceFeeder) Done() bool { return true }

const defaultWindowSize = 1024

// A PushFeeder supplies input pushed incrementally by the caller. The
// caller appends chunks with [PushFeeder.Push] and signals the end of the
// input with [PushFeeder.Close]; the parser consumes from the front.
// Consumed bytes are discarded in a sliding-window fashion, so the buffer
// never grows beyond the configured window size.
type PushFeeder struct {
	buf  []byte
	pos  int // read cursor into buf
	max  int // window capacity
	done bool
}

// NewPushFeeder constructs an empty push feeder with the default window
// size.
func NewPushFeeder() *PushFeeder { return NewPushFeederSize(defaultWindowSize) }

// NewPushFeederSize constructs an empty push feeder whose window holds up
// to size unconsumed bytes.
func NewPushFeederSize(size int) *PushFeeder {
	if size <= 0 {
		size = defaultWindowSize
	}
	return &PushFeeder{buf: make([]byte, 0, size), max: size}
}

// Push appends bytes from data to the feeder and reports how many were
// accepted. Fewer than len(data) bytes are accepted when the window is
// full; the caller should drive the parser to drain the window and then
// push the remainder. Push panics if called after Close.
func (f *PushFeeder) Push(data []byte) int {
	if f.done {
		panic("push after feeder closed")
	}
	f.compact()
	n := min(len(data), f.max-len(f.buf))
	f.buf = append(f.buf, data[:n]...)
	return n
}

// Close marks the feeder finished: no further input will arrive. Bytes
// already pushed remain readable.
func (f *PushFeeder) Close() { f.done = true }

// Len reports the number of unconsumed bytes currently buffered.
func (f *PushFeeder) Len() int { return len(f.buf) - f.pos }

// compact slides unconsumed bytes to the front of the buffer, reclaiming
// the space held by consumed ones.
func (f *PushFeeder) compact() {
	if f.pos == 0 {
		return
	}
	n := copy(f.buf, f.buf[f.pos:])
	f.buf = f.buf[:n]
	f.pos = 0
}

// Peek implements part of the [Feeder] interface.
func (f *PushFeeder) Peek(i int) (byte, bool) {
	if p := f.pos + i; p < len(f.buf) {
		return f.buf[p], true
	}
	return 0, false
}

// Skip implements part of the [Feeder] interface.
func (f *PushFeeder) Skip(n int) { f.pos += n }

// Done implements part of the [Feeder] interface.
func (f *PushFeeder) Done() bool { return f.done }

// A ReaderFeeder supplies input from an io.Reader, refilling an internal
// window whenever the parser looks past the buffered bytes. Unlike a
// [PushFeeder] it may block inside Peek while reading; it exists as a
// convenience for callers who do not need non-blocking delivery. A read
// error other than io.EOF ends the input early and is reported by
// [ReaderFeeder.Err].
type ReaderFeeder struct {
	r        io.Reader
	buf      []byte
	pos, end int
	done     bool
	err      error
}

// NewReaderFeeder constructs a feeder that reads from r using the default
// window size.
func NewReaderFeeder(r io.Reader) *ReaderFeeder { return NewReaderFeederSize(r, defaultWindowSize) }

// NewReaderFeederSize constructs a feeder that reads from r using a window
// of the given size.
func NewReaderFeederSize(r io.Reader, size int) *ReaderFeeder {
	if size <= 0 {
		size = defaultWindowSize
	}
	return &ReaderFeeder{r: r, buf: make([]byte, size)}
}

// Peek implements part of the [Feeder] interface.
func (f *ReaderFeeder) Peek(i int) (byte, bool) {
	for f.pos+i >= f.end && !f.done {
		f.fill()
	}
	if p := f.pos + i; p < f.end {
		return f.buf[p], true
	}
	return 0, false
}

// Skip implements part of the [Feeder] interface.
func (f *ReaderFeeder) Skip(n int) { f.pos += n }

// Done implements part of the [Feeder] interface.
func (f *ReaderFeeder) Done() bool { return f.done }

// Err reports the read error, if any, that ended the input. It returns nil
// after a normal io.EOF.
func (f *ReaderFeeder) Err() error { return f.err }

func (f *ReaderFeeder) fill() {
	if f.pos > 0 {
		n := copy(f.buf, f.buf[f.pos:f.end])
		f.pos, f.end = 0, n
	}
	if f.end == len(f.buf) {
		// The window is full but the parser wants to look further ahead.
		// Grow so a single long lookahead cannot stall the fill loop.
		f.buf = append(f.buf, make([]byte, len(f.buf))...)
	}
	for i := 0; i < maxEmptyReads; i++ {
		n, err := f.r.Read(f.buf[f.end:])
		f.end += n
		if err != nil {
			f.done = true
			if err != io.EOF {
				f.err = err
			}
			return
		}
		if n > 0 {
			return
		}
	}
	f.done = true
	f.err = io.ErrNoProgress
}

const maxEmptyReads = 100
