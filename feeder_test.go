// Copyright (C) 2025 Nat Holloway. All Rights Reserved.

package jev_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/creachadair/mds/mtest"

	"github.com/nholloway/jev"
)

func TestSliceFeeder(t *testing.T) {
	f := jev.NewSliceFeeder([]byte("abc"))
	if !f.Done() {
		t.Error("Done: got false, want true")
	}
	if b, ok := f.Peek(0); !ok || b != 'a' {
		t.Errorf("Peek(0): got %q, %v; want 'a', true", b, ok)
	}
	if b, ok := f.Peek(2); !ok || b != 'c' {
		t.Errorf("Peek(2): got %q, %v; want 'c', true", b, ok)
	}
	f.Skip(2)
	if b, ok := f.Peek(0); !ok || b != 'c' {
		t.Errorf("Peek(0) after Skip: got %q, %v; want 'c', true", b, ok)
	}
	f.Skip(1)
	if _, ok := f.Peek(0); ok {
		t.Error("Peek past end: got ok, want false")
	}
}

func TestPushFeeder(t *testing.T) {
	f := jev.NewPushFeederSize(4)

	if f.Done() {
		t.Error("Done: got true, want false")
	}
	if _, ok := f.Peek(0); ok {
		t.Error("Peek on empty feeder: got ok, want false")
	}

	// The window only has room for 4 unconsumed bytes.
	if n := f.Push([]byte("abcdef")); n != 4 {
		t.Errorf("Push: accepted %d bytes, want 4", n)
	}
	if n := f.Push([]byte("ef")); n != 0 {
		t.Errorf("Push on full window: accepted %d bytes, want 0", n)
	}

	// Consuming from the front reclaims window space.
	f.Skip(3)
	if f.Len() != 1 {
		t.Errorf("Len: got %d, want 1", f.Len())
	}
	if n := f.Push([]byte("ef")); n != 2 {
		t.Errorf("Push after Skip: accepted %d bytes, want 2", n)
	}
	for i, want := range []byte("def") {
		if b, ok := f.Peek(i); !ok || b != want {
			t.Errorf("Peek(%d): got %q, %v; want %q, true", i, b, ok, want)
		}
	}

	f.Close()
	if !f.Done() {
		t.Error("Done after Close: got false, want true")
	}
	if b, ok := f.Peek(0); !ok || b != 'd' {
		t.Errorf("Peek after Close: got %q, %v; want 'd', true", b, ok)
	}
	mtest.MustPanic(t, func() { f.Push([]byte("x")) })
}

func TestReaderFeeder(t *testing.T) {
	f := jev.NewReaderFeederSize(strings.NewReader("hello world"), 4)

	// Peeking refills the window as needed, even past its initial size.
	if b, ok := f.Peek(0); !ok || b != 'h' {
		t.Errorf("Peek(0): got %q, %v; want 'h', true", b, ok)
	}
	if b, ok := f.Peek(6); !ok || b != 'w' {
		t.Errorf("Peek(6): got %q, %v; want 'w', true", b, ok)
	}
	f.Skip(7)
	if b, ok := f.Peek(3); !ok || b != 'd' {
		t.Errorf("Peek(3): got %q, %v; want 'd', true", b, ok)
	}
	f.Skip(4)
	if _, ok := f.Peek(0); ok {
		t.Error("Peek past end: got ok, want false")
	}
	if !f.Done() {
		t.Error("Done at EOF: got false, want true")
	}
	if err := f.Err(); err != nil {
		t.Errorf("Err: got %v, want nil", err)
	}
}

func TestReaderFeeder_error(t *testing.T) {
	broken := errors.New("broken pipe")
	f := jev.NewReaderFeeder(failReader{err: broken})
	if _, ok := f.Peek(0); ok {
		t.Error("Peek on failed reader: got ok, want false")
	}
	if !f.Done() {
		t.Error("Done after read error: got false, want true")
	}
	if err := f.Err(); err != broken {
		t.Errorf("Err: got %v, want %v", err, broken)
	}
}

type failReader struct{ err error }

func (f failReader) Read([]byte) (int, error) { return 0, f.err }
