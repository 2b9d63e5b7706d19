// Copyright (C) 2025 Nat Holloway. All Rights Reserved.

// Package jev implements a non-blocking, incremental JSON tokenizer.
//
// A [Parser] turns a stream of bytes, delivered in chunks of any size,
// into a sequence of parsing events without blocking the calling
// goroutine and without holding the whole document in memory. The caller
// owns the I/O: bytes are injected through a [Feeder], and whenever the
// parser needs a byte the feeder cannot yet supply, Next returns
// [NeedMoreInput] and can be resumed later from exactly the same
// position.
//
// # Driving the parser
//
// Construct a parser from a feeder and call its Next method in a loop.
// Each call returns exactly one [Event]:
//
//	f := jev.NewPushFeeder()
//	p := jev.NewParser(f)
//	for {
//	   switch e := p.Next(); e {
//	   case jev.NeedMoreInput:
//	      // push more bytes into f, or f.Close() if none remain
//	   case jev.Error:
//	      log.Fatalf("Parse failed: %v", p.Err())
//	   case jev.EndOfInput:
//	      return
//	   default:
//	      // handle e
//	   }
//	}
//
// Both [Error] and, after its first delivery, [EndOfInput] are terminal:
// every later call to Next returns [Error] again, and p.Err describes the
// failure.
//
// # Feeders
//
// Three feeders cover the common delivery shapes. [SliceFeeder] serves a
// document that is entirely in memory, without copying. [PushFeeder]
// accepts chunks pushed by the caller as they arrive, holding only a
// small sliding window of unconsumed bytes. [ReaderFeeder] adapts an
// io.Reader for callers who do not need non-blocking delivery.
//
// # Values
//
// Scalar events carry no payload. The bytes of the most recent token are
// decoded only on request: [Parser.Text] resolves string escapes, [Int]
// decodes an integer at a caller-chosen width, and [Parser.Float64]
// decodes a float. Each accessor is valid only for the matching event
// kind and only until the next call to Next.
package jev
