// Copyright (C) 2025 Nat Holloway. All Rights Reserved.

// Command jv validates JSON documents in constant memory.
//
// Each named file (or standard input, if no files are named) is streamed
// through an event parser and reported as ok or as a syntax error with
// its byte offset. Files are checked concurrently; each gets a dedicated
// parser and feeder, which share no state.
//
// Usage:
//
//	jv [-max-depth n] [-workers n] [-q] [file...]
//
// The exit status is 0 if every input is valid JSON, 1 otherwise.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/panjf2000/ants/v2"

	"github.com/nholloway/jev"
)

var (
	maxDepth = flag.Int("max-depth", 0, "maximum container nesting (0 means the library default)")
	workers  = flag.Int("workers", 4, "number of files to check concurrently")
	quiet    = flag.Bool("q", false, "suppress output, report through the exit status only")
)

const (
	colorGood = "\x1b[32m"
	colorBad  = "\x1b[31m"
	colorOff  = "\x1b[0m"
)

func main() {
	flag.Parse()

	var stdout io.Writer = os.Stdout
	var good, bad, off string
	if isatty.IsTerminal(os.Stdout.Fd()) {
		stdout = colorable.NewColorableStdout()
		good, bad, off = colorGood, colorBad, colorOff
	}

	names := flag.Args()
	if len(names) == 0 {
		names = []string{"-"}
	}

	pool, err := ants.NewPool(*workers)
	if err != nil {
		fmt.Fprintf(os.Stderr, "jv: %s\n", err)
		os.Exit(2)
	}
	var mu sync.Mutex // guards stdout and nbad
	var nbad int
	var wg sync.WaitGroup
	for _, name := range names {
		wg.Add(1)
		err := pool.Submit(func() {
			defer wg.Done()
			err := checkFile(name)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				nbad++
			}
			if *quiet {
				return
			}
			if err != nil {
				fmt.Fprintf(stdout, "%s: %sinvalid%s: %s\n", name, bad, off, err)
			} else {
				fmt.Fprintf(stdout, "%s: %sok%s\n", name, good, off)
			}
		})
		if err != nil {
			wg.Done()
			fmt.Fprintf(os.Stderr, "jv: %s: %s\n", name, err)
			mu.Lock()
			nbad++
			mu.Unlock()
		}
	}
	wg.Wait()
	pool.Release()

	if nbad > 0 {
		os.Exit(1)
	}
}

// checkFile parses the named file (or stdin, for "-") to completion and
// reports the first syntax error, if any.
func checkFile(name string) error {
	var r io.Reader = os.Stdin
	if name != "-" {
		f, err := os.Open(name)
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}

	feeder := jev.NewReaderFeeder(r)
	p := jev.NewParserMaxDepth(feeder, *maxDepth)
	for {
		// A reader feeder never leaves the parser suspended: Peek blocks
		// until bytes arrive or the input ends, so Next always reaches one
		// of the terminal events.
		switch p.Next() {
		case jev.EndOfInput:
			return feeder.Err()
		case jev.Error:
			if err := feeder.Err(); err != nil {
				return err
			}
			return p.Err()
		}
	}
}
