package iojson

import (
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// Stdin is the path argument that selects standard input.
const Stdin = "-"

// ErrTerminal is returned when input would be read from an interactive
// terminal.
var ErrTerminal = errors.New("no input provided (stdin is a terminal); pass a file or pipe JSON input")

// InputReader decodes one JSON document from a file, or from In when the path
// is empty or "-".
type InputReader[T any] struct {
	Decode func(io.Reader) (T, error)

	// In defaults to os.Stdin.
	In *os.File
}

// Read opens path and decodes it.
func (r InputReader[T]) Read(path string) (T, error) {
	var input T

	var reader io.Reader
	if path != "" && path != Stdin {
		f, err := os.Open(path)
		if err != nil {
			return input, fmt.Errorf("open file: %w", err)
		}
		defer func() { _ = f.Close() }()
		reader = f
	} else {
		in := r.In
		if in == nil {
			in = os.Stdin
		}
		if term.IsTerminal(int(in.Fd())) {
			return input, ErrTerminal
		}
		reader = in
	}

	input, err := r.Decode(reader)
	if err != nil {
		return input, fmt.Errorf("decode JSON: %w", err)
	}
	return input, nil
}
