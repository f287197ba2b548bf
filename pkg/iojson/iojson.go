// Package iojson reads and writes the JSON documents hark exchanges on the
// command line.
package iojson

import (
	"encoding/json"
	"fmt"
	"io"
)

// Error is the JSON shape of a failure reported on the error stream.
type Error struct {
	Message string         `json:"message"`
	Data    map[string]any `json:"data,omitempty"`
}

// WriteWith writes obj to w as indented JSON. When obj cannot be marshaled an
// Error document is written to ew instead.
func WriteWith(w io.Writer, ew io.Writer, obj any) error {
	bits, err := json.MarshalIndent(obj, "", "  ")
	if err != nil {
		_ = WriteError(ew, "encode output", map[string]any{"json_error": err.Error()})
		return fmt.Errorf("encode output: %w", err)
	}

	_, err = fmt.Fprintln(w, string(bits))
	return err
}

// WriteError writes an Error document to w.
func WriteError(w io.Writer, msg string, data map[string]any) error {
	bits, err := json.Marshal(Error{Message: msg, Data: data})
	if err != nil {
		// data held something unmarshalable; keep the message
		bits, _ = json.Marshal(Error{Message: msg})
	}

	_, err = fmt.Fprintln(w, string(bits))
	return err
}
