// Package jsonfile loads post documents from JSON files and watches them for
// changes.
package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/colonyops/hark/internal/core/transcript"
	"github.com/colonyops/hark/internal/source"
)

// File loads a post from a JSON document on disk.
type File struct {
	Path string
}

// New returns a loader for the document at path.
func New(path string) *File {
	return &File{Path: path}
}

// Load reads and decodes the document.
func (f *File) Load(ctx context.Context) (transcript.Post, error) {
	fh, err := os.Open(f.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return transcript.Post{}, fmt.Errorf("%s: %w", f.Path, source.ErrNotFound)
		}
		return transcript.Post{}, fmt.Errorf("open post: %w", err)
	}
	defer func() { _ = fh.Close() }()

	post, err := Decode(fh)
	if err != nil {
		return transcript.Post{}, fmt.Errorf("%s: %w", f.Path, err)
	}

	if post.ID == "" {
		post.ID = strings.TrimSuffix(filepath.Base(f.Path), filepath.Ext(f.Path))
	}

	return post, nil
}

// Decode reads a post document. A bare array is accepted as a paragraphs-only
// document with no mentions.
func Decode(r io.Reader) (transcript.Post, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return transcript.Post{}, fmt.Errorf("read post: %w", err)
	}

	return DecodeBytes(data)
}

// DecodeBytes is Decode for an in-memory document.
func DecodeBytes(data []byte) (transcript.Post, error) {
	var post transcript.Post

	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "[") {
		if err := json.Unmarshal(data, &post.Paragraphs); err != nil {
			return post, fmt.Errorf("decode paragraphs: %w", err)
		}
		return post, nil
	}

	if err := json.Unmarshal(data, &post); err != nil {
		return post, fmt.Errorf("decode post: %w", err)
	}

	return post, nil
}
