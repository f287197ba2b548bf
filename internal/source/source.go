// Package source defines how hark obtains posts to display. Implementations
// live in the subpackages: jsonfile reads a post document from disk, postgres
// reads the import database and feed resolves missing audio enclosures.
package source

import (
	"context"
	"errors"

	"github.com/colonyops/hark/internal/core/transcript"
)

// ErrNotFound is returned when the requested post does not exist.
var ErrNotFound = errors.New("post not found")

// Loader loads a single post with its transcript and mentions.
type Loader interface {
	Load(ctx context.Context) (transcript.Post, error)
}

// Enricher fills in data missing from a loaded post, such as a media URL.
type Enricher interface {
	Enrich(ctx context.Context, post *transcript.Post) error
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(ctx context.Context) (transcript.Post, error)

// Load calls f.
func (f LoaderFunc) Load(ctx context.Context) (transcript.Post, error) {
	return f(ctx)
}

// Chain returns a Loader that loads from l and then applies every enricher
// in order. Enricher errors are returned with the partially enriched post so
// callers can decide whether they are fatal.
func Chain(l Loader, enrichers ...Enricher) Loader {
	return LoaderFunc(func(ctx context.Context) (transcript.Post, error) {
		post, err := l.Load(ctx)
		if err != nil {
			return post, err
		}

		var errs []error
		for _, e := range enrichers {
			if err := e.Enrich(ctx, &post); err != nil {
				errs = append(errs, err)
			}
		}

		return post, errors.Join(errs...)
	})
}
