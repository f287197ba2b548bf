// Package feed resolves a post's audio enclosure from its podcast RSS feed.
package feed

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mmcdole/gofeed"
	"github.com/rs/zerolog"

	"github.com/colonyops/hark/internal/core/transcript"
)

// Resolver fills a post's missing audio URL from the matching feed item.
type Resolver struct {
	location   string
	feedParser *gofeed.Parser
	logger     zerolog.Logger
}

// New creates a resolver for the feed at location, which is either an
// http(s) URL or a local file path.
func New(location string, logger zerolog.Logger) *Resolver {
	return &Resolver{
		location:   location,
		feedParser: gofeed.NewParser(),
		logger:     logger,
	}
}

// Enrich sets AudioURL, and DurationSeconds and Description when missing,
// from the feed item matching the post. Posts that already have audio are
// left untouched without fetching the feed.
func (r *Resolver) Enrich(ctx context.Context, post *transcript.Post) error {
	if post.AudioURL != "" {
		return nil
	}

	feed, err := r.fetch(ctx)
	if err != nil {
		return err
	}

	item := Match(feed.Items, *post)
	if item == nil {
		r.logger.Debug().Str("post_id", post.ID).Msg("no feed item matches post")
		return nil
	}

	post.AudioURL = Enclosure(item)
	if post.DurationSeconds == nil && item.ITunesExt != nil {
		if d, ok := ParseDuration(item.ITunesExt.Duration); ok {
			post.DurationSeconds = &d
		}
	}
	if post.Description == "" {
		post.Description = item.Description
	}
	if post.Title == "" {
		post.Title = item.Title
	}

	return nil
}

func (r *Resolver) fetch(ctx context.Context) (*gofeed.Feed, error) {
	if strings.HasPrefix(r.location, "http://") || strings.HasPrefix(r.location, "https://") {
		feed, err := r.feedParser.ParseURLWithContext(r.location, ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to parse RSS feed: %w", err)
		}
		return feed, nil
	}

	f, err := os.Open(r.location)
	if err != nil {
		return nil, fmt.Errorf("open feed: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Parse(f)
}

// Parse parses an RSS or Atom document.
func Parse(rd io.Reader) (*gofeed.Feed, error) {
	feed, err := gofeed.NewParser().Parse(rd)
	if err != nil {
		return nil, fmt.Errorf("failed to parse RSS feed: %w", err)
	}
	return feed, nil
}

// Match returns the first feed item whose GUID equals the post id, whose link
// equals one of the post URLs, or whose title equals the post title
// ignoring case. It returns nil when nothing matches.
func Match(items []*gofeed.Item, post transcript.Post) *gofeed.Item {
	for _, item := range items {
		if post.ID != "" && item.GUID == post.ID {
			return item
		}
	}
	for _, item := range items {
		if item.Link != "" && (item.Link == post.VideoURL || item.Link == post.AudioURL) {
			return item
		}
	}
	title := strings.TrimSpace(post.Title)
	if title == "" {
		return nil
	}
	for _, item := range items {
		if strings.EqualFold(strings.TrimSpace(item.Title), title) {
			return item
		}
	}
	return nil
}

// Enclosure returns the first audio enclosure URL of item, falling back to
// the first enclosure of any type.
func Enclosure(item *gofeed.Item) string {
	for _, e := range item.Enclosures {
		if strings.HasPrefix(e.Type, "audio/") && e.URL != "" {
			return e.URL
		}
	}
	for _, e := range item.Enclosures {
		if e.URL != "" {
			return e.URL
		}
	}
	return ""
}

// ParseDuration parses an itunes:duration value, either plain seconds or
// [HH:]MM:SS.
func ParseDuration(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	parts := strings.Split(s, ":")
	if len(parts) > 3 {
		return 0, false
	}

	var total float64
	for _, p := range parts {
		n, err := strconv.ParseFloat(p, 64)
		if err != nil || n < 0 {
			return 0, false
		}
		total = total*60 + n
	}
	return total, true
}
