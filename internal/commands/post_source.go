package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/hark/internal/core/logging"
	"github.com/colonyops/hark/internal/core/transcript"
	"github.com/colonyops/hark/internal/source"
	"github.com/colonyops/hark/internal/source/feed"
	"github.com/colonyops/hark/internal/source/jsonfile"
	"github.com/colonyops/hark/internal/source/postgres"
	"github.com/colonyops/hark/pkg/iojson"
)

var errNoSource = errors.New("a post file argument (\"-\" for stdin), or --channel and --post with a database DSN, is required")

// postSource holds the flags shared by every command that reads one post.
type postSource struct {
	flags *Flags

	dsn     string
	channel string
	postID  string
	feedURL string
}

func (s *postSource) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "dsn",
			Usage:       "postgres DSN of the import database (defaults to database.dsn)",
			Sources:     cli.EnvVars("HARK_DSN"),
			Destination: &s.dsn,
			Local:       true,
		},
		&cli.StringFlag{
			Name:        "channel",
			Usage:       "channel id or external channel id of the post",
			Destination: &s.channel,
			Local:       true,
		},
		&cli.StringFlag{
			Name:        "post",
			Usage:       "post id to load from the database",
			Destination: &s.postID,
			Local:       true,
		},
		&cli.StringFlag{
			Name:        "feed",
			Usage:       "RSS feed URL or file used to fill in a missing audio URL",
			Sources:     cli.EnvVars("HARK_FEED"),
			Destination: &s.feedURL,
			Local:       true,
		},
	}
}

// DSN returns the --dsn flag, falling back to the configured database.
func (s *postSource) DSN() string {
	if s.dsn != "" {
		return s.dsn
	}
	if s.flags.Config != nil {
		return s.flags.Config.Database.DSN
	}
	return ""
}

// Open returns the loader for the post named by the command line and a
// closer for the resources it holds. path is the document path when the post
// comes from a file; "-" reads the post from stdin.
func (s *postSource) Open(ctx context.Context, c *cli.Command) (loader source.Loader, path string, closer func(), err error) {
	closer = func() {}

	switch {
	case c.Args().First() == iojson.Stdin:
		post, err := iojson.InputReader[transcript.Post]{Decode: jsonfile.Decode}.Read(iojson.Stdin)
		if err != nil {
			return nil, "", closer, err
		}
		if post.ID == "" {
			post.ID = "stdin"
		}
		// stdin is read once; reloads yield the same post
		return source.LoaderFunc(func(context.Context) (transcript.Post, error) {
			return post, nil
		}), "", closer, nil

	case c.Args().Present():
		path = c.Args().First()
		return jsonfile.New(path), path, closer, nil

	case s.channel != "" && s.postID != "" && s.DSN() != "":
		client, err := s.openDB(ctx)
		if err != nil {
			return nil, "", closer, err
		}
		return client.Post(s.channel, s.postID), "", func() { _ = client.Close() }, nil
	}

	return nil, "", closer, errNoSource
}

func (s *postSource) openDB(ctx context.Context) (*postgres.Client, error) {
	cfg := postgres.Config{DSN: s.DSN()}
	if s.flags.Config != nil {
		cfg.MaxOpenConns = s.flags.Config.Database.MaxOpenConns
	}
	return postgres.Open(ctx, cfg)
}

// Enricher returns the feed resolver when --feed is set.
func (s *postSource) Enricher() source.Enricher {
	if s.feedURL == "" {
		return nil
	}
	return feed.New(s.feedURL, logging.Component("feed"))
}

// Load opens the source and loads the post once.
func (s *postSource) Load(ctx context.Context, c *cli.Command) (transcript.Post, error) {
	loader, _, closer, err := s.Open(ctx, c)
	if err != nil {
		return transcript.Post{}, err
	}
	defer closer()

	post, err := loader.Load(ctx)
	if err != nil {
		return transcript.Post{}, fmt.Errorf("load post: %w", err)
	}
	return post, nil
}
