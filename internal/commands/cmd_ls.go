package commands

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/hark/internal/source/postgres"
	"github.com/colonyops/hark/pkg/iojson"
)

type LsCmd struct {
	flags *Flags
	src   postSource

	// flags
	page       int
	jsonOutput bool
}

// NewLsCmd creates a new ls command
func NewLsCmd(flags *Flags) *LsCmd {
	return &LsCmd{flags: flags, src: postSource{flags: flags}}
}

// Register adds the ls command to the application
func (cmd *LsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "ls",
		Usage:     "List the posts of a channel",
		UsageText: "hark ls --channel ID [--page N] [--json]",
		Description: `Displays a page of a channel's posts from the import database, newest first,
with whether each one has a transcript to view.

Use --json for machine-readable output.`,
		Flags: append([]cli.Flag{
			&cli.IntFlag{
				Name:        "page",
				Usage:       "zero-based page number",
				Destination: &cmd.page,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON",
				Destination: &cmd.jsonOutput,
			},
		}, cmd.src.Flags()...),
		Action: cmd.run,
	})

	return app
}

type postListing struct {
	Channel string                 `json:"channel"`
	Page    int                    `json:"page"`
	HasMore bool                   `json:"has_more"`
	Posts   []postgres.PostSummary `json:"posts"`
}

func (cmd *LsCmd) run(ctx context.Context, c *cli.Command) error {
	if cmd.src.channel == "" {
		return errors.New("--channel is required")
	}
	if cmd.src.DSN() == "" {
		return errors.New("a database DSN is required (--dsn or database.dsn)")
	}

	client, err := cmd.src.openDB(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	posts, hasMore, err := client.ListPosts(ctx, cmd.src.channel, cmd.page)
	if err != nil {
		return err
	}

	out := c.Root().Writer

	if cmd.jsonOutput {
		return iojson.WriteWith(out, c.Root().ErrWriter, postListing{
			Channel: cmd.src.channel,
			Page:    cmd.page,
			HasMore: hasMore,
			Posts:   posts,
		})
	}

	if len(posts) == 0 {
		fmt.Fprintf(os.Stderr, "No posts found\n")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tPUBLISHED\tDURATION\tTRANSCRIPT\tTITLE")
	for _, p := range posts {
		transcript := "no"
		if p.HasTranscript {
			transcript = "yes"
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", p.ID, humanize.Time(p.PublishedAt), formatDuration(p.DurationSeconds), transcript, p.Title)
	}
	_ = w.Flush()

	if hasMore {
		fmt.Fprintf(os.Stderr, "\nMore posts on page %d (--page %d)\n", cmd.page+1, cmd.page+1)
	}
	return nil
}

// formatDuration renders seconds as H:MM:SS or M:SS. Unknown durations
// render as "-".
func formatDuration(seconds *float64) string {
	if seconds == nil || math.IsNaN(*seconds) || math.IsInf(*seconds, 0) || *seconds < 0 {
		return "-"
	}
	total := int(*seconds)
	h, m, s := total/3600, (total%3600)/60, total%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
