package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/hark/internal/core/highlight"
	"github.com/colonyops/hark/internal/core/styles"
	"github.com/colonyops/hark/internal/core/transcript"
	"github.com/colonyops/hark/pkg/iojson"
)

type GroupsCmd struct {
	flags *Flags
	src   postSource

	// flags
	entity     string
	query      string
	width      int
	jsonOutput bool
}

// NewGroupsCmd creates a new groups command
func NewGroupsCmd(flags *Flags) *GroupsCmd {
	return &GroupsCmd{flags: flags, src: postSource{flags: flags}}
}

// Register adds the groups command to the application
func (cmd *GroupsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "groups",
		Usage:     "Print the transcript grouped by an entity's mentions",
		UsageText: "hark groups [--entity NAME] [--query TEXT] [--json] <post.json>",
		Description: `Filters the transcript paragraphs by --query and splits them into plain runs
and highlighted runs where --entity is mentioned, the same grouping the viewer
shows when a chip is selected.`,
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:        "entity",
				Aliases:     []string{"e"},
				Usage:       "entity key to highlight (see 'hark chips')",
				Destination: &cmd.entity,
			},
			&cli.StringFlag{
				Name:        "query",
				Aliases:     []string{"q"},
				Usage:       "keep only paragraphs containing this text",
				Destination: &cmd.query,
			},
			&cli.IntFlag{
				Name:        "width",
				Usage:       "wrap text output at this width",
				Value:       80,
				Destination: &cmd.width,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON",
				Destination: &cmd.jsonOutput,
			},
		}, cmd.src.Flags()...),
		ShellComplete: EntityNameCompleter(),
		Action:        cmd.run,
	})

	return app
}

func (cmd *GroupsCmd) run(ctx context.Context, c *cli.Command) error {
	post, err := cmd.src.Load(ctx, c)
	if err != nil {
		return err
	}

	result := highlight.Render(post.Paragraphs, post.Mentions, cmd.entity, cmd.query)
	out := c.Root().Writer

	if cmd.jsonOutput {
		return iojson.WriteWith(out, c.Root().ErrWriter, result)
	}

	writeGroups(out, result, cmd.width)
	return nil
}

func writeGroups(w io.Writer, result highlight.Result, width int) {
	if len(result.Groups) == 0 {
		_, _ = fmt.Fprintln(w, styles.TextMutedStyle.Render("No matching paragraphs."))
		return
	}

	for _, g := range result.Groups {
		snippets := result.Snippets[g.Start:g.End]

		header := styles.TextMutedStyle.Render(clockRange(snippets[0].Start, snippets[len(snippets)-1].End))
		if g.Highlighted() {
			header += " " + styles.HighlightStyle(g.Color).Render(g.Label)
		}
		_, _ = fmt.Fprintln(w, header)

		texts := make([]string, len(snippets))
		for i, s := range snippets {
			texts[i] = s.Text
		}
		body := strings.Join(texts, " ")
		if width > 2 {
			body = wordwrap.String(body, width-2)
		}
		body = indent.String(body, 2)
		if g.Highlighted() {
			body = styles.HighlightStyle(g.Color).Render(body)
		}
		_, _ = fmt.Fprintln(w, body)
		_, _ = fmt.Fprintln(w)
	}
}

func clockRange(start, end transcript.Seconds) string {
	return fmt.Sprintf("[%s - %s]", clock(start.Float()), clock(end.Float()))
}

func clock(seconds float64) string {
	return formatDuration(&seconds)
}
