package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/hark/internal/core/highlight"
	"github.com/colonyops/hark/internal/core/transcript"
	"github.com/colonyops/hark/pkg/iojson"
)

type ChipsCmd struct {
	flags *Flags
	src   postSource

	// flags
	jsonOutput bool
}

// NewChipsCmd creates a new chips command
func NewChipsCmd(flags *Flags) *ChipsCmd {
	return &ChipsCmd{flags: flags, src: postSource{flags: flags}}
}

// Register adds the chips command to the application
func (cmd *ChipsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "chips",
		Usage:     "List the entities mentioned in a post",
		UsageText: "hark chips [--json] <post.json>",
		Description: `Prints one row per distinct entity in first-mention order with its kind,
sentiment color, and number of mentions. The ID column is the key accepted
by 'hark groups --entity'.`,
		Flags: append([]cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON",
				Destination: &cmd.jsonOutput,
			},
		}, cmd.src.Flags()...),
		ShellComplete: cli.DefaultCompleteWithFlags,
		Action:        cmd.run,
	})

	return app
}

type chipInfo struct {
	highlight.Chip
	Mentions int `json:"mentions"`
}

func chipInfos(mentions []transcript.Mention) []chipInfo {
	counts := make(map[string]int)
	for _, m := range mentions {
		counts[string(m.EntityType)+"\x00"+m.Key()]++
	}

	chips := highlight.Chips(mentions)
	infos := make([]chipInfo, len(chips))
	for i, c := range chips {
		infos[i] = chipInfo{Chip: c, Mentions: counts[string(c.Kind)+"\x00"+c.ID]}
	}
	return infos
}

func (cmd *ChipsCmd) run(ctx context.Context, c *cli.Command) error {
	post, err := cmd.src.Load(ctx, c)
	if err != nil {
		return err
	}

	infos := chipInfos(post.Mentions)
	out := c.Root().Writer

	if cmd.jsonOutput {
		if infos == nil {
			infos = []chipInfo{}
		}
		return iojson.WriteWith(out, c.Root().ErrWriter, infos)
	}

	if len(infos) == 0 {
		fmt.Fprintf(os.Stderr, "No entities mentioned\n")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tKIND\tCOLOR\tMENTIONS\tLABEL")
	for _, info := range infos {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n", info.ID, info.Kind, info.Color, info.Mentions, info.Label)
	}
	return w.Flush()
}
