package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/hark/internal/core/highlight"
	"github.com/colonyops/hark/internal/source/jsonfile"
)

// EntityNameCompleter returns a ShellCompleteFunc that suggests the entity
// keys of the post file already given as the first argument.
//
// When the user's last typed argument starts with "-", it falls back to the
// default flag completion behavior.
func EntityNameCompleter() cli.ShellCompleteFunc {
	return func(ctx context.Context, cmd *cli.Command) {
		args := cmd.Args()
		if args.Present() {
			last := args.Slice()[args.Len()-1]
			if len(last) > 0 && last[0] == '-' {
				cli.DefaultCompleteWithFlags(ctx, cmd)
				return
			}
		}

		if !args.Present() {
			return
		}

		post, err := jsonfile.New(args.First()).Load(ctx)
		if err != nil {
			return
		}

		w := cmd.Root().Writer
		for _, chip := range highlight.Chips(post.Mentions) {
			_, _ = fmt.Fprintln(w, chip.ID)
		}
	}
}
