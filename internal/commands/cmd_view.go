package commands

import (
	"context"
	"fmt"
	"slices"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/hark/internal/core/config"
	"github.com/colonyops/hark/internal/core/logging"
	"github.com/colonyops/hark/internal/source"
	"github.com/colonyops/hark/internal/source/jsonfile"
	"github.com/colonyops/hark/internal/tui"
	"github.com/colonyops/hark/pkg/iojson"
)

type ViewCmd struct {
	flags *Flags
	src   postSource

	// flags
	player  string
	watch   bool
	noHover bool
	wrap    int
	debug   bool
}

// NewViewCmd creates a new view command
func NewViewCmd(flags *Flags) *ViewCmd {
	return &ViewCmd{flags: flags, src: postSource{flags: flags}}
}

// Flags returns the view flags for registration on the root command
func (cmd *ViewCmd) Flags() []cli.Flag {
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "player",
			Usage:       "media player (auto, mpv, bridge, none); defaults to player.kind",
			Sources:     cli.EnvVars("HARK_PLAYER"),
			Destination: &cmd.player,
			Local:       true,
			Validator: func(s string) error {
				if s != "" && !slices.Contains([]string{config.PlayerAuto, config.PlayerMPV, config.PlayerBridge, config.PlayerNone}, s) {
					return fmt.Errorf("unknown player %q", s)
				}
				return nil
			},
		},
		&cli.BoolFlag{
			Name:        "watch",
			Aliases:     []string{"w"},
			Usage:       "reload the post file when it changes",
			Destination: &cmd.watch,
			Local:       true,
		},
		&cli.BoolFlag{
			Name:        "no-hover",
			Usage:       "disable hover previews",
			Destination: &cmd.noHover,
			Local:       true,
		},
		&cli.IntFlag{
			Name:        "wrap",
			Usage:       "wrap the transcript at this width (0 uses the terminal width)",
			Value:       -1,
			Destination: &cmd.wrap,
			Local:       true,
		},
		&cli.BoolFlag{
			Name:        "debug-bridge",
			Usage:       "mount pprof handlers on the bridge server",
			Sources:     cli.EnvVars("HARK_DEBUG_BRIDGE"),
			Destination: &cmd.debug,
			Local:       true,
		},
	}
	return append(flags, cmd.src.Flags()...)
}

// Register adds the view command to the application
func (cmd *ViewCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "view",
		Usage:     "Open a post in the transcript viewer",
		UsageText: "hark view [options] <post.json>\n   hark view [options] --channel ID --post ID",
		Description: `Shows the transcript of a post with its entity mentions and keeps a media
player in sync: hovering a word previews that moment, clicking plays from it.

Posts are read from a JSON document or from the import database.`,
		Flags:  cmd.Flags(),
		Action: cmd.run,
	})

	return app
}

// Run executes the view. Exported for use as default command.
func (cmd *ViewCmd) Run(ctx context.Context, c *cli.Command) error {
	return cmd.run(ctx, c)
}

func (cmd *ViewCmd) run(ctx context.Context, c *cli.Command) error {
	cfg := cmd.flags.Config

	loader, path, closeSource, err := cmd.src.Open(ctx, c)
	if err != nil {
		return err
	}
	defer closeSource()

	post, err := loader.Load(ctx)
	if err != nil {
		return fmt.Errorf("load post: %w", err)
	}
	ctx = logging.WithPostID(ctx, post.ID)

	var warnings []string
	for _, w := range cfg.Warnings() {
		warnings = append(warnings, w.Message)
	}

	if enricher := cmd.src.Enricher(); enricher != nil {
		if err := enricher.Enrich(ctx, &post); err != nil {
			warnings = append(warnings, fmt.Sprintf("feed: %v", err))
		}
		loader = source.Chain(loader, enricher)
	}

	notices := tui.NewNotificationBuffer()

	kind := cfg.Player.Kind
	if cmd.player != "" {
		kind = cmd.player
	}
	player, warning, err := newPlayer(ctx, cfg.Player, kind, post, notices, cmd.debug)
	if err != nil {
		return fmt.Errorf("start %s player: %w", kind, err)
	}
	defer player.close()
	if warning != "" {
		warnings = append(warnings, warning)
	}
	ctx = logging.WithPlayer(ctx, player.name)

	var changes <-chan jsonfile.ChangeEvent
	if cmd.watch {
		if path == "" {
			warnings = append(warnings, "--watch only applies to post files")
		} else {
			watcher, err := jsonfile.NewWatcher(path, adapterLogger("watcher", notices))
			if err != nil {
				return fmt.Errorf("watch %s: %w", path, err)
			}
			defer func() { _ = watcher.Close() }()
			changes = watcher.Watch(ctx)
		}
	}

	hover := cfg.Transcript.HoverPreview && !cmd.noHover
	wrap := cfg.Transcript.WrapWidth
	if cmd.wrap >= 0 {
		wrap = cmd.wrap
	}

	log.Info().Ctx(ctx).
		Str("title", post.DisplayTitle()).
		Int("paragraphs", len(post.Paragraphs)).
		Int("mentions", len(post.Mentions)).
		Msg("opening post")

	m := tui.New(tui.Options{
		Post:             post,
		Target:           player.target,
		PlayerName:       player.name,
		HoverPreview:     hover,
		WrapWidth:        wrap,
		DescriptionLines: cfg.Transcript.DescriptionLines,
		Reload:           loader,
		Changes:          changes,
		Notices:          notices,
		Warnings:         warnings,
		OnFirstPlay: func() {
			log.Info().Ctx(ctx).Msg("first play")
		},
		OpenPlayer: player.open,
		Logger:     logging.Component("tui"),
	})

	// the model is subscribed to the target now
	player.start(ctx)

	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if c.Args().First() == iojson.Stdin {
		// stdin carried the post, so keys come from the terminal
		opts = append(opts, tea.WithInputTTY())
	}

	p := tea.NewProgram(m, opts...)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run transcript view: %w", err)
	}
	return nil
}
