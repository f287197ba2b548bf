package commands

import (
	"context"

	"github.com/invopop/jsonschema"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/hark/internal/core/transcript"
	"github.com/colonyops/hark/pkg/iojson"
)

type SchemaCmd struct {
	flags *Flags
}

// NewSchemaCmd creates a new schema command
func NewSchemaCmd(flags *Flags) *SchemaCmd {
	return &SchemaCmd{flags: flags}
}

// Register adds the schema command to the application
func (cmd *SchemaCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:        "schema",
		Usage:       "Print the JSON schema of a post document",
		UsageText:   "hark schema > post.schema.json",
		Description: "Prints the JSON schema for the post documents read by 'hark view' and the other file commands.",
		Action:      cmd.run,
	})

	return app
}

// PostSchema reflects the JSON schema of a post document.
func PostSchema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: true,
		DoNotReference:            true,
	}
	schema := reflector.Reflect(&transcript.Post{})
	schema.Title = "hark post"
	schema.Description = "A post with its transcript paragraphs and entity mentions."
	return schema
}

func (cmd *SchemaCmd) run(ctx context.Context, c *cli.Command) error {
	return iojson.WriteWith(c.Root().Writer, c.Root().ErrWriter, PostSchema())
}
