package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/ardnew/allot/log"
	"github.com/ardnew/allot/store"
)

// Export writes every stored preference in the chosen format.
type Export struct {
	Format string `default:"yaml" enum:"yaml,json,toml" help:"Output format." short:"f"`

	Output string `arg:"" default:"-" help:"Output file or '-' for stdout." name:"output"`
}

// Run executes the export command.
func (x *Export) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	env := envFrom(ctx)

	format, err := store.ParseFormat(x.Format)
	if err != nil {
		return err
	}

	var w io.Writer = env.Out

	if x.Output != "-" {
		file, ferr := os.Create(x.Output)
		if ferr != nil {
			return ErrWriteOutput.Wrap(ferr)
		}

		defer func() {
			if cerr := file.Close(); cerr != nil && err == nil {
				err = ErrWriteOutput.Wrap(cerr)
			}
		}()

		w = file
	}

	snap := store.Snapshot(env.Store)

	if err := format.Encode(ctx, w, snap); err != nil {
		return ErrWriteOutput.Wrap(err)
	}

	log.DebugContext(ctx, "exported preferences",
		slog.String("format", format.String()),
		slog.String("output", x.Output),
		slog.Int("keys", len(snap)))

	return nil
}
