package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/allot/log"
)

// Init writes the default value of every preference that has one.
type Init struct {
	Force bool `help:"Overwrite stored preferences with their defaults." short:"f"`
}

// Run executes the init command.
func (i *Init) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	env := envFrom(ctx)

	n, err := env.Settings.Defaults(ctx, i.Force)
	if err != nil {
		return err
	}

	log.InfoContext(ctx, "initialized preference store",
		slog.String("path", env.Path),
		slog.Int("written", n),
		slog.Bool("force", i.Force))

	return nil
}
