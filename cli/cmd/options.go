package cmd

import (
	"context"
	"io"

	"github.com/ardnew/allot/option"
	"github.com/ardnew/allot/pref"
)

// Options describes every preference option.
type Options struct {
	Style    string `default:"auto" enum:"auto,dark,light,notty" help:"Rendering style." short:"s"`
	Markdown bool   `help:"Print Markdown source instead of rendering it." short:"m"`
}

// Run executes the options command.
func (o *Options) Run(ctx context.Context) (err error) {
	_, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	env := envFrom(ctx)
	vocab := option.All()

	if o.Markdown {
		_, err = io.WriteString(env.Out, pref.Usage(vocab))
	} else {
		err = pref.WriteUsage(env.Out, vocab, o.Style)
	}

	if err != nil {
		return ErrWriteOutput.Wrap(err)
	}

	return nil
}
