package cmd

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/ardnew/allot/log"
	"github.com/ardnew/allot/option"
	"github.com/ardnew/allot/pkg"
	"github.com/ardnew/allot/pref"
	"github.com/ardnew/allot/store"
)

// Env is the state shared by every command.
type Env struct {
	// Path is the location of Store, if it is backed by a file.
	Path     string
	Store    store.Store
	Settings *pref.Settings
	Out      io.Writer
	// Atomic restores the store when a dispatch fails part way.
	Atomic bool
}

// NewEnv returns an Env whose preferences operate on st and write to out.
func NewEnv(path string, st store.Store, out io.Writer) *Env {
	return &Env{
		Path:     path,
		Store:    st,
		Settings: pref.New(pref.Env{Store: st, Out: out}),
		Out:      out,
	}
}

type envKey struct{}

// WithEnv returns a new context.Context containing env.
func WithEnv(ctx context.Context, env *Env) context.Context {
	return context.WithValue(ctx, envKey{}, env)
}

func envFrom(ctx context.Context) *Env {
	env, ok := ctx.Value(envKey{}).(*Env)
	if !ok || env == nil {
		panic("internal error: command environment undefined")
	}

	return env
}

// dispatch runs args against table, restoring the store on failure when
// e.Atomic is set.
func (e *Env) dispatch(ctx context.Context, table *option.Table, args []string) error {
	d := option.NewDispatcher(table, option.WithLexer(option.WithNumbers(true)))

	if !e.Atomic {
		return d.Dispatch(ctx, args)
	}

	snap := store.Snapshot(e.Store)

	err := d.Dispatch(ctx, args)
	if err == nil {
		return nil
	}

	if rerr := store.Restore(e.Store, snap); rerr != nil {
		return errors.Join(err, ErrRestore.Wrap(rerr))
	}

	log.InfoContext(ctx, "restored preferences after failure",
		slog.Int("keys", len(snap)))

	return err
}

var (
	// ErrRestore is returned when the store cannot be rolled back after a
	// failed atomic dispatch.
	ErrRestore = pkg.MakeErrorf("restore preferences")

	// ErrCheckFailed is returned when a consistency rule does not hold.
	ErrCheckFailed = pkg.MakeErrorf("preferences violate consistency rules")

	// ErrWriteOutput is returned when command output cannot be written.
	ErrWriteOutput = pkg.MakeErrorf("write output")
)
