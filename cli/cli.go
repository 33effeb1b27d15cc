package cli

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/ardnew/allot/cli/cmd"
	"github.com/ardnew/allot/log"
	"github.com/ardnew/allot/pkg"
	"github.com/ardnew/allot/store"
)

// CLI is the top-level command-line interface for allot.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Store  string `default:"${store}" env:"ALLOT_STORE" help:"Preference store file (.yaml, .yml, .json or .toml)." short:"S"`
	Atomic bool   `help:"Restore all preferences if any option fails."`

	Pref    cmd.Pref    `cmd:"" default:"withargs" help:"Report or change preferences." passthrough:""`
	Set     cmd.Set     `cmd:""            help:"Change preferences; every option needs a value." passthrough:""`
	Check   cmd.Check   `cmd:""            help:"Check preferences against consistency rules."`
	Options cmd.Options `cmd:""            help:"Describe the preference options."`
	Export  cmd.Export  `cmd:""            help:"Write the stored preferences."`
	Init    cmd.Init    `cmd:""            help:"Store default preferences."`
	Version cmd.Version `cmd:""            help:"Print the version."`
}

// Run executes the allot CLI with the given context and arguments, writing
// command output to stdout.
// The exit function is called with the appropriate exit code upon completion.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	return RunWriter(ctx, os.Stdout, exit, args...)
}

// RunWriter is like [Run] with command output written to w.
func RunWriter(
	ctx context.Context,
	w io.Writer,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	storePath := scanStore(args)

	vars := kong.Vars{
		cmd.StoreIdentifier: storePath,
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Pre-scan for logger flags to ensure early configuration regardless of
	// flag position.
	cli.Log.scan(args)

	format, err := store.FormatOf(storePath)
	if err != nil {
		return err
	}

	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.Writers(w, os.Stderr),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Pprof.group()},
		),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:             true,
				Summary:             true,
				Tree:                true,
				NoExpandSubcommands: true,
			}),
		kong.Configuration(resolve(format), storePath),
		vars,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Finalize logger configuration with all parsed values.
	cli.Log.start(ctx)

	// [pprofConfig.start] is no-op unless built with tag pprof and enabled.
	defer cli.Pprof.start(ctx)()

	env, err := cli.open(w)
	if err != nil {
		return err
	}

	ctx = cmd.WithEnv(ctx, env)

	return ktx.Run(ctx, &cli)
}

// open loads the preference store selected on the command line.
func (c *CLI) open(w io.Writer) (*cmd.Env, error) {
	path, err := filepath.Abs(c.Store)
	if err != nil {
		return nil, err
	}

	if err := mkdirAllRequired(filepath.Dir(path)); err != nil {
		return nil, pkg.ErrWriteStore.Wrap(err)
	}

	st, err := store.Open(path)
	if err != nil {
		return nil, err
	}

	log.Debug("opened preference store",
		slog.String("path", path),
		slog.String("format", st.Format().String()))

	env := cmd.NewEnv(path, st, w)
	env.Atomic = c.Atomic

	return env, nil
}
