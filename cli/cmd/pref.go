package cmd

import "context"

// Pref reports or changes preferences. An option without a value reports its
// current value; with no options at all every preference is reported.
type Pref struct {
	Args []string `arg:"" help:"Options and values, e.g. --close 4500 --level." optional:""`
}

// Run executes the pref command.
func (p *Pref) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	env := envFrom(ctx)

	return env.dispatch(ctx, env.Settings.Extended(), p.Args)
}

// Set changes preferences. Every option requires a value and options apply
// in the order given.
type Set struct {
	Args []string `arg:"" help:"Options and values, e.g. --source ~/data." optional:""`
}

// Run executes the set command.
func (s *Set) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	env := envFrom(ctx)

	return env.dispatch(ctx, env.Settings.Simple(), s.Args)
}
