package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ardnew/allot/log"
	"github.com/ardnew/allot/pref"
)

// Check evaluates consistency rules over the stored preferences.
type Check struct {
	Rule      []string `help:"Additional rule as NAME=EXPRESSION over preference keys." placeholder:"NAME=EXPR" short:"r"`
	NoDefault bool     `help:"Skip the built-in rules."`
}

// Run executes the check command.
func (c *Check) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	env := envFrom(ctx)

	rules, err := c.rules()
	if err != nil {
		return err
	}

	violations, err := env.Settings.Check(rules)
	if err != nil {
		return err
	}

	for _, v := range violations {
		if _, err := fmt.Fprintln(env.Out, v.Error()); err != nil {
			return ErrWriteOutput.Wrap(err)
		}
	}

	if len(violations) > 0 {
		return ErrCheckFailed.Wrapf("%d of %d rules", len(violations), len(rules))
	}

	log.DebugContext(ctx, "preferences consistent", slog.Int("rules", len(rules)))

	return nil
}

func (c *Check) rules() ([]pref.Rule, error) {
	var rules []pref.Rule
	if !c.NoDefault {
		rules = pref.DefaultRules()
	}

	for _, s := range c.Rule {
		r, err := pref.ParseRule(s)
		if err != nil {
			return nil, err
		}

		rules = append(rules, r)
	}

	return rules, nil
}
