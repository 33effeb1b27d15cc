package option

import (
	"cmp"
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"

	"github.com/ardnew/allot/log"
)

// Invocation is one planned call of a handler.
type Invocation struct {
	Handler Handler
	Arg     Arg
}

func (inv Invocation) attrs() []slog.Attr {
	return []slog.Attr{
		slog.String("option", inv.Handler.ID().String()),
		slog.String("arg", inv.Arg.String()),
	}
}

// Dispatcher plans and runs the handlers of a [Table] for a command line.
type Dispatcher struct {
	table  *Table
	lexer  Lexer
	logger *log.Logger
}

// DispatchOption configures a [Dispatcher].
type DispatchOption func(*Dispatcher)

// WithLexer replaces the lexer options. The vocabulary defaults to [All].
func WithLexer(opts ...LexOption) DispatchOption {
	return func(d *Dispatcher) { d.lexer = NewLexer(d.lexer.vocab, opts...) }
}

// WithVocabulary sets the vocabulary option names are resolved against.
func WithVocabulary(vocab Vocabulary) DispatchOption {
	return func(d *Dispatcher) { d.lexer.vocab = vocab }
}

// WithLogger sets the logger used for diagnostics. The package default
// logger is used otherwise.
func WithLogger(l log.Logger) DispatchOption {
	return func(d *Dispatcher) { d.logger = &l }
}

// NewDispatcher returns a dispatcher for table.
func NewDispatcher(table *Table, opts ...DispatchOption) *Dispatcher {
	d := &Dispatcher{table: table, lexer: NewLexer(All())}
	for _, opt := range opts {
		opt(d)
	}

	return d
}

func (d *Dispatcher) log() log.Logger {
	if d.logger != nil {
		return *d.logger
	}

	return log.Default()
}

// Dispatch plans args and executes the result.
func (d *Dispatcher) Dispatch(ctx context.Context, args []string) error {
	plan, err := d.Plan(ctx, args)
	if err != nil {
		return err
	}

	return d.Execute(ctx, plan)
}

// Plan returns the invocations args call for without running any of them.
func (d *Dispatcher) Plan(ctx context.Context, args []string) ([]Invocation, error) {
	toks, err := d.lexer.Tokenize(args)
	if err != nil {
		return nil, err
	}

	d.log().TraceContext(ctx, "tokenized arguments",
		slog.Any("args", args), slog.Any("tokens", toks))

	var (
		plan    []Invocation
		options int
	)

	for i := 0; i < len(toks); i++ {
		tok := toks[i]

		if tok.Kind == Positional {
			d.log().WarnContext(ctx, "ignoring argument without option",
				slog.String("arg", tok.Value))

			continue
		}

		options++

		hs, ok := d.table.Lookup(tok.ID)
		if !ok {
			return nil, d.unrecognized(tok)
		}

		arg := Absent

		if i+1 < len(toks) && toks[i+1].Kind == Positional {
			i++
			arg = Some(toks[i].Value)
		} else if d.table.Policy() == Simple {
			return nil, ErrMissingArgument.Wrapf("option %q requires a value", tok.Value).
				With(slog.String("option", tok.ID.Name()))
		}

		for _, h := range hs {
			plan = append(plan, Invocation{Handler: h, Arg: arg})
		}
	}

	if options == 0 {
		if fb, ok := d.table.Fallback(); ok {
			plan = []Invocation{{Handler: fb, Arg: Some("")}}
		}
	} else if d.table.Policy() == Extended {
		slices.SortStableFunc(plan, func(a, b Invocation) int {
			return cmp.Compare(a.Handler.ID().Rank(), b.Handler.ID().Rank())
		})
	}

	d.log().DebugContext(ctx, "planned dispatch",
		slog.String("policy", d.table.Policy().String()),
		slog.Int("invocations", len(plan)))

	return plan, nil
}

// Execute runs plan in order and stops at the first failure. Effects of the
// invocations that already ran are kept.
func (d *Dispatcher) Execute(ctx context.Context, plan []Invocation) error {
	for _, inv := range plan {
		d.log().TraceContext(ctx, "dispatch", inv.attrs()...)

		if err := inv.Handler.Dispatch(ctx, inv.Arg); err != nil {
			var oe *Error
			if !errors.As(err, &oe) {
				oe = ErrValidation.Wrap(err)
			}

			return oe.With(inv.attrs()...)
		}
	}

	return nil
}

func (d *Dispatcher) unrecognized(tok Token) *Error {
	err := ErrUnrecognized.Wrapf("%q", tok.Value).
		With(slog.String("option", tok.Value))

	hint := d.table.Vocabulary().Suggest(tok.Value, 3)
	if len(hint) > 0 {
		err = ErrUnrecognized.Wrapf("%q (did you mean %s?)", tok.Value, strings.Join(hint, ", ")).
			With(slog.String("option", tok.Value), slog.Any("suggestions", hint))
	}

	return err
}
