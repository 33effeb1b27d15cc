package pref

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"github.com/ardnew/allot/log"
	"github.com/ardnew/allot/option"
	"github.com/ardnew/allot/store"
)

// DefaultCurrency is the reporting currency used until one is stored.
const DefaultCurrency = "USD"

// Env is what the preference handlers operate on.
type Env struct {
	Store store.Store
	Out   io.Writer
	// Logger reconfigures the running logger when LEVEL changes on the
	// extended surface. Defaults to [log.Config].
	Logger func(opts ...log.Option)
}

// Settings holds one [Preference] per option.
type Settings struct {
	Level       *Preference[log.Level]
	Source      *Preference[string]
	Destination *Preference[string]
	Library     *Preference[string]
	Currency    *Preference[string]
	Inflation   *Preference[decimal.Decimal]
	Close       *Preference[decimal.Decimal]
	High        *Preference[decimal.Decimal]
	Threshold   *Preference[decimal.Decimal]
	Minimum     *Preference[decimal.Decimal]

	env Env
}

// New returns the preferences of every option over env.
func New(env Env) *Settings {
	if env.Store == nil {
		env.Store = &store.Memory{}
	}

	if env.Out == nil {
		env.Out = io.Discard
	}

	if env.Logger == nil {
		env.Logger = log.Config
	}

	s := &Settings{env: env}

	s.Level = &Preference[log.Level]{
		Option:   option.Level,
		Default:  log.DefaultLevel,
		Parse:    parseLevel,
		Validate: validLevel,
		Format:   formatLevel,
		Store:    env.Store,
		Out:      env.Out,
	}

	s.Source = directory(env, option.Source)
	s.Destination = directory(env, option.Destination)

	s.Library = &Preference[string]{
		Option:   option.Library,
		Parse:    parseLibrary,
		Validate: validLibrary,
		Combine:  prependLibrary,
		Format:   identity,
		Store:    env.Store,
		Out:      env.Out,
	}

	s.Currency = &Preference[string]{
		Option:   option.Currency,
		Default:  DefaultCurrency,
		Parse:    parseCurrency,
		Validate: validCurrency,
		Format:   identity,
		Store:    env.Store,
		Out:      env.Out,
	}
	s.Currency.After = s.rescaleMinimum

	s.Inflation = percent(env, option.Inflation, -20, 100, decimal.NewFromInt(3))

	s.High = price(env, option.High)
	s.High.Validate = s.coversClose
	s.Close = price(env, option.Close)
	s.Close.After = s.raiseHigh

	s.Threshold = percent(env, option.Threshold, 0, 100, decimal.NewFromInt(5))

	s.Minimum = &Preference[decimal.Decimal]{
		Option: option.Minimum,
		Parse: func(text string) (decimal.Decimal, error) {
			return parseAmount(s.currency(), text)
		},
		Validate: func(v decimal.Decimal) error {
			return validAmount(s.currency(), v)
		},
		Format: func(v decimal.Decimal) string {
			return v.StringFixed(int32(s.currency().Fraction))
		},
		After: func(ctx context.Context, v decimal.Decimal) error {
			log.DebugContext(ctx, "minimum trade amount",
				slog.String("display", displayAmount(s.currency(), v)))

			return nil
		},
		Store: env.Store,
		Out:   env.Out,
	}

	return s
}

func directory(env Env, id option.ID) *Preference[string] {
	return &Preference[string]{
		Option:   id,
		Parse:    parseDirectory,
		Validate: isDirectory,
		Format:   identity,
		Store:    env.Store,
		Out:      env.Out,
	}
}

func percent(env Env, id option.ID, lo, hi int64, def decimal.Decimal) *Preference[decimal.Decimal] {
	return &Preference[decimal.Decimal]{
		Option:   id,
		Default:  def,
		Parse:    parsePercent,
		Validate: between(lo, hi),
		Format:   formatFixed,
		Store:    env.Store,
		Out:      env.Out,
	}
}

func price(env Env, id option.ID) *Preference[decimal.Decimal] {
	return &Preference[decimal.Decimal]{
		Option:   id,
		Default:  decimal.Zero,
		Parse:    parseDecimal,
		Validate: positive,
		Format:   formatFixed,
		Store:    env.Store,
		Out:      env.Out,
	}
}

// raiseHigh moves the market high up to a new close above it.
func (s *Settings) raiseHigh(ctx context.Context, closed decimal.Decimal) error {
	high, err := s.High.Get()
	if err != nil {
		return err
	}

	if !closed.GreaterThan(high) {
		return nil
	}

	log.InfoContext(ctx, "market close above high",
		slog.String("close", formatFixed(closed)),
		slog.String("high", formatFixed(high)))

	return s.High.Put(ctx, closed)
}

// coversClose rejects a market high below the stored market close.
func (s *Settings) coversClose(high decimal.Decimal) error {
	if err := positive(high); err != nil {
		return err
	}

	closed, err := s.Close.Get()
	if err != nil {
		return err
	}

	if high.LessThan(closed) {
		return fmt.Errorf("below market close %s", formatFixed(closed))
	}

	return nil
}

// rescaleMinimum rounds a stored minimum trade amount up to the minor unit of
// a newly stored currency.
func (s *Settings) rescaleMinimum(ctx context.Context, code string) error {
	if _, ok := s.env.Store.Get(option.Minimum.Key()); !ok {
		return nil
	}

	minimum, err := s.Minimum.Get()
	if err != nil {
		return err
	}

	c := currencyOf(code)

	rounded := minimum.RoundCeil(int32(c.Fraction))
	if rounded.Equal(minimum) {
		return nil
	}

	log.WarnContext(ctx, "minimum trade amount rounded to currency unit",
		slog.String("currency", c.Code),
		slog.String("was", minimum.String()),
		slog.String("now", rounded.StringFixed(int32(c.Fraction))))

	return s.Minimum.Put(ctx, rounded)
}

func (s *Settings) currency() *money.Currency {
	code, err := s.Currency.Get()
	if err != nil {
		code = DefaultCurrency
	}

	return currencyOf(code)
}

// all returns every preference in rank order.
func (s *Settings) all() []setting {
	return []setting{
		s.Level,
		s.Source,
		s.Destination,
		s.Library,
		s.Currency,
		s.Inflation,
		s.Close,
		s.High,
		s.Threshold,
		s.Minimum,
	}
}

// Vocabulary returns the options backed by a preference.
func (s *Settings) Vocabulary() option.Vocabulary {
	ids := make([]option.ID, 0, len(s.all()))
	for _, p := range s.all() {
		ids = append(ids, p.ID())
	}

	return option.NewVocabulary(ids...)
}

func (s *Settings) lookup(id option.ID) (setting, bool) {
	i := slices.IndexFunc(s.all(), func(p setting) bool { return p.ID() == id })
	if i < 0 {
		return nil, false
	}

	return s.all()[i], true
}

// Extended returns the surface of the pref command: every option including
// reset, absent values report, and the level change also reconfigures the
// running logger. Without options it reports every preference.
func (s *Settings) Extended() *option.Table {
	t := option.NewTable(option.Extended)

	t.Register(option.Func(option.Reset, s.dispatchReset))

	for _, p := range s.all() {
		t.Register(p)
	}

	t.Register(option.Func(option.Level, s.applyLevel))

	return t.SetFallback(option.Func(option.None, func(ctx context.Context, _ option.Arg) error {
		return s.Report(ctx)
	}))
}

// Simple returns the surface of the set command: every preference requires
// a value. Without options it prints the usage summary.
func (s *Settings) Simple() *option.Table {
	t := option.NewTable(option.Simple)

	for _, p := range s.all() {
		t.Register(p)
	}

	return t.SetFallback(option.Func(option.None, func(context.Context, option.Arg) error {
		return WriteUsage(s.env.Out, s.Vocabulary(), StylePlain)
	}))
}

// Report writes the current value of every preference.
func (s *Settings) Report(ctx context.Context) error {
	for _, p := range s.all() {
		if err := p.Report(ctx); err != nil {
			return err
		}
	}

	return nil
}

// Reset restores the given preferences, or all of them when ids is empty,
// to their defaults.
func (s *Settings) Reset(ctx context.Context, ids ...option.ID) error {
	if len(ids) == 0 {
		ids = s.Vocabulary()
	}

	for _, id := range ids {
		p, ok := s.lookup(id)
		if !ok {
			return option.ErrValidation.Wrapf("%s has no preference", id)
		}

		if err := p.Reset(ctx); err != nil {
			return err
		}
	}

	log.InfoContext(ctx, "reset preferences", slog.Int("count", len(ids)))

	return nil
}

// dispatchReset resets the comma-separated options named by arg, or every
// preference when arg is absent or empty.
func (s *Settings) dispatchReset(ctx context.Context, arg option.Arg) error {
	text, _ := arg.Get()

	var ids []option.ID

	vocab := s.Vocabulary()

	for name := range strings.SplitSeq(text, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		id, candidates := vocab.Match(name)
		if id == option.None {
			if len(candidates) > 1 {
				names := option.Vocabulary(candidates).Names()

				return option.ErrAmbiguous.Wrapf("%q could be %s", name, strings.Join(names, ", "))
			}

			return option.ErrValidation.Wrapf("reset %q: no such preference", name)
		}

		ids = append(ids, id)
	}

	return s.Reset(ctx, ids...)
}

// applyLevel reconfigures the default logger with a newly stored level.
func (s *Settings) applyLevel(ctx context.Context, arg option.Arg) error {
	if !arg.Present() {
		return nil
	}

	level, err := s.Level.Get()
	if err != nil {
		return err
	}

	s.env.Logger(log.WithLevel(level))
	log.DebugContext(ctx, "log level changed", slog.String("level", formatLevel(level)))

	return nil
}

// Defaults writes the default of every preference with a non-empty default.
// Stored values are kept unless force is set.
func (s *Settings) Defaults(ctx context.Context, force bool) (int, error) {
	written := 0

	for _, p := range s.all() {
		key := p.ID().Key()
		text := p.DefaultText()

		if text == "" {
			continue
		}

		if _, ok := s.env.Store.Get(key); ok && !force {
			continue
		}

		if err := s.env.Store.Put(key, text); err != nil {
			return written, option.WriteError(err).With(slog.String("key", key))
		}

		written++
	}

	log.DebugContext(ctx, "wrote default preferences", slog.Int("count", written))

	return written, nil
}

// Values returns the current value of every preference keyed by its store
// key. Decimals become float64 and levels their stored text.
func (s *Settings) Values() (map[string]any, error) {
	values := make(map[string]any, len(s.all()))

	for _, p := range s.all() {
		v, err := p.Current()
		if err != nil {
			return nil, err
		}

		switch v := v.(type) {
		case decimal.Decimal:
			values[p.ID().Key()] = v.InexactFloat64()
		case log.Level:
			values[p.ID().Key()] = formatLevel(v)
		default:
			values[p.ID().Key()] = v
		}
	}

	return values, nil
}
