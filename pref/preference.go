package pref

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/charmbracelet/lipgloss"

	"github.com/ardnew/allot/log"
	"github.com/ardnew/allot/option"
	"github.com/ardnew/allot/store"
)

// Preference is an [option.Handler] persisting a value of type T under the
// key of its option.
//
// Dispatching without a value reports the current value. Dispatching with a
// value parses it, validates it, merges it with the current value, writes
// it and finally runs After.
type Preference[T any] struct {
	Option  option.ID
	Default T

	// Parse converts command-line or stored text into a value. Required.
	Parse func(string) (T, error)
	// Validate rejects parsed values. Optional.
	Validate func(T) error
	// Combine merges a validated value into the current one. Optional.
	Combine func(current, next T) T
	// Format converts a value into its stored and reported text. Required.
	Format func(T) string
	// After runs once the value is stored. Optional.
	After func(ctx context.Context, v T) error

	Store store.Store
	Out   io.Writer
}

// ID returns the option served by p.
func (p *Preference[T]) ID() option.ID { return p.Option }

// Dispatch implements [option.Handler].
func (p *Preference[T]) Dispatch(ctx context.Context, arg option.Arg) error {
	text, ok := arg.Get()
	if !ok {
		return p.Report(ctx)
	}

	return p.Set(ctx, text)
}

// Set parses text and stores the result with [Preference.Put].
func (p *Preference[T]) Set(ctx context.Context, text string) error {
	v, err := p.Parse(text)
	if err != nil {
		return p.invalid(text, err)
	}

	return p.Put(ctx, v)
}

// Put validates v, combines it with the current value and stores it.
func (p *Preference[T]) Put(ctx context.Context, v T) error {
	if p.Validate != nil {
		if err := p.Validate(v); err != nil {
			return p.invalid(p.Format(v), err)
		}
	}

	if p.Combine != nil {
		current, err := p.Get()
		if err != nil {
			return err
		}

		v = p.Combine(current, v)
	}

	text := p.Format(v)
	key := p.Option.Key()

	if err := p.Store.Put(key, text); err != nil {
		return option.WriteError(err).With(slog.String("key", key))
	}

	log.DebugContext(ctx, "stored preference",
		slog.String("key", key), slog.String("value", text))

	if p.After != nil {
		return p.After(ctx, v)
	}

	return nil
}

// Get returns the stored value, or Default when nothing is stored.
func (p *Preference[T]) Get() (T, error) {
	key := p.Option.Key()

	text, ok := p.Store.Get(key)
	if !ok {
		return p.Default, nil
	}

	v, err := p.Parse(text)
	if err != nil {
		var zero T

		return zero, option.ErrValidation.Wrapf("stored %s %q: %w", key, text, err).
			With(slog.String("key", key))
	}

	return v, nil
}

// Report writes the current value of p.
func (p *Preference[T]) Report(context.Context) error {
	v, err := p.Get()
	if err != nil {
		return err
	}

	return writeRow(p.out(), p.Option, p.Format(v))
}

// Reset removes the stored value so that Default applies again.
func (p *Preference[T]) Reset(ctx context.Context) error {
	key := p.Option.Key()

	if err := p.Store.Delete(key); err != nil {
		return option.WriteError(err).With(slog.String("key", key))
	}

	log.DebugContext(ctx, "reset preference", slog.String("key", key))

	return nil
}

// Current returns the value of p as an untyped value.
func (p *Preference[T]) Current() (any, error) { return p.Get() }

// DefaultText returns the formatted default value.
func (p *Preference[T]) DefaultText() string { return p.Format(p.Default) }

func (p *Preference[T]) invalid(text string, err error) *option.Error {
	return option.ErrValidation.Wrapf("%s %q: %w", p.Option.Name(), text, err).
		With(slog.String("option", p.Option.Name()), slog.String("value", text))
}

func (p *Preference[T]) out() io.Writer {
	if p.Out == nil {
		return io.Discard
	}

	return p.Out
}

// setting is the type-erased view of a [Preference].
type setting interface {
	option.Handler
	Report(ctx context.Context) error
	Reset(ctx context.Context) error
	Current() (any, error)
	DefaultText() string
}

//nolint:gochecknoglobals
var keyWidth = func() int {
	width := 0
	for id := range option.IDs() {
		width = max(width, len(id.Key()))
	}

	return width
}()

// writeRow writes one "KEY value" line with keys aligned in a column.
func writeRow(w io.Writer, id option.ID, value string) error {
	key := lipgloss.NewRenderer(w).NewStyle().
		Bold(true).
		Width(keyWidth).
		Render(id.Key())

	_, err := fmt.Fprintf(w, "%s %s\n", key, value)

	return err
}
