package option

import (
	"context"
	"log/slog"
	"strconv"
)

// Arg is the optional value bound to an option.
type Arg struct {
	value   string
	present bool
}

// Absent is the [Arg] of an option given without a value.
var Absent = Arg{}

// Some returns a present [Arg] holding value.
func Some(value string) Arg { return Arg{value: value, present: true} }

// Get returns the value and whether it is present.
func (a Arg) Get() (string, bool) { return a.value, a.present }

// Present reports whether a value was given.
func (a Arg) Present() bool { return a.present }

func (a Arg) String() string {
	if !a.present {
		return "<absent>"
	}

	return strconv.Quote(a.value)
}

// Handler is a unit of work bound to one option.
type Handler interface {
	ID() ID
	Dispatch(ctx context.Context, arg Arg) error
}

// HandlerFunc adapts a function into a [Handler] bound to Option.
type HandlerFunc struct {
	Option ID
	Func   func(ctx context.Context, arg Arg) error
}

// Func returns a [Handler] that calls fn for id.
func Func(id ID, fn func(ctx context.Context, arg Arg) error) HandlerFunc {
	return HandlerFunc{Option: id, Func: fn}
}

func (h HandlerFunc) ID() ID { return h.Option }

func (h HandlerFunc) Dispatch(ctx context.Context, arg Arg) error {
	return h.Func(ctx, arg)
}

type required struct{ Handler }

// Required wraps h so that dispatching it without a value fails with
// [ErrMissingArgument] before h runs.
func Required(h Handler) Handler { return required{h} }

func (r required) Dispatch(ctx context.Context, arg Arg) error {
	if !arg.Present() {
		name := r.ID().Name()

		return ErrMissingArgument.Wrapf("option %q requires a value", name).
			With(slog.String("option", name))
	}

	return r.Handler.Dispatch(ctx, arg)
}
