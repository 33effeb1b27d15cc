package option

import "slices"

// Policy selects how a [Table] binds handlers and how a [Dispatcher] treats
// values and ordering.
type Policy int

const (
	// Simple keeps one handler per option, requires a value for every
	// option and dispatches in the order options were typed.
	Simple Policy = iota
	// Extended keeps every handler registered for an option, allows absent
	// values and dispatches in rank order.
	Extended
)

func (p Policy) String() string {
	switch p {
	case Simple:
		return "simple"
	case Extended:
		return "extended"
	default:
		return "unknown"
	}
}

// Table maps options to the handlers that serve them.
type Table struct {
	policy   Policy
	handlers map[ID][]Handler
	fallback Handler
}

// NewTable returns an empty table using policy.
func NewTable(policy Policy) *Table {
	return &Table{policy: policy, handlers: make(map[ID][]Handler)}
}

// Policy returns the table's policy.
func (t *Table) Policy() Policy { return t.policy }

// Register binds each handler to its option. Under [Simple] a handler
// replaces any earlier one for the same option; under [Extended] it is
// appended after them.
func (t *Table) Register(hs ...Handler) *Table {
	for _, h := range hs {
		id := h.ID()
		if t.policy == Simple {
			t.handlers[id] = []Handler{h}
		} else {
			t.handlers[id] = append(t.handlers[id], h)
		}
	}

	return t
}

// SetFallback sets the handler run when a command line holds no options.
func (t *Table) SetFallback(h Handler) *Table {
	t.fallback = h

	return t
}

// Lookup returns the handlers bound to id in registration order.
func (t *Table) Lookup(id ID) ([]Handler, bool) {
	hs, ok := t.handlers[id]
	if !ok || len(hs) == 0 {
		return nil, false
	}

	return slices.Clone(hs), true
}

// Fallback returns the fallback handler, if one is set.
func (t *Table) Fallback() (Handler, bool) { return t.fallback, t.fallback != nil }

// Vocabulary returns the options with at least one handler.
func (t *Table) Vocabulary() Vocabulary {
	ids := make([]ID, 0, len(t.handlers))
	for id, hs := range t.handlers {
		if len(hs) > 0 {
			ids = append(ids, id)
		}
	}

	return NewVocabulary(ids...)
}
