package option

import "strconv"

// Kind distinguishes the two token shapes.
type Kind int

const (
	Positional Kind = iota
	Option
)

func (k Kind) String() string {
	switch k {
	case Positional:
		return "positional"
	case Option:
		return "option"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Token is one lexical unit of the command line.
//
// A positional token carries its text in Value and [None] in ID. An option
// token carries the resolved ID and the name as typed in Value; an option
// whose name matched nothing has ID [None].
type Token struct {
	Kind  Kind
	ID    ID
	Value string
}

// PositionalToken returns a positional token holding value.
func PositionalToken(value string) Token {
	return Token{Kind: Positional, Value: value}
}

// OptionToken returns an option token for id typed as name.
func OptionToken(id ID, name string) Token {
	return Token{Kind: Option, ID: id, Value: name}
}

func (t Token) String() string {
	if t.Kind == Option {
		if t.ID == None {
			return "option(?" + t.Value + ")"
		}

		return "option(" + t.ID.Name() + ")"
	}

	return strconv.Quote(t.Value)
}
