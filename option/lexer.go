package option

import (
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"
)

// Lexer converts raw arguments into tokens.
type Lexer struct {
	vocab   Vocabulary
	numbers bool
}

// LexOption configures a [Lexer].
type LexOption func(Lexer) Lexer

// WithNumbers makes the lexer emit a single-hyphen argument that parses as a
// signed decimal ("-3.5", "-1e3") as a positional value instead of an option.
func WithNumbers(enable bool) LexOption {
	return func(l Lexer) Lexer {
		l.numbers = enable

		return l
	}
}

// NewLexer returns a lexer resolving option names against vocab.
func NewLexer(vocab Vocabulary, opts ...LexOption) Lexer {
	l := Lexer{vocab: vocab}
	for _, opt := range opts {
		l = opt(l)
	}

	return l
}

// Tokenize is shorthand for NewLexer(vocab, opts...).Tokenize(args).
func Tokenize(args []string, vocab Vocabulary, opts ...LexOption) ([]Token, error) {
	return NewLexer(vocab, opts...).Tokenize(args)
}

// Vocabulary returns the vocabulary l resolves names against.
func (l Lexer) Vocabulary() Vocabulary { return l.vocab }

// Tokenize returns the tokens of args in input order.
func (l Lexer) Tokenize(args []string) ([]Token, error) {
	toks := make([]Token, 0, len(args))

	for i, arg := range args {
		switch arg {
		case "--":
			for _, rest := range args[i+1:] {
				toks = append(toks, PositionalToken(rest))
			}

			return toks, nil

		case "-":
			toks = append(toks, PositionalToken(arg))

			continue
		}

		next, err := l.lex(arg)
		if err != nil {
			return nil, err
		}

		toks = append(toks, next...)
	}

	return toks, nil
}

func (l Lexer) lex(arg string) ([]Token, error) {
	p := pieces(arg)

	switch len(p) {
	case 0:
		panic("option: argument split into zero pieces: " + arg)

	case 1:
		return []Token{PositionalToken(arg)}, nil

	case 2:
		if l.numbers && isNumber(arg) {
			return []Token{PositionalToken(arg)}, nil
		}

		return l.option(p[1])

	case 3:
		return l.option(p[2])

	default:
		return nil, ErrSyntax.Wrapf("too many hyphens in %q", arg).
			With(slog.String("arg", arg))
	}
}

// pieces splits arg at each leading hyphen: n leading hyphens produce n empty
// pieces followed by the remainder.
func pieces(arg string) []string {
	rest := strings.TrimLeft(arg, "-")
	p := make([]string, len(arg)-len(rest)+1)
	p[len(p)-1] = rest

	return p
}

func isNumber(arg string) bool {
	_, err := decimal.NewFromString(arg)

	return err == nil
}

// option resolves an option body, with its leading hyphens removed, into an
// option token and an optional trailing positional value.
func (l Lexer) option(body string) ([]Token, error) {
	name, value, inline := strings.Cut(body, "=")

	toks := make([]Token, 0, 2)

	if name != "" {
		tok, err := l.resolve(name)
		if err != nil {
			return nil, err
		}

		toks = append(toks, tok)
	}

	if inline && value != "" {
		toks = append(toks, PositionalToken(value))
	}

	return toks, nil
}

func (l Lexer) resolve(name string) (Token, error) {
	id, candidates := l.vocab.Match(name)
	if len(candidates) > 1 {
		names := make([]string, len(candidates))
		for i, c := range candidates {
			names[i] = c.Name()
		}

		return Token{}, ErrAmbiguous.Wrapf("%q could be %s", name, strings.Join(names, ", ")).
			With(slog.String("option", name), slog.Any("candidates", names))
	}

	return OptionToken(id, name), nil
}
