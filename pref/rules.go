package pref

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/ardnew/allot/pkg"
)

// Rule is a boolean expression over stored preferences, which are visible
// by key (LEVEL, CLOSE, ...). A rule holds when it evaluates to true.
type Rule struct {
	Name string
	Expr string
}

// ParseRule parses "name=expression".
func ParseRule(s string) (Rule, error) {
	name, source, ok := strings.Cut(s, "=")
	name, source = strings.TrimSpace(name), strings.TrimSpace(source)

	if !ok || name == "" || source == "" {
		return Rule{}, pkg.ErrRule.Wrapf("%q: want name=expression", s)
	}

	return Rule{Name: name, Expr: source}, nil
}

func (r Rule) String() string { return r.Name + "=" + r.Expr }

// DefaultRules returns the consistency rules checked by default.
func DefaultRules() []Rule {
	return []Rule{
		{"high-covers-close", `CLOSE == 0 || HIGH >= CLOSE`},
		{"distinct-directories", `SOURCE == "" || SOURCE != DESTINATION`},
		{"known-level", `LEVEL in ["TRACE", "DEBUG", "INFO", "WARN", "ERROR"]`},
		{"inflation-range", `INFLATION >= -20 && INFLATION <= 100`},
		{"threshold-range", `THRESHOLD >= 0 && THRESHOLD <= 100`},
		{"minimum-non-negative", `MINIMUM >= 0`},
	}
}

// Violation is a rule that evaluated to false.
type Violation struct {
	Rule Rule
}

func (v Violation) Error() string { return fmt.Sprintf("rule %s violated: %s", v.Rule.Name, v.Rule.Expr) }

// Check evaluates rules against the current preferences and returns the
// rules that do not hold.
func (s *Settings) Check(rules []Rule) ([]Violation, error) {
	env, err := s.Values()
	if err != nil {
		return nil, err
	}

	return Evaluate(env, rules)
}

// Evaluate evaluates rules against env.
func Evaluate(env map[string]any, rules []Rule) ([]Violation, error) {
	var violations []Violation

	for _, rule := range rules {
		program, err := expr.Compile(rule.Expr, expr.Env(env), expr.AsBool())
		if err != nil {
			return nil, pkg.ErrRule.Wrapf("%s", rule.Name).Wrap(err)
		}

		result, err := vm.Run(program, env)
		if err != nil {
			return nil, pkg.ErrRule.Wrapf("%s", rule.Name).Wrap(err)
		}

		if ok, _ := result.(bool); !ok {
			violations = append(violations, Violation{Rule: rule})
		}
	}

	return violations, nil
}

// LogValue implements [slog.LogValuer].
func (v Violation) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("rule", v.Rule.Name),
		slog.String("expr", v.Rule.Expr),
	)
}
