package pref

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/ardnew/mung"
	"github.com/shopspring/decimal"

	"github.com/ardnew/allot/log"
)

var (
	errEmpty       = errors.New("empty value")
	errNotDir      = errors.New("not a directory")
	errNotPositive = errors.New("must be greater than zero")
	errNegative    = errors.New("must not be negative")
)

// priceScale is the number of decimal places kept for index prices and
// percentages.
const priceScale = 2

func parseDecimal(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, errEmpty
	}

	return decimal.NewFromString(s)
}

// parsePercent accepts a decimal with an optional trailing "%".
func parsePercent(s string) (decimal.Decimal, error) {
	return parseDecimal(strings.TrimSuffix(strings.TrimSpace(s), "%"))
}

func formatFixed(v decimal.Decimal) string { return v.StringFixed(priceScale) }

// between returns a validator accepting values in [lo, hi].
func between(lo, hi int64) func(decimal.Decimal) error {
	return func(v decimal.Decimal) error {
		if v.LessThan(decimal.NewFromInt(lo)) || v.GreaterThan(decimal.NewFromInt(hi)) {
			return fmt.Errorf("must be between %d and %d", lo, hi)
		}

		return nil
	}
}

func positive(v decimal.Decimal) error {
	if !v.IsPositive() {
		return errNotPositive
	}

	return nil
}

// parseLevel accepts the level names and slog offsets such as "INFO+2";
// offsets are rejected later by validLevel.
func parseLevel(s string) (log.Level, error) {
	if level, ok := log.LookupLevel(s); ok {
		return level, nil
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return log.DefaultLevel, err
	}

	return log.Level(level), nil
}

func validLevel(level log.Level) error {
	names := slices.Collect(log.Levels())
	if !slices.Contains(names, level.String()) {
		return fmt.Errorf("severity must be one of %s", strings.Join(names, ", "))
	}

	return nil
}

func formatLevel(level log.Level) string { return strings.ToUpper(level.String()) }

// parseDirectory returns the absolute form of s, expanding a leading "~".
func parseDirectory(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", errEmpty
	}

	if s == "~" || strings.HasPrefix(s, "~"+string(filepath.Separator)) {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}

		s = filepath.Join(home, s[1:])
	}

	return filepath.Abs(s)
}

func isDirectory(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	if !info.IsDir() {
		return fmt.Errorf("%s: %w", path, errNotDir)
	}

	return nil
}

func identity(s string) string { return s }

// splitList returns the non-empty elements of a PATH-like list.
func splitList(s string) []string {
	return slices.DeleteFunc(filepath.SplitList(s), func(e string) bool {
		return strings.TrimSpace(e) == ""
	})
}

func joinList(elems []string) string {
	return strings.Join(elems, string(os.PathListSeparator))
}

// parseLibrary resolves every element of a PATH-like list.
func parseLibrary(s string) (string, error) {
	elems := splitList(s)
	if len(elems) == 0 {
		return "", errEmpty
	}

	for i, e := range elems {
		dir, err := parseDirectory(e)
		if err != nil {
			return "", err
		}

		elems[i] = dir
	}

	return joinList(elems), nil
}

func validLibrary(s string) error {
	for _, e := range splitList(s) {
		if err := isDirectory(e); err != nil {
			return err
		}
	}

	return nil
}

// prependLibrary places the directories of next ahead of current.
func prependLibrary(current, next string) string {
	if current == "" {
		return next
	}

	return mung.Make(
		mung.WithSubjectItems(current),
		mung.WithDelim(string(os.PathListSeparator)),
		mung.WithPrefixItems(splitList(next)...),
	).String()
}

func parseCurrency(s string) (string, error) {
	code := strings.ToUpper(strings.TrimSpace(s))
	if code == "" {
		return "", errEmpty
	}

	return code, nil
}

func validCurrency(code string) error {
	if money.GetCurrency(code) == nil {
		return fmt.Errorf("unknown ISO 4217 currency code %q", code)
	}

	return nil
}

// currencyOf returns the currency for code, falling back to the default
// reporting currency.
func currencyOf(code string) *money.Currency {
	if c := money.GetCurrency(code); c != nil {
		return c
	}

	return money.GetCurrency(DefaultCurrency)
}

// parseAmount accepts a plain decimal or an amount written in the notation
// of c, such as "$1,250.50" or "1.250,50 €".
func parseAmount(c *money.Currency, s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)

	if c != nil && c.Grapheme != "" && strings.Contains(s, c.Grapheme) {
		s = strings.TrimSpace(strings.ReplaceAll(s, c.Grapheme, ""))
		s = strings.ReplaceAll(s, c.Thousand, "")
		s = strings.ReplaceAll(s, c.Decimal, ".")
	}

	return parseDecimal(s)
}

// validAmount rejects negative amounts and amounts finer than the minor unit
// of c.
func validAmount(c *money.Currency, v decimal.Decimal) error {
	if v.IsNegative() {
		return errNegative
	}

	if !v.Equal(v.Truncate(int32(c.Fraction))) {
		return fmt.Errorf("%s allows at most %d decimal places", c.Code, c.Fraction)
	}

	return nil
}

// displayAmount renders v with the symbol and separators of c.
func displayAmount(c *money.Currency, v decimal.Decimal) string {
	minor := v.Shift(int32(c.Fraction)).IntPart()

	return money.New(minor, c.Code).Display()
}
