package pref

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/ardnew/allot/option"
	"github.com/ardnew/allot/pkg"
)

// Usage rendering styles.
const (
	StyleAuto  = "auto"
	StylePlain = "notty"
	StyleDark  = "dark"
	StyleLight = "light"
)

// UsageWidth is the column at which rendered usage text wraps.
const UsageWidth = 80

// Usage returns a Markdown summary of the options in vocab.
func Usage(vocab option.Vocabulary) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# %s\n\n%s.\n\n", pkg.Name, pkg.Description)
	sb.WriteString("| Option | Value | Description |\n")
	sb.WriteString("|--------|-------|-------------|\n")

	for _, id := range vocab {
		arg := id.Argument()
		if arg != "" {
			arg = "*" + arg + "*"
		}

		fmt.Fprintf(&sb, "| `--%s` | %s | %s |\n", id.Name(), arg, id.Description())
	}

	sb.WriteString("\nOption names are case-insensitive and may be shortened to any " +
		"unambiguous prefix or abbreviation (`-lv` for `--level`). " +
		"Values follow the option (`--close 4500`) or are joined with `=` " +
		"(`--close=4500`). A lone `--` ends option parsing.\n")

	return sb.String()
}

// Render formats markdown for a terminal using the named glamour style.
func Render(markdown, style string) (string, error) {
	styleOpt := glamour.WithStandardStyle(style)
	if style == StyleAuto {
		styleOpt = glamour.WithAutoStyle()
	}

	r, err := glamour.NewTermRenderer(styleOpt, glamour.WithWordWrap(UsageWidth))
	if err != nil {
		return "", err
	}

	return r.Render(markdown)
}

// WriteUsage renders the usage summary of vocab to w.
func WriteUsage(w io.Writer, vocab option.Vocabulary, style string) error {
	out, err := Render(Usage(vocab), style)
	if err != nil {
		return err
	}

	_, err = io.WriteString(w, out)

	return err
}
