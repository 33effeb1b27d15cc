package cli

import (
	"io"
	"log/slog"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/allot/log"
	"github.com/ardnew/allot/option"
	"github.com/ardnew/allot/store"
)

// flagPreferences maps flags to the preference supplying their default.
//
//nolint:gochecknoglobals
var flagPreferences = map[string]option.ID{
	"log-level": option.Level,
}

// resolve returns a [kong.ConfigurationLoader] that reads a preference store
// encoded in format and resolves flag defaults from it.
//
// It can be used with [kong.Configuration] like this:
//
//	kong.Configuration(resolve(store.FormatYAML), "/path/to/preferences.yaml")
//
// Command-line flags override stored preferences. A store that cannot be
// decoded resolves nothing; the error surfaces again when the command opens
// the store.
func resolve(format store.Format) kong.ConfigurationLoader {
	return func(r io.Reader) (kong.Resolver, error) {
		data, err := format.Decode(r)
		if err != nil {
			log.Debug("preference store not usable for flag defaults",
				slog.Any("error", err))

			return preferences{}, nil
		}

		return preferences(data), nil
	}
}

// preferences implements [kong.Resolver] over stored preference values.
type preferences map[string]string

// Validate implements [kong.Resolver].
func (preferences) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver].
func (p preferences) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	id, ok := flagPreferences[flag.Name]
	if !ok {
		return nil, nil
	}

	value, ok := p[id.Key()]
	if !ok {
		return nil, nil
	}

	return strings.ToLower(value), nil
}
