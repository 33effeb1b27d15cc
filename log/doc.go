// Package log provides a concurrency-safe simplified logging interface
// based on [log/slog].
//
// The package offers configurable time formatting, caller information,
// and output formats that are applied at logger creation time using
// functional options.
//
// # Basic Usage
//
//	logger := log.Make(os.Stderr)
//	logger.Info("preference written", slog.String("key", "LEVEL"))
//
// # Configuration
//
// Configure the logger using functional options:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithTimeLayout("RFC3339Nano"),
//		log.WithCaller(true))
//
// The package-level functions ([Info], [DebugContext], ...) write through a
// default logger that [Config] reconfigures in place. The allot CLI calls
// [Config] while parsing its --log-* flags and again whenever the LEVEL
// preference is written.
//
// # Supported Levels
//
// Five levels are supported: [LevelTrace], [LevelDebug], [LevelInfo],
// [LevelWarn], and [LevelError]. [Levels] enumerates their names, which is
// also the allowlist accepted by [LookupLevel].
//
// # Output Formats
//
// Two output formats are supported: [FormatJSON] and [FormatText] (default).
// Pretty printing colourises text output with lipgloss styles; styles
// degrade to plain text when the output is not a terminal.
package log
