// Package cli contains the command line interface for allot.
//
// # Usage
//
// Root flags precede the command. Everything after pref or set is handed to
// the option dispatcher unparsed, so preference options may be abbreviated:
//
//	allot --store ~/prefs.yaml pref --close 4500 --lv debug
//	allot set --source ~/data --dest ~/out
//	allot pref              # report every preference
//	allot check --rule 'cap=HIGH < 100000'
//
// # Preference Store
//
// The store path comes from --store, then $ALLOT_STORE, then
// preferences.yaml in the user configuration directory. Its extension
// selects the encoding (yaml, yml, json or toml). The store is also a Kong
// configuration source: a stored LEVEL preference becomes the default of
// --log-level.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (json, text)
//   - --log-time-layout: Set timestamp format (RFC3339, Kitchen, none, ...)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Colorize log output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o allot .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory
package cli
