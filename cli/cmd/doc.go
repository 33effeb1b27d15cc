// Package cmd implements the allot subcommands.
//
// Commands read their dependencies from the [context.Context] passed to Run;
// the cli package installs them with [WithEnv] after parsing the command
// line.
package cmd

// StoreIdentifier is the kong variable identifier containing the default
// path of the preference store.
const StoreIdentifier = "store"
