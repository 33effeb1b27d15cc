// Package pref binds the command-line options to persisted preferences.
//
// Each option is served by a [Preference], a typed handler that reports the
// stored value when dispatched without an argument and parses, validates and
// writes a new value otherwise. [Settings] builds one preference per option
// over a shared [store.Store] and assembles them into the two dispatch
// surfaces: [Settings.Extended] for the pref command and [Settings.Simple]
// for the set command.
package pref
