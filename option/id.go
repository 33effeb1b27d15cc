package option

import (
	"fmt"
	"iter"
	"strings"
)

// ID identifies a recognized command-line option. The zero value [None] is
// not an option. Declaration order is the dispatch rank used by [Extended]
// tables.
type ID int

const (
	None ID = iota // none

	Reset       // reset
	Level       // level
	Source      // source
	Destination // destination
	Library     // library
	Currency    // currency
	Inflation   // inflation
	Close       // close
	High        // high
	Threshold   // threshold
	Minimum     // minimum

	numIDs
)

type descriptor struct {
	name        string
	description string
	argument    string
	mandatory   bool
}

//nolint:gochecknoglobals
var descriptors = [numIDs]descriptor{
	None: {name: "none"},
	Reset: {
		name:        "reset",
		description: "Restore preferences to their defaults (all, or a comma-separated list)",
	},
	Level: {
		name:        "level",
		description: "Log severity (trace, debug, info, warn, error)",
		argument:    "severity",
		mandatory:   true,
	},
	Source: {
		name:        "source",
		description: "Directory holding the input data files",
		argument:    "directory",
		mandatory:   true,
	},
	Destination: {
		name:        "destination",
		description: "Directory receiving generated reports",
		argument:    "directory",
		mandatory:   true,
	},
	Library: {
		name:        "library",
		description: "Prepend directories to the data search path",
		argument:    "directories",
		mandatory:   true,
	},
	Currency: {
		name:        "currency",
		description: "ISO 4217 reporting currency",
		argument:    "code",
		mandatory:   true,
	},
	Inflation: {
		name:        "inflation",
		description: "Expected annual inflation rate in percent",
		argument:    "percent",
		mandatory:   true,
	},
	Close: {
		name:        "close",
		description: "Last close of the market index (raises high when above it)",
		argument:    "price",
		mandatory:   true,
	},
	High: {
		name:        "high",
		description: "High-water mark of the market index",
		argument:    "price",
		mandatory:   true,
	},
	Threshold: {
		name:        "threshold",
		description: "Allocation drift in percent that triggers a rebalance",
		argument:    "percent",
		mandatory:   true,
	},
	Minimum: {
		name:        "minimum",
		description: "Smallest trade amount in the reporting currency",
		argument:    "amount",
		mandatory:   true,
	},
}

// IDs returns an iterator over every option in rank order, excluding [None].
func IDs() iter.Seq[ID] {
	return func(yield func(ID) bool) {
		for id := None + 1; id < numIDs; id++ {
			if !yield(id) {
				return
			}
		}
	}
}

// Valid reports whether id names an option.
func (id ID) Valid() bool { return id > None && id < numIDs }

// Name returns the canonical lower-case name typed on the command line.
func (id ID) Name() string {
	if id < None || id >= numIDs {
		return ""
	}

	return descriptors[id].name
}

// Key returns the symbolic name under which the option's preference is
// persisted.
func (id ID) Key() string { return strings.ToUpper(id.Name()) }

// Description returns a one-line human-readable summary.
func (id ID) Description() string {
	if !id.Valid() {
		return ""
	}

	return descriptors[id].description
}

// Argument returns the display name of the option's value, or "" if the
// option takes none.
func (id ID) Argument() string {
	if !id.Valid() {
		return ""
	}

	return descriptors[id].argument
}

// Mandatory reports whether the option declares a required value. The flag
// is advisory: only [Simple] tables enforce values, and they enforce them for
// every option.
func (id ID) Mandatory() bool {
	return id.Valid() && descriptors[id].mandatory
}

// Rank returns the dispatch order of id among all options.
func (id ID) Rank() int { return int(id) }

// String returns the canonical name, or a numeric form for values outside
// the enumeration.
func (id ID) String() string {
	if name := id.Name(); name != "" {
		return name
	}

	return fmt.Sprintf("ID(%d)", int(id))
}

// LookupKey returns the option persisted under key, ignoring case.
func LookupKey(key string) (ID, bool) {
	for id := range IDs() {
		if strings.EqualFold(id.Key(), key) {
			return id, true
		}
	}

	return None, false
}
