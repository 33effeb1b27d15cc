package option

import (
	"slices"
	"strings"

	"github.com/sahilm/fuzzy"
)

// Vocabulary is the set of options a lexer resolves names against, kept in
// rank order.
type Vocabulary []ID

// All returns a vocabulary containing every option.
func All() Vocabulary { return slices.Collect(IDs()) }

// NewVocabulary returns the valid, distinct ids in rank order.
func NewVocabulary(ids ...ID) Vocabulary {
	v := make(Vocabulary, 0, len(ids))

	for _, id := range ids {
		if id.Valid() {
			v = append(v, id)
		}
	}

	slices.Sort(v)

	return slices.Compact(v)
}

// Names returns the canonical names of v in rank order.
func (v Vocabulary) Names() []string {
	names := make([]string, len(v))
	for i, id := range v {
		names[i] = id.Name()
	}

	return names
}

// Contains reports whether id is a member of v.
func (v Vocabulary) Contains(id ID) bool { return slices.Contains(v, id) }

// Match resolves candidate to a member of v.
//
// It returns the winning ID and nil on success. When nothing matches it
// returns [None] and nil. When a tier yields several entries it returns
// [None] and those entries in rank order.
func (v Vocabulary) Match(candidate string) (ID, []ID) {
	name := strings.ToLower(candidate)

	var prefixed []ID

	for _, id := range v {
		entry := id.Name()
		if entry == name {
			return id, nil
		}

		if strings.HasPrefix(entry, name) || strings.HasPrefix(name, entry) {
			prefixed = append(prefixed, id)
		}
	}

	if len(prefixed) > 0 {
		return decide(prefixed)
	}

	return decide(v.abbreviations(name))
}

// decide returns the single member of ids, or [None] and every member when
// there is more than one.
func decide(ids []ID) (ID, []ID) {
	switch len(ids) {
	case 0:
		return None, nil
	case 1:
		return ids[0], nil
	default:
		return None, ids
	}
}

// abbreviations returns the entries that start with the first letter of
// name and contain every letter of name in order.
func (v Vocabulary) abbreviations(name string) []ID {
	if len(name) < 2 {
		return nil
	}

	names := v.Names()

	var ids []ID

	for _, m := range fuzzy.Find(name, names) {
		if names[m.Index][0] == name[0] {
			ids = append(ids, v[m.Index])
		}
	}

	slices.Sort(ids)

	return ids
}

// Suggest returns up to limit names of v that resemble name, best first.
func (v Vocabulary) Suggest(name string, limit int) []string {
	name = strings.ToLower(name)
	if name == "" || limit <= 0 {
		return nil
	}

	var suggestions []string

	for _, m := range fuzzy.Find(name, v.Names()) {
		suggestions = append(suggestions, m.Str)
	}

	// Names that share a leading letter are plausible even without an
	// in-order match ("lvl" typed as "lelv").
	for _, entry := range v.Names() {
		if entry[0] == name[0] && !slices.Contains(suggestions, entry) {
			suggestions = append(suggestions, entry)
		}
	}

	if len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}

	return suggestions
}
