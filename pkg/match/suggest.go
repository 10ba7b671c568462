// CLAUDE:SUMMARY Ranks candidate clean names for a search term with a fixed substring floor.
package match

import (
	"sort"
	"strings"
)

const (
	// DefaultSuggestLimit caps ranked suggestion results.
	DefaultSuggestLimit = 20
	// DefaultSuggestMinScore is the minimum score for a ranked suggestion.
	DefaultSuggestMinScore = 0.3
	// BrowsePageSize caps the lexicographic listing returned for an empty
	// term. Distinct from DefaultSuggestLimit; the two are not interchangeable.
	BrowsePageSize = 50

	// substringFloor is the fixed score granted to an exact case-insensitive
	// substring hit, so substring hits rank at or above any fuzzy-only
	// candidate scoring below it.
	substringFloor = 0.8
)

// Suggest ranks clean names as assignment candidates for a term.
//
// An empty term browses: names sorted lexicographically, truncated to
// BrowsePageSize. Otherwise each name scores
// max(Score(term, name), substringFloor-if-substring); names with
// score > minScore are kept, sorted descending (stable), and truncated
// to limit. Non-positive limit and negative minScore fall back to the
// package defaults.
func Suggest(names []string, term string, limit int, minScore float64) []string {
	if limit <= 0 {
		limit = DefaultSuggestLimit
	}
	if minScore < 0 {
		minScore = DefaultSuggestMinScore
	}

	if term == "" {
		browse := make([]string, len(names))
		copy(browse, names)
		sort.Strings(browse)
		if len(browse) > BrowsePageSize {
			browse = browse[:BrowsePageSize]
		}
		return browse
	}

	type candidate struct {
		name  string
		score float64
	}

	needle := strings.ToLower(term)
	ranked := make([]candidate, 0, len(names))
	for _, name := range names {
		score := Score(term, name)
		if strings.Contains(strings.ToLower(name), needle) && score < substringFloor {
			score = substringFloor
		}
		if score > minScore {
			ranked = append(ranked, candidate{name: name, score: score})
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	out := make([]string, len(ranked))
	for i, c := range ranked {
		out[i] = c.name
	}
	return out
}
