// CLAUDE:SUMMARY Stateless filter/rank engine selecting raw inputs by keyword containment or similarity threshold.
package match

import (
	"sort"
	"strings"
)

// RawInput is one imported free-text facility name. ID is the dense
// zero-based line index assigned at import time; it is stable for the
// lifetime of the current import batch.
type RawInput struct {
	ID   int    `json:"id"`
	Text string `json:"text"`
}

// FilterResult is one raw input selected by Filter, with its similarity
// score against the search term and whether the term occurred as a
// case-insensitive substring.
type FilterResult struct {
	Input        RawInput `json:"input"`
	Score        float64  `json:"score"`
	KeywordMatch bool     `json:"keyword_match"`
}

// Filter selects and ranks raw inputs against a search term.
//
// An empty term returns every input in original order, unscored. Otherwise
// each input is scored unconditionally (callers display the score even for
// keyword hits) and kept when the term is contained case-insensitively in
// its text or the score reaches threshold. Results are sorted descending by
// score with a stable sort, so ties keep their original relative order.
//
// Filter is stateless and recomputes fully on every call; debouncing of
// term changes is the caller's concern.
func Filter(inputs []RawInput, term string, threshold float64) []FilterResult {
	if term == "" {
		results := make([]FilterResult, len(inputs))
		for i, in := range inputs {
			results[i] = FilterResult{Input: in}
		}
		return results
	}

	needle := strings.ToLower(term)
	results := make([]FilterResult, 0, len(inputs))
	for _, in := range inputs {
		keyword := strings.Contains(strings.ToLower(in.Text), needle)
		score := Score(term, in.Text)
		if !keyword && score < threshold {
			continue
		}
		results = append(results, FilterResult{
			Input:        in,
			Score:        score,
			KeywordMatch: keyword,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results
}
