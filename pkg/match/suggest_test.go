package match

import (
	"fmt"
	"sort"
	"testing"
)

func TestSuggestSubstringFloor(t *testing.T) {
	names := []string{"Saint Mary's Hospital", "St. Mary Hospital"}
	got := Suggest(names, "mary", DefaultSuggestLimit, DefaultSuggestMinScore)

	if len(got) != 2 {
		t.Fatalf("results = %d, want 2 (both contain the term)", len(got))
	}
	// Both are substring hits, so both carry at least the 0.8 floor and
	// survive the 0.3 cutoff even though their fuzzy scores are low.
	for _, name := range names {
		found := false
		for _, g := range got {
			if g == name {
				found = true
			}
		}
		if !found {
			t.Errorf("missing %q in %v", name, got)
		}
	}
}

func TestSuggestEmptyTermBrowses(t *testing.T) {
	names := []string{"Zeta Clinic", "Alpha Hospital", "Mercy Care"}
	got := Suggest(names, "", DefaultSuggestLimit, DefaultSuggestMinScore)

	if len(got) != 3 {
		t.Fatalf("results = %d, want 3", len(got))
	}
	if !sort.StringsAreSorted(got) {
		t.Errorf("browse listing not lexicographic: %v", got)
	}
}

func TestSuggestBrowsePageSize(t *testing.T) {
	names := make([]string, BrowsePageSize+17)
	for i := range names {
		names[i] = fmt.Sprintf("Facility %03d", i)
	}
	got := Suggest(names, "", DefaultSuggestLimit, DefaultSuggestMinScore)

	// The browse cap is its own constant, not the ranked-result limit.
	if len(got) != BrowsePageSize {
		t.Errorf("browse results = %d, want %d", len(got), BrowsePageSize)
	}
}

func TestSuggestRankedLimit(t *testing.T) {
	names := make([]string, 40)
	for i := range names {
		names[i] = fmt.Sprintf("Mercy Hospital %02d", i)
	}
	got := Suggest(names, "mercy", 0, DefaultSuggestMinScore)
	if len(got) != DefaultSuggestLimit {
		t.Errorf("ranked results = %d, want default limit %d", len(got), DefaultSuggestLimit)
	}
}

func TestSuggestMinScoreStrict(t *testing.T) {
	// A name unrelated to the term scores near zero and is dropped.
	got := Suggest([]string{"zzzzzzzzzz"}, "mercy", DefaultSuggestLimit, DefaultSuggestMinScore)
	if len(got) != 0 {
		t.Errorf("results = %v, want none above min score", got)
	}
}

func TestSuggestStableOnTies(t *testing.T) {
	// Identical names tie exactly; insertion order must survive the sort.
	names := []string{"Mercy Hospital", "General Hospital", "Mercy Hospital"}
	got := Suggest(names, "mercy hospital", DefaultSuggestLimit, 0)

	if len(got) < 2 {
		t.Fatalf("results = %v, want at least the two exact ties", got)
	}
	if got[0] != "Mercy Hospital" || got[1] != "Mercy Hospital" {
		t.Errorf("ties reordered: %v", got)
	}
}

func TestSuggestFuzzyAboveFloorOutranksSubstring(t *testing.T) {
	// "Mercy Hospitall" has no substring hit but scores above 0.8 against
	// the full term, so it may legitimately outrank a floor-scored name.
	names := []string{"xx Mercy Hospital xxxxxxxxxxxx", "Mercy Hospitall"}
	got := Suggest(names, "Mercy Hospital", DefaultSuggestLimit, DefaultSuggestMinScore)

	if len(got) != 2 {
		t.Fatalf("results = %v, want 2", got)
	}
	if got[0] != "Mercy Hospitall" {
		t.Errorf("first = %q, want the high-scoring fuzzy name", got[0])
	}
}
