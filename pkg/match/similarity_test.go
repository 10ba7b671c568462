package match

import (
	"math"
	"testing"
)

func TestScoreIdentical(t *testing.T) {
	for _, s := range []string{"", "a", "General Hospital", "Élodie", "St. Mary"} {
		if got := Score(s, s); got != 1.0 {
			t.Errorf("Score(%q, %q) = %v, want 1.0", s, s, got)
		}
	}
}

func TestScoreCaseInsensitive(t *testing.T) {
	if got := Score("ABC", "abc"); got != 1.0 {
		t.Errorf("Score(ABC, abc) = %v, want 1.0", got)
	}
	if got := Score("General HOSPITAL", "general hospital"); got != 1.0 {
		t.Errorf("mixed case = %v, want 1.0", got)
	}
}

func TestScoreKittenSitting(t *testing.T) {
	// distance 3 over max length 7
	got := Score("kitten", "sitting")
	want := 1.0 - 3.0/7.0
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("Score(kitten, sitting) = %v, want %v", got, want)
	}
}

func TestScoreRange(t *testing.T) {
	pairs := [][2]string{
		{"", ""},
		{"", "abc"},
		{"abc", ""},
		{"hospital", "clinic"},
		{"aaaa", "bbbb"},
		{"Saint Mary's Hospital", "St. Mary Hospital"},
	}
	for _, p := range pairs {
		got := Score(p[0], p[1])
		if got < 0 || got > 1 {
			t.Errorf("Score(%q, %q) = %v, out of [0,1]", p[0], p[1], got)
		}
	}
}

func TestScoreSymmetric(t *testing.T) {
	pairs := [][2]string{
		{"kitten", "sitting"},
		{"hospital", "hospice"},
		{"", "x"},
	}
	for _, p := range pairs {
		ab := Score(p[0], p[1])
		ba := Score(p[1], p[0])
		if ab != ba {
			t.Errorf("Score(%q,%q) = %v but Score(%q,%q) = %v", p[0], p[1], ab, p[1], p[0], ba)
		}
	}
}

func TestScoreEmptyAgainstNonEmpty(t *testing.T) {
	if got := Score("", "abc"); got != 0.0 {
		t.Errorf("Score(\"\", abc) = %v, want 0.0", got)
	}
}

func TestLevenshteinUnicode(t *testing.T) {
	// One rune substitution, not a byte-level diff.
	ra := []rune("café")
	rb := []rune("cafe")
	if got := levenshtein(ra, rb); got != 1 {
		t.Errorf("levenshtein(café, cafe) = %d, want 1", got)
	}
}
