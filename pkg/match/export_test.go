package match

import "testing"

func TestExportExactShape(t *testing.T) {
	inputs := []RawInput{{ID: 0, Text: "A, Hospital"}}
	matches := map[int]string{0: "Clean A"}

	got := Export(inputs, matches)
	want := "Raw Input,Matched Clean Name\n\"A, Hospital\",\"Clean A\""
	if got != want {
		t.Errorf("export = %q, want %q", got, want)
	}
}

func TestExportUnmatchedEmptyColumn(t *testing.T) {
	inputs := []RawInput{
		{ID: 0, Text: "General Hospital"},
		{ID: 1, Text: "St Mary Clinic"},
	}
	matches := map[int]string{0: "General Hospital (Main)"}

	got := Export(inputs, matches)
	want := "Raw Input,Matched Clean Name\n\"General Hospital\",\"General Hospital (Main)\"\n\"St Mary Clinic\",\"\""
	if got != want {
		t.Errorf("export = %q, want %q", got, want)
	}
}

func TestExportNoRows(t *testing.T) {
	if got := Export(nil, nil); got != ExportHeader {
		t.Errorf("export = %q, want bare header", got)
	}
}

func TestExportQuotesPassThrough(t *testing.T) {
	// Embedded quotes are not escaped; the legacy consumer gets them raw.
	inputs := []RawInput{{ID: 0, Text: `The "Best" Clinic`}}
	got := Export(inputs, map[int]string{})
	want := "Raw Input,Matched Clean Name\n\"The \"Best\" Clinic\",\"\""
	if got != want {
		t.Errorf("export = %q, want %q", got, want)
	}
}
