// CLAUDE:SUMMARY Legacy two-column quoted CSV export of raw inputs and their assignments.
package match

import (
	"fmt"
	"io"
	"strings"
)

// ExportHeader is the fixed first line of the export format.
const ExportHeader = "Raw Input,Matched Clean Name"

// WriteExport writes the session's export: the header, then one row per raw
// input in original order, both columns quoted, the second empty when
// unmatched. No trailing newline after the last row.
//
// Embedded quote characters are NOT escaped. The format is consumed by a
// legacy downstream that expects exactly this shape; a name containing a
// double quote produces a malformed row. Known limitation, reproduced
// deliberately.
func WriteExport(w io.Writer, inputs []RawInput, matches map[int]string) error {
	if _, err := io.WriteString(w, ExportHeader); err != nil {
		return fmt.Errorf("write export header: %w", err)
	}
	for _, in := range inputs {
		// Plain quote wrapping, not %q: embedded quotes must pass through
		// unescaped to match the legacy shape.
		if _, err := fmt.Fprintf(w, "\n\"%s\",\"%s\"", in.Text, matches[in.ID]); err != nil {
			return fmt.Errorf("write export row %d: %w", in.ID, err)
		}
	}
	return nil
}

// Export renders the export format to a string.
func Export(inputs []RawInput, matches map[int]string) string {
	var b strings.Builder
	// strings.Builder never returns a write error.
	_ = WriteExport(&b, inputs, matches)
	return b.String()
}
