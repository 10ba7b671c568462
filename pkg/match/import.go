// CLAUDE:SUMMARY Newline-delimited import reader with optional source-encoding transcode.
package match

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// ReadLines reads newline-delimited entries from r. Each non-blank line,
// with a trailing CR trimmed, becomes one entry verbatim; there is no
// delimiter-aware column parsing, so a multi-column line stays one entry
// including its delimiters. An empty or all-blank source yields an empty
// slice, not an error.
//
// A non-empty encoding names the source charset (IANA/WHATWG label, e.g.
// "windows-1252"); the input is transcoded to UTF-8 before splitting.
func ReadLines(r io.Reader, encoding string) ([]string, error) {
	if encoding != "" && !isUTF8(encoding) {
		e, err := htmlindex.Get(encoding)
		if err != nil {
			return nil, fmt.Errorf("unsupported encoding %q: %w", encoding, err)
		}
		r = transform.NewReader(r, e.NewDecoder())
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var lines []string
	for sc.Scan() {
		line := strings.TrimSuffix(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read lines: %w", err)
	}
	return lines, nil
}

func isUTF8(enc string) bool {
	e := strings.ToLower(strings.ReplaceAll(enc, "-", ""))
	return e == "utf8" || e == ""
}
