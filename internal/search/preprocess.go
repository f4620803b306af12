package search

import (
	"bufio"
	"strings"
)

// maxLine caps a single input line.
const maxLine = 1024 * 1024

// FlattenText prepares raw hotel information pasted by an operator (often
// copied from spreadsheets or Markdown) for structuring: every table row
// becomes one plain fact with its cells joined by spaces, separator rows are
// dropped, blank runs collapse, and surrounding spaces are trimmed. The
// result holds one fact per line with no trailing newline.
//
// An error is returned only for lines longer than 1 MiB.
func FlattenText(raw string) (string, error) {
	var facts []string
	sc := bufio.NewScanner(strings.NewReader(raw))
	sc.Buffer(make([]byte, 0, 64*1024), maxLine)

	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}

		// table row: "| ... |"
		if strings.HasPrefix(line, "|") && strings.HasSuffix(line, "|") {
			cells, sep := tableCells(line)
			if sep || len(cells) == 0 {
				continue
			}
			facts = append(facts, strings.Join(cells, " "))
			continue
		}

		facts = append(facts, normalizeWhitespace(line))
	}
	if err := sc.Err(); err != nil {
		return "", err
	}
	return strings.Join(facts, "\n"), nil
}

// tableCells returns the non-empty cells of a table row and whether the row
// is a header separator ("| --- | :-: |").
func tableCells(line string) (cells []string, separator bool) {
	separator = true
	for _, c := range strings.Split(strings.Trim(line, "|"), "|") {
		cell := strings.TrimSpace(c)
		if cell != "" {
			cells = append(cells, normalizeWhitespace(cell))
		}
		if strings.Trim(cell, ":- ") != "" {
			separator = false
		}
	}
	return cells, separator
}

func normalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
