package editor

import (
	"fmt"
	"regexp"
	"unicode/utf8"
)

type searcher struct {
	re *regexp.Regexp
}

// SearchPattern returns the active search pattern.
func (d *Document) SearchPattern() string {
	return d.pattern
}

// SetSearchPattern compiles pattern as a regular expression. An empty pattern
// clears the search. A malformed pattern leaves the previous one in place.
func (d *Document) SetSearchPattern(pattern string) error {
	if pattern == "" {
		d.pattern = ""
		d.search.re = nil
		return nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return fmt.Errorf("invalid search pattern %q: %w", pattern, err)
	}
	d.pattern = pattern
	d.search.re = re
	return nil
}

// matchColumns returns the rune columns where the pattern matches in row.
func (d *Document) matchColumns(row int) []int {
	line := string(d.lines[row])
	locs := d.search.re.FindAllStringIndex(line, -1)
	cols := make([]int, 0, len(locs))
	for _, loc := range locs {
		if loc[0] == loc[1] && loc[0] == len(line) && len(line) > 0 {
			continue
		}
		cols = append(cols, utf8.RuneCountInString(line[:loc[0]]))
	}
	return cols
}

// SearchForward moves the cursor to the next match, wrapping at the end of
// the document. With matchCursor a match starting at the cursor counts.
func (d *Document) SearchForward(matchCursor bool) bool {
	if d.search.re == nil {
		return false
	}
	n := len(d.lines)
	for i := 0; i <= n; i++ {
		row := (d.cursor.Row + i) % n
		for _, col := range d.matchColumns(row) {
			if i == 0 && (col < d.cursor.Col || (col == d.cursor.Col && !matchCursor)) {
				continue
			}
			if i == n && col >= d.cursor.Col {
				break
			}
			d.cursor = Position{Row: row, Col: col}
			return true
		}
	}
	return false
}

// SearchBack moves the cursor to the previous match, wrapping at the start
// of the document.
func (d *Document) SearchBack(matchCursor bool) bool {
	if d.search.re == nil {
		return false
	}
	n := len(d.lines)
	for i := 0; i <= n; i++ {
		row := ((d.cursor.Row-i)%n + n) % n
		cols := d.matchColumns(row)
		for j := len(cols) - 1; j >= 0; j-- {
			col := cols[j]
			if i == 0 && (col > d.cursor.Col || (col == d.cursor.Col && !matchCursor)) {
				continue
			}
			if i == n && col <= d.cursor.Col {
				break
			}
			d.cursor = Position{Row: row, Col: col}
			return true
		}
	}
	return false
}
