// Package link recognises wiki-style [[target|alias]] spans and resolves them
// against the note registry.
package link

import (
	"regexp"
	"strings"
)

// DefaultExtension is appended to link targets to form note paths.
const DefaultExtension = ".md"

const (
	openMark  = "[["
	closeMark = "]]"
)

var spanRe = regexp.MustCompile(`\[\[(.*?)\]\]`)

// Span is a closed [[...]] link on one line, in rune columns. End is
// exclusive and points past the closing brackets.
type Span struct {
	Start  int
	End    int
	Target string
	Alias  string
}

// Parse splits the inside of a link into target and alias. A #heading
// suffix on the target is dropped.
func Parse(inner string) (target, alias string) {
	target = inner
	if idx := strings.Index(inner, "|"); idx >= 0 {
		target, alias = inner[:idx], inner[idx+1:]
	}
	if idx := strings.Index(target, "#"); idx >= 0 {
		target = target[:idx]
	}
	return strings.TrimSpace(target), strings.TrimSpace(alias)
}

// Spans returns every closed link on line.
func Spans(line string) []Span {
	locs := spanRe.FindAllStringSubmatchIndex(line, -1)
	spans := make([]Span, 0, len(locs))
	for _, loc := range locs {
		target, alias := Parse(line[loc[2]:loc[3]])
		spans = append(spans, Span{
			Start:  runeCol(line, loc[0]),
			End:    runeCol(line, loc[1]),
			Target: target,
			Alias:  alias,
		})
	}
	return spans
}

// SpanAt picks the closed span containing col, or failing that the last
// span that ends before col.
func SpanAt(line string, col int) (Span, bool) {
	var before *Span
	spans := Spans(line)
	for i := range spans {
		span := spans[i]
		if span.Start <= col && col < span.End {
			return span, true
		}
		if span.End <= col {
			before = &spans[i]
		}
	}
	if before != nil {
		return *before, true
	}
	return Span{}, false
}

// Target returns the note target linked at or before col on line.
func Target(line string, col int) (string, bool) {
	span, ok := SpanAt(line, col)
	if !ok || span.Target == "" {
		return "", false
	}
	return span.Target, true
}

// Resolve turns a link target into a note path.
func Resolve(target, ext string) string {
	if ext == "" {
		ext = DefaultExtension
	}
	return target + ext
}

// OpenSpan reports the rune column of the "[[" that opens an unclosed link
// before col, if any.
func OpenSpan(line string, col int) (int, bool) {
	runes := []rune(line)
	if col > len(runes) {
		col = len(runes)
	}
	head := string(runes[:col])
	idx := strings.LastIndex(head, openMark)
	if idx < 0 {
		return 0, false
	}
	if strings.Contains(head[idx+len(openMark):], closeMark) {
		return 0, false
	}
	return runeCol(head, idx), true
}

// Query returns the text typed after an open "[[" up to col.
func Query(line string, col int) (string, bool) {
	start, ok := OpenSpan(line, col)
	if !ok {
		return "", false
	}
	runes := []rune(line)
	if col > len(runes) {
		col = len(runes)
	}
	return string(runes[start+len(openMark) : col]), true
}

// Complete rewrites an open link ending at col into "[[name]]". It returns
// the replaced column range so callers can apply it as one edit.
func Complete(line string, col int, name string) (from, to int, text string, ok bool) {
	start, ok := OpenSpan(line, col)
	if !ok {
		return 0, 0, "", false
	}
	return start + len(openMark), col, name + closeMark, true
}

func runeCol(s string, byteIdx int) int {
	return len([]rune(s[:byteIdx]))
}
