// Package template expands {{title}} and {{date:pattern}} placeholders in
// note templates.
package template

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultDatePattern = "YYYY-MM-DD"
	DefaultTimePattern = "HH:mm"
)

type dateToken struct {
	token  string
	format func(time.Time) string
}

func pad(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}

// dateTokens is ordered longest first so "YYYY" wins over "YY" and "MM"
// over "M".
var dateTokens = []dateToken{
	{"YYYY", func(t time.Time) string { return strconv.Itoa(t.Year()) }},
	{"YY", func(t time.Time) string { return pad(t.Year() % 100) }},
	{"MM", func(t time.Time) string { return pad(int(t.Month())) }},
	{"DD", func(t time.Time) string { return pad(t.Day()) }},
	{"HH", func(t time.Time) string { return pad(t.Hour()) }},
	{"mm", func(t time.Time) string { return pad(t.Minute()) }},
	{"M", func(t time.Time) string { return strconv.Itoa(int(t.Month())) }},
	{"D", func(t time.Time) string { return strconv.Itoa(t.Day()) }},
	{"H", func(t time.Time) string { return strconv.Itoa(t.Hour()) }},
	{"m", func(t time.Time) string { return strconv.Itoa(t.Minute()) }},
}

// FormatDate substitutes date tokens in pattern. Characters that start no
// token pass through unchanged.
func FormatDate(pattern string, t time.Time) string {
	var b strings.Builder
	for i := 0; i < len(pattern); {
		matched := false
		for _, tok := range dateTokens {
			if strings.HasPrefix(pattern[i:], tok.token) {
				b.WriteString(tok.format(t))
				i += len(tok.token)
				matched = true
				break
			}
		}
		if !matched {
			b.WriteByte(pattern[i])
			i++
		}
	}
	return b.String()
}

var placeholderRe = regexp.MustCompile(`\{\{\s*([a-z]+)(?::([^}]*))?\s*\}\}`)

// Expander fills placeholders using a clock.
type Expander struct {
	Now func() time.Time
}

// New returns an Expander reading the local wall clock.
func New() *Expander {
	return &Expander{Now: time.Now}
}

func (e *Expander) now() time.Time {
	if e == nil || e.Now == nil {
		return time.Now()
	}
	return e.Now()
}

// Expand replaces {{title}}, {{date}}, {{date:pattern}} and {{time}}.
// Unknown placeholders are left as written.
func (e *Expander) Expand(text, title string) string {
	now := e.now()
	return placeholderRe.ReplaceAllStringFunc(text, func(match string) string {
		parts := placeholderRe.FindStringSubmatch(match)
		name, arg := parts[1], parts[2]
		switch name {
		case "title":
			return title
		case "date":
			if arg == "" {
				arg = DefaultDatePattern
			}
			return FormatDate(arg, now)
		case "time":
			if arg == "" {
				arg = DefaultTimePattern
			}
			return FormatDate(arg, now)
		default:
			return match
		}
	})
}

// ExpandLines expands each line of a template.
func (e *Expander) ExpandLines(lines []string, title string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = e.Expand(line, title)
	}
	return out
}
