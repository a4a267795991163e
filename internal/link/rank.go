package link

import (
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"
)

// Scorer rates how well candidate matches query. A false result excludes the
// candidate.
type Scorer func(candidate, query string) (int64, bool)

// FuzzyScore is the default Scorer: a subsequence match scored by
// github.com/sahilm/fuzzy. An empty query matches everything with score 0.
func FuzzyScore(candidate, query string) (int64, bool) {
	if query == "" {
		return 0, true
	}
	matches := fuzzy.Find(query, []string{candidate})
	if len(matches) == 0 {
		return 0, false
	}
	return int64(matches[0].Score), true
}

// Candidate is one ranked name.
type Candidate struct {
	Name  string
	Score int64
}

// Rank scores names against query and orders them by descending score,
// breaking ties by descending name.
func Rank(names []string, query string, score Scorer) []Candidate {
	if score == nil {
		score = FuzzyScore
	}
	out := make([]Candidate, 0, len(names))
	for _, name := range names {
		if s, ok := score(name, query); ok {
			out = append(out, Candidate{Name: name, Score: s})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Name > out[j].Name
	})
	return out
}

// Names extracts the candidate names in rank order.
func Names(candidates []Candidate) []string {
	out := make([]string, len(candidates))
	for i, c := range candidates {
		out[i] = c.Name
	}
	return out
}

// NoteNames lists registry paths carrying ext, without the extension, for
// use as link targets.
func NoteNames(paths []string, ext string) []string {
	if ext == "" {
		ext = DefaultExtension
	}
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if strings.HasSuffix(p, ext) {
			out = append(out, strings.TrimSuffix(p, ext))
		}
	}
	return out
}
