// Package command parses command-line text into the closed set of editor
// intents.
package command

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Kind enumerates the intents a command line can express.
type Kind int

const (
	None Kind = iota
	Quit
	Save
	SaveQuit
	Home
	NewNote
	FollowLink
	InsertTemplate
	NewTab
	FocusTab
	NextBuffer
	PreviousBuffer
	SearchNote
)

var kindNames = [...]string{
	None:           "None",
	Quit:           "Quit",
	Save:           "Save",
	SaveQuit:       "SaveQuit",
	Home:           "Home",
	NewNote:        "NewNote",
	FollowLink:     "FollowLink",
	InsertTemplate: "InsertTemplate",
	NewTab:         "NewTab",
	FocusTab:       "FocusTab",
	NextBuffer:     "NextBuffer",
	PreviousBuffer: "PreviousBuffer",
	SearchNote:     "SearchNote",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Unknown"
	}
	return kindNames[k]
}

// Direction is the step applied by FocusTab.
type Direction int

const (
	Previous Direction = -1
	Next     Direction = 1
)

// Command is one parsed intent. Direction is only meaningful for FocusTab.
type Command struct {
	Kind      Kind
	Direction Direction
}

func (c Command) String() string {
	if c.Kind != FocusTab {
		return c.Kind.String()
	}
	if c.Direction == Previous {
		return "FocusTab(previous)"
	}
	return "FocusTab(next)"
}

// Of returns a command without a direction.
func Of(kind Kind) Command {
	return Command{Kind: kind}
}

// Focus returns FocusTab in direction dir.
func Focus(dir Direction) Command {
	return Command{Kind: FocusTab, Direction: dir}
}

var aliases = map[string]Command{
	"q":               Of(Quit),
	"quit":            Of(Quit),
	"w":               Of(Save),
	"write":           Of(Save),
	"save":            Of(Save),
	"wq":              Of(SaveQuit),
	"home":            Of(Home),
	"h":               Of(Home),
	"nn":              Of(NewNote),
	"new note":        Of(NewNote),
	"fl":              Of(FollowLink),
	"follow":          Of(FollowLink),
	"follow link":     Of(FollowLink),
	"itm":             Of(InsertTemplate),
	"insert template": Of(InsertTemplate),
	"nt":              Of(NewTab),
	"new tab":         Of(NewTab),
	"tn":              Focus(Next),
	"next tab":        Focus(Next),
	"tp":              Focus(Previous),
	"previous tab":    Focus(Previous),
	"nb":              Of(NextBuffer),
	"next buffer":     Of(NextBuffer),
	"pb":              Of(PreviousBuffer),
	"previous buffer": Of(PreviousBuffer),
	"prev buffer":     Of(PreviousBuffer),
	"sn":              Of(SearchNote),
	"search":          Of(SearchNote),
	"search note":     Of(SearchNote),
}

// Parse maps a command line onto a Command. Matching is exact and
// case-sensitive after trimming surrounding whitespace; anything else is None.
func Parse(line string) Command {
	if cmd, ok := aliases[strings.TrimSpace(line)]; ok {
		return cmd
	}
	return Of(None)
}

// Aliases returns every recognised command spelling in sorted order.
func Aliases() []string {
	out := make([]string, 0, len(aliases))
	for alias := range aliases {
		out = append(out, alias)
	}
	sort.Strings(out)
	return out
}

// Complete returns the alias that best matches a partially typed command
// line. Prefix matches win over fuzzy ones; shorter aliases win ties.
func Complete(input string) (string, bool) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return "", false
	}
	all := Aliases()
	var prefixed []string
	for _, alias := range all {
		if strings.HasPrefix(alias, trimmed) {
			prefixed = append(prefixed, alias)
		}
	}
	if len(prefixed) > 0 {
		return shortest(prefixed), true
	}
	ranks := fuzzy.RankFindNormalizedFold(trimmed, all)
	if len(ranks) == 0 {
		return "", false
	}
	sort.Sort(ranks)
	best := ranks[0]
	for _, rank := range ranks[1:] {
		if rank.Distance == best.Distance && len(rank.Target) < len(best.Target) {
			best = rank
		}
	}
	return best.Target, true
}

func shortest(items []string) string {
	best := items[0]
	for _, item := range items[1:] {
		if len(item) < len(best) {
			best = item
		}
	}
	return best
}
