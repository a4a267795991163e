package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAliasTable(t *testing.T) {
	tests := []struct {
		line string
		want Command
	}{
		{"q", Of(Quit)},
		{"quit", Of(Quit)},
		{"w", Of(Save)},
		{"write", Of(Save)},
		{"save", Of(Save)},
		{"wq", Of(SaveQuit)},
		{"home", Of(Home)},
		{"h", Of(Home)},
		{"nn", Of(NewNote)},
		{"new note", Of(NewNote)},
		{"fl", Of(FollowLink)},
		{"follow", Of(FollowLink)},
		{"follow link", Of(FollowLink)},
		{"itm", Of(InsertTemplate)},
		{"insert template", Of(InsertTemplate)},
		{"nt", Of(NewTab)},
		{"new tab", Of(NewTab)},
		{"tn", Focus(Next)},
		{"tp", Focus(Previous)},
		{"nb", Of(NextBuffer)},
		{"next buffer", Of(NextBuffer)},
		{"pb", Of(PreviousBuffer)},
		{"previous buffer", Of(PreviousBuffer)},
		{"prev buffer", Of(PreviousBuffer)},
		{"sn", Of(SearchNote)},
		{"search", Of(SearchNote)},
		{"search note", Of(SearchNote)},
		{"  wq  ", Of(SaveQuit)},
	}
	for _, tc := range tests {
		t.Run(tc.line, func(t *testing.T) {
			assert.Equal(t, tc.want, Parse(tc.line))
		})
	}
}

func TestParseUnknownIsNone(t *testing.T) {
	for _, line := range []string{"", "Q", "WQ", "quit!", "new  note", "w file.md"} {
		assert.Equal(t, Of(None), Parse(line), "line %q", line)
	}
}

func TestCommandString(t *testing.T) {
	assert.Equal(t, "SaveQuit", Of(SaveQuit).String())
	assert.Equal(t, "FocusTab(previous)", Focus(Previous).String())
	assert.Equal(t, "FocusTab(next)", Focus(Next).String())
	assert.Equal(t, "Unknown", Kind(99).String())
}

func TestCompletePrefersShortestPrefix(t *testing.T) {
	got, ok := Complete("follow l")
	assert.True(t, ok)
	assert.Equal(t, "follow link", got)

	got, ok = Complete("sa")
	assert.True(t, ok)
	assert.Equal(t, "save", got)
}

func TestCompleteFallsBackToFuzzy(t *testing.T) {
	got, ok := Complete("nwnote")
	assert.True(t, ok)
	assert.Equal(t, "new note", got)
}

func TestCompleteNoMatch(t *testing.T) {
	_, ok := Complete("zzz")
	assert.False(t, ok)
	_, ok = Complete("   ")
	assert.False(t, ok)
}
