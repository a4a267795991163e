// Package vim turns decoded key events into cursor motions, edits, mode
// changes and editor intents.
package vim

import "fmt"

// Kind tags the active editing mode.
type Kind int

const (
	ModeNormal Kind = iota
	ModeInsert
	ModeVisual
	ModeOperator
	ModePicker
)

// Mode is the active mode. Op holds the pending operator character and is
// only meaningful for ModeOperator.
type Mode struct {
	Kind Kind
	Op   rune
}

var (
	Normal = Mode{Kind: ModeNormal}
	Insert = Mode{Kind: ModeInsert}
	Visual = Mode{Kind: ModeVisual}
	Picker = Mode{Kind: ModePicker}
)

// Operator returns the operator-pending mode for op.
func Operator(op rune) Mode {
	return Mode{Kind: ModeOperator, Op: op}
}

func (m Mode) String() string {
	switch m.Kind {
	case ModeNormal:
		return "NORMAL"
	case ModeInsert:
		return "INSERT"
	case ModeVisual:
		return "VISUAL"
	case ModeOperator:
		return fmt.Sprintf("OPERATOR(%c)", m.Op)
	case ModePicker:
		return "PICKER"
	}
	return "UNKNOWN"
}

// clamps reports whether the cursor must stay on a character in this mode.
func (m Mode) clamps() bool {
	switch m.Kind {
	case ModeNormal, ModeVisual, ModePicker:
		return true
	}
	return false
}
