package vim

import (
	"github.com/atomicstack/vault-tui/internal/command"
	"github.com/atomicstack/vault-tui/internal/editor"
)

// TransitionKind tells the host what a key did beyond editing the document.
type TransitionKind int

const (
	NoOp TransitionKind = iota
	ModeChanged
	PendingKey
	CommandIssued
	EnterSearch
	EnterCommandLine
	EnterAutocomplete
	// OpenSelected and Quit are produced in Picker mode only.
	OpenSelected
	Quit
)

var transitionNames = [...]string{
	NoOp:              "NoOp",
	ModeChanged:       "ModeChanged",
	PendingKey:        "PendingKey",
	CommandIssued:     "Command",
	EnterSearch:       "EnterSearch",
	EnterCommandLine:  "EnterCommandLine",
	EnterAutocomplete: "EnterAutocomplete",
	OpenSelected:      "OpenSelected",
	Quit:              "Quit",
}

func (k TransitionKind) String() string {
	if k < 0 || int(k) >= len(transitionNames) {
		return "Unknown"
	}
	return transitionNames[k]
}

// Transition is the result of applying one key.
type Transition struct {
	Kind    TransitionKind
	Mode    Mode
	Key     editor.Key
	Command command.Command
}

func noop() Transition {
	return Transition{Kind: NoOp}
}

func changeTo(m Mode) Transition {
	return Transition{Kind: ModeChanged, Mode: m}
}

func pending(k editor.Key) Transition {
	return Transition{Kind: PendingKey, Key: k}
}

func issue(c command.Command) Transition {
	return Transition{Kind: CommandIssued, Command: c}
}

func only(kind TransitionKind) Transition {
	return Transition{Kind: kind}
}

func (t Transition) String() string {
	switch t.Kind {
	case ModeChanged:
		return "ModeChanged(" + t.Mode.String() + ")"
	case PendingKey:
		return "PendingKey(" + t.Key.String() + ")"
	case CommandIssued:
		return "Command(" + t.Command.String() + ")"
	}
	return t.Kind.String()
}
