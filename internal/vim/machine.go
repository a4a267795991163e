package vim

import (
	"github.com/atomicstack/vault-tui/internal/command"
	"github.com/atomicstack/vault-tui/internal/editor"
	"github.com/atomicstack/vault-tui/internal/link"
	"github.com/atomicstack/vault-tui/internal/logging/events"
)

// Machine holds the active mode and the one-key pending slot used for
// two-key sequences such as gg and gt.
type Machine struct {
	mode    Mode
	pending editor.Key
}

// New returns a machine in Normal mode.
func New() *Machine {
	return &Machine{mode: Normal}
}

// NewPicker returns a machine driving the file picker.
func NewPicker() *Machine {
	return &Machine{mode: Picker}
}

// Mode returns the active mode.
func (m *Machine) Mode() Mode {
	return m.mode
}

// Pending returns the unconsumed key from the previous Apply, or the null
// key.
func (m *Machine) Pending() editor.Key {
	return m.pending
}

// Reset forces mode and clears the pending slot. Hosts call it when the
// document under the machine is replaced.
func (m *Machine) Reset(mode Mode) {
	if m.mode != mode {
		events.Mode.Change(m.mode.String(), mode.String())
	}
	m.mode = mode
	m.pending = editor.Key{}
}

// Apply interprets k against doc. The null key is the idle tick and never
// changes state.
func (m *Machine) Apply(k editor.Key, doc *editor.Document) Transition {
	if k.IsNull() {
		return noop()
	}

	var t Transition
	switch m.mode.Kind {
	case ModeInsert:
		t = m.insert(k, doc)
	case ModeVisual:
		t = m.visual(k, doc)
	case ModeOperator:
		t = m.operator(k, doc)
	case ModePicker:
		t = m.picker(k, doc)
	default:
		t = m.normal(k, doc)
	}

	if t.Kind == PendingKey {
		m.pending = k
		events.Mode.Pending(m.mode.String(), k.String())
	} else {
		m.pending = editor.Key{}
	}
	if t.Kind == ModeChanged && t.Mode != m.mode {
		events.Mode.Change(m.mode.String(), t.Mode.String())
		m.mode = t.Mode
	}
	if m.mode.clamps() {
		doc.ClampNormal()
	}
	return t
}

func (m *Machine) pendingIs(r rune) bool {
	return m.pending.Is(r)
}

// motion applies k as a cursor movement and reports whether it was one.
func (m *Machine) motion(k editor.Key, doc *editor.Document) bool {
	switch {
	case k.Is('h') || k.Code == editor.KeyLeft:
		doc.Move(editor.MotionBack)
	case k.Is('j') || k.Code == editor.KeyDown:
		doc.Move(editor.MotionDown)
	case k.Is('k') || k.Code == editor.KeyUp:
		doc.Move(editor.MotionUp)
	case k.Is('l') || k.Code == editor.KeyRight:
		doc.Move(editor.MotionForward)
	case k.Is('w'):
		doc.Move(editor.MotionWordForward)
	case k.Is('e'):
		doc.Move(editor.MotionWordEnd)
		if m.mode.Kind == ModeOperator {
			doc.Move(editor.MotionForward)
		}
	case k.Is('b'):
		doc.Move(editor.MotionWordBack)
	case k.Is('^') || k.Is('0') || k.Code == editor.KeyHome:
		doc.Move(editor.MotionHead)
	case k.Is('$') || k.Code == editor.KeyEnd:
		doc.Move(editor.MotionEnd)
	case k.Is('G'):
		doc.Move(editor.MotionBottom)
	case k.Is('g') && m.pendingIs('g'):
		doc.Move(editor.MotionTop)
	case k.IsCtrl('e'):
		doc.ScrollLines(1)
	case k.IsCtrl('y'):
		doc.ScrollLines(-1)
	case k.IsCtrl('d'):
		doc.ScrollHalfPage(1)
	case k.IsCtrl('u'):
		doc.ScrollHalfPage(-1)
	case k.IsCtrl('f') || k.Code == editor.KeyPageDown:
		doc.ScrollPage(1)
	case k.IsCtrl('b') || k.Code == editor.KeyPageUp:
		doc.ScrollPage(-1)
	case k.Is('n'):
		found := doc.SearchForward(false)
		events.Document.Search(doc.Path(), doc.SearchPattern(), found)
	case k.Is('N'):
		found := doc.SearchBack(false)
		events.Document.Search(doc.Path(), doc.SearchPattern(), found)
	default:
		return false
	}
	return true
}

// enterInsert opens the undo group that the whole Insert session, including
// the edit that starts it, collapses into.
func enterInsert(doc *editor.Document) Transition {
	doc.CancelSelection()
	doc.BeginGroup()
	return changeTo(Insert)
}

func (m *Machine) normal(k editor.Key, doc *editor.Document) Transition {
	if m.motion(k, doc) {
		return noop()
	}
	switch {
	case m.pendingIs('g') && k.Is('t'):
		return issue(command.Focus(command.Next))
	case m.pendingIs('g') && k.Is('T'):
		return issue(command.Focus(command.Previous))

	case k.Is('D'):
		doc.DeleteToLineEnd()
		return changeTo(Normal)
	case k.Is('x'):
		if doc.Cursor().Col < len([]rune(doc.Line(doc.Cursor().Row))) {
			doc.DeleteForward()
		}
		return changeTo(Normal)
	case k.Is('p'):
		doc.Paste()
		return changeTo(Normal)
	case k.Is('u'):
		doc.Undo()
		return changeTo(Normal)
	case k.IsCtrl('r'):
		doc.Redo()
		return changeTo(Normal)

	case k.Is('C'):
		t := enterInsert(doc)
		doc.DeleteToLineEnd()
		return t
	case k.Is('i'):
		return enterInsert(doc)
	case k.Is('a'):
		t := enterInsert(doc)
		doc.MoveRight()
		return t
	case k.Is('A'):
		t := enterInsert(doc)
		doc.Move(editor.MotionEnd)
		return t
	case k.Is('I'):
		t := enterInsert(doc)
		doc.Move(editor.MotionHead)
		return t
	case k.Is('o'):
		t := enterInsert(doc)
		doc.Move(editor.MotionEnd)
		doc.InsertNewline()
		return t
	case k.Is('O'):
		t := enterInsert(doc)
		doc.Move(editor.MotionHead)
		doc.InsertNewline()
		doc.Move(editor.MotionUp)
		return t

	case k.Is('v'):
		doc.StartSelection()
		return changeTo(Visual)
	case k.Is('V'):
		doc.StartLineSelection()
		doc.Move(editor.MotionEnd)
		return changeTo(Visual)
	case k.Is('y') || k.Is('d') || k.Is('c'):
		doc.StartSelection()
		events.Mode.Operator(k.Rune, Normal.String())
		return changeTo(Operator(k.Rune))

	case k.Is(':'):
		return only(EnterCommandLine)
	case k.Is('/'):
		return only(EnterSearch)
	case k.Code == editor.KeyEnter:
		return issue(command.Of(command.FollowLink))
	case k.IsCtrl('o'):
		return issue(command.Of(command.PreviousBuffer))
	case k.Code == editor.KeyTab:
		return issue(command.Of(command.NextBuffer))
	case k.Code == editor.KeyEsc:
		doc.CancelSelection()
		return noop()
	}
	return pending(k)
}

func (m *Machine) operator(k editor.Key, doc *editor.Document) Transition {
	op := m.mode.Op
	switch {
	case k.Is(op):
		doc.Move(editor.MotionHead)
		doc.StartSelection()
		if !doc.Move(editor.MotionDown) {
			doc.Move(editor.MotionEnd)
		}
	case m.motion(k, doc):
	case k.Is('g'):
		return pending(k)
	default:
		doc.CancelSelection()
		return changeTo(Normal)
	}
	return m.fire(op, doc)
}

// fire runs op over the current selection. A selection that did not grow
// still fires.
func (m *Machine) fire(op rune, doc *editor.Document) Transition {
	events.Mode.Operator(op, m.mode.String())
	switch op {
	case 'y':
		doc.Copy()
		return changeTo(Normal)
	case 'd':
		doc.Cut()
		return changeTo(Normal)
	case 'c':
		doc.BeginGroup()
		doc.Cut()
		return changeTo(Insert)
	}
	doc.CancelSelection()
	return changeTo(Normal)
}

func (m *Machine) visual(k editor.Key, doc *editor.Document) Transition {
	if m.motion(k, doc) {
		return noop()
	}
	switch {
	case k.Code == editor.KeyEsc || k.Is('v'):
		doc.CancelSelection()
		return changeTo(Normal)
	case k.Is('y'):
		closeSelection(doc)
		doc.Copy()
		return changeTo(Normal)
	case k.Is('d') || k.Is('x'):
		closeSelection(doc)
		doc.Cut()
		return changeTo(Normal)
	case k.Is('c'):
		closeSelection(doc)
		doc.BeginGroup()
		doc.Cut()
		return changeTo(Insert)
	}
	return pending(k)
}

// closeSelection makes the visually inclusive selection end-exclusive: the
// cursor goes to the later end and steps past it. Line selections already
// end at their last line's end.
func closeSelection(doc *editor.Document) {
	doc.NormalizeSelection()
	if !doc.LineSelection() {
		doc.Move(editor.MotionForward)
	}
}

func (m *Machine) insert(k editor.Key, doc *editor.Document) Transition {
	switch {
	case k.Code == editor.KeyEsc:
		doc.EndGroup()
		return changeTo(Normal)
	case k.Printable():
		doc.InsertRune(k.Rune)
		if k.Rune == '[' && opensLink(doc) {
			return only(EnterAutocomplete)
		}
		return noop()
	}
	doc.Input(k)
	return noop()
}

// opensLink reports whether the cursor sits right after an unclosed "[[".
func opensLink(doc *editor.Document) bool {
	c := doc.Cursor()
	start, ok := link.OpenSpan(doc.Line(c.Row), c.Col)
	return ok && start+2 == c.Col
}

func (m *Machine) picker(k editor.Key, doc *editor.Document) Transition {
	if m.motion(k, doc) {
		return noop()
	}
	switch {
	case k.Code == editor.KeyEnter:
		return only(OpenSelected)
	case k.Code == editor.KeyEsc:
		return only(Quit)
	case k.Is(':'):
		return only(EnterCommandLine)
	case k.Is('/'):
		return only(EnterSearch)
	case k.IsCtrl('o'):
		return issue(command.Of(command.PreviousBuffer))
	}
	return pending(k)
}
