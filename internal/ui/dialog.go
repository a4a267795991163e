package ui

import (
	"github.com/atomicstack/vault-tui/internal/editor"
	"github.com/atomicstack/vault-tui/internal/logging/events"
	uistate "github.com/atomicstack/vault-tui/internal/ui/state"
	tea "github.com/charmbracelet/bubbletea"
)

type dialogKind int

const (
	dialogCommand dialogKind = iota
	dialogSearch
	dialogAutocomplete
	dialogSearchNote
	dialogNewNote
	dialogTemplate
	dialogNotify
)

var dialogNames = [...]string{
	dialogCommand:      "command",
	dialogSearch:       "search",
	dialogAutocomplete: "autocomplete",
	dialogSearchNote:   "search-note",
	dialogNewNote:      "new-note",
	dialogTemplate:     "template",
	dialogNotify:       "notify",
}

func (k dialogKind) String() string {
	if k < 0 || int(k) >= len(dialogNames) {
		return "unknown"
	}
	return dialogNames[k]
}

// maxDialogRows caps the candidate rows shown under a prompt.
const maxDialogRows = 8

// dialog is a one-line prompt backed by a scratch document, optionally with
// a ranked candidate list. It is removed from the model before accept or
// cancel runs, so either may open another dialog.
type dialog struct {
	kind   dialogKind
	prompt string
	input  *editor.Document
	list   *uistate.Level

	// message is shown instead of a prompt by notifications.
	message string
	isError bool
	// status is inline feedback under the prompt, such as a bad pattern.
	status string

	intercept func(d *dialog, k editor.Key) bool
	update    func(d *dialog)
	accept    func(d *dialog) tea.Cmd
	cancel    func(d *dialog)
}

func newDialog(kind dialogKind, prompt, initial string) *dialog {
	return &dialog{kind: kind, prompt: prompt, input: editor.NewScratch(initial)}
}

func (d *dialog) value() string {
	return d.input.Line(0)
}

func (d *dialog) setValue(text string) {
	d.input = editor.NewScratch(text)
}

// selected returns the highlighted candidate.
func (d *dialog) selected() (string, bool) {
	if d.list == nil {
		return "", false
	}
	item, ok := d.list.Current()
	if !ok {
		return "", false
	}
	return item.ID, true
}

func (d *dialog) setCandidates(names []string) {
	items := uistate.ItemsFromNames(names)
	if d.list == nil {
		d.list = uistate.NewLevel(maxDialogRows, items)
		return
	}
	d.list.UpdateItems(items)
}

func (d *dialog) moveList(delta int) {
	if d.list == nil {
		return
	}
	d.list.Move(delta)
}

func (d *dialog) pageList(dir int) {
	if d.list != nil {
		d.list.Page(dir)
	}
}

func (m *Model) openDialog(d *dialog) {
	m.dialog = d
	m.promptCursorDirty = true
	events.Dialog.Open(d.kind.String())
	if d.update != nil {
		d.update(d)
	}
}

func (m *Model) handleActiveDialog(k editor.Key) (bool, tea.Cmd) {
	d := m.dialog
	if d == nil {
		return false, nil
	}
	m.promptCursorDirty = true
	if d.kind == dialogNotify {
		m.dialog = nil
		return true, nil
	}
	if d.intercept != nil && d.intercept(d, k) {
		return true, nil
	}
	switch {
	case k.Code == editor.KeyEsc:
		m.dialog = nil
		events.Dialog.Cancel(d.kind.String())
		if d.cancel != nil {
			d.cancel(d)
		}
	case k.Code == editor.KeyEnter:
		m.dialog = nil
		events.Dialog.Accept(d.kind.String(), d.value())
		if d.accept != nil {
			return true, d.accept(d)
		}
	case k.Code == editor.KeyUp || k.IsCtrl('p'):
		d.moveList(-1)
	case k.Code == editor.KeyDown || k.IsCtrl('n'):
		d.moveList(1)
	case k.Code == editor.KeyPageUp:
		d.pageList(-1)
	case k.Code == editor.KeyPageDown:
		d.pageList(1)
	case k.Code == editor.KeyTab:
	default:
		before := d.value()
		d.input.Input(k)
		if d.value() != before && d.update != nil {
			d.update(d)
		}
	}
	return true, nil
}
