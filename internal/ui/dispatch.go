package ui

import (
	"fmt"

	"github.com/atomicstack/vault-tui/internal/command"
	"github.com/atomicstack/vault-tui/internal/link"
	"github.com/atomicstack/vault-tui/internal/logging/events"
	"github.com/atomicstack/vault-tui/internal/vim"
	tea "github.com/charmbracelet/bubbletea"
)

// dispatch carries out a command issued by a key sequence or the command
// line.
func (m *Model) dispatch(cmd command.Command) tea.Cmd {
	events.Command.Dispatch(cmd.String())
	switch cmd.Kind {
	case command.Quit:
		return m.quit("command")
	case command.Save:
		_, notice := m.save()
		return notice
	case command.SaveQuit:
		if ok, notice := m.save(); !ok {
			return notice
		}
		return m.quit("command")
	case command.Home:
		m.showPicker()
	case command.NewTab:
		m.session.NewTab()
		m.editing.Reset(vim.Normal)
		m.showPicker()
	case command.FocusTab:
		if m.session.FocusTab(int(cmd.Direction)) {
			m.editing.Reset(vim.Normal)
		}
	case command.NextBuffer:
		if m.session.NextBuffer() {
			m.editing.Reset(vim.Normal)
		}
	case command.PreviousBuffer:
		if m.session.PickerOpen() {
			m.session.HidePicker()
			m.editing.Reset(vim.Normal)
			return nil
		}
		if m.session.PreviousBuffer() {
			m.editing.Reset(vim.Normal)
		}
	case command.FollowLink:
		return m.followLink()
	case command.NewNote:
		m.openNewNote()
	case command.InsertTemplate:
		return m.openTemplatePicker()
	case command.SearchNote:
		m.openSearchNote()
	}
	return nil
}

// save writes the current document. It reports success and, on failure, the
// command that shows the error.
func (m *Model) save() (bool, tea.Cmd) {
	n, err := m.session.Save()
	if err != nil {
		return false, m.notifyError(err)
	}
	if doc := m.session.Document(); doc.HasPath() {
		info := fmt.Sprintf("%q %dL written", doc.Path(), n)
		events.Action.Success(info)
		m.setInfo(info)
	}
	return true, nil
}

func (m *Model) showPicker() {
	m.session.ShowPicker()
	m.picking.Reset(vim.Picker)
}

func (m *Model) followLink() tea.Cmd {
	doc, err := m.session.Editing()
	if err != nil {
		return m.notifyError(err)
	}
	c := doc.Cursor()
	target, ok := link.Target(doc.Line(c.Row), c.Col)
	if !ok {
		m.setInfo("no link under cursor")
		return nil
	}
	return m.openPath(link.Resolve(target, m.session.Extension()))
}

// openPath loads path into the current tab and hands input to the editing
// machine.
func (m *Model) openPath(path string) tea.Cmd {
	if err := m.session.Open(path); err != nil {
		return m.notifyError(err)
	}
	m.editing.Reset(vim.Normal)
	m.layout()
	return nil
}
