package ui

import (
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/atomicstack/vault-tui/internal/command"
	"github.com/atomicstack/vault-tui/internal/editor"
	"github.com/atomicstack/vault-tui/internal/link"
	"github.com/atomicstack/vault-tui/internal/logging"
	"github.com/atomicstack/vault-tui/internal/logging/events"
	"github.com/atomicstack/vault-tui/internal/vault"
	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) openCommandLine() {
	d := newDialog(dialogCommand, ":", "")
	d.intercept = func(d *dialog, k editor.Key) bool {
		if k.Code != editor.KeyTab {
			return false
		}
		if alias, ok := command.Complete(d.value()); ok {
			events.Command.Complete(d.value(), alias)
			d.setValue(alias)
		}
		return true
	}
	d.accept = func(d *dialog) tea.Cmd {
		cmd := command.Parse(d.value())
		events.Command.Parse(d.value(), cmd.String())
		if cmd.Kind == command.None {
			if strings.TrimSpace(d.value()) != "" {
				m.setInfo(fmt.Sprintf("unknown command: %s", strings.TrimSpace(d.value())))
			}
			return nil
		}
		return m.dispatch(cmd)
	}
	m.openDialog(d)
}

// openSearch runs an incremental search from the cursor. Esc puts back the
// previous pattern and the original cursor.
func (m *Model) openSearch() {
	doc := m.session.Active()
	origin := doc.Cursor()
	previous := doc.SearchPattern()

	d := newDialog(dialogSearch, "/", "")
	d.update = func(d *dialog) {
		doc.SetCursor(origin)
		d.status = ""
		if err := doc.SetSearchPattern(d.value()); err != nil {
			d.status = err.Error()
			return
		}
		if d.value() != "" && !doc.SearchForward(false) {
			d.status = "no match"
		}
		doc.SyncViewport()
	}
	d.accept = func(d *dialog) tea.Cmd {
		pattern := d.value()
		if pattern == "" {
			pattern = previous
		}
		doc.SetCursor(origin)
		if err := doc.SetSearchPattern(pattern); err != nil {
			_ = doc.SetSearchPattern(previous)
			doc.SyncViewport()
			return m.notifyError(err)
		}
		if pattern == "" {
			return nil
		}
		found := doc.SearchForward(false)
		events.Document.Search(doc.Path(), pattern, found)
		if !found {
			m.setInfo(fmt.Sprintf("pattern not found: %s", pattern))
		}
		doc.SyncViewport()
		return nil
	}
	d.cancel = func(*dialog) {
		_ = doc.SetSearchPattern(previous)
		doc.SetCursor(origin)
		doc.SyncViewport()
	}
	m.openDialog(d)
}

// openAutocomplete ranks note names against the text typed after the open
// "[[" and rewrites the link on acceptance.
func (m *Model) openAutocomplete() {
	doc := m.session.Active()
	names := link.NoteNames(m.session.Registry().Paths(), m.session.Extension())
	c := doc.Cursor()
	typed, _ := link.Query(doc.Line(c.Row), c.Col)

	d := newDialog(dialogAutocomplete, "[[", typed)
	d.update = func(d *dialog) {
		d.setCandidates(link.Names(link.Rank(names, d.value(), m.scorer)))
	}
	d.accept = func(d *dialog) tea.Cmd {
		name, ok := d.selected()
		if !ok {
			return nil
		}
		c := doc.Cursor()
		from, to, text, ok := link.Complete(doc.Line(c.Row), c.Col, name)
		if !ok {
			return nil
		}
		doc.ReplaceRange(editor.Position{Row: c.Row, Col: from}, editor.Position{Row: c.Row, Col: to}, text)
		doc.SyncViewport()
		return nil
	}
	m.openDialog(d)
}

func (m *Model) openSearchNote() {
	paths := m.session.Registry().Paths()
	current := m.session.Document().Path()
	d := newDialog(dialogSearchNote, "note: ", "")
	d.update = func(d *dialog) {
		d.setCandidates(link.Names(link.Rank(paths, d.value(), m.scorer)))
		if d.value() == "" && current != "" {
			d.list.Select(current)
		}
	}
	d.accept = func(d *dialog) tea.Cmd {
		path, ok := d.selected()
		if !ok {
			return nil
		}
		return m.openPath(path)
	}
	m.openDialog(d)
}

func (m *Model) openNewNote() {
	d := newDialog(dialogNewNote, "new note: ", "")
	d.accept = func(d *dialog) tea.Cmd {
		return m.createNote(d.value())
	}
	m.openDialog(d)
}

// createNote names, seeds, writes and opens a new note.
func (m *Model) createNote(name string) tea.Cmd {
	ext := m.session.Extension()
	rel, err := vault.NoteFileName(name, m.notePrefix, ext, m.now())
	if err != nil {
		return m.notifyError(err)
	}
	var lines []string
	if m.newNoteTemplate != "" {
		seed, err := m.session.Store().ReadLines(m.newNoteTemplate)
		if err != nil {
			return m.notifyError(fmt.Errorf("new note template: %w", err))
		}
		lines = m.expander.ExpandLines(seed, strings.TrimSuffix(path.Base(rel), ext))
	}
	if err := m.session.CreateNote(rel, lines); err != nil {
		return m.notifyError(err)
	}
	m.setInfo(fmt.Sprintf("created %s", rel))
	return m.openPath(rel)
}

func (m *Model) openTemplatePicker() tea.Cmd {
	doc, err := m.session.Editing()
	if err != nil {
		return m.notifyError(err)
	}
	templates := m.session.Registry().Under(m.templatesDir)
	if len(templates) == 0 {
		return m.notify(fmt.Sprintf("no templates under %s", m.templatesDir))
	}
	d := newDialog(dialogTemplate, "template: ", "")
	d.update = func(d *dialog) {
		d.setCandidates(link.Names(link.Rank(templates, d.value(), m.scorer)))
	}
	d.accept = func(d *dialog) tea.Cmd {
		path, ok := d.selected()
		if !ok {
			return nil
		}
		lines, err := m.session.Store().ReadLines(path)
		if err != nil {
			return m.notifyError(err)
		}
		text := strings.Join(m.expander.ExpandLines(lines, doc.Title()), "\n")
		c := doc.Cursor()
		doc.ReplaceRange(c, c, text)
		doc.SyncViewport()
		return nil
	}
	m.openDialog(d)
	return nil
}

// notify shows message until the next key.
func (m *Model) notify(message string) tea.Cmd {
	m.openDialog(&dialog{kind: dialogNotify, message: message})
	return nil
}

// notifyError logs err and shows it until the next key.
func (m *Model) notifyError(err error) tea.Cmd {
	logging.Error(err)
	events.Action.Error(err)
	message := err.Error()
	if errors.Is(err, vault.ErrNoDocument) {
		message = "no document is open; pick a note first"
	}
	m.openDialog(&dialog{kind: dialogNotify, message: message, isError: true})
	return nil
}
