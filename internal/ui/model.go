package ui

import (
	"reflect"
	"time"

	"github.com/atomicstack/vault-tui/internal/backend"
	"github.com/atomicstack/vault-tui/internal/editor"
	"github.com/atomicstack/vault-tui/internal/link"
	"github.com/atomicstack/vault-tui/internal/logging/events"
	"github.com/atomicstack/vault-tui/internal/template"
	"github.com/atomicstack/vault-tui/internal/theme"
	"github.com/atomicstack/vault-tui/internal/vault"
	"github.com/atomicstack/vault-tui/internal/vim"
	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"
)

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Options carries the host settings that sit outside the session.
type Options struct {
	Width      int
	Height     int
	ShowFooter bool
	Watcher    *backend.Watcher

	NotePrefix      string
	TemplatesDir    string
	NewNoteTemplate string

	// Scorer ranks dialog candidates. Nil means link.FuzzyScore.
	Scorer link.Scorer
	// Now is the clock used for note names and template dates.
	Now func() time.Time
}

// Model implements the Bubble Tea model around one editing session.
type Model struct {
	session *vault.Session
	editing *vim.Machine
	picking *vim.Machine
	dialog  *dialog

	expander        *template.Expander
	scorer          link.Scorer
	now             func() time.Time
	notePrefix      string
	templatesDir    string
	newNoteTemplate string

	infoMsg        string
	infoExpire     time.Time
	width          int
	height         int
	fixedWidth     bool
	fixedHeight    bool
	backend        *backend.Watcher
	backendLastErr string
	showFooter     bool
	quitting       bool

	promptCursor      cursor.Model
	promptCursorDirty bool

	handlers map[reflect.Type]msgHandler
}

// NewModel wraps session in a model. The picker machine drives input while
// the session shows its picker and the editing machine drives it otherwise.
func NewModel(session *vault.Session, opts Options) *Model {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	scorer := opts.Scorer
	if scorer == nil {
		scorer = link.FuzzyScore
	}
	m := &Model{
		session:         session,
		editing:         vim.New(),
		picking:         vim.NewPicker(),
		expander:        &template.Expander{Now: now},
		scorer:          scorer,
		now:             now,
		notePrefix:      opts.NotePrefix,
		templatesDir:    opts.TemplatesDir,
		newNoteTemplate: opts.NewNoteTemplate,
		backend:         opts.Watcher,
		showFooter:      opts.ShowFooter,
	}
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	c := cursor.New()
	if styles.Cursor != nil {
		c.Style = styles.Cursor.Copy()
	}
	if styles.PromptText != nil {
		c.TextStyle = styles.PromptText.Copy()
	}
	c.SetChar(" ")
	m.promptCursor = c
	m.registerHandlers()
	m.layout()
	return m
}

// Session exposes the session the model edits.
func (m *Model) Session() *vault.Session {
	return m.session
}

// Mode returns the mode of the machine currently receiving keys.
func (m *Model) Mode() vim.Mode {
	return m.machine().Mode()
}

// Quitting reports whether the model has asked the program to exit.
func (m *Model) Quitting() bool {
	return m.quitting
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{}
	if m.backend != nil {
		cmds = append(cmds, waitForBackendEvent(m.backend))
	}
	if cmd := m.promptCursor.Focus(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 4)
	if cmd := m.updatePromptCursorModel(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, m.finishUpdate(cmds)
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(backendEventMsg{}):   m.handleBackendEventMsg,
		reflect.TypeOf(backendDoneMsg{}):    m.handleBackendDoneMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	m.layout()
	if m.promptCursorDirty {
		m.promptCursorDirty = false
		m.promptCursor.Blink = false
		if cmd := m.promptCursor.BlinkCmd(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func (m *Model) updatePromptCursorModel(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.promptCursor, cmd = m.promptCursor.Update(msg)
	return cmd
}

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	if keyMsg.Type == tea.KeyCtrlC {
		return m.quit("interrupt")
	}
	m.clearInfo()
	cmds := []tea.Cmd{}
	for _, k := range keysFromMsg(keyMsg) {
		if m.quitting {
			break
		}
		if cmd := m.handleKey(k); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...)
}

// handleKey routes one key to the open dialog, or else through the active
// machine against the active document.
func (m *Model) handleKey(k editor.Key) tea.Cmd {
	if handled, cmd := m.handleActiveDialog(k); handled {
		return cmd
	}
	doc := m.session.Active()
	t := m.machine().Apply(k, doc)
	doc.SyncViewport()
	return m.applyTransition(t)
}

func (m *Model) machine() *vim.Machine {
	if m.session.PickerOpen() {
		return m.picking
	}
	return m.editing
}

func (m *Model) applyTransition(t vim.Transition) tea.Cmd {
	switch t.Kind {
	case vim.CommandIssued:
		return m.dispatch(t.Command)
	case vim.EnterCommandLine:
		m.openCommandLine()
	case vim.EnterSearch:
		m.openSearch()
	case vim.EnterAutocomplete:
		m.openAutocomplete()
	case vim.OpenSelected:
		if path, ok := m.session.PickerPath(); ok {
			return m.openPath(path)
		}
	case vim.Quit:
		return m.quit("picker")
	}
	return nil
}

func (m *Model) quit(reason string) tea.Cmd {
	m.quitting = true
	events.App.Quit(reason)
	return tea.Quit
}
