package vault

import (
	"github.com/atomicstack/vault-tui/internal/editor"
	"github.com/atomicstack/vault-tui/internal/link"
	"github.com/atomicstack/vault-tui/internal/logging/events"
)

// Session owns the open tabs, the note registry and the file picker. The
// picker and the current tab's document are never edited at the same time.
type Session struct {
	store    *Store
	registry *Registry

	tabs    []*Tab
	current int

	picker     *editor.Document
	pickerOpen bool

	ext       string
	undoLimit int
	register  editor.Register
}

// Option customises a Session.
type Option func(*Session)

// WithExtension sets the note extension used for links and new notes.
func WithExtension(ext string) Option {
	return func(s *Session) {
		if ext != "" {
			s.ext = ext
		}
	}
}

// WithUndoLimit caps undo history for documents the session opens.
func WithUndoLimit(limit int) Option {
	return func(s *Session) {
		s.undoLimit = limit
	}
}

// WithRegister shares one yank register across every document.
func WithRegister(r editor.Register) Option {
	return func(s *Session) {
		s.register = r
	}
}

// NewSession starts a session with one tab holding the intro document and
// the picker showing.
func NewSession(store *Store, registry *Registry, opts ...Option) *Session {
	if registry == nil {
		registry = NewRegistry(nil)
	}
	s := &Session{
		store:    store,
		registry: registry,
		ext:      link.DefaultExtension,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.tabs = []*Tab{newTab(s.newDocument(introLines, ""))}
	s.picker = editor.New(nil, "")
	s.RefreshPicker()
	s.pickerOpen = true
	return s
}

func (s *Session) newDocument(lines []string, path string) *editor.Document {
	opts := []editor.Option{}
	if s.undoLimit > 0 {
		opts = append(opts, editor.WithUndoLimit(s.undoLimit))
	}
	if s.register != nil {
		opts = append(opts, editor.WithRegister(s.register))
	}
	return editor.New(lines, path, opts...)
}

// Store returns the backing file store.
func (s *Session) Store() *Store {
	return s.store
}

// Registry returns the note registry.
func (s *Session) Registry() *Registry {
	return s.registry
}

// Extension returns the note extension.
func (s *Session) Extension() string {
	return s.ext
}

// Tabs returns the open tabs in order.
func (s *Session) Tabs() []*Tab {
	return append([]*Tab(nil), s.tabs...)
}

// TabIndex returns the current tab index.
func (s *Session) TabIndex() int {
	return s.current
}

// CurrentTab returns the focused tab.
func (s *Session) CurrentTab() *Tab {
	if s.current < 0 || s.current >= len(s.tabs) {
		panic("vault: session has no current tab")
	}
	return s.tabs[s.current]
}

// Document returns the current tab's current document.
func (s *Session) Document() *editor.Document {
	return s.CurrentTab().Current()
}

// Active returns whatever is being edited: the picker when it is showing,
// otherwise the current document.
func (s *Session) Active() *editor.Document {
	if s.pickerOpen {
		return s.picker
	}
	return s.Document()
}

// Editing returns the current document, or ErrNoDocument while the picker
// is showing.
func (s *Session) Editing() (*editor.Document, error) {
	if s.pickerOpen {
		return nil, ErrNoDocument
	}
	return s.Document(), nil
}

// Open loads path into the current tab, or switches to it when the tab
// already holds it. The picker is hidden on success.
func (s *Session) Open(path string) error {
	path = Clean(path)
	tab := s.CurrentTab()
	if idx := tab.find(path); idx >= 0 {
		tab.current = idx
		s.HidePicker()
		events.Document.Switch(path, idx)
		return nil
	}
	lines, err := s.store.ReadLines(path)
	if err != nil {
		return err
	}
	tab.push(s.newDocument(lines, path))
	if s.registry.Add(path) {
		s.RefreshPicker()
	}
	s.HidePicker()
	events.Document.Open(path, len(lines))
	return nil
}

// Save writes the current document to its path and returns the number of
// lines written. The intro document has no path and saving it does nothing.
func (s *Session) Save() (int, error) {
	doc := s.Document()
	if !doc.HasPath() {
		return 0, nil
	}
	lines := doc.Lines()
	if err := s.store.WriteLines(doc.Path(), lines); err != nil {
		return 0, err
	}
	events.Document.Save(doc.Path(), len(lines))
	return len(lines), nil
}

// NextBuffer moves to the next document in the current tab.
func (s *Session) NextBuffer() bool {
	tab := s.CurrentTab()
	moved := tab.Next()
	if moved {
		events.Document.Switch(tab.Current().Path(), tab.Index())
	}
	return moved
}

// PreviousBuffer moves to the previous document in the current tab.
func (s *Session) PreviousBuffer() bool {
	tab := s.CurrentTab()
	moved := tab.Previous()
	if moved {
		events.Document.Switch(tab.Current().Path(), tab.Index())
	}
	return moved
}

// FocusTab moves the current tab index by delta, clamped to the open tabs.
func (s *Session) FocusTab(delta int) bool {
	next := s.current + delta
	if next < 0 {
		next = 0
	}
	if next > len(s.tabs)-1 {
		next = len(s.tabs) - 1
	}
	if next == s.current {
		return false
	}
	s.current = next
	events.Session.FocusTab(s.current, len(s.tabs))
	return true
}

// NewTab appends a tab holding a fresh intro document and focuses it.
func (s *Session) NewTab() {
	s.tabs = append(s.tabs, newTab(s.newDocument(introLines, "")))
	s.current = len(s.tabs) - 1
	events.Session.NewTab(s.current)
}

// PickerOpen reports whether the file picker is showing.
func (s *Session) PickerOpen() bool {
	return s.pickerOpen
}

// Picker returns the document listing registry paths.
func (s *Session) Picker() *editor.Document {
	return s.picker
}

// ShowPicker switches rendering and input to the file picker.
func (s *Session) ShowPicker() {
	if !s.pickerOpen {
		s.pickerOpen = true
		events.Session.Picker(true)
	}
}

// HidePicker returns to the current document.
func (s *Session) HidePicker() {
	if s.pickerOpen {
		s.pickerOpen = false
		events.Session.Picker(false)
	}
}

// RefreshPicker rebuilds the picker lines from the registry, keeping the
// cursor row where possible.
func (s *Session) RefreshPicker() {
	cursor := s.picker.Cursor()
	pattern := s.picker.SearchPattern()
	height := s.picker.Height()
	s.picker = editor.New(s.registry.Paths(), "")
	_ = s.picker.SetSearchPattern(pattern)
	s.picker.SetHeight(height)
	s.picker.SetCursor(editor.Position{Row: cursor.Row})
}

// PickerPath returns the registry path under the picker cursor.
func (s *Session) PickerPath() (string, bool) {
	if s.registry.Len() == 0 {
		return "", false
	}
	path := s.picker.Line(s.picker.Cursor().Row)
	if path == "" {
		return "", false
	}
	return path, true
}

// CreateNote writes a new note at path with the given initial lines and
// registers it. The note is not opened.
func (s *Session) CreateNote(path string, lines []string) error {
	path = Clean(path)
	if err := s.store.Create(path, lines); err != nil {
		return err
	}
	events.Vault.NoteCreated(path)
	if s.registry.Add(path) {
		s.RefreshPicker()
	}
	return nil
}

// Register adds an externally created file to the registry.
func (s *Session) Register(path string) bool {
	if !s.registry.Add(path) {
		return false
	}
	events.Vault.RegistryAdd(path)
	s.RefreshPicker()
	return true
}

// Unregister removes a deleted file from the registry. When path was a
// directory, every note registered below it goes too.
func (s *Session) Unregister(path string) bool {
	gone := append([]string{path}, s.registry.Under(path)...)
	removed := false
	for _, p := range gone {
		if s.registry.Remove(p) {
			events.Vault.RegistryRemove(p)
			removed = true
		}
	}
	if removed {
		s.RefreshPicker()
	}
	return removed
}
