package ui

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/atomicstack/vault-tui/internal/backend"
	"github.com/atomicstack/vault-tui/internal/editor"
	"github.com/atomicstack/vault-tui/internal/logging"
	"github.com/atomicstack/vault-tui/internal/testutil"
	"github.com/atomicstack/vault-tui/internal/vault"
	"github.com/atomicstack/vault-tui/internal/vim"
	tea "github.com/charmbracelet/bubbletea"
)

var fixedNow = time.Date(2026, time.October, 18, 14, 3, 0, 0, time.Local)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "vault-tui-ui")
	if err != nil {
		panic(err)
	}
	logging.Configure(filepath.Join(dir, "test.log"))
	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

func newTestHarness(t *testing.T, files map[string]string, opts Options) (*Harness, string) {
	t.Helper()
	root := testutil.TempVault(t, files)
	store, err := vault.NewStore(root)
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	reg, err := vault.Scan(store)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if opts.Now == nil {
		opts.Now = func() time.Time { return fixedNow }
	}
	return NewHarness(NewModel(vault.NewSession(store, reg), opts)), root
}

// openFirst opens the note on the first picker row.
func openFirst(t *testing.T, h *Harness) {
	t.Helper()
	h.Press(tea.KeyEnter)
	if h.Model().Session().PickerOpen() {
		t.Fatalf("expected picker to close after enter")
	}
}

func TestPickerEnterOpensSelectedNote(t *testing.T) {
	h, _ := newTestHarness(t, map[string]string{"a.md": "alpha\n", "b.md": "beta\n"}, Options{})
	if got := h.Model().Mode(); got != vim.Picker {
		t.Fatalf("expected picker mode at start, got %s", got)
	}
	h.Type("j")
	h.Press(tea.KeyEnter)
	s := h.Model().Session()
	if s.PickerOpen() {
		t.Fatalf("expected picker hidden")
	}
	if got := s.Document().Path(); got != "b.md" {
		t.Fatalf("expected b.md open, got %q", got)
	}
	if got := h.Model().Mode(); got != vim.Normal {
		t.Fatalf("expected normal mode after open, got %s", got)
	}
}

func TestPickerEnterWithEmptyRegistryDoesNothing(t *testing.T) {
	h, _ := newTestHarness(t, nil, Options{})
	h.Press(tea.KeyEnter)
	if !h.Model().Session().PickerOpen() {
		t.Fatalf("expected picker to stay open")
	}
}

func TestPickerEscQuits(t *testing.T) {
	h, _ := newTestHarness(t, nil, Options{})
	h.Press(tea.KeyEsc)
	if !h.Model().Quitting() {
		t.Fatalf("expected esc in picker to quit")
	}
}

func TestFollowLinkOpensAliasedTarget(t *testing.T) {
	h, _ := newTestHarness(t, map[string]string{
		"a-start.md": "[[my-note|Shown Text]] more\n",
		"my-note.md": "target\n",
	}, Options{})
	openFirst(t, h)
	h.Press(tea.KeyEnter)
	s := h.Model().Session()
	if got := s.Document().Path(); got != "my-note.md" {
		t.Fatalf("expected my-note.md, got %q", got)
	}
	if got := s.CurrentTab().Len(); got != 2 {
		t.Fatalf("expected two documents in the tab, got %d", got)
	}
	h.Press(tea.KeyCtrlO)
	if got := s.Document().Path(); got != "a-start.md" {
		t.Fatalf("expected ctrl+o to return to a-start.md, got %q", got)
	}
}

func TestFollowLinkToMissingNoteNotifies(t *testing.T) {
	h, _ := newTestHarness(t, map[string]string{"a.md": "[[ghost]]\n"}, Options{})
	openFirst(t, h)
	h.Press(tea.KeyEnter)
	d := h.Model().dialog
	if d == nil || d.kind != dialogNotify || !d.isError {
		t.Fatalf("expected error notification, got %+v", d)
	}
	if !strings.Contains(h.View(), "ghost.md") {
		t.Fatalf("expected notification to name the missing file, got %q", h.View())
	}
	h.Type("x")
	if h.Model().dialog != nil {
		t.Fatalf("expected any key to dismiss the notification")
	}
	if got := h.Model().Session().Document().Line(0); got != "[[ghost]]" {
		t.Fatalf("expected dismissing key not to edit, got %q", got)
	}
}

func TestSaveCommandWritesFile(t *testing.T) {
	h, root := newTestHarness(t, map[string]string{"a.md": "alpha\n"}, Options{})
	openFirst(t, h)
	h.Type("A!")
	h.Press(tea.KeyEsc)
	h.Type(":w")
	h.Press(tea.KeyEnter)
	if got := testutil.ReadFile(t, root, "a.md"); got != "alpha!\n" {
		t.Fatalf("expected saved content, got %q", got)
	}
	if !strings.Contains(h.View(), "written") {
		t.Fatalf("expected write confirmation in status line")
	}
	if h.Model().Quitting() {
		t.Fatalf("expected :w not to quit")
	}
}

func TestSaveQuitQuitsAfterWriting(t *testing.T) {
	h, root := newTestHarness(t, map[string]string{"a.md": "alpha\n"}, Options{})
	openFirst(t, h)
	h.Type("x:wq")
	h.Press(tea.KeyEnter)
	if got := testutil.ReadFile(t, root, "a.md"); got != "lpha\n" {
		t.Fatalf("expected saved content, got %q", got)
	}
	if !h.Model().Quitting() {
		t.Fatalf("expected :wq to quit")
	}
}

func TestSaveQuitStaysWhenSaveFails(t *testing.T) {
	h, root := newTestHarness(t, map[string]string{"a.md": "alpha\n"}, Options{})
	openFirst(t, h)
	if err := os.RemoveAll(root); err != nil {
		t.Fatalf("remove vault: %v", err)
	}
	if err := os.WriteFile(root, []byte("not a directory"), 0o644); err != nil {
		t.Fatalf("replace vault: %v", err)
	}
	h.Type(":wq")
	h.Press(tea.KeyEnter)
	if h.Model().Quitting() {
		t.Fatalf("expected failed save to keep the editor open")
	}
	if d := h.Model().dialog; d == nil || !d.isError {
		t.Fatalf("expected error notification after failed save")
	}
}

func TestSearchEscRestoresCursorAndPattern(t *testing.T) {
	h, _ := newTestHarness(t, map[string]string{"a.md": "one\ntwo\nthree\ntwo again\n"}, Options{})
	openFirst(t, h)
	doc := h.Model().Session().Document()

	h.Type("/thr")
	if got := doc.Cursor().Row; got != 2 {
		t.Fatalf("expected live search to reach row 2, got %d", got)
	}
	h.Press(tea.KeyEsc)
	if got := doc.Cursor(); got.Row != 0 || got.Col != 0 {
		t.Fatalf("expected cursor restored to origin, got %+v", got)
	}
	if got := doc.SearchPattern(); got != "" {
		t.Fatalf("expected previous empty pattern, got %q", got)
	}

	h.Type("/two")
	h.Press(tea.KeyEnter)
	if got := doc.Cursor().Row; got != 1 {
		t.Fatalf("expected first match on row 1, got %d", got)
	}
	h.Type("/")
	h.Press(tea.KeyEnter)
	if got := doc.Cursor().Row; got != 3 {
		t.Fatalf("expected empty search to repeat the pattern, got row %d", got)
	}
	h.Type("n")
	if got := doc.Cursor().Row; got != 1 {
		t.Fatalf("expected n to wrap to row 1, got %d", got)
	}
}

func TestSearchInvalidPatternKeepsPrevious(t *testing.T) {
	h, _ := newTestHarness(t, map[string]string{"a.md": "one\ntwo\n"}, Options{})
	openFirst(t, h)
	doc := h.Model().Session().Document()
	h.Type("/two")
	h.Press(tea.KeyEnter)

	h.Type("/(")
	if d := h.Model().dialog; d == nil || d.status == "" {
		t.Fatalf("expected inline status for a bad pattern")
	}
	h.Press(tea.KeyEnter)
	if d := h.Model().dialog; d == nil || d.kind != dialogNotify {
		t.Fatalf("expected notification for a bad pattern")
	}
	if got := doc.SearchPattern(); got != "two" {
		t.Fatalf("expected previous pattern kept, got %q", got)
	}
}

func TestAutocompleteAcceptRewritesLink(t *testing.T) {
	h, _ := newTestHarness(t, map[string]string{
		"alpha.md": "a\n",
		"beta.md":  "b\n",
		"note.md":  "see \n",
	}, Options{})
	h.Type("G")
	h.Press(tea.KeyEnter)
	doc := h.Model().Session().Document()
	if doc.Path() != "note.md" {
		t.Fatalf("expected note.md, got %q", doc.Path())
	}
	h.Type("A[[")
	d := h.Model().dialog
	if d == nil || d.kind != dialogAutocomplete {
		t.Fatalf("expected autocomplete dialog after [[")
	}
	if d.list.Len() != 3 {
		t.Fatalf("expected every note offered for an empty query, got %d", d.list.Len())
	}
	h.Type("be")
	if got, _ := h.Model().dialog.selected(); got != "beta" {
		t.Fatalf("expected beta ranked first, got %q", got)
	}
	h.Press(tea.KeyEnter)
	if got := doc.Line(0); got != "see [[beta]]" {
		t.Fatalf("expected completed link, got %q", got)
	}
	if got := h.Model().Mode(); got != vim.Insert {
		t.Fatalf("expected to stay in insert mode, got %s", got)
	}
	h.Press(tea.KeyEsc)
	h.Type("u")
	if got := doc.Line(0); got != "see " {
		t.Fatalf("expected insert session undone as one step, got %q", got)
	}
}

func TestAutocompleteStartsFromTypedQuery(t *testing.T) {
	h, _ := newTestHarness(t, map[string]string{
		"alpha.md": "a\n",
		"beta.md":  "b\n",
		"note.md":  "see [[be\n",
	}, Options{})
	h.Type("G")
	h.Press(tea.KeyEnter)
	doc := h.Model().Session().Document()
	doc.SetCursor(editor.Position{Col: 8})
	h.Model().openAutocomplete()
	d := h.Model().dialog
	if d == nil || d.value() != "be" {
		t.Fatalf("expected dialog seeded with the typed query, got %+v", d)
	}
	if got, _ := d.selected(); got != "beta" {
		t.Fatalf("expected beta ranked first, got %q", got)
	}
	h.Press(tea.KeyEnter)
	if got := doc.Line(0); got != "see [[beta]]" {
		t.Fatalf("expected completed link, got %q", got)
	}
}

func TestStatusLineShowsSelectionSize(t *testing.T) {
	h, _ := newTestHarness(t, map[string]string{"a.md": "alpha\nbeta\n"}, Options{})
	openFirst(t, h)
	h.Type("vl")
	if view := h.View(); !strings.Contains(view, "2 chars") {
		t.Fatalf("expected character count in status line, got %q", view)
	}
	h.Press(tea.KeyEsc)
	h.Type("V")
	if view := h.View(); !strings.Contains(view, "1 line") {
		t.Fatalf("expected single line count in status line, got %q", view)
	}
	h.Type("j")
	if view := h.View(); !strings.Contains(view, "2 lines") {
		t.Fatalf("expected line count in status line, got %q", view)
	}
	h.Press(tea.KeyEsc)
	if view := h.View(); strings.Contains(view, "line") {
		t.Fatalf("expected no selection size after esc, got %q", view)
	}
}

func TestAutocompleteWithoutCandidatesLeavesLine(t *testing.T) {
	h, _ := newTestHarness(t, map[string]string{"note.md": "x\n"}, Options{})
	openFirst(t, h)
	h.Type("A[[qqq")
	h.Press(tea.KeyEnter)
	if h.Model().dialog != nil {
		t.Fatalf("expected dialog closed")
	}
	if got := h.Model().Session().Document().Line(0); got != "x[[" {
		t.Fatalf("expected line unchanged, got %q", got)
	}
}

func TestAutocompleteMovesSelection(t *testing.T) {
	h, _ := newTestHarness(t, map[string]string{"a.md": "", "b.md": "", "c.md": ""}, Options{})
	openFirst(t, h)
	h.Type("i[[")
	first, _ := h.Model().dialog.selected()
	h.Press(tea.KeyDown)
	second, _ := h.Model().dialog.selected()
	if first == second {
		t.Fatalf("expected down to move the selection, stayed on %q", first)
	}
	h.Press(tea.KeyCtrlP)
	if got, _ := h.Model().dialog.selected(); got != first {
		t.Fatalf("expected ctrl+p to move back to %q, got %q", first, got)
	}
}

func TestCommandLineTabCompletes(t *testing.T) {
	h, _ := newTestHarness(t, nil, Options{})
	h.Type(":qu")
	h.Press(tea.KeyTab)
	if got := h.Model().dialog.value(); got != "quit" {
		t.Fatalf("expected completion to quit, got %q", got)
	}
	h.Press(tea.KeyEnter)
	if !h.Model().Quitting() {
		t.Fatalf("expected completed command to run")
	}
}

func TestUnknownCommandReportsInfo(t *testing.T) {
	h, _ := newTestHarness(t, nil, Options{})
	h.Type(":bogus")
	h.Press(tea.KeyEnter)
	if !strings.Contains(h.View(), "unknown command: bogus") {
		t.Fatalf("expected unknown command info, got %q", h.View())
	}
}

func TestNewNoteCreatesSeedsAndOpens(t *testing.T) {
	h, root := newTestHarness(t, map[string]string{
		"templates/new.md": "# {{title}}\ncreated {{date}}\n",
	}, Options{NotePrefix: "YYYYMMDD", NewNoteTemplate: "templates/new.md"})
	h.Type(":nn")
	h.Press(tea.KeyEnter)
	h.Type("ideas")
	h.Press(tea.KeyEnter)

	s := h.Model().Session()
	want := "20261018-ideas.md"
	if got := s.Document().Path(); got != want {
		t.Fatalf("expected %s open, got %q", want, got)
	}
	if got := testutil.ReadFile(t, root, want); got != "# 20261018-ideas\ncreated 2026-10-18\n" {
		t.Fatalf("unexpected seeded content %q", got)
	}
	if !s.Registry().Contains(want) {
		t.Fatalf("expected registry to list the new note")
	}
}

func TestNewNoteRejectsEmptyName(t *testing.T) {
	h, _ := newTestHarness(t, nil, Options{NotePrefix: "YYYY"})
	h.Type(":nn")
	h.Press(tea.KeyEnter)
	h.Press(tea.KeyEnter)
	d := h.Model().dialog
	if d == nil || d.kind != dialogNotify || !d.isError {
		t.Fatalf("expected error notification for empty name")
	}
}

func TestInsertTemplateNeedsDocument(t *testing.T) {
	h, _ := newTestHarness(t, map[string]string{"templates/t.md": "x\n"}, Options{TemplatesDir: "templates"})
	h.Type(":itm")
	h.Press(tea.KeyEnter)
	d := h.Model().dialog
	if d == nil || d.kind != dialogNotify {
		t.Fatalf("expected notification while the picker shows")
	}
	if !strings.Contains(d.message, "no document") {
		t.Fatalf("unexpected message %q", d.message)
	}
}

func TestInsertTemplateExpandsAtCursor(t *testing.T) {
	h, _ := newTestHarness(t, map[string]string{
		"note.md":        "body\n",
		"templates/t.md": "title={{title}}\n",
	}, Options{TemplatesDir: "templates"})
	openFirst(t, h)
	h.Type(":itm")
	h.Press(tea.KeyEnter)
	if d := h.Model().dialog; d == nil || d.kind != dialogTemplate {
		t.Fatalf("expected template dialog")
	}
	h.Press(tea.KeyEnter)
	doc := h.Model().Session().Document()
	if got := doc.Line(0); got != "title=notebody" {
		t.Fatalf("expected expanded template inserted, got %q", got)
	}
	h.Type("u")
	if got := doc.Line(0); got != "body" {
		t.Fatalf("expected template insert to undo in one step, got %q", got)
	}
}

func TestSearchNoteOpensChoice(t *testing.T) {
	h, _ := newTestHarness(t, map[string]string{"daily/log.md": "", "ideas.md": ""}, Options{})
	h.Type(":sn")
	h.Press(tea.KeyEnter)
	h.Type("log")
	h.Press(tea.KeyEnter)
	if got := h.Model().Session().Document().Path(); got != "daily/log.md" {
		t.Fatalf("expected daily/log.md, got %q", got)
	}
}

func TestSearchNoteStartsOnCurrentNote(t *testing.T) {
	h, _ := newTestHarness(t, map[string]string{"a.md": "a\n", "b.md": "b\n", "c.md": "c\n"}, Options{})
	h.Type("j")
	h.Press(tea.KeyEnter)
	if got := h.Model().Session().Document().Path(); got != "b.md" {
		t.Fatalf("expected b.md open, got %q", got)
	}
	h.Type(":sn")
	h.Press(tea.KeyEnter)
	if item, ok := h.Model().dialog.list.Current(); !ok || item.ID != "b.md" {
		t.Fatalf("expected b.md highlighted, got %+v", item)
	}
	h.Press(tea.KeyEnter)
	s := h.Model().Session()
	if got := s.Document().Path(); got != "b.md" || s.CurrentTab().Len() != 1 {
		t.Fatalf("expected to stay on b.md without a new buffer, got %q (%d)", got, s.CurrentTab().Len())
	}
}

func TestNewTabAndFocus(t *testing.T) {
	h, _ := newTestHarness(t, map[string]string{"a.md": "a\n", "b.md": "b\n"}, Options{})
	openFirst(t, h)
	h.Type(":nt")
	h.Press(tea.KeyEnter)
	s := h.Model().Session()
	if len(s.Tabs()) != 2 || s.TabIndex() != 1 {
		t.Fatalf("expected second tab focused, got %d tabs at %d", len(s.Tabs()), s.TabIndex())
	}
	if !s.PickerOpen() {
		t.Fatalf("expected picker shown for the new tab")
	}
	h.Type("j")
	h.Press(tea.KeyEnter)
	if got := s.Document().Path(); got != "b.md" {
		t.Fatalf("expected b.md in the new tab, got %q", got)
	}
	h.Type("gT")
	if s.TabIndex() != 0 {
		t.Fatalf("expected gT to focus the first tab, got %d", s.TabIndex())
	}
	if got := s.Document().Path(); got != "a.md" {
		t.Fatalf("expected a.md in the first tab, got %q", got)
	}
	h.Type("gT")
	if s.TabIndex() != 0 {
		t.Fatalf("expected focus to clamp at the first tab")
	}
}

func TestHomeThenPreviousBufferReturns(t *testing.T) {
	h, _ := newTestHarness(t, map[string]string{"a.md": "a\n"}, Options{})
	openFirst(t, h)
	h.Type(":h")
	h.Press(tea.KeyEnter)
	s := h.Model().Session()
	if !s.PickerOpen() {
		t.Fatalf("expected :h to show the picker")
	}
	h.Press(tea.KeyCtrlO)
	if s.PickerOpen() {
		t.Fatalf("expected ctrl+o to leave the picker")
	}
	if got := s.Document().Path(); got != "a.md" {
		t.Fatalf("expected a.md, got %q", got)
	}
}

func TestPastedRunesApplyInOrder(t *testing.T) {
	h, _ := newTestHarness(t, map[string]string{"a.md": "\n"}, Options{})
	openFirst(t, h)
	h.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("ihello")})
	if got := h.Model().Session().Document().Line(0); got != "hello" {
		t.Fatalf("expected pasted text, got %q", got)
	}
}

func TestCtrlCQuits(t *testing.T) {
	h, _ := newTestHarness(t, nil, Options{})
	h.Press(tea.KeyCtrlC)
	if !h.Model().Quitting() {
		t.Fatalf("expected ctrl+c to quit")
	}
	if h.View() != "" {
		t.Fatalf("expected empty view after quitting")
	}
}

func TestBackendEventsUpdateRegistry(t *testing.T) {
	h, _ := newTestHarness(t, map[string]string{"a.md": ""}, Options{})
	s := h.Model().Session()

	h.Send(backendEventMsg{event: backend.Event{Kind: backend.KindCreated, Path: "z.md"}})
	if !s.Registry().Contains("z.md") {
		t.Fatalf("expected created file registered")
	}
	if got := s.Picker().Line(1); got != "z.md" {
		t.Fatalf("expected picker refreshed, got %q", got)
	}

	h.Send(backendEventMsg{event: backend.Event{Kind: backend.KindRemoved, Path: "a.md"}})
	if s.Registry().Contains("a.md") {
		t.Fatalf("expected removed file unregistered")
	}

	h.Send(backendEventMsg{event: backend.Event{Err: errors.New("too many open files")}})
	if !strings.Contains(h.View(), "watch: too many open files") {
		t.Fatalf("expected watcher error in status line")
	}
	h.Send(backendDoneMsg{})
	if h.Model().backend != nil {
		t.Fatalf("expected watcher dropped after done")
	}
}

func TestBackendDirectoryRemovalDropsItsNotes(t *testing.T) {
	h, _ := newTestHarness(t, map[string]string{"journal/one.md": "", "journal/two.md": "", "keep.md": ""}, Options{})
	s := h.Model().Session()

	h.Send(backendEventMsg{event: backend.Event{Kind: backend.KindRemoved, Path: "journal"}})
	if s.Registry().Contains("journal/one.md") || s.Registry().Contains("journal/two.md") {
		t.Fatalf("expected notes under the removed directory unregistered, got %v", s.Registry().Paths())
	}
	if got := s.Picker().Lines(); len(got) != 1 || got[0] != "keep.md" {
		t.Fatalf("expected picker to list only keep.md, got %v", got)
	}
}

func TestViewLayout(t *testing.T) {
	h, _ := newTestHarness(t, map[string]string{"a.md": "alpha\nbeta\n"}, Options{Width: 60, Height: 8, ShowFooter: true})
	openFirst(t, h)
	view := h.View()
	lines := strings.Split(view, "\n")
	if len(lines) != 8 {
		t.Fatalf("expected 8 rows, got %d: %q", len(lines), view)
	}
	for _, want := range []string{"1:a", "lpha", "beta", "~", "NORMAL", "a.md", "1:1", "i insert"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected view to contain %q, got %q", want, view)
		}
	}
	if got := h.Model().Session().Document().Height(); got != 5 {
		t.Fatalf("expected body height 5, got %d", got)
	}
}

func TestViewShowsDialogCandidates(t *testing.T) {
	h, _ := newTestHarness(t, map[string]string{"a.md": "", "b.md": ""}, Options{Width: 40, Height: 12})
	h.Type(":sn")
	h.Press(tea.KeyEnter)
	view := h.View()
	if !strings.Contains(view, "note:") || !strings.Contains(view, "▌ a.md") {
		t.Fatalf("expected prompt and candidates, got %q", view)
	}
}

func TestViewScrollsLongLines(t *testing.T) {
	long := strings.Repeat("a", 30) + "END"
	h, _ := newTestHarness(t, map[string]string{"a.md": long + "\n"}, Options{Width: 20, Height: 6})
	openFirst(t, h)
	if strings.Contains(h.View(), "END") {
		t.Fatalf("expected line end off screen at col 0")
	}
	h.Type("$")
	if !strings.Contains(h.View(), "END") {
		t.Fatalf("expected view to follow the cursor to the line end")
	}
}

func TestWindowSizeRespectsFixedDimensions(t *testing.T) {
	h, _ := newTestHarness(t, nil, Options{Width: 30})
	h.Send(tea.WindowSizeMsg{Width: 100, Height: 40})
	m := h.Model()
	if m.width != 30 {
		t.Fatalf("expected fixed width kept, got %d", m.width)
	}
	if m.height != 40 {
		t.Fatalf("expected height from the terminal, got %d", m.height)
	}
}
