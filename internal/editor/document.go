package editor

import (
	"path/filepath"
	"strings"
)

// Position addresses a character cell. Col may equal the line length, which
// places the cursor after the last character.
type Position struct {
	Row int
	Col int
}

// Before reports whether p sorts before o in reading order.
func (p Position) Before(o Position) bool {
	if p.Row != o.Row {
		return p.Row < o.Row
	}
	return p.Col < o.Col
}

// Document is one editable text buffer, optionally bound to a file path.
// It is not safe for concurrent use.
type Document struct {
	lines     [][]rune
	cursor    Position
	anchor    Position
	selecting bool
	lineWise  bool
	path      string

	history  history
	register Register

	pattern string
	search  searcher

	top    int
	height int
}

// Option customises a Document at construction.
type Option func(*Document)

// WithRegister shares a yank register with the document.
func WithRegister(r Register) Option {
	return func(d *Document) {
		if r != nil {
			d.register = r
		}
	}
}

// WithUndoLimit caps the number of undo snapshots retained.
func WithUndoLimit(limit int) Option {
	return func(d *Document) {
		d.history.limit = limit
	}
}

// New builds a document from lines. An empty slice yields a single empty line.
func New(lines []string, path string, opts ...Option) *Document {
	d := &Document{
		path:     path,
		register: &MemoryRegister{},
		history:  history{limit: defaultUndoLimit},
	}
	d.setLines(lines)
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// NewScratch builds the single-line document backing a dialog prompt.
func NewScratch(text string) *Document {
	d := New([]string{text}, "")
	d.cursor.Col = len(d.lines[0])
	return d
}

func (d *Document) setLines(lines []string) {
	d.lines = make([][]rune, 0, len(lines))
	for _, line := range lines {
		d.lines = append(d.lines, []rune(line))
	}
	if len(d.lines) == 0 {
		d.lines = [][]rune{{}}
	}
}

// Path returns the backing path, or "" for a document without one.
func (d *Document) Path() string {
	return d.path
}

// HasPath reports whether the document is bound to a file.
func (d *Document) HasPath() bool {
	return d.path != ""
}

// Title returns the file name without its extension.
func (d *Document) Title() string {
	if d.path == "" {
		return ""
	}
	base := filepath.Base(d.path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Lines returns a copy of the document text, one entry per line.
func (d *Document) Lines() []string {
	out := make([]string, len(d.lines))
	for i, line := range d.lines {
		out[i] = string(line)
	}
	return out
}

// Line returns the text of row, or "" when row is out of range.
func (d *Document) Line(row int) string {
	if row < 0 || row >= len(d.lines) {
		return ""
	}
	return string(d.lines[row])
}

// LineCount returns the number of lines.
func (d *Document) LineCount() int {
	return len(d.lines)
}

// Text joins the lines with newlines.
func (d *Document) Text() string {
	return strings.Join(d.Lines(), "\n")
}

// Cursor returns the cursor position.
func (d *Document) Cursor() Position {
	return d.cursor
}

// SetCursor moves the cursor, clamping it to the document bounds.
func (d *Document) SetCursor(p Position) {
	d.cursor = d.clamp(p)
}

func (d *Document) clamp(p Position) Position {
	if p.Row < 0 {
		p.Row = 0
	}
	if p.Row >= len(d.lines) {
		p.Row = len(d.lines) - 1
	}
	if p.Col < 0 {
		p.Col = 0
	}
	if n := len(d.lines[p.Row]); p.Col > n {
		p.Col = n
	}
	return p
}

// ClampNormal pulls a cursor sitting after the last character back onto it.
// Insert mode is the only state that may rest at col == len(line).
func (d *Document) ClampNormal() {
	n := len(d.lines[d.cursor.Row])
	if n == 0 {
		d.cursor.Col = 0
		return
	}
	if d.cursor.Col > n-1 {
		d.cursor.Col = n - 1
	}
}

// StartSelection anchors a selection at the cursor.
func (d *Document) StartSelection() {
	d.anchor = d.cursor
	d.selecting = true
	d.lineWise = false
}

// StartLineSelection anchors a selection covering whole lines, starting
// with the cursor's line.
func (d *Document) StartLineSelection() {
	d.anchor = Position{Row: d.cursor.Row}
	d.selecting = true
	d.lineWise = true
}

// CancelSelection drops the selection anchor.
func (d *Document) CancelSelection() {
	d.selecting = false
	d.lineWise = false
}

// HasSelection reports whether a selection anchor is set.
func (d *Document) HasSelection() bool {
	return d.selecting
}

// LineSelection reports whether the selection covers whole lines.
func (d *Document) LineSelection() bool {
	return d.selecting && d.lineWise
}

// Selection returns the ordered, end-exclusive extent of the selection. A
// line-wise selection runs from the head of its first line to the end of
// its last, whichever side of the anchor the cursor is on.
func (d *Document) Selection() (start, end Position, ok bool) {
	if !d.selecting {
		return Position{}, Position{}, false
	}
	start, end = d.anchor, d.cursor
	if end.Before(start) {
		start, end = end, start
	}
	if d.lineWise {
		start.Col = 0
		end.Col = len(d.lines[end.Row])
	}
	return start, end, true
}

// NormalizeSelection puts the anchor on the earlier end of the selection
// and the cursor on the later one.
func (d *Document) NormalizeSelection() {
	if !d.selecting {
		return
	}
	start, end, _ := d.Selection()
	d.anchor, d.cursor = start, end
}

// Register returns the yank register used by Copy, Cut and Paste.
func (d *Document) Register() Register {
	return d.register
}

func (d *Document) textRange(start, end Position) string {
	if start.Row == end.Row {
		return string(d.lines[start.Row][start.Col:end.Col])
	}
	var b strings.Builder
	b.WriteString(string(d.lines[start.Row][start.Col:]))
	for row := start.Row + 1; row < end.Row; row++ {
		b.WriteByte('\n')
		b.WriteString(string(d.lines[row]))
	}
	b.WriteByte('\n')
	b.WriteString(string(d.lines[end.Row][:end.Col]))
	return b.String()
}

func (d *Document) removeRange(start, end Position) {
	head := d.lines[start.Row][:start.Col]
	tail := d.lines[end.Row][end.Col:]
	joined := make([]rune, 0, len(head)+len(tail))
	joined = append(joined, head...)
	joined = append(joined, tail...)
	lines := make([][]rune, 0, len(d.lines)-(end.Row-start.Row))
	lines = append(lines, d.lines[:start.Row]...)
	lines = append(lines, joined)
	lines = append(lines, d.lines[end.Row+1:]...)
	d.lines = lines
	d.cursor = start
}

func (d *Document) insertText(at Position, text string) Position {
	parts := strings.Split(text, "\n")
	line := d.lines[at.Row]
	tail := append([]rune(nil), line[at.Col:]...)
	first := append(append([]rune(nil), line[:at.Col]...), []rune(parts[0])...)
	if len(parts) == 1 {
		end := Position{Row: at.Row, Col: len(first)}
		d.lines[at.Row] = append(first, tail...)
		return end
	}
	inserted := make([][]rune, 0, len(parts))
	inserted = append(inserted, first)
	for _, part := range parts[1 : len(parts)-1] {
		inserted = append(inserted, []rune(part))
	}
	last := []rune(parts[len(parts)-1])
	end := Position{Row: at.Row + len(parts) - 1, Col: len(last)}
	inserted = append(inserted, append(last, tail...))
	lines := make([][]rune, 0, len(d.lines)+len(parts)-1)
	lines = append(lines, d.lines[:at.Row]...)
	lines = append(lines, inserted...)
	lines = append(lines, d.lines[at.Row+1:]...)
	d.lines = lines
	return end
}
