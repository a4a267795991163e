package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/atomicstack/vault-tui/internal/editor"
	"github.com/atomicstack/vault-tui/internal/vim"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/truncate"
)

const (
	tabWidth   = 4
	fillerText = "~"
)

type styledLine struct {
	text          string
	style         *lipgloss.Style
	prefixStyle   *lipgloss.Style
	highlightFrom int
	raw           bool // text contains ANSI escapes; skip style wrapping, use ANSI-aware truncation
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	m.layout()
	lines := make([]styledLine, 0, m.height+4)
	lines = append(lines, styledLine{text: m.tabLine(), raw: true})
	lines = append(lines, m.bodyLines()...)
	lines = append(lines, m.dialogLines()...)
	lines = append(lines, styledLine{text: m.statusLine(), raw: true})
	if m.showFooter {
		lines = append(lines, styledLine{text: m.footerHint(), style: styles.Footer})
	}
	lines = limitHeight(lines, m.height, m.width)
	lines = applyWidth(lines, m.width)
	return renderLines(lines)
}

// layout sizes the active document's viewport to the rows left over by the
// tab line, status line, footer and any dialog.
func (m *Model) layout() {
	if m.session == nil {
		return
	}
	m.session.Active().SetHeight(m.bodyHeight())
}

func (m *Model) bodyHeight() int {
	if m.height <= 0 {
		return 0
	}
	used := 2 // tab line + status line
	used += m.dialogHeight()
	if m.showFooter {
		used++
	}
	remain := m.height - used
	if remain < 1 {
		return 1
	}
	return remain
}

func (m *Model) dialogHeight() int {
	d := m.dialog
	if d == nil {
		return 0
	}
	rows := 1
	if d.list != nil {
		rows += d.list.Height()
	}
	if d.status != "" {
		rows++
	}
	return rows
}

func (m *Model) tabLine() string {
	tabs := m.session.Tabs()
	parts := make([]string, 0, len(tabs)+1)
	for i, tab := range tabs {
		label := fmt.Sprintf("%d:%s", i+1, tab.Title())
		if tab.Len() > 1 {
			label = fmt.Sprintf("%s [%d/%d]", label, tab.Index()+1, tab.Len())
		}
		style := styles.Tab
		if i == m.session.TabIndex() {
			style = styles.TabActive
		}
		parts = append(parts, renderStyled(style, label))
	}
	if m.session.PickerOpen() {
		parts = append(parts, renderStyled(styles.Info, " picker"))
	}
	line := strings.Join(parts, "")
	if m.width > 0 && lipgloss.Width(line) > m.width {
		line = truncate.StringWithTail(line, uint(m.width-1), "…")
	}
	return line
}

// bodyLines renders the visible rows of the active document. Long lines
// scroll horizontally so the cursor cell stays on screen.
func (m *Model) bodyLines() []styledLine {
	doc := m.session.Active()
	rows := doc.Height()
	if rows <= 0 {
		rows = doc.LineCount()
	}
	c := doc.Cursor()
	showCursor := m.dialog == nil
	hscroll := 0
	if m.width > 0 {
		if cells := cellWidth([]rune(doc.Line(c.Row))[:c.Col]); cells >= m.width {
			hscroll = cells - m.width + 1
		}
	}
	selStart, selEnd, selecting := doc.Selection()

	out := make([]styledLine, 0, rows)
	for i := 0; i < rows; i++ {
		row := doc.Top() + i
		if row >= doc.LineCount() {
			out = append(out, styledLine{text: fillerText, style: styles.Filler})
			continue
		}
		var b strings.Builder
		var run strings.Builder
		runStyle := styles.Text
		flush := func() {
			if run.Len() > 0 {
				b.WriteString(renderStyled(runStyle, run.String()))
				run.Reset()
			}
		}
		runes := []rune(doc.Line(row))
		cell := 0
		for col := 0; col <= len(runes); col++ {
			here := editor.Position{Row: row, Col: col}
			atCursor := showCursor && here == c
			var text string
			var w int
			if col == len(runes) {
				if !atCursor {
					break
				}
				text, w = " ", 1
			} else {
				text, w = cellText(runes[col])
			}
			if cell+w <= hscroll {
				cell += w
				continue
			}
			if m.width > 0 && cell+w > hscroll+m.width {
				break
			}
			style := styles.Text
			switch {
			case atCursor:
				style = styles.TextCursor
			case selecting && !here.Before(selStart) && here.Before(selEnd):
				style = styles.Selection
			}
			if style != runStyle {
				flush()
				runStyle = style
			}
			run.WriteString(text)
			cell += w
		}
		flush()
		out = append(out, styledLine{text: b.String(), raw: true})
	}
	return out
}

func cellText(r rune) (string, int) {
	if r == '\t' {
		return strings.Repeat(" ", tabWidth), tabWidth
	}
	w := runewidth.RuneWidth(r)
	if w == 0 {
		return "", 0
	}
	return string(r), w
}

func cellWidth(runes []rune) int {
	total := 0
	for _, r := range runes {
		_, w := cellText(r)
		total += w
	}
	return total
}

func (m *Model) dialogLines() []styledLine {
	d := m.dialog
	if d == nil {
		return nil
	}
	if d.kind == dialogNotify {
		style := styles.Info
		if d.isError {
			style = styles.Error
		}
		return []styledLine{{text: d.message, style: style}}
	}
	lines := []styledLine{{text: m.promptLine(d), raw: true}}
	if d.list != nil {
		if d.list.Len() == 0 {
			lines = append(lines, styledLine{text: "(no matches)", style: styles.Info})
		} else {
			start, end := d.list.Visible()
			for idx := start; idx < end; idx++ {
				lines = append(lines, m.buildItemLine(d.list.Items[idx].Label, idx == d.list.Cursor))
			}
		}
	}
	if d.status != "" {
		lines = append(lines, styledLine{text: d.status, style: styles.Error})
	}
	return lines
}

// buildItemLine constructs a single styledLine for a candidate row, padded
// so the selected row's background spans the full width.
func (m *Model) buildItemLine(label string, selected bool) styledLine {
	indicator := "▌"
	lineStyle := styles.Item
	indicatorStyle := styles.ItemIndicator
	if selected {
		indicatorStyle = styles.SelectedItemIndicator
		lineStyle = styles.SelectedItem
	}
	fullText := indicator + " " + label
	if m.width > 0 {
		if pad := m.width - len([]rune(fullText)); pad > 0 {
			fullText += strings.Repeat(" ", pad)
		}
	}
	return styledLine{
		text:          fullText,
		style:         lineStyle,
		prefixStyle:   indicatorStyle,
		highlightFrom: 1, // just the ▌ character
	}
}

func (m *Model) promptLine(d *dialog) string {
	if styles.Cursor != nil {
		m.promptCursor.Style = styles.Cursor.Copy()
	}
	if styles.PromptText != nil {
		m.promptCursor.TextStyle = styles.PromptText.Copy()
	} else {
		m.promptCursor.TextStyle = lipgloss.Style{}
	}
	prompt := renderStyled(styles.Prompt, d.prompt)
	runes := []rune(d.value())
	pos := d.input.Cursor().Col
	if pos < 0 {
		pos = 0
	}
	if pos > len(runes) {
		pos = len(runes)
	}
	before := renderStyled(styles.PromptText, string(runes[:pos]))
	caretRune := " "
	after := ""
	if pos < len(runes) {
		caretRune = string(runes[pos])
		after = renderStyled(styles.PromptText, string(runes[pos+1:]))
	}
	return prompt + before + m.renderPromptCursor(caretRune) + after
}

func (m *Model) renderPromptCursor(char string) string {
	if char == "" {
		char = " "
	}
	m.promptCursor.SetChar(char)

	base := m.promptCursor.TextStyle.Copy()
	base = base.Inline(true)

	if m.promptCursor.Blink {
		return base.Render(char)
	}

	if styles.Cursor != nil {
		cursorStyle := styles.Cursor.Copy().Inline(true)
		base = base.Inherit(cursorStyle).Blink(false)
		return base.Render(char)
	}

	return base.Reverse(true).Render(char)
}

func (m *Model) statusLine() string {
	doc := m.session.Active()
	name := "[picker]"
	if !m.session.PickerOpen() {
		name = doc.Path()
		if name == "" {
			name = "[intro]"
		}
	}
	c := doc.Cursor()
	rest := fmt.Sprintf(" %s  %d:%d", name, c.Row+1, c.Col+1)
	if m.machine().Mode() == vim.Visual && doc.HasSelection() {
		rest += "  " + selectionSize(doc)
	}
	if pending := m.machine().Pending(); !pending.IsNull() {
		rest += "  " + pending.String()
	}
	if info := m.currentInfo(); info != "" {
		rest += "  " + info
	}
	if m.backendLastErr != "" {
		rest += "  watch: " + m.backendLastErr
	}
	mode := renderStyled(styles.StatusMode, m.machine().Mode().String())
	if m.width > 0 {
		avail := m.width - lipgloss.Width(mode)
		if avail < 1 {
			return truncate.StringWithTail(mode, uint(m.width), "")
		}
		rest = truncateText(rest, avail)
		if pad := avail - runewidth.StringWidth(rest); pad > 0 {
			rest += strings.Repeat(" ", pad)
		}
	}
	return mode + renderStyled(styles.Status, rest)
}

// selectionSize describes the selection for the status line: a line count
// for line-wise or multi-line selections, a cell count otherwise.
func selectionSize(doc *editor.Document) string {
	start, end, _ := doc.Selection()
	if doc.LineSelection() || start.Row != end.Row {
		if n := end.Row - start.Row + 1; n > 1 {
			return fmt.Sprintf("%d lines", n)
		}
		return "1 line"
	}
	return fmt.Sprintf("%d chars", end.Col-start.Col+1)
}

func (m *Model) footerHint() string {
	switch {
	case m.dialog != nil && m.dialog.kind == dialogNotify:
		return "any key dismiss"
	case m.dialog != nil:
		return "enter accept  esc cancel  ↑/↓ choose  tab complete"
	case m.session.PickerOpen():
		return "j/k move  enter open  / search  : command  esc quit"
	case m.editing.Mode() == vim.Insert:
		return "esc normal  [[ link  ctrl+w delete word"
	}
	return "i insert  v visual  : command  / search  enter follow link  ctrl+c quit"
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	m.layout()
	return nil
}

func (m *Model) setInfo(message string) {
	m.infoMsg = message
	m.infoExpire = time.Now().Add(5 * time.Second)
}

func (m *Model) clearInfo() {
	if m.infoMsg == "" {
		return
	}
	if !m.infoExpire.IsZero() && time.Now().Before(m.infoExpire) {
		return
	}
	m.infoMsg = ""
	m.infoExpire = time.Time{}
}

func (m *Model) currentInfo() string {
	if m.infoMsg != "" && !m.infoExpire.IsZero() && time.Now().After(m.infoExpire) {
		m.infoMsg = ""
		m.infoExpire = time.Time{}
	}
	return m.infoMsg
}

func renderStyled(style *lipgloss.Style, value string) string {
	if style == nil || value == "" {
		return value
	}
	return style.Render(value)
}

func limitHeight(lines []styledLine, height, width int) []styledLine {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	if height == 1 {
		return []styledLine{{text: truncateText("…", width)}}
	}
	trimmed := make([]styledLine, 0, height)
	trimmed = append(trimmed, lines[:height-1]...)
	trimmed = append(trimmed, lines[len(lines)-1])
	return trimmed
}

func applyWidth(lines []styledLine, width int) []styledLine {
	if width <= 0 {
		return lines
	}
	result := make([]styledLine, len(lines))
	for i, line := range lines {
		text := line.text
		if line.raw {
			w := lipgloss.Width(text)
			if w > width {
				text = truncate.StringWithTail(text, uint(width-1), "…")
			}
		} else {
			text = truncateText(text, width)
		}
		result[i] = styledLine{
			text:          text,
			style:         line.style,
			prefixStyle:   line.prefixStyle,
			highlightFrom: line.highlightFrom,
			raw:           line.raw,
		}
	}
	return result
}

func renderLines(lines []styledLine) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		text := line.text
		if line.raw {
			out[i] = text
			continue
		}
		runes := []rune(text)
		if line.highlightFrom > 0 && line.highlightFrom < len(runes) {
			head := string(runes[:line.highlightFrom])
			tail := string(runes[line.highlightFrom:])
			if line.prefixStyle != nil {
				head = line.prefixStyle.Render(head)
			}
			if line.style != nil {
				tail = line.style.Render(tail)
			}
			text = head + tail
		} else if line.style != nil {
			text = line.style.Render(text)
		}
		out[i] = text
	}
	return strings.Join(out, "\n")
}

func truncateText(text string, width int) string {
	if width <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= width {
		return text
	}
	if width == 1 {
		return string(runes[:1])
	}
	return string(runes[:width-1]) + "…"
}
