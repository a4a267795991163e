package editor

// InsertRune inserts r at the cursor and advances past it.
func (d *Document) InsertRune(r rune) {
	d.InsertString(string(r))
}

// InsertString inserts text (which may span lines) at the cursor. The cursor
// ends after the inserted text.
func (d *Document) InsertString(text string) {
	if text == "" {
		return
	}
	d.record()
	d.cursor = d.insertText(d.cursor, text)
}

// InsertNewline splits the current line at the cursor.
func (d *Document) InsertNewline() {
	d.InsertString("\n")
}

// DeleteBackward removes the character before the cursor, joining lines at
// column zero.
func (d *Document) DeleteBackward() bool {
	start := d.cursor
	switch {
	case start.Col > 0:
		start.Col--
	case start.Row > 0:
		start = Position{Row: start.Row - 1, Col: len(d.lines[start.Row-1])}
	default:
		return false
	}
	d.record()
	d.removeRange(start, d.cursor)
	return true
}

// DeleteForward removes the character under the cursor, joining the next
// line when the cursor sits at the line end.
func (d *Document) DeleteForward() bool {
	end := d.cursor
	switch {
	case end.Col < len(d.lines[end.Row]):
		end.Col++
	case end.Row+1 < len(d.lines):
		end = Position{Row: end.Row + 1}
	default:
		return false
	}
	d.record()
	d.removeRange(d.cursor, end)
	return true
}

// DeleteToLineEnd removes everything from the cursor to the end of the line
// and stores it in the register.
func (d *Document) DeleteToLineEnd() bool {
	end := Position{Row: d.cursor.Row, Col: len(d.lines[d.cursor.Row])}
	if end.Col <= d.cursor.Col {
		return false
	}
	d.record()
	d.register.Set(d.textRange(d.cursor, end))
	d.removeRange(d.cursor, end)
	return true
}

// DeleteWordBackward removes the word before the cursor on the current line.
func (d *Document) DeleteWordBackward() bool {
	if d.cursor.Col == 0 {
		return d.DeleteBackward()
	}
	line := d.lines[d.cursor.Row]
	col := d.cursor.Col
	for col > 0 && classOf(line[col-1]) == classSpace {
		col--
	}
	if col > 0 {
		kind := classOf(line[col-1])
		for col > 0 && classOf(line[col-1]) == kind {
			col--
		}
	}
	d.record()
	d.removeRange(Position{Row: d.cursor.Row, Col: col}, d.cursor)
	return true
}

// Copy stores the selected text in the register, cancels the selection and
// moves the cursor to the selection start.
func (d *Document) Copy() bool {
	start, end, ok := d.Selection()
	if !ok {
		return false
	}
	d.register.Set(d.textRange(start, end))
	d.CancelSelection()
	d.cursor = start
	return true
}

// Cut stores the selected text in the register and removes it.
func (d *Document) Cut() bool {
	start, end, ok := d.Selection()
	if !ok {
		return false
	}
	d.CancelSelection()
	if start == end {
		d.cursor = start
		return false
	}
	d.record()
	d.register.Set(d.textRange(start, end))
	d.removeRange(start, end)
	return true
}

// Paste inserts the register contents at the cursor.
func (d *Document) Paste() bool {
	text := d.register.Get()
	if text == "" {
		return false
	}
	d.InsertString(text)
	return true
}

// ReplaceRange swaps the text between start and end for text and leaves the
// cursor after the replacement.
func (d *Document) ReplaceRange(start, end Position, text string) {
	start, end = d.clamp(start), d.clamp(end)
	if end.Before(start) {
		start, end = end, start
	}
	d.record()
	d.removeRange(start, end)
	d.cursor = d.insertText(start, text)
}

// Input is the low-level handler for keys that reach the buffer unchanged
// from Insert mode or a dialog prompt. It reports whether the key was used.
func (d *Document) Input(k Key) bool {
	switch k.Code {
	case KeyRune:
		switch {
		case k.Printable():
			d.InsertRune(k.Rune)
		case k.IsCtrl('w'):
			return d.DeleteWordBackward()
		case k.IsCtrl('h'):
			return d.DeleteBackward()
		default:
			return false
		}
	case KeyEnter:
		d.InsertNewline()
	case KeyTab:
		d.InsertRune('\t')
	case KeyBackspace:
		return d.DeleteBackward()
	case KeyDelete:
		return d.DeleteForward()
	case KeyLeft:
		d.Move(MotionBack)
	case KeyRight:
		d.Move(MotionForward)
	case KeyUp:
		d.Move(MotionUp)
	case KeyDown:
		d.Move(MotionDown)
	case KeyHome:
		d.Move(MotionHead)
	case KeyEnd:
		d.Move(MotionEnd)
	case KeyPageUp:
		d.ScrollPage(-1)
	case KeyPageDown:
		d.ScrollPage(1)
	default:
		return false
	}
	return true
}
