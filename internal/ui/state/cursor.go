package state

// Move shifts the highlight by delta, stopping at either end, and scrolls
// so the highlight stays on screen. It reports whether the highlight moved.
func (l *Level) Move(delta int) bool {
	if len(l.Items) == 0 {
		l.Cursor, l.Offset = 0, 0
		return false
	}
	old := l.Cursor
	l.Cursor = clamp(l.Cursor+delta, 0, len(l.Items)-1)
	l.scroll()
	return l.Cursor != old
}

// Page moves a screenful up (dir < 0) or down (dir > 0).
func (l *Level) Page(dir int) bool {
	step := l.Height()
	if dir < 0 {
		step = -step
	}
	return l.Move(step)
}

// Select highlights the row whose ID is id.
func (l *Level) Select(id string) bool {
	for i, item := range l.Items {
		if item.ID == id {
			l.Cursor = i
			l.scroll()
			return true
		}
	}
	return false
}

// Visible returns the half-open range of rows currently on screen.
func (l *Level) Visible() (start, end int) {
	l.scroll()
	end = l.Offset + l.Height()
	if end > len(l.Items) {
		end = len(l.Items)
	}
	return l.Offset, end
}

func (l *Level) scroll() {
	if len(l.Items) == 0 {
		l.Cursor, l.Offset = 0, 0
		return
	}
	l.Cursor = clamp(l.Cursor, 0, len(l.Items)-1)
	rows := l.Height()
	l.Offset = clamp(l.Offset, 0, len(l.Items)-rows)
	if l.Cursor < l.Offset {
		l.Offset = l.Cursor
	}
	if l.Cursor >= l.Offset+rows {
		l.Offset = l.Cursor - rows + 1
	}
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
