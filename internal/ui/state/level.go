package state

// Level is the candidate list shown under a ranked dialog. At most Rows
// candidates are visible; Offset is the first of them and Cursor the
// highlighted one.
type Level struct {
	Items  []Item
	Cursor int
	Offset int
	Rows   int
}

// NewLevel builds a list showing up to rows candidates at once. A rows
// value below one shows everything.
func NewLevel(rows int, items []Item) *Level {
	l := &Level{Rows: rows}
	l.UpdateItems(items)
	return l
}

// UpdateItems replaces the rows after a re-rank. The best match is listed
// first, so the cursor returns to the top.
func (l *Level) UpdateItems(items []Item) {
	l.Items = CloneItems(items)
	l.Cursor = 0
	l.Offset = 0
}

// Current returns the highlighted item.
func (l *Level) Current() (Item, bool) {
	if l.Cursor < 0 || l.Cursor >= len(l.Items) {
		return Item{}, false
	}
	return l.Items[l.Cursor], true
}

// Len returns the number of rows.
func (l *Level) Len() int {
	return len(l.Items)
}

// Height is the number of rows the list occupies on screen. An empty list
// still takes one row for its placeholder.
func (l *Level) Height() int {
	n := len(l.Items)
	if n == 0 {
		return 1
	}
	if l.Rows > 0 && n > l.Rows {
		return l.Rows
	}
	return n
}
