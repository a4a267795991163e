package editor

// SetHeight records how many rows the renderer shows for this document.
func (d *Document) SetHeight(rows int) {
	d.height = rows
	d.SyncViewport()
}

// Height returns the viewport height in rows.
func (d *Document) Height() int {
	return d.height
}

// Top returns the first visible row.
func (d *Document) Top() int {
	return d.top
}

func (d *Document) pageSize() int {
	size := d.height
	if size <= 0 || size > len(d.lines) {
		size = len(d.lines)
	}
	if size < 1 {
		size = 1
	}
	return size
}

// ScrollLines moves the viewport by delta rows, dragging the cursor along
// only when it would leave the view.
func (d *Document) ScrollLines(delta int) {
	d.top += delta
	d.clampTop()
	if d.height <= 0 {
		return
	}
	if d.cursor.Row < d.top {
		d.cursor = d.clamp(Position{Row: d.top, Col: d.cursor.Col})
	}
	if bottom := d.top + d.height - 1; d.cursor.Row > bottom {
		d.cursor = d.clamp(Position{Row: bottom, Col: d.cursor.Col})
	}
}

// ScrollHalfPage moves viewport and cursor by half a page in direction dir.
func (d *Document) ScrollHalfPage(dir int) {
	d.scrollBy(dir * max(d.pageSize()/2, 1))
}

// ScrollPage moves viewport and cursor by a full page in direction dir.
func (d *Document) ScrollPage(dir int) {
	d.scrollBy(dir * d.pageSize())
}

func (d *Document) scrollBy(delta int) {
	d.top += delta
	d.clampTop()
	d.cursor = d.clamp(Position{Row: d.cursor.Row + delta, Col: d.cursor.Col})
	d.SyncViewport()
}

func (d *Document) clampTop() {
	maxTop := len(d.lines) - 1
	if d.height > 0 {
		maxTop = len(d.lines) - d.height
	}
	if maxTop < 0 {
		maxTop = 0
	}
	if d.top > maxTop {
		d.top = maxTop
	}
	if d.top < 0 {
		d.top = 0
	}
}

// SyncViewport adjusts the viewport offset so the cursor stays visible.
func (d *Document) SyncViewport() {
	if d.height <= 0 {
		d.top = 0
		return
	}
	d.clampTop()
	if d.cursor.Row < d.top {
		d.top = d.cursor.Row
	}
	if upper := d.top + d.height - 1; d.cursor.Row > upper {
		d.top = d.cursor.Row - d.height + 1
	}
	d.clampTop()
}
