package editor

const defaultUndoLimit = 200

type snapshot struct {
	lines  [][]rune
	cursor Position
}

// history is a per-document snapshot stack. It is never shared.
type history struct {
	undo     []snapshot
	redo     []snapshot
	limit    int
	grouping bool
}

func (d *Document) snapshot() snapshot {
	lines := make([][]rune, len(d.lines))
	for i, line := range d.lines {
		lines[i] = append([]rune(nil), line...)
	}
	return snapshot{lines: lines, cursor: d.cursor}
}

func (d *Document) restore(s snapshot) {
	d.lines = s.lines
	d.cursor = d.clamp(s.cursor)
	d.CancelSelection()
}

// record pushes the pre-edit state. Inside a group only the snapshot taken
// by BeginGroup is kept.
func (d *Document) record() {
	if d.history.grouping {
		return
	}
	d.push()
}

func (d *Document) push() {
	h := &d.history
	h.undo = append(h.undo, d.snapshot())
	if h.limit > 0 && len(h.undo) > h.limit {
		h.undo = h.undo[len(h.undo)-h.limit:]
	}
	h.redo = nil
}

// BeginGroup opens an undo group: every edit until EndGroup is undone as one
// step. Nested calls are ignored.
func (d *Document) BeginGroup() {
	if d.history.grouping {
		return
	}
	d.push()
	d.history.grouping = true
}

// EndGroup closes the current undo group. A group that changed nothing is
// discarded.
func (d *Document) EndGroup() {
	h := &d.history
	if !h.grouping {
		return
	}
	h.grouping = false
	if n := len(h.undo); n > 0 && sameLines(h.undo[n-1].lines, d.lines) {
		h.undo = h.undo[:n-1]
	}
}

// Undo restores the most recent snapshot.
func (d *Document) Undo() bool {
	h := &d.history
	h.grouping = false
	if len(h.undo) == 0 {
		return false
	}
	prev := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, d.snapshot())
	d.restore(prev)
	return true
}

// Redo reapplies the most recently undone snapshot.
func (d *Document) Redo() bool {
	h := &d.history
	if len(h.redo) == 0 {
		return false
	}
	next := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = append(h.undo, d.snapshot())
	d.restore(next)
	return true
}

func (d *Document) undoDepth() int {
	return len(d.history.undo)
}

func sameLines(a, b [][]rune) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if string(a[i]) != string(b[i]) {
			return false
		}
	}
	return true
}
