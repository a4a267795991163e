package editor

import "unicode"

// Motion is a pure cursor movement.
type Motion int

const (
	MotionForward Motion = iota
	MotionBack
	MotionUp
	MotionDown
	MotionWordForward
	MotionWordEnd
	MotionWordBack
	MotionHead
	MotionEnd
	MotionTop
	MotionBottom
)

type charClass int

const (
	classSpace charClass = iota
	classPunct
	classWord
)

func classOf(r rune) charClass {
	switch {
	case unicode.IsSpace(r):
		return classSpace
	case r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r):
		return classWord
	default:
		return classPunct
	}
}

// Move applies m to the cursor and reports whether the cursor changed.
func (d *Document) Move(m Motion) bool {
	before := d.cursor
	c := d.cursor
	switch m {
	case MotionForward:
		if next, ok := d.next(c); ok {
			c = next
		}
	case MotionBack:
		if prev, ok := d.prev(c); ok {
			c = prev
		}
	case MotionUp:
		c.Row--
	case MotionDown:
		c.Row++
	case MotionWordForward:
		c = d.wordForward()
	case MotionWordEnd:
		c = d.wordEnd()
	case MotionWordBack:
		c = d.wordBack()
	case MotionHead:
		c.Col = 0
	case MotionEnd:
		c.Col = len(d.lines[c.Row])
	case MotionTop:
		c = Position{}
	case MotionBottom:
		c = Position{Row: len(d.lines) - 1}
	}
	d.cursor = d.clamp(c)
	return d.cursor != before
}

// MoveRight advances one column without wrapping onto the next line.
func (d *Document) MoveRight() bool {
	if d.cursor.Col >= len(d.lines[d.cursor.Row]) {
		return false
	}
	d.cursor.Col++
	return true
}

func (d *Document) next(p Position) (Position, bool) {
	if p.Col < len(d.lines[p.Row]) {
		return Position{Row: p.Row, Col: p.Col + 1}, true
	}
	if p.Row+1 < len(d.lines) {
		return Position{Row: p.Row + 1}, true
	}
	return p, false
}

func (d *Document) prev(p Position) (Position, bool) {
	if p.Col > 0 {
		return Position{Row: p.Row, Col: p.Col - 1}, true
	}
	if p.Row > 0 {
		return Position{Row: p.Row - 1, Col: len(d.lines[p.Row-1])}, true
	}
	return p, false
}

// classAt treats the cell after the last character of a line as whitespace,
// so word runs never continue across a line break.
func (d *Document) classAt(p Position) charClass {
	line := d.lines[p.Row]
	if p.Col >= len(line) {
		return classSpace
	}
	return classOf(line[p.Col])
}

func (d *Document) wordForward() Position {
	p := d.cursor
	if cls := d.classAt(p); cls != classSpace {
		for d.classAt(p) == cls {
			next, ok := d.next(p)
			if !ok {
				return p
			}
			p = next
		}
	}
	for d.classAt(p) == classSpace {
		if p.Row != d.cursor.Row && len(d.lines[p.Row]) == 0 {
			return p
		}
		next, ok := d.next(p)
		if !ok {
			return p
		}
		p = next
	}
	return p
}

func (d *Document) wordEnd() Position {
	p, ok := d.next(d.cursor)
	if !ok {
		return d.cursor
	}
	for d.classAt(p) == classSpace {
		next, ok := d.next(p)
		if !ok {
			return p
		}
		p = next
	}
	cls := d.classAt(p)
	for {
		next, ok := d.next(p)
		if !ok || d.classAt(next) != cls {
			return p
		}
		p = next
	}
}

func (d *Document) wordBack() Position {
	p, ok := d.prev(d.cursor)
	if !ok {
		return d.cursor
	}
	for d.classAt(p) == classSpace {
		if p.Row != d.cursor.Row && len(d.lines[p.Row]) == 0 {
			return p
		}
		prev, ok := d.prev(p)
		if !ok {
			return p
		}
		p = prev
	}
	cls := d.classAt(p)
	for {
		prev, ok := d.prev(p)
		if !ok || prev.Row != p.Row || d.classAt(prev) != cls {
			return p
		}
		p = prev
	}
}
