package editor

import (
	"strings"
	"unicode"
)

// KeyCode identifies the kind of a decoded key event.
type KeyCode int

const (
	KeyNull KeyCode = iota
	KeyRune
	KeyEnter
	KeyEsc
	KeyBackspace
	KeyDelete
	KeyTab
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
)

var keyNames = map[KeyCode]string{
	KeyNull:      "null",
	KeyEnter:     "enter",
	KeyEsc:       "esc",
	KeyBackspace: "backspace",
	KeyDelete:    "delete",
	KeyTab:       "tab",
	KeyLeft:      "left",
	KeyRight:     "right",
	KeyUp:        "up",
	KeyDown:      "down",
	KeyHome:      "home",
	KeyEnd:       "end",
	KeyPageUp:    "pgup",
	KeyPageDown:  "pgdown",
}

// Key is one already-decoded key event. The zero value is the null key.
type Key struct {
	Code KeyCode
	Rune rune
	Ctrl bool
	Alt  bool
}

// Rune returns a plain character key.
func Rune(r rune) Key {
	return Key{Code: KeyRune, Rune: r}
}

// Ctrl returns a control-modified character key.
func Ctrl(r rune) Key {
	return Key{Code: KeyRune, Rune: r, Ctrl: true}
}

// Special returns a non-character key.
func Special(code KeyCode) Key {
	return Key{Code: code}
}

// Runes converts text into a sequence of plain character keys.
func Runes(text string) []Key {
	keys := make([]Key, 0, len(text))
	for _, r := range text {
		keys = append(keys, Rune(r))
	}
	return keys
}

// IsNull reports whether the key is the idle tick.
func (k Key) IsNull() bool {
	return k.Code == KeyNull
}

// Is reports whether the key is the unmodified character r.
func (k Key) Is(r rune) bool {
	return k.Code == KeyRune && !k.Ctrl && !k.Alt && k.Rune == r
}

// IsCtrl reports whether the key is ctrl plus the character r.
func (k Key) IsCtrl(r rune) bool {
	return k.Code == KeyRune && k.Ctrl && !k.Alt && k.Rune == r
}

// Printable reports whether the key inserts its character as text.
func (k Key) Printable() bool {
	return k.Code == KeyRune && !k.Ctrl && !k.Alt && unicode.IsPrint(k.Rune)
}

func (k Key) String() string {
	if k.Code != KeyRune {
		return keyNames[k.Code]
	}
	var b strings.Builder
	if k.Ctrl {
		b.WriteString("ctrl+")
	}
	if k.Alt {
		b.WriteString("alt+")
	}
	b.WriteRune(k.Rune)
	return b.String()
}
