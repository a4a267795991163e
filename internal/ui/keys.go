package ui

import (
	"github.com/atomicstack/vault-tui/internal/editor"
	tea "github.com/charmbracelet/bubbletea"
)

// keysFromMsg decodes a Bubble Tea key press into editor keys. Pasted text
// arrives as one message and becomes one key per rune. Keys the editor has
// no use for decode to nothing.
func keysFromMsg(msg tea.KeyMsg) []editor.Key {
	switch msg.Type {
	case tea.KeyRunes:
		keys := make([]editor.Key, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			k := editor.Rune(r)
			k.Alt = msg.Alt
			keys = append(keys, k)
		}
		return keys
	case tea.KeySpace:
		return []editor.Key{editor.Rune(' ')}
	case tea.KeyEnter:
		return special(editor.KeyEnter)
	case tea.KeyEsc:
		return special(editor.KeyEsc)
	case tea.KeyBackspace:
		return special(editor.KeyBackspace)
	case tea.KeyDelete:
		return special(editor.KeyDelete)
	case tea.KeyTab:
		return special(editor.KeyTab)
	case tea.KeyLeft:
		return special(editor.KeyLeft)
	case tea.KeyRight:
		return special(editor.KeyRight)
	case tea.KeyUp:
		return special(editor.KeyUp)
	case tea.KeyDown:
		return special(editor.KeyDown)
	case tea.KeyHome:
		return special(editor.KeyHome)
	case tea.KeyEnd:
		return special(editor.KeyEnd)
	case tea.KeyPgUp:
		return special(editor.KeyPageUp)
	case tea.KeyPgDown:
		return special(editor.KeyPageDown)
	}
	if msg.Type >= tea.KeyCtrlA && msg.Type <= tea.KeyCtrlZ {
		return []editor.Key{editor.Ctrl(rune('a' + int(msg.Type-tea.KeyCtrlA)))}
	}
	return nil
}

func special(code editor.KeyCode) []editor.Key {
	return []editor.Key{editor.Special(code)}
}
