package vault

import "github.com/atomicstack/vault-tui/internal/editor"

// Tab is an ordered stack of documents sharing one visual slot. At most one
// document per path lives in a tab.
type Tab struct {
	docs    []*editor.Document
	current int
}

func newTab(doc *editor.Document) *Tab {
	return &Tab{docs: []*editor.Document{doc}}
}

// Len returns the number of documents.
func (t *Tab) Len() int {
	return len(t.docs)
}

// Index returns the current document index.
func (t *Tab) Index() int {
	return t.current
}

// Current returns the document being edited in this tab.
func (t *Tab) Current() *editor.Document {
	if t.current < 0 || t.current >= len(t.docs) {
		panic("vault: tab current index out of range")
	}
	return t.docs[t.current]
}

func (t *Tab) find(path string) int {
	for i, doc := range t.docs {
		if doc.HasPath() && doc.Path() == path {
			return i
		}
	}
	return -1
}

func (t *Tab) push(doc *editor.Document) {
	t.docs = append(t.docs, doc)
	t.current = len(t.docs) - 1
}

// Next advances to the following document, clamping at the last.
func (t *Tab) Next() bool {
	if t.current >= len(t.docs)-1 {
		return false
	}
	t.current++
	return true
}

// Previous returns to the preceding document, clamping at the first.
func (t *Tab) Previous() bool {
	if t.current <= 0 {
		return false
	}
	t.current--
	return true
}

// Title names the tab after its current document.
func (t *Tab) Title() string {
	doc := t.Current()
	if !doc.HasPath() {
		return introTitle
	}
	return doc.Title()
}
