package vault

import "errors"

var (
	ErrNoteExists  = errors.New("vault: note already exists")
	ErrEmptyName   = errors.New("vault: note name is empty")
	ErrPathEscapes = errors.New("vault: path escapes vault root")
	ErrNoDocument  = errors.New("vault: no document is being edited")
)
