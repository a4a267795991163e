package editor

import "github.com/atotto/clipboard"

// Register holds yanked text for Copy, Cut and Paste.
type Register interface {
	Set(text string)
	Get() string
}

// MemoryRegister keeps yanked text in process memory.
type MemoryRegister struct {
	text string
}

func (r *MemoryRegister) Set(text string) { r.text = text }

func (r *MemoryRegister) Get() string { return r.text }

// SystemRegister mirrors yanks to the operating system clipboard and reads
// pastes back from it. When the clipboard is unavailable it degrades to an
// in-memory register.
type SystemRegister struct {
	local MemoryRegister
	write func(string) error
	read  func() (string, error)
}

// NewSystemRegister returns a register backed by the OS clipboard.
func NewSystemRegister() *SystemRegister {
	return &SystemRegister{write: clipboard.WriteAll, read: clipboard.ReadAll}
}

// Available reports whether a clipboard utility was found.
func (r *SystemRegister) Available() bool {
	return !clipboard.Unsupported
}

func (r *SystemRegister) Set(text string) {
	r.local.Set(text)
	if r.write != nil {
		_ = r.write(text)
	}
}

func (r *SystemRegister) Get() string {
	if r.read != nil {
		if text, err := r.read(); err == nil && text != "" {
			return text
		}
	}
	return r.local.Get()
}
