package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/atomicstack/vault-tui/internal/backend"
	"github.com/atomicstack/vault-tui/internal/editor"
	"github.com/atomicstack/vault-tui/internal/logging"
	"github.com/atomicstack/vault-tui/internal/ui"
	"github.com/atomicstack/vault-tui/internal/vault"
	tea "github.com/charmbracelet/bubbletea"
)

// Config describes user-provided application options.
type Config struct {
	// Target is the vault directory or a single note to open. It comes from
	// the command line and never from the config file.
	Target          string `yaml:"-" json:"target"`
	VaultPath       string `yaml:"vault" json:"vault"`
	Width           int    `yaml:"width" json:"width"`
	Height          int    `yaml:"height" json:"height"`
	ShowFooter      bool   `yaml:"footer" json:"footer"`
	Watch           bool   `yaml:"watch" json:"watch"`
	Clipboard       bool   `yaml:"clipboard" json:"clipboard"`
	Extension       string `yaml:"extension" json:"extension"`
	NotePrefix      string `yaml:"note_prefix" json:"note_prefix"`
	TemplatesDir    string `yaml:"templates" json:"templates"`
	NewNoteTemplate string `yaml:"new_note_template" json:"new_note_template"`
	UndoLimit       int    `yaml:"undo_limit" json:"undo_limit"`
}

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg Config) error {
	session, err := NewSession(cfg)
	if err != nil {
		return err
	}
	var watcher *backend.Watcher
	if cfg.Watch {
		watcher, err = backend.NewWatcher(session.Store().Root())
		if err != nil {
			return fmt.Errorf("watch vault: %w", err)
		}
		defer watcher.Stop()
	}
	model := ui.NewModel(session, ui.Options{
		Width:           cfg.Width,
		Height:          cfg.Height,
		ShowFooter:      cfg.ShowFooter,
		Watcher:         watcher,
		NotePrefix:      cfg.NotePrefix,
		TemplatesDir:    cfg.TemplatesDir,
		NewNoteTemplate: cfg.NewNoteTemplate,
	})
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err = program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}

// NewSession scans the vault named by cfg.Target and builds the editing
// session. A file target opens that note; a directory target starts on the
// picker.
func NewSession(cfg Config) (*vault.Session, error) {
	root, initial, err := ResolveTarget(cfg.Target)
	if err != nil {
		return nil, err
	}
	store, err := vault.NewStore(root)
	if err != nil {
		return nil, err
	}
	registry, err := vault.Scan(store)
	if err != nil {
		return nil, fmt.Errorf("scan vault: %w", err)
	}
	opts := []vault.Option{
		vault.WithExtension(cfg.Extension),
		vault.WithUndoLimit(cfg.UndoLimit),
	}
	if cfg.Clipboard {
		clip := editor.NewSystemRegister()
		if !clip.Available() {
			logging.Error(errors.New("clipboard requested but no clipboard utility was found"))
		}
		opts = append(opts, vault.WithRegister(clip))
	}
	session := vault.NewSession(store, registry, opts...)
	if initial != "" {
		if err := session.Open(initial); err != nil {
			return nil, err
		}
	}
	return session, nil
}

// ResolveTarget splits target into the vault root and, when target is a
// file, the note to open relative to that root.
func ResolveTarget(target string) (root, file string, err error) {
	if target == "" {
		target = "."
	}
	abs, err := filepath.Abs(target)
	if err != nil {
		return "", "", fmt.Errorf("resolve %s: %w", target, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", "", fmt.Errorf("open vault: %w", err)
	}
	if info.IsDir() {
		return abs, "", nil
	}
	return filepath.Dir(abs), filepath.Base(abs), nil
}
