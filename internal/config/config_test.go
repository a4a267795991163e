package config

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/atomicstack/vault-tui/internal/testutil"
)

func init() {
	output = io.Discard
}

// isolate points the user config dir at an empty temp dir so a developer's
// own config file never leaks into tests.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	for _, key := range []string{
		envConfigFile, envVault, envWidth, envHeight, envShowFooter, envWatch,
		envClipboard, envExtension, envNotePrefix, envTemplates,
		envNewNoteTemplate, envUndoLimit, envTrace, envLogFile,
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadArgsDefaults(t *testing.T) {
	isolate(t)
	cfg, err := LoadArgs(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.Extension != ".md" {
		t.Fatalf("expected default extension .md, got %q", cfg.App.Extension)
	}
	if cfg.App.UndoLimit != 200 {
		t.Fatalf("expected default undo limit 200, got %d", cfg.App.UndoLimit)
	}
	if cfg.App.Target != "." {
		t.Fatalf("expected target '.', got %q", cfg.App.Target)
	}
	if cfg.File != "" {
		t.Fatalf("expected no config file, got %q", cfg.File)
	}
	if err := Validate(cfg); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
}

func TestLoadArgsFlagsAndPositional(t *testing.T) {
	isolate(t)
	cfg, err := LoadArgs([]string{"--width", "80", "--height", "24", "--footer", "--watch", "--trace", "--log-file", "trace.log", "--extension", ".txt", "notes"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.Width != 80 || cfg.App.Height != 24 {
		t.Fatalf("expected 80x24, got %dx%d", cfg.App.Width, cfg.App.Height)
	}
	if !cfg.App.ShowFooter || !cfg.App.Watch {
		t.Fatalf("expected footer and watch enabled")
	}
	if !cfg.Logging.Trace || cfg.Logging.FilePath != "trace.log" {
		t.Fatalf("expected trace logging to trace.log, got %+v", cfg.Logging)
	}
	if cfg.App.Extension != ".txt" {
		t.Fatalf("expected extension .txt, got %q", cfg.App.Extension)
	}
	if cfg.App.Target != "notes" {
		t.Fatalf("expected target notes, got %q", cfg.App.Target)
	}
	if cfg.Flags["width"] != "80" || cfg.Flags["target"] != "notes" {
		t.Fatalf("expected flags to record values, got %v", cfg.Flags)
	}
	if len(cfg.Args) != 12 {
		t.Fatalf("expected args to be recorded, got %v", cfg.Args)
	}
}

func TestLoadArgsEnvironment(t *testing.T) {
	isolate(t)
	t.Setenv(envUndoLimit, "50")
	t.Setenv(envClipboard, "true")
	t.Setenv(envVault, "/srv/notes")
	cfg, err := LoadArgs(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.UndoLimit != 50 {
		t.Fatalf("expected undo limit 50 from env, got %d", cfg.App.UndoLimit)
	}
	if !cfg.App.Clipboard {
		t.Fatalf("expected clipboard from env")
	}
	if cfg.App.Target != "/srv/notes" {
		t.Fatalf("expected vault path as target, got %q", cfg.App.Target)
	}
}

func TestLoadArgsFileThenFlags(t *testing.T) {
	isolate(t)
	t.Setenv("NOTES_HOME", "/data/notes")
	path := writeConfig(t, "vault: ${NOTES_HOME}\nundo_limit: 30\nnote_prefix: YYYY\nextension: .txt\ntrace: true\n")
	cfg, err := LoadArgs([]string{"--config", path, "--undo-limit", "40"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.File != path {
		t.Fatalf("expected file %q, got %q", path, cfg.File)
	}
	if cfg.App.VaultPath != "/data/notes" || cfg.App.Target != "/data/notes" {
		t.Fatalf("expected expanded vault path, got %q / %q", cfg.App.VaultPath, cfg.App.Target)
	}
	if cfg.App.UndoLimit != 40 {
		t.Fatalf("expected flag to override file, got %d", cfg.App.UndoLimit)
	}
	if cfg.App.NotePrefix != "YYYY" || cfg.App.Extension != ".txt" {
		t.Fatalf("expected file values, got %+v", cfg.App)
	}
	if !cfg.Logging.Trace {
		t.Fatalf("expected trace from file")
	}
	if cfg.App.TemplatesDir != "templates" {
		t.Fatalf("expected default templates dir kept, got %q", cfg.App.TemplatesDir)
	}
}

func TestLoadArgsUserConfigDir(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	if err := os.MkdirAll(filepath.Join(dir, "vault-tui"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	path := filepath.Join(dir, "vault-tui", "config.yaml")
	if err := os.WriteFile(path, []byte("footer: true\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := LoadArgs(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.File != path || !cfg.App.ShowFooter {
		t.Fatalf("expected user config applied, got file %q footer %v", cfg.File, cfg.App.ShowFooter)
	}
}

func TestLoadArgsRejectsUnknownFileKeys(t *testing.T) {
	isolate(t)
	path := writeConfig(t, "colour: blue\n")
	if _, err := LoadArgs([]string{"--config", path}); err == nil {
		t.Fatalf("expected error for unknown key")
	}
}

func TestLoadArgsEmptyFile(t *testing.T) {
	isolate(t)
	path := writeConfig(t, "")
	cfg, err := LoadArgs([]string{"-c", path})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.Extension != ".md" {
		t.Fatalf("expected defaults for empty file, got %q", cfg.App.Extension)
	}
}

func TestLoadArgsMissingExplicitFile(t *testing.T) {
	isolate(t)
	if _, err := LoadArgs([]string{"--config", filepath.Join(t.TempDir(), "nope.yaml")}); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}

func TestLoadArgsHelp(t *testing.T) {
	isolate(t)
	_, err := LoadArgs([]string{"--help"})
	if !errors.Is(err, ErrHelp) {
		t.Fatalf("expected ErrHelp, got %v", err)
	}
}

func TestLoadArgsBadFlag(t *testing.T) {
	isolate(t)
	if _, err := LoadArgs([]string{"--width", "wide"}); err == nil {
		t.Fatalf("expected error for non-numeric width")
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"extension without dot", func(c *Config) { c.App.Extension = "md" }, "extension"},
		{"empty extension", func(c *Config) { c.App.Extension = "" }, "extension"},
		{"negative width", func(c *Config) { c.App.Width = -1 }, "width"},
		{"negative height", func(c *Config) { c.App.Height = -3 }, "height"},
		{"zero undo limit", func(c *Config) { c.App.UndoLimit = 0 }, "undo_limit"},
		{"huge undo limit", func(c *Config) { c.App.UndoLimit = 10001 }, "undo_limit"},
		{"empty prefix", func(c *Config) { c.App.NotePrefix = "" }, "note_prefix"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Defaults()
			tc.mutate(&cfg)
			err := Validate(cfg)
			if err == nil {
				t.Fatalf("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.field) {
				t.Fatalf("expected error to name %s, got %v", tc.field, err)
			}
		})
	}
}

func TestExampleConfigLoads(t *testing.T) {
	isolate(t)
	path := filepath.Join(testutil.RepoRoot(t), "config.example.yaml")
	cfg, err := LoadArgs([]string{"--config", path})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := Validate(cfg); err != nil {
		t.Fatalf("expected example config to validate, got %v", err)
	}
	if cfg.App.UndoLimit != 500 || cfg.App.NewNoteTemplate != "templates/new.md" {
		t.Fatalf("expected example values, got %+v", cfg.App)
	}
}
