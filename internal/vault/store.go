package vault

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Store reads and writes line-oriented note files under a vault root.
type Store struct {
	root string
}

// NewStore opens the vault rooted at dir, which must exist.
func NewStore(dir string) (*Store, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("vault: resolve root: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("vault: stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("vault: root is not a directory: %s", abs)
	}
	return &Store{root: abs}, nil
}

// Root returns the absolute vault directory.
func (s *Store) Root() string {
	return s.root
}

// Clean normalises a vault-relative path to slash form.
func Clean(rel string) string {
	return filepath.ToSlash(filepath.Clean(filepath.FromSlash(strings.TrimSpace(rel))))
}

// Abs resolves rel against the root and rejects paths that escape it.
func (s *Store) Abs(rel string) (string, error) {
	cleaned := filepath.Clean(filepath.FromSlash(rel))
	if rel == "" || cleaned == "." {
		return "", fmt.Errorf("%w: empty path", ErrPathEscapes)
	}
	if filepath.IsAbs(cleaned) {
		return "", fmt.Errorf("%w: %s", ErrPathEscapes, rel)
	}
	abs := filepath.Join(s.root, cleaned)
	if !strings.HasPrefix(abs, s.root+string(os.PathSeparator)) {
		return "", fmt.Errorf("%w: %s", ErrPathEscapes, rel)
	}
	return abs, nil
}

// Rel converts an absolute path below the root into a vault-relative one.
func (s *Store) Rel(abs string) (string, bool) {
	rel, err := filepath.Rel(s.root, abs)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return "", false
	}
	return filepath.ToSlash(rel), true
}

// ReadLines loads a file as lines, dropping "\n" and "\r\n" terminators.
func (s *Store) ReadLines(rel string) ([]string, error) {
	abs, err := s.Abs(rel)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("vault: open %s: %w", rel, err)
	}
	return splitLines(data), nil
}

func splitLines(data []byte) []string {
	var lines []string
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), len(data)+1)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines
}

func joinLines(lines []string) []byte {
	var b bytes.Buffer
	for _, line := range lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.Bytes()
}

// WriteLines atomically replaces a file with lines, each followed by "\n".
func (s *Store) WriteLines(rel string, lines []string) error {
	abs, err := s.Abs(rel)
	if err != nil {
		return err
	}
	dir := filepath.Dir(abs)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("vault: mkdir %s: %w", rel, err)
	}

	tmp, err := os.CreateTemp(dir, ".vault-tui-*")
	if err != nil {
		return fmt.Errorf("vault: save %s: %w", rel, err)
	}
	tmpName := tmp.Name()
	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(joinLines(lines)); err != nil {
		return fmt.Errorf("vault: save %s: %w", rel, err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("vault: save %s: %w", rel, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("vault: save %s: %w", rel, err)
	}
	if err := os.Rename(tmpName, abs); err != nil {
		return fmt.Errorf("vault: save %s: %w", rel, err)
	}
	success = true
	return nil
}

// Create writes a new file and fails with ErrNoteExists if it is present.
func (s *Store) Create(rel string, lines []string) error {
	abs, err := s.Abs(rel)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return fmt.Errorf("vault: mkdir %s: %w", rel, err)
	}
	f, err := os.OpenFile(abs, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("%w: %s", ErrNoteExists, rel)
		}
		return fmt.Errorf("vault: create %s: %w", rel, err)
	}
	if _, err := f.Write(joinLines(lines)); err != nil {
		_ = f.Close()
		return fmt.Errorf("vault: create %s: %w", rel, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("vault: create %s: %w", rel, err)
	}
	return nil
}

// List walks the vault and returns every regular file, sorted. Hidden
// directories and files are skipped.
func (s *Store) List() ([]string, error) {
	var out []string
	err := filepath.WalkDir(s.root, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if p == s.root {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if rel, ok := s.Rel(p); ok {
			out = append(out, rel)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("vault: list: %w", err)
	}
	sort.Strings(out)
	return out, nil
}
