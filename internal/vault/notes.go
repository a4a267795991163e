package vault

import (
	"path"
	"strings"
	"time"

	"github.com/atomicstack/vault-tui/internal/template"
)

const introTitle = "intro"

var introLines = []string{
	"vault-tui",
	"",
	"  :h     open the note picker        :nn   new note",
	"  :w     save                        :q    quit",
	"  :sn    search notes                :itm  insert template",
	"  Enter  follow the [[link]] under the cursor",
	"  [[     autocomplete a link while typing",
}

// NoteFileName builds the path for a quick note: the timestamp rendered
// from prefix, a dash, then name, with ext appended when missing. A
// directory part in name is kept in front of the timestamp.
func NoteFileName(name, prefix, ext string, now time.Time) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrEmptyName
	}
	dir, base := path.Split(Clean(name))
	if base == "" || base == "." {
		return "", ErrEmptyName
	}
	if prefix != "" {
		base = template.FormatDate(prefix, now) + "-" + base
	}
	if ext != "" && !strings.HasSuffix(base, ext) {
		base += ext
	}
	return dir + base, nil
}
