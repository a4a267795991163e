package events

import "github.com/atomicstack/vault-tui/internal/logging"

type ModeTracer struct{}

type DocumentTracer struct{}

var (
	Mode     = ModeTracer{}
	Document = DocumentTracer{}
)

func (ModeTracer) Change(from, to string) {
	logging.Trace("mode.change", map[string]interface{}{"from": from, "to": to})
}

func (ModeTracer) Pending(mode, key string) {
	logging.Trace("mode.pending", map[string]interface{}{"mode": mode, "key": key})
}

func (ModeTracer) Operator(op rune, mode string) {
	logging.Trace("mode.operator", map[string]interface{}{"op": string(op), "mode": mode})
}

func (DocumentTracer) Open(path string, lines int) {
	logging.Trace("document.open", map[string]interface{}{"path": path, "lines": lines})
}

func (DocumentTracer) Switch(path string, index int) {
	logging.Trace("document.switch", map[string]interface{}{"path": path, "index": index})
}

func (DocumentTracer) Save(path string, lines int) {
	logging.Trace("document.save", map[string]interface{}{"path": path, "lines": lines})
}

func (DocumentTracer) Search(path, pattern string, found bool) {
	logging.Trace("document.search", map[string]interface{}{"path": path, "pattern": pattern, "found": found})
}
