package events

import "github.com/atomicstack/vault-tui/internal/logging"

type SessionTracer struct{}

type VaultTracer struct{}

var (
	Session = SessionTracer{}
	Vault   = VaultTracer{}
)

func (SessionTracer) FocusTab(index, count int) {
	logging.Trace("session.tab.focus", map[string]interface{}{"index": index, "count": count})
}

func (SessionTracer) NewTab(index int) {
	logging.Trace("session.tab.new", map[string]interface{}{"index": index})
}

func (SessionTracer) Picker(open bool) {
	logging.Trace("session.picker", map[string]interface{}{"open": open})
}

func (VaultTracer) Scan(root string, count int) {
	logging.Trace("vault.scan", map[string]interface{}{"root": root, "count": count})
}

func (VaultTracer) NoteCreated(path string) {
	logging.Trace("vault.note.create", map[string]interface{}{"path": path})
}

func (VaultTracer) RegistryAdd(path string) {
	logging.Trace("vault.registry.add", map[string]interface{}{"path": path})
}

func (VaultTracer) RegistryRemove(path string) {
	logging.Trace("vault.registry.remove", map[string]interface{}{"path": path})
}

func (VaultTracer) WatchError(err error) {
	if err == nil {
		return
	}
	logging.Trace("vault.watch.error", map[string]interface{}{"error": err.Error()})
}
