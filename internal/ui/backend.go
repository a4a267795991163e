package ui

import (
	"github.com/atomicstack/vault-tui/internal/backend"
	"github.com/atomicstack/vault-tui/internal/logging"
	"github.com/atomicstack/vault-tui/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
)

func waitForBackendEvent(w *backend.Watcher) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-w.Events()
		if !ok {
			return backendDoneMsg{}
		}
		return backendEventMsg{event: evt}
	}
}

type backendEventMsg struct {
	event backend.Event
}

type backendDoneMsg struct{}

func (m *Model) handleBackendEventMsg(msg tea.Msg) tea.Cmd {
	eventMsg, ok := msg.(backendEventMsg)
	if !ok {
		return nil
	}
	m.applyBackendEvent(eventMsg.event)
	if m.backend != nil {
		return waitForBackendEvent(m.backend)
	}
	return nil
}

func (m *Model) handleBackendDoneMsg(tea.Msg) tea.Cmd {
	m.backend = nil
	return nil
}

// applyBackendEvent mirrors a vault file change into the registry. Open
// documents are left alone when their file disappears.
func (m *Model) applyBackendEvent(evt backend.Event) {
	if evt.Err != nil {
		m.backendLastErr = evt.Err.Error()
		logging.Error(evt.Err)
		events.Vault.WatchError(evt.Err)
		return
	}
	m.backendLastErr = ""
	switch evt.Kind {
	case backend.KindCreated:
		m.session.Register(evt.Path)
	case backend.KindRemoved:
		m.session.Unregister(evt.Path)
	}
}
