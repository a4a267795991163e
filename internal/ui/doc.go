// Package ui contains the Bubble Tea program that hosts the note editor.
// The Model type focuses on message orchestration, while dedicated files own
// dialogs, command dispatch, rendering and watcher updates.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages, which are routed
//     through a typed handler registry so each tea.Msg is handled by a focused
//     function.
//   - Key presses are decoded into editor keys (keys.go). When a dialog is
//     open it consumes the key; otherwise the key goes to the vim machine for
//     the active document: the picker machine while the picker shows, the
//     editing machine otherwise.
//   - The machine returns a transition. Commands go to dispatch (dispatch.go),
//     and prompt-opening transitions start a scratch dialog (dialogs.go).
//
// State ownership:
//   - Tabs, documents, the picker and the note registry live in
//     internal/vault.Session. The model never holds a document across
//     messages; it asks the session for the active one each time.
//   - Ranked dialogs keep their candidate rows in internal/ui/state.Level.
//
// Backend interactions:
//   - An optional backend.Watcher streams vault file changes; Update waits for
//     those events and mirrors them into the session registry so the picker
//     and autocomplete see new notes.
package ui
