package events

import "github.com/atomicstack/vault-tui/internal/logging"

type CommandTracer struct{}

type DialogTracer struct{}

type ActionTracer struct{}

var (
	Command = CommandTracer{}
	Dialog  = DialogTracer{}
	Action  = ActionTracer{}
)

func (CommandTracer) Parse(line, command string) {
	logging.Trace("command.parse", map[string]interface{}{"line": line, "command": command})
}

func (CommandTracer) Dispatch(command string) {
	logging.Trace("command.dispatch", map[string]interface{}{"command": command})
}

func (CommandTracer) Complete(input, completion string) {
	logging.Trace("command.complete", map[string]interface{}{"input": input, "completion": completion})
}

func (DialogTracer) Open(kind string) {
	logging.Trace("dialog.open", map[string]interface{}{"kind": kind})
}

func (DialogTracer) Accept(kind, value string) {
	logging.Trace("dialog.accept", map[string]interface{}{"kind": kind, "value": value})
}

func (DialogTracer) Cancel(kind string) {
	logging.Trace("dialog.cancel", map[string]interface{}{"kind": kind})
}

func (ActionTracer) Error(err error) {
	if err == nil {
		return
	}
	logging.Trace("action.error", map[string]interface{}{"error": err.Error()})
}

func (ActionTracer) Success(info string) {
	logging.Trace("action.success", map[string]interface{}{"info": info})
}
