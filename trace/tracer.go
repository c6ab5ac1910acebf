package trace

import (
	"github.com/cnbltyasar/sdramsim/sdram"
	"github.com/cnbltyasar/sdramsim/sdram/signal"
	"github.com/cnbltyasar/sdramsim/sim"
)

// CommandTableName is the table that CommandTracer records into.
const CommandTableName = "command_trace"

// A CommandTracer is a hook that records every command the controller issues.
// Attach it to a controller with WithAdditionalHooks.
type CommandTracer struct {
	recorder DataRecorder
}

// NewCommandTracer creates a CommandTracer writing into the given recorder.
func NewCommandTracer(recorder DataRecorder) *CommandTracer {
	recorder.CreateTable(CommandTableName, signal.CommandRecord{})

	return &CommandTracer{recorder: recorder}
}

// Func records the command carried by a command-issue hook invocation.
func (t *CommandTracer) Func(ctx sim.HookCtx) {
	if ctx.Pos != sdram.HookPosCommandIssue {
		return
	}

	t.recorder.InsertData(CommandTableName, ctx.Item.(signal.CommandRecord))
}
