package reagent

import (
	"github.com/tmc/langchaingo/llms"
)

// Agent is the capability contract a concrete agent implements. It bundles
// the behaviors one decision step needs: turning accumulated actions into
// model-consumable context (the scratchpad), assembling the full request,
// enriching it just before dispatch, and interpreting the raw response.
//
// The [Decide] and [ResolveEarlyStop] functions compose these capabilities
// with a [Model] into the decision-step and early-stop protocols; drivers
// such as the executor package never call the capabilities directly.
//
// Implementations must not retain the history slice they receive — it is a
// read-only snapshot owned by the driver, passed fresh on every call.
//
// See agents.React for a textual implementation and agents.ToolCalling for a
// native tool-calling one.
type Agent interface {
	// BuildScratchpad converts the run history into model messages. Must be
	// pure and deterministic: no I/O, no side effects, equal input yields
	// equal output. Recomputed every iteration; never retained.
	BuildScratchpad(history []Action) []llms.MessageContent

	// BuildFinalScratchpad is like BuildScratchpad but biases the model
	// toward producing a terminal answer (e.g. by appending an explicit
	// "answer now" instruction). Invoked at most once per run, by the
	// generate early-stop path. Same purity requirements.
	BuildFinalScratchpad(history []Action) []llms.MessageContent

	// BuildPrompt assembles the complete message list for one model call
	// from the task and an already-built scratchpad.
	BuildPrompt(task *Task, scratchpad []llms.MessageContent) []llms.MessageContent

	// PrepareRequest is called after BuildPrompt and immediately before
	// dispatch. Implementations may mutate the request in place — inject
	// call options, append run metadata, rewrite messages. Side effects
	// only; there is no return value.
	PrepareRequest(execCtx *ExecutionContext, req *ModelRequest)

	// Interpret maps a model response to exactly one Decision. It must be
	// total: tool calls yield an actions decision, recognized terminal
	// output yields a finish, and anything else — including malformed
	// output — yields a thought. Interpret never fails; keeping the run
	// alive is cheaper than aborting it.
	Interpret(execCtx *ExecutionContext, response *ContentResponse) *Decision
}

// ModelRequest is the single structured request dispatched to the model for
// one decision step. PrepareRequest hooks may mutate any field.
type ModelRequest struct {
	// Task is the input that started the run.
	Task *Task

	// Messages is the complete prompt, including the scratchpad.
	Messages []llms.MessageContent

	// Options are provider call options forwarded to the model.
	Options []llms.CallOption
}
