package reagent

import (
	"context"
	"fmt"
	"strings"
)

// StopMethod selects how a run is resolved to a Finish when its iteration or
// time budget is exhausted before a terminal decision occurs.
type StopMethod string

const (
	// StopForce returns a fixed budget-exceeded notice immediately, with no
	// further model calls. Use when further spend is undesirable.
	StopForce StopMethod = "force"

	// StopGenerate issues exactly one more model call on the final
	// scratchpad and returns its answer, degrading to unstructured text
	// when the model still wants to act.
	StopGenerate StopMethod = "generate"
)

// StoppedNotice is the return text of a forced stop.
const StoppedNotice = "Agent stopped due to iteration limit or time limit."

// Decide performs one decision step: build the incremental scratchpad from
// history, assemble and enrich the request, dispatch the model call, and
// interpret the response.
//
// The model call is the only point that blocks. Dispatch failures are not
// swallowed — they propagate to the caller, which decides whether to retry
// the iteration. Cancellation and timeout surface as context.Canceled /
// context.DeadlineExceeded in the error chain and should be resolved via
// [StopForce] rather than retried.
//
// The history slice is treated as a read-only snapshot; Decide never retains
// it.
func Decide(
	ctx context.Context,
	execCtx *ExecutionContext,
	agent Agent,
	model Model,
	task *Task,
	history []Action,
) (*Decision, error) {
	req := &ModelRequest{
		Task:     task,
		Messages: agent.BuildPrompt(task, agent.BuildScratchpad(history)),
	}
	agent.PrepareRequest(execCtx, req)

	response, err := model.GenerateContent(ctx, execCtx, req.Messages, req.Options...)
	if err != nil {
		return nil, fmt.Errorf("model dispatch: %w", err)
	}

	return agent.Interpret(execCtx, response), nil
}

// ResolveEarlyStop resolves a run whose budget ran out before a terminal
// decision. It issues at most one additional model call ([StopGenerate]) or
// none at all ([StopForce]); it never loops.
//
// Under StopGenerate, the final call's interpreted decision maps to the
// Finish as follows: a finish passes through verbatim; an actions decision
// has no further opportunity to execute, so it degrades to an unstructured
// Finish whose text and log are both the raw response content; a thought
// degrades the same way.
func ResolveEarlyStop(
	ctx context.Context,
	execCtx *ExecutionContext,
	agent Agent,
	model Model,
	method StopMethod,
	task *Task,
	history []Action,
) (*Finish, error) {
	switch method {
	case StopForce:
		return &Finish{Return: TextReturn(StoppedNotice)}, nil

	case StopGenerate:
		req := &ModelRequest{
			Task:     task,
			Messages: agent.BuildPrompt(task, agent.BuildFinalScratchpad(history)),
		}
		agent.PrepareRequest(execCtx, req)

		response, err := model.GenerateContent(ctx, execCtx, req.Messages, req.Options...)
		if err != nil {
			return nil, fmt.Errorf("final model dispatch: %w", err)
		}

		decision := agent.Interpret(execCtx, response)
		switch decision.Kind() {
		case DecisionFinish:
			return decision.Finish(), nil
		case DecisionThought:
			text := decision.Thought()
			return &Finish{Return: TextReturn(text), Log: text}, nil
		default:
			// The model still wanted to act but cannot: surface the raw
			// content instead of silently executing the proposed actions.
			raw := rawContent(response, decision)
			return &Finish{Return: TextReturn(raw), Log: raw}, nil
		}

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStopMethod, method)
	}
}

// rawContent extracts the best-effort raw text of a response whose decision
// proposed actions. Falls back to the action rationale when the choice text
// is empty (common with native tool calling).
func rawContent(response *ContentResponse, decision *Decision) string {
	if choice := response.FirstChoice(); choice != nil {
		if text := strings.TrimSpace(choice.Content); text != "" {
			return text
		}
	}
	if actions := decision.Actions(); len(actions) > 0 {
		return actions[0].Log
	}
	return ""
}
