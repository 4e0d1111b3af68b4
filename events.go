package reagent

import (
	"time"

	"github.com/tmc/langchaingo/llms"
)

// Event is the marker interface for all run events. Events are a side
// channel for observability only: subscribers have no access back into the
// decision state and cannot alter control flow.
type Event interface {
	runEvent()
}

// -----------------------------------------------------------------------------
// Run lifecycle
// -----------------------------------------------------------------------------

// BeforeRunEvent is published once, before the first iteration of a run.
type BeforeRunEvent struct {
	// Task is the input that started the run.
	Task *Task
}

func (*BeforeRunEvent) runEvent() {}

// RunFinishedEvent is published exactly once per run, always last.
type RunFinishedEvent struct {
	// Reason indicates why the run ended.
	Reason TerminationReason

	// Finish is the terminal result. Nil only when the run ended with a
	// propagated error.
	Finish *Finish

	// Err is the error the run ended with, if any.
	Err error
}

func (*RunFinishedEvent) runEvent() {}

// BeforeIterationEvent is published before each decision step.
type BeforeIterationEvent struct {
	// Iteration is the current iteration number (1-indexed).
	Iteration int
}

func (*BeforeIterationEvent) runEvent() {}

// AfterIterationEvent is published after each decision step completes.
type AfterIterationEvent struct {
	// Iteration is the current iteration number (1-indexed).
	Iteration int

	// Decision is the interpreted decision of this iteration.
	Decision *Decision

	// Duration is how long the step took, including tool execution.
	Duration time.Duration
}

func (*AfterIterationEvent) runEvent() {}

// -----------------------------------------------------------------------------
// Actions
// -----------------------------------------------------------------------------

// ActionStartedEvent is published for each pending action immediately before
// its tool executes.
type ActionStartedEvent struct {
	// Action is the pending action, observation not yet attached.
	Action Action

	// Iteration is the iteration that proposed the action.
	Iteration int
}

func (*ActionStartedEvent) runEvent() {}

// ActionEndedEvent is published for each action once its observation has
// been attached. For the same action it always follows the corresponding
// ActionStartedEvent.
type ActionEndedEvent struct {
	// Action is the completed action, observation attached. Tool failures
	// are captured in the observation text.
	Action Action

	// Iteration is the iteration that proposed the action.
	Iteration int

	// Duration is how long the tool ran.
	Duration time.Duration

	// Err is the tool execution error, if any. The same failure is also
	// reflected in the observation text.
	Err error
}

func (*ActionEndedEvent) runEvent() {}

// ThoughtEvent is published when a decision step yields a non-terminal
// thought instead of actions or a finish.
type ThoughtEvent struct {
	// Text is the model's raw text.
	Text string

	// Iteration is the iteration that produced the thought.
	Iteration int
}

func (*ThoughtEvent) runEvent() {}

// -----------------------------------------------------------------------------
// Model calls
// -----------------------------------------------------------------------------

// BeforeModelCallEvent is published before each model API call.
type BeforeModelCallEvent struct {
	// Model is the model identifier, if the wrapper knows it.
	Model string

	// Messages is the prompt being dispatched.
	Messages []llms.MessageContent
}

func (*BeforeModelCallEvent) runEvent() {}

// AfterModelCallEvent is published after each model API call completes.
type AfterModelCallEvent struct {
	// Model is the model identifier, if the wrapper knows it.
	Model string

	// Messages is the prompt that was dispatched.
	Messages []llms.MessageContent

	// Response is the normalized response (nil on error).
	Response *ContentResponse

	// Duration is how long the call took.
	Duration time.Duration

	// Err is the dispatch error, if any.
	Err error
}

func (*AfterModelCallEvent) runEvent() {}

// -----------------------------------------------------------------------------
// Errors
// -----------------------------------------------------------------------------

// ParseErrorEvent is published when model output fails to parse (tool-call
// blocks, structured answers). Parse failures never abort the run — the
// decision degrades to a thought — but subscribers often want to see them.
type ParseErrorEvent struct {
	// Where names the parsing site, e.g. "action" or "answer".
	Where string

	// Raw is the content that failed to parse.
	Raw string

	// Err is the parse error.
	Err error
}

func (*ParseErrorEvent) runEvent() {}

// ErrorEvent is published when the run hits an error outside parsing, such
// as a model dispatch failure.
type ErrorEvent struct {
	// Iteration is the iteration where the error occurred (0 if outside any
	// iteration).
	Iteration int

	// Err is the error.
	Err error
}

func (*ErrorEvent) runEvent() {}
