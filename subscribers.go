package reagent

// Dispatcher routes a published event to whoever is listening. The events
// package provides the standard implementation; ExecutionContext publishes
// through this interface so the root package does not depend on it.
type Dispatcher interface {
	Dispatch(execCtx *ExecutionContext, event Event)
}

// BeforeRunSubscriber receives BeforeRunEvent.
type BeforeRunSubscriber interface {
	OnBeforeRun(execCtx *ExecutionContext, event *BeforeRunEvent)
}

// RunFinishedSubscriber receives RunFinishedEvent.
type RunFinishedSubscriber interface {
	OnRunFinished(execCtx *ExecutionContext, event *RunFinishedEvent)
}

// BeforeIterationSubscriber receives BeforeIterationEvent.
type BeforeIterationSubscriber interface {
	OnBeforeIteration(execCtx *ExecutionContext, event *BeforeIterationEvent)
}

// AfterIterationSubscriber receives AfterIterationEvent.
type AfterIterationSubscriber interface {
	OnAfterIteration(execCtx *ExecutionContext, event *AfterIterationEvent)
}

// ActionStartedSubscriber receives ActionStartedEvent.
type ActionStartedSubscriber interface {
	OnActionStarted(execCtx *ExecutionContext, event *ActionStartedEvent)
}

// ActionEndedSubscriber receives ActionEndedEvent.
type ActionEndedSubscriber interface {
	OnActionEnded(execCtx *ExecutionContext, event *ActionEndedEvent)
}

// ThoughtSubscriber receives ThoughtEvent.
type ThoughtSubscriber interface {
	OnThought(execCtx *ExecutionContext, event *ThoughtEvent)
}

// BeforeModelCallSubscriber receives BeforeModelCallEvent.
type BeforeModelCallSubscriber interface {
	OnBeforeModelCall(execCtx *ExecutionContext, event *BeforeModelCallEvent)
}

// AfterModelCallSubscriber receives AfterModelCallEvent.
type AfterModelCallSubscriber interface {
	OnAfterModelCall(execCtx *ExecutionContext, event *AfterModelCallEvent)
}

// ParseErrorSubscriber receives ParseErrorEvent.
type ParseErrorSubscriber interface {
	OnParseError(execCtx *ExecutionContext, event *ParseErrorEvent)
}

// ErrorSubscriber receives ErrorEvent.
type ErrorSubscriber interface {
	OnError(execCtx *ExecutionContext, event *ErrorEvent)
}
