package events

import (
	"github.com/khoametz/reagent"
)

// Registry manages event subscribers and dispatches run events to them.
//
// # Overview
//
// Subscribers are plain values implementing any combination of the
// subscriber interfaces in the root package (reagent.ActionStartedSubscriber,
// reagent.RunFinishedSubscriber, and so on). They only receive events for
// the interfaces they implement, in registration order.
//
//	registry := events.NewRegistry()
//	registry.Subscribe(&LoggingSubscriber{})
//	registry.Subscribe(&MetricsSubscriber{})
//
//	exec := executor.New(agent, model, toolbox, cfg).WithEvents(registry)
//
// # Panic Isolation
//
// A panicking subscriber never aborts the run: Dispatch recovers per
// subscriber call, so the remaining subscribers still receive the event.
//
// # Thread Safety
//
// Registry is not thread-safe for registration. Register all subscribers
// before starting a run. Dispatch is serialized by ExecutionContext.
type Registry struct {
	subscribers []any
}

var _ reagent.Dispatcher = (*Registry)(nil)

// NewRegistry creates a new empty Registry.
func NewRegistry() *Registry {
	return &Registry{subscribers: make([]any, 0)}
}

// Subscribe adds a subscriber. The subscriber can implement any
// combination of subscriber interfaces. Subscribers are called in the
// order they are registered.
func (r *Registry) Subscribe(subscriber any) *Registry {
	r.subscribers = append(r.subscribers, subscriber)
	return r
}

// Len returns the number of registered subscribers.
func (r *Registry) Len() int {
	return len(r.subscribers)
}

// Clear removes all subscribers.
func (r *Registry) Clear() {
	r.subscribers = r.subscribers[:0]
}

// Dispatch sends an event to all matching subscribers. Called by
// ExecutionContext.Publish; user code does not normally call this.
func (r *Registry) Dispatch(execCtx *reagent.ExecutionContext, event reagent.Event) {
	switch e := event.(type) {
	case *reagent.BeforeRunEvent:
		for _, s := range r.subscribers {
			if sub, ok := s.(reagent.BeforeRunSubscriber); ok {
				safely(func() { sub.OnBeforeRun(execCtx, e) })
			}
		}
	case *reagent.RunFinishedEvent:
		for _, s := range r.subscribers {
			if sub, ok := s.(reagent.RunFinishedSubscriber); ok {
				safely(func() { sub.OnRunFinished(execCtx, e) })
			}
		}
	case *reagent.BeforeIterationEvent:
		for _, s := range r.subscribers {
			if sub, ok := s.(reagent.BeforeIterationSubscriber); ok {
				safely(func() { sub.OnBeforeIteration(execCtx, e) })
			}
		}
	case *reagent.AfterIterationEvent:
		for _, s := range r.subscribers {
			if sub, ok := s.(reagent.AfterIterationSubscriber); ok {
				safely(func() { sub.OnAfterIteration(execCtx, e) })
			}
		}
	case *reagent.ActionStartedEvent:
		for _, s := range r.subscribers {
			if sub, ok := s.(reagent.ActionStartedSubscriber); ok {
				safely(func() { sub.OnActionStarted(execCtx, e) })
			}
		}
	case *reagent.ActionEndedEvent:
		for _, s := range r.subscribers {
			if sub, ok := s.(reagent.ActionEndedSubscriber); ok {
				safely(func() { sub.OnActionEnded(execCtx, e) })
			}
		}
	case *reagent.ThoughtEvent:
		for _, s := range r.subscribers {
			if sub, ok := s.(reagent.ThoughtSubscriber); ok {
				safely(func() { sub.OnThought(execCtx, e) })
			}
		}
	case *reagent.BeforeModelCallEvent:
		for _, s := range r.subscribers {
			if sub, ok := s.(reagent.BeforeModelCallSubscriber); ok {
				safely(func() { sub.OnBeforeModelCall(execCtx, e) })
			}
		}
	case *reagent.AfterModelCallEvent:
		for _, s := range r.subscribers {
			if sub, ok := s.(reagent.AfterModelCallSubscriber); ok {
				safely(func() { sub.OnAfterModelCall(execCtx, e) })
			}
		}
	case *reagent.ParseErrorEvent:
		for _, s := range r.subscribers {
			if sub, ok := s.(reagent.ParseErrorSubscriber); ok {
				safely(func() { sub.OnParseError(execCtx, e) })
			}
		}
	case *reagent.ErrorEvent:
		for _, s := range r.subscribers {
			if sub, ok := s.(reagent.ErrorSubscriber); ok {
				safely(func() { sub.OnError(execCtx, e) })
			}
		}
	}
}

// safely runs a subscriber call, swallowing panics so one subscriber
// cannot take down the run or starve the others.
func safely(fn func()) {
	defer func() {
		_ = recover()
	}()
	fn()
}
