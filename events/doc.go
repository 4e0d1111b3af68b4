// Package events provides the event subscription registry for reagent.
//
// # Overview
//
// Events are published via ExecutionContext.PublishXXX() methods and
// subscribers registered with Registry receive them through type-safe
// interfaces defined in the root package.
//
// # Quick Start
//
//	// 1. Create a subscriber by implementing subscriber interfaces
//	type LoggingSubscriber struct{}
//
//	func (s *LoggingSubscriber) OnBeforeIteration(
//	    execCtx *reagent.ExecutionContext,
//	    event *reagent.BeforeIterationEvent,
//	) {
//	    log.Printf("iteration %d", event.Iteration)
//	}
//
//	func (s *LoggingSubscriber) OnActionEnded(
//	    execCtx *reagent.ExecutionContext,
//	    event *reagent.ActionEndedEvent,
//	) {
//	    log.Printf("tool %s took %v", event.Action.Tool, event.Duration)
//	}
//
//	// 2. Register it
//	registry := events.NewRegistry()
//	registry.Subscribe(&LoggingSubscriber{})
//
//	// 3. Use with the executor
//	exec := executor.New(agent, model, toolbox, cfg).WithEvents(registry)
//
// # Ordering Guarantees
//
// Event dispatch is serialized per run. For any action, ActionStartedEvent
// always precedes the matching ActionEndedEvent, and RunFinishedEvent is
// always the last event of a run. Events from parallel actions may
// interleave across actions but never within one.
//
// Subscribers are observers only: they cannot modify decisions, history,
// or control flow, and a panicking subscriber is isolated.
package events
