package events

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/khoametz/reagent"
)

// thoughtRecorder subscribes to thought events only.
type thoughtRecorder struct {
	name string
	log  *[]string
}

func (s *thoughtRecorder) OnThought(execCtx *reagent.ExecutionContext, e *reagent.ThoughtEvent) {
	*s.log = append(*s.log, s.name+":"+e.Text)
}

// multiSubscriber implements several subscriber interfaces.
type multiSubscriber struct {
	log *[]string
}

func (s *multiSubscriber) OnBeforeIteration(execCtx *reagent.ExecutionContext, e *reagent.BeforeIterationEvent) {
	*s.log = append(*s.log, "before_iteration")
}

func (s *multiSubscriber) OnThought(execCtx *reagent.ExecutionContext, e *reagent.ThoughtEvent) {
	*s.log = append(*s.log, "thought:"+e.Text)
}

func (s *multiSubscriber) OnRunFinished(execCtx *reagent.ExecutionContext, e *reagent.RunFinishedEvent) {
	*s.log = append(*s.log, "run_finished:"+string(e.Reason))
}

// panicSubscriber always panics.
type panicSubscriber struct{}

func (s *panicSubscriber) OnThought(execCtx *reagent.ExecutionContext, e *reagent.ThoughtEvent) {
	panic("subscriber bug")
}

func newTestContext() *reagent.ExecutionContext {
	return reagent.NewExecutionContext(context.Background(), "test")
}

func TestRegistry_Subscribe(t *testing.T) {
	var log []string
	registry := NewRegistry()

	assert.Equal(t, 0, registry.Len())
	registry.Subscribe(&thoughtRecorder{name: "a", log: &log})
	registry.Subscribe(&thoughtRecorder{name: "b", log: &log})
	assert.Equal(t, 2, registry.Len())

	registry.Clear()
	assert.Equal(t, 0, registry.Len())
}

func TestRegistry_DispatchToMatchingInterface(t *testing.T) {
	var log []string
	registry := NewRegistry()
	registry.Subscribe(&multiSubscriber{log: &log})

	execCtx := newTestContext()
	registry.Dispatch(execCtx, &reagent.BeforeIterationEvent{Iteration: 1})
	registry.Dispatch(execCtx, &reagent.ThoughtEvent{Text: "hm"})
	// No subscriber implements ActionStartedSubscriber; this is a no-op.
	registry.Dispatch(execCtx, &reagent.ActionStartedEvent{Action: reagent.Action{Tool: "x"}})
	registry.Dispatch(execCtx, &reagent.RunFinishedEvent{Reason: reagent.TerminationSuccess})

	assert.Equal(t, []string{
		"before_iteration",
		"thought:hm",
		"run_finished:success",
	}, log)
}

func TestRegistry_DispatchOrderFollowsRegistration(t *testing.T) {
	var log []string
	registry := NewRegistry()
	registry.Subscribe(&thoughtRecorder{name: "first", log: &log})
	registry.Subscribe(&thoughtRecorder{name: "second", log: &log})

	registry.Dispatch(newTestContext(), &reagent.ThoughtEvent{Text: "x"})

	assert.Equal(t, []string{"first:x", "second:x"}, log)
}

func TestRegistry_PanicIsolation(t *testing.T) {
	var log []string
	registry := NewRegistry()
	registry.Subscribe(&thoughtRecorder{name: "before", log: &log})
	registry.Subscribe(&panicSubscriber{})
	registry.Subscribe(&thoughtRecorder{name: "after", log: &log})

	assert.NotPanics(t, func() {
		registry.Dispatch(newTestContext(), &reagent.ThoughtEvent{Text: "x"})
	})
	assert.Equal(t, []string{"before:x", "after:x"}, log)
}

func TestRegistry_AsDispatcher(t *testing.T) {
	var log []string
	registry := NewRegistry()
	registry.Subscribe(&multiSubscriber{log: &log})

	execCtx := newTestContext()
	execCtx.SetDispatcher(registry)
	execCtx.PublishThought("via context")

	assert.Equal(t, []string{"thought:via context"}, log)
}
