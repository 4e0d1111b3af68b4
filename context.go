package reagent

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tmc/langchaingo/llms"
)

// TerminationReason indicates why a run ended.
type TerminationReason string

const (
	// TerminationSuccess means the agent produced a finish decision.
	TerminationSuccess TerminationReason = "success"

	// TerminationEarlyStop means a budget or limit ended the run and the
	// early-stop strategy produced the result.
	TerminationEarlyStop TerminationReason = "early_stop"

	// TerminationCanceled means the caller's context was canceled and the
	// run resolved through the force path.
	TerminationCanceled TerminationReason = "canceled"

	// TerminationError means the run ended with a propagated error.
	TerminationError TerminationReason = "error"
)

// ExecutionContext is the ambient context passed through everything in the
// framework. It carries the run's cancellation context, stats, limits, and
// the event dispatcher.
//
// All framework components (Agent, Model, Toolbox, Executor) receive
// ExecutionContext, enabling automatic stats collection and event
// publication without manual wiring.
//
// # Contexts
//
// Context returns the cancelable run context. It is canceled when a limit
// is exceeded or when Cancel is called. BaseContext returns the context the
// run was created with, before the cancelable wrapper: early-stop
// resolution uses it so a budget-triggered cancellation does not also kill
// the one final model call the generate strategy is allowed.
//
// # Event Ordering
//
// Publish serializes event dispatch, so a single subscriber never observes
// two events concurrently, and events published from the same goroutine
// arrive in publication order.
type ExecutionContext struct {
	mu sync.RWMutex

	// pubMu serializes event dispatch.
	pubMu sync.Mutex

	id   string
	name string

	base   context.Context
	goCtx  context.Context
	cancel context.CancelFunc

	dispatcher Dispatcher
	stats      *ExecutionStats
	limits     []Limit
	exceeded   *Limit

	iteration int

	startTime time.Time
	endTime   time.Time

	reason TerminationReason
	finish *Finish
	err    error
}

// NewExecutionContext creates a new ExecutionContext for a single run. The
// given context bounds the whole run; name labels the run in events and
// logs (e.g., "main", "research").
func NewExecutionContext(ctx context.Context, name string) *ExecutionContext {
	goCtx, cancel := context.WithCancel(ctx)
	execCtx := &ExecutionContext{
		id:        uuid.NewString(),
		name:      name,
		base:      ctx,
		goCtx:     goCtx,
		cancel:    cancel,
		startTime: time.Now(),
		limits:    DefaultLimits(),
	}
	execCtx.stats = newExecutionStatsWithContext(execCtx)
	return execCtx
}

// -----------------------------------------------------------------------------
// Identity & Contexts
// -----------------------------------------------------------------------------

// ID returns the unique identifier of this run.
func (ctx *ExecutionContext) ID() string {
	return ctx.id
}

// Name returns the name of this execution context.
func (ctx *ExecutionContext) Name() string {
	return ctx.name
}

// Context returns the cancelable run context. Model calls and tool calls
// run on this context.
func (ctx *ExecutionContext) Context() context.Context {
	return ctx.goCtx
}

// BaseContext returns the context the run was created with, before the
// cancelable wrapper. Early-stop resolution runs on this so the final
// model call of the generate strategy survives a limit-triggered cancel.
func (ctx *ExecutionContext) BaseContext() context.Context {
	return ctx.base
}

// Cancel cancels the run context. Safe to call multiple times.
func (ctx *ExecutionContext) Cancel() {
	ctx.cancel()
}

// -----------------------------------------------------------------------------
// Stats & Limits
// -----------------------------------------------------------------------------

// Stats returns the run's stats.
func (ctx *ExecutionContext) Stats() *ExecutionStats {
	return ctx.stats
}

// SetLimits replaces the configured limits. Pass nil to disable limit
// checking entirely. Call before the run starts; replacing limits
// mid-run is safe but a limit already exceeded stays exceeded.
func (ctx *ExecutionContext) SetLimits(limits []Limit) {
	ctx.mu.Lock()
	ctx.limits = limits
	ctx.mu.Unlock()
}

// ExceededLimit returns the limit that canceled the run, or nil.
func (ctx *ExecutionContext) ExceededLimit() *Limit {
	ctx.mu.RLock()
	defer ctx.mu.RUnlock()
	return ctx.exceeded
}

// checkLimits is called by ExecutionStats after every update. The first
// exceeded limit is recorded and the run context canceled.
func (ctx *ExecutionContext) checkLimits() {
	ctx.mu.Lock()
	if ctx.exceeded != nil {
		ctx.mu.Unlock()
		return
	}
	limits := ctx.limits
	ctx.mu.Unlock()

	lim := ctx.stats.exceededLimit(limits)
	if lim == nil {
		return
	}

	ctx.mu.Lock()
	if ctx.exceeded == nil {
		ctx.exceeded = lim
	}
	ctx.mu.Unlock()
	ctx.cancel()
}

// -----------------------------------------------------------------------------
// Iteration Management
// -----------------------------------------------------------------------------

// Iteration returns the current iteration number (1-indexed).
// Returns 0 if no iteration has started.
func (ctx *ExecutionContext) Iteration() int {
	ctx.mu.RLock()
	defer ctx.mu.RUnlock()
	return ctx.iteration
}

// StartIteration begins a new iteration. Called by the executor at the
// start of each iteration.
func (ctx *ExecutionContext) StartIteration() int {
	ctx.mu.Lock()
	ctx.iteration++
	n := ctx.iteration
	ctx.mu.Unlock()
	ctx.stats.incrCounterInternal(KeyIterations, 1)
	return n
}

// -----------------------------------------------------------------------------
// Termination
// -----------------------------------------------------------------------------

// SetTermination records how the run ended. Called once by the executor.
func (ctx *ExecutionContext) SetTermination(reason TerminationReason, finish *Finish, err error) {
	ctx.mu.Lock()
	ctx.reason = reason
	ctx.finish = finish
	ctx.err = err
	ctx.endTime = time.Now()
	ctx.mu.Unlock()
}

// TerminationReason returns how the run ended, or "" while running.
func (ctx *ExecutionContext) TerminationReason() TerminationReason {
	ctx.mu.RLock()
	defer ctx.mu.RUnlock()
	return ctx.reason
}

// Finish returns the terminal result, or nil while running or after an
// error termination.
func (ctx *ExecutionContext) Finish() *Finish {
	ctx.mu.RLock()
	defer ctx.mu.RUnlock()
	return ctx.finish
}

// Error returns the error the run ended with, or nil.
func (ctx *ExecutionContext) Error() error {
	ctx.mu.RLock()
	defer ctx.mu.RUnlock()
	return ctx.err
}

// StartTime returns when the run started.
func (ctx *ExecutionContext) StartTime() time.Time {
	return ctx.startTime
}

// EndTime returns when the run ended, or the zero time while running.
func (ctx *ExecutionContext) EndTime() time.Time {
	ctx.mu.RLock()
	defer ctx.mu.RUnlock()
	return ctx.endTime
}

// Duration returns the elapsed run time. While the run is in progress it
// is measured against the current time.
func (ctx *ExecutionContext) Duration() time.Duration {
	ctx.mu.RLock()
	end := ctx.endTime
	ctx.mu.RUnlock()
	if end.IsZero() {
		return time.Since(ctx.startTime)
	}
	return end.Sub(ctx.startTime)
}

// -----------------------------------------------------------------------------
// Events
// -----------------------------------------------------------------------------

// SetDispatcher wires the event dispatcher. Called by the executor before
// the run starts; nil disables event publication.
func (ctx *ExecutionContext) SetDispatcher(d Dispatcher) {
	ctx.mu.Lock()
	ctx.dispatcher = d
	ctx.mu.Unlock()
}

// Publish dispatches an event to subscribers. Dispatch is serialized:
// concurrent publishers block each other, so subscribers never run
// concurrently for the same run.
func (ctx *ExecutionContext) Publish(event Event) {
	ctx.mu.RLock()
	d := ctx.dispatcher
	ctx.mu.RUnlock()
	if d == nil {
		return
	}

	ctx.pubMu.Lock()
	defer ctx.pubMu.Unlock()
	d.Dispatch(ctx, event)
}

// PublishActionStarted publishes ActionStartedEvent and updates tool call
// counters.
func (ctx *ExecutionContext) PublishActionStarted(action Action) {
	ctx.stats.incrCounterInternal(KeyToolCalls, 1)
	ctx.stats.incrCounterInternal(KeyToolCallsFor+action.Tool, 1)
	ctx.Publish(&ActionStartedEvent{Action: action, Iteration: ctx.Iteration()})
}

// PublishActionEnded publishes ActionEndedEvent and updates tool error
// counters. A nil err resets the consecutive error gauge.
func (ctx *ExecutionContext) PublishActionEnded(action Action, duration time.Duration, err error) {
	if err != nil {
		ctx.stats.incrCounterInternal(KeyToolCallsError, 1)
		ctx.stats.incrCounterInternal(KeyToolCallsErrorFor+action.Tool, 1)
		ctx.stats.IncrGauge(KeyToolCallsErrorConsecutive, 1)
	} else {
		ctx.stats.ResetGauge(KeyToolCallsErrorConsecutive)
	}
	ctx.Publish(&ActionEndedEvent{
		Action:    action,
		Iteration: ctx.Iteration(),
		Duration:  duration,
		Err:       err,
	})
}

// PublishThought publishes ThoughtEvent and updates thought counters.
func (ctx *ExecutionContext) PublishThought(text string) {
	ctx.stats.incrCounterInternal(KeyThoughtsTotal, 1)
	ctx.stats.IncrGauge(KeyThoughtsConsecutive, 1)
	ctx.Publish(&ThoughtEvent{Text: text, Iteration: ctx.Iteration()})
}

// ResetThoughtStreak resets the consecutive thought gauge. Called by the
// executor when an iteration yields actions or a finish.
func (ctx *ExecutionContext) ResetThoughtStreak() {
	ctx.stats.ResetGauge(KeyThoughtsConsecutive)
}

// PublishParseError publishes ParseErrorEvent and updates parse error
// counters.
func (ctx *ExecutionContext) PublishParseError(where, raw string, err error) {
	ctx.stats.incrCounterInternal(KeyParseErrorTotal, 1)
	ctx.stats.IncrGauge(KeyParseErrorConsecutive, 1)
	ctx.Publish(&ParseErrorEvent{Where: where, Raw: raw, Err: err})
}

// ResetParseErrorStreak resets the consecutive parse error gauge. Called
// by agents when model output parses cleanly.
func (ctx *ExecutionContext) ResetParseErrorStreak() {
	ctx.stats.ResetGauge(KeyParseErrorConsecutive)
}

// PublishError publishes ErrorEvent.
func (ctx *ExecutionContext) PublishError(err error) {
	ctx.Publish(&ErrorEvent{Iteration: ctx.Iteration(), Err: err})
}

// PublishBeforeModelCall publishes BeforeModelCallEvent and updates model
// call counters.
func (ctx *ExecutionContext) PublishBeforeModelCall(model string, messages []llms.MessageContent) {
	ctx.stats.incrCounterInternal(KeyModelCalls, 1)
	if model != "" {
		ctx.stats.incrCounterInternal(KeyModelCallsFor+model, 1)
	}
	ctx.Publish(&BeforeModelCallEvent{Model: model, Messages: messages})
}

// PublishAfterModelCall publishes AfterModelCallEvent and updates token
// counters from the response's generation info.
func (ctx *ExecutionContext) PublishAfterModelCall(
	model string,
	messages []llms.MessageContent,
	response *ContentResponse,
	duration time.Duration,
	err error,
) {
	if response != nil && response.Info != nil {
		info := response.Info
		if info.InputTokens > 0 {
			ctx.stats.incrCounterInternal(KeyInputTokens, int64(info.InputTokens))
			if model != "" {
				ctx.stats.incrCounterInternal(KeyInputTokensFor+model, int64(info.InputTokens))
			}
		}
		if info.OutputTokens > 0 {
			ctx.stats.incrCounterInternal(KeyOutputTokens, int64(info.OutputTokens))
			if model != "" {
				ctx.stats.incrCounterInternal(KeyOutputTokensFor+model, int64(info.OutputTokens))
			}
		}
	}
	ctx.Publish(&AfterModelCallEvent{
		Model:    model,
		Messages: messages,
		Response: response,
		Duration: duration,
		Err:      err,
	})
}

// PublishRunFinished records the termination and publishes
// RunFinishedEvent. The executor calls this exactly once, last.
func (ctx *ExecutionContext) PublishRunFinished(reason TerminationReason, finish *Finish, err error) {
	ctx.SetTermination(reason, finish, err)
	ctx.Publish(&RunFinishedEvent{Reason: reason, Finish: finish, Err: err})
}
