// Package executor drives the agent decision loop.
package executor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/khoametz/reagent"
	"github.com/khoametz/reagent/events"
)

// Config holds configuration options for the Executor.
type Config struct {
	// MaxIterations is the iteration budget. When the budget is used up the
	// run resolves through the Stop strategy. Zero applies the default of
	// 15; use a negative value for unlimited.
	MaxIterations int

	// Budget is the wall-clock time budget. Zero means unlimited. The
	// budget is checked between iterations; a running model or tool call is
	// not interrupted.
	Budget time.Duration

	// Stop selects the early-stop strategy used when a budget or limit
	// ends the run: reagent.StopForce returns a fixed stopped notice,
	// reagent.StopGenerate makes one final model call for a best-effort
	// answer. Defaults to reagent.StopForce.
	Stop reagent.StopMethod

	// ParallelActions executes the actions of a single decision
	// concurrently. Observations keep the decision's action order either
	// way.
	ParallelActions bool

	// FinalCallTimeout caps the one extra model call made by the
	// StopGenerate strategy. Zero applies the default of 2 minutes.
	FinalCallTimeout time.Duration
}

const (
	defaultMaxIterations    = 15
	defaultFinalCallTimeout = 2 * time.Minute
)

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		MaxIterations:    defaultMaxIterations,
		Stop:             reagent.StopForce,
		FinalCallTimeout: defaultFinalCallTimeout,
	}
}

// Executor orchestrates the decision loop: it repeatedly asks the agent to
// decide, executes the decided actions against the toolbox, and feeds the
// observations back, until the agent finishes or a budget runs out.
//
// The Executor is stateless across runs and safe to reuse: each call to
// Execute runs independently on its own ExecutionContext.
type Executor struct {
	agent   reagent.Agent
	model   reagent.Model
	toolbox *reagent.Toolbox
	config  Config
	events  *events.Registry
}

// New creates a new Executor. Zero config fields are filled with
// defaults.
func New(agent reagent.Agent, model reagent.Model, toolbox *reagent.Toolbox, config Config) *Executor {
	if config.MaxIterations == 0 {
		config.MaxIterations = defaultMaxIterations
	}
	if config.Stop == "" {
		config.Stop = reagent.StopForce
	}
	if config.FinalCallTimeout == 0 {
		config.FinalCallTimeout = defaultFinalCallTimeout
	}
	return &Executor{
		agent:   agent,
		model:   model,
		toolbox: toolbox,
		config:  config,
	}
}

// WithEvents replaces the executor's event registry with the provided one.
// Use this to share a registry across multiple executors. Returns the
// executor for chaining.
func (e *Executor) WithEvents(r *events.Registry) *Executor {
	e.events = r
	return e
}

// Subscribe adds a subscriber to the executor's event registry, creating
// the registry if needed. Returns the executor for chaining.
//
//	exec := executor.New(agent, model, toolbox, cfg).
//	    Subscribe(&LoggerSubscriber{}).
//	    Subscribe(&MetricsSubscriber{})
func (e *Executor) Subscribe(subscriber any) *Executor {
	if e.events == nil {
		e.events = events.NewRegistry()
	}
	e.events.Subscribe(subscriber)
	return e
}

// Result is the outcome of a run.
type Result struct {
	// Finish is the terminal result. Nil only when Err is set.
	Finish *reagent.Finish

	// History contains every executed action in execution order, each with
	// its observation attached.
	History []reagent.Action

	// Reason indicates why the run ended.
	Reason reagent.TerminationReason

	// Err is set when the run ended with a propagated error (model
	// dispatch failures outside the early-stop path). Budget exhaustion
	// and malformed model output are not errors.
	Err error
}

// Execute runs the decision loop for the given task until the agent
// finishes, a budget runs out, or the context is canceled.
//
//	execCtx := reagent.NewExecutionContext(ctx, "main")
//	result := exec.Execute(execCtx, &reagent.Task{Text: "..."})
//	if result.Err != nil {
//	    // handle error
//	}
func (e *Executor) Execute(execCtx *reagent.ExecutionContext, task *reagent.Task) *Result {
	if e.events != nil {
		execCtx.SetDispatcher(e.events)
	}
	execCtx.Publish(&reagent.BeforeRunEvent{Task: task})

	var history []reagent.Action

	for {
		goCtx := execCtx.Context()
		if goCtx.Err() != nil {
			if lim := execCtx.ExceededLimit(); lim != nil {
				return e.earlyStop(execCtx, task, history, e.config.Stop, reagent.TerminationEarlyStop)
			}
			return e.earlyStop(execCtx, task, history, reagent.StopForce, reagent.TerminationCanceled)
		}

		if e.config.MaxIterations > 0 && execCtx.Iteration() >= e.config.MaxIterations {
			return e.earlyStop(execCtx, task, history, e.config.Stop, reagent.TerminationEarlyStop)
		}
		if e.config.Budget > 0 && time.Since(execCtx.StartTime()) >= e.config.Budget {
			return e.earlyStop(execCtx, task, history, e.config.Stop, reagent.TerminationEarlyStop)
		}

		iteration := execCtx.StartIteration()
		execCtx.Publish(&reagent.BeforeIterationEvent{Iteration: iteration})
		iterStart := time.Now()

		decision, err := reagent.Decide(goCtx, execCtx, e.agent, e.model, task, history)
		if err != nil {
			if goCtx.Err() != nil {
				if lim := execCtx.ExceededLimit(); lim != nil {
					return e.earlyStop(execCtx, task, history, e.config.Stop, reagent.TerminationEarlyStop)
				}
				return e.earlyStop(execCtx, task, history, reagent.StopForce, reagent.TerminationCanceled)
			}
			runErr := fmt.Errorf("iteration %d: %w", iteration, err)
			execCtx.PublishError(runErr)
			execCtx.PublishRunFinished(reagent.TerminationError, nil, runErr)
			return &Result{History: history, Reason: reagent.TerminationError, Err: runErr}
		}

		execCtx.Publish(&reagent.AfterIterationEvent{
			Iteration: iteration,
			Decision:  decision,
			Duration:  time.Since(iterStart),
		})

		switch decision.Kind() {
		case reagent.DecisionFinish:
			execCtx.ResetThoughtStreak()
			finish := decision.Finish()
			execCtx.PublishRunFinished(reagent.TerminationSuccess, finish, nil)
			return &Result{Finish: finish, History: history, Reason: reagent.TerminationSuccess}

		case reagent.DecisionThought:
			execCtx.PublishThought(decision.Thought())

		case reagent.DecisionActions:
			execCtx.ResetThoughtStreak()
			executed := e.runActions(goCtx, execCtx, decision.Actions())
			history = append(history, executed...)
		}
	}
}

// earlyStop resolves the run through the given strategy and publishes the
// terminal event. A failed generate call degrades to the force notice
// instead of failing the run.
func (e *Executor) earlyStop(
	execCtx *reagent.ExecutionContext,
	task *reagent.Task,
	history []reagent.Action,
	method reagent.StopMethod,
	reason reagent.TerminationReason,
) *Result {
	// The run context is already canceled here, so the generate strategy's
	// one final call runs detached from it, bounded by FinalCallTimeout.
	stopCtx, cancel := context.WithTimeout(
		context.WithoutCancel(execCtx.BaseContext()),
		e.config.FinalCallTimeout,
	)
	defer cancel()

	finish, err := reagent.ResolveEarlyStop(stopCtx, execCtx, e.agent, e.model, method, task, history)
	if err != nil {
		execCtx.PublishError(fmt.Errorf("early stop: %w", err))
		finish = &reagent.Finish{Return: reagent.TextReturn(reagent.StoppedNotice)}
	}

	execCtx.PublishRunFinished(reason, finish, nil)
	return &Result{Finish: finish, History: history, Reason: reason}
}

// runActions executes a decision's actions, sequentially or in parallel,
// and returns them with observations attached in the decision's order.
func (e *Executor) runActions(ctx context.Context, execCtx *reagent.ExecutionContext, actions []reagent.Action) []reagent.Action {
	executed := make([]reagent.Action, len(actions))

	if e.config.ParallelActions && len(actions) > 1 {
		var wg sync.WaitGroup
		for i, action := range actions {
			wg.Add(1)
			go func(i int, action reagent.Action) {
				defer wg.Done()
				executed[i] = e.runAction(ctx, execCtx, action)
			}(i, action)
		}
		wg.Wait()
		return executed
	}

	for i, action := range actions {
		executed[i] = e.runAction(ctx, execCtx, action)
	}
	return executed
}

// runAction executes one action against the toolbox. Tool failures become
// observation text so the model can react; they never abort the run.
func (e *Executor) runAction(ctx context.Context, execCtx *reagent.ExecutionContext, action reagent.Action) reagent.Action {
	execCtx.PublishActionStarted(action)
	start := time.Now()

	observation, err := e.toolbox.Execute(ctx, action)
	if err != nil {
		observation = "error: " + err.Error()
	}

	completed := action.WithObservation(observation)
	execCtx.PublishActionEnded(completed, time.Since(start), err)
	return completed
}
