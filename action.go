package reagent

// Action records one tool invocation: which tool the model asked for, the
// opaque input it supplied, and the rationale text that accompanied the
// request. The observation (the tool's result) is attached later via
// [Action.WithObservation], which returns a copy — an Action value is never
// mutated in place, so history snapshots stay safe to inspect while tools
// are still running.
//
// An Action without an observation represents a call that has not executed
// yet. Actions belong to a single run's history and are never shared across
// runs.
type Action struct {
	// ID is an optional correlation id assigned by the backend for native
	// tool-calling providers (e.g. OpenAI tool_call ids). Empty for textual
	// agents.
	ID string

	// Tool is the tool identifier to invoke.
	Tool string

	// Input is the serialized tool input. Opaque to the decision loop; the
	// toolbox decodes it when executing.
	Input string

	// Log is the free-text rationale the model produced when it chose this
	// action. For textual agents this is typically the full raw response.
	Log string

	observation string
	observed    bool
}

// WithObservation returns a copy of the action with the observation
// attached. The receiver is left unchanged.
func (a Action) WithObservation(text string) Action {
	a.observation = text
	a.observed = true
	return a
}

// Observation returns the tool result and whether it has been attached.
func (a Action) Observation() (string, bool) {
	return a.observation, a.observed
}

// Pending reports whether the action has not been executed yet.
func (a Action) Pending() bool {
	return !a.observed
}
