package reagent

// DecisionKind identifies which variant of a Decision is populated.
type DecisionKind string

const (
	// DecisionActions means the model asked to invoke one or more tools.
	DecisionActions DecisionKind = "actions"

	// DecisionFinish means the model produced a terminal answer.
	DecisionFinish DecisionKind = "finish"

	// DecisionThought means the model produced text that is neither a tool
	// call nor a recognized terminal answer. The run continues.
	DecisionThought DecisionKind = "thought"
)

// Decision is the interpreted meaning of one model response: a batch of
// pending actions, a finish, or an intermediate thought. Exactly one variant
// is populated; use the constructors below.
type Decision struct {
	kind    DecisionKind
	actions []Action
	finish  *Finish
	thought string
}

// ActionsDecision builds a Decision carrying a non-empty batch of pending
// actions, in the order the model proposed them.
//
// Panics if actions is empty or if any action already has an observation.
func ActionsDecision(actions ...Action) *Decision {
	if len(actions) == 0 {
		panic("reagent: ActionsDecision requires at least one action")
	}
	for _, a := range actions {
		if !a.Pending() {
			panic("reagent: ActionsDecision requires pending actions")
		}
	}
	return &Decision{kind: DecisionActions, actions: actions}
}

// FinishDecision builds a terminal Decision. Panics if finish is nil.
func FinishDecision(finish *Finish) *Decision {
	if finish == nil {
		panic("reagent: FinishDecision requires a non-nil finish")
	}
	return &Decision{kind: DecisionFinish, finish: finish}
}

// ThoughtDecision builds a non-terminal Decision carrying the model's raw
// text. This is the recovery path for malformed or exploratory output.
func ThoughtDecision(text string) *Decision {
	return &Decision{kind: DecisionThought, thought: text}
}

// Kind returns which variant is populated.
func (d *Decision) Kind() DecisionKind {
	return d.kind
}

// Actions returns the pending action batch. Nil unless Kind is
// [DecisionActions].
func (d *Decision) Actions() []Action {
	return d.actions
}

// Finish returns the terminal result. Nil unless Kind is [DecisionFinish].
func (d *Decision) Finish() *Finish {
	return d.finish
}

// Thought returns the intermediate text. Empty unless Kind is
// [DecisionThought].
func (d *Decision) Thought() string {
	return d.thought
}
