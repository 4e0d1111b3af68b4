package reagent

// Task is the input that starts a run.
type Task struct {
	// Text is the user's task or question.
	Text string

	// Metadata carries optional caller-owned values that agents may read
	// when enriching requests (e.g. a user id for a PrepareRequest hook).
	// The decision loop itself never inspects it.
	Metadata map[string]any
}
