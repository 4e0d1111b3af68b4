package reagent

// Finish is the terminal outcome of a run: a return value plus the model's
// final rationale. Produced exactly once per run, either by a terminal
// decision or by the early-stop resolver, and immutable thereafter.
type Finish struct {
	// Return holds the final answer.
	Return ReturnValue

	// Log carries the model's final rationale text. Empty for forced stops.
	Log string
}

// ReturnValue is the final answer of a run: either a structured payload
// (shape owned by the caller, typically the result of schema-validated JSON
// parsing) or unstructured text. Exactly one of the two forms is populated;
// construct values with [StructuredReturn] or [TextReturn].
type ReturnValue struct {
	structured any
	text       string
	isText     bool
}

// TextReturn builds an unstructured text return value.
func TextReturn(text string) ReturnValue {
	return ReturnValue{text: text, isText: true}
}

// StructuredReturn builds a structured return value.
func StructuredReturn(v any) ReturnValue {
	return ReturnValue{structured: v}
}

// Text returns the unstructured text and whether this is a text return.
func (r ReturnValue) Text() (string, bool) {
	return r.text, r.isText
}

// Structured returns the structured payload and whether this is a
// structured return.
func (r ReturnValue) Structured() (any, bool) {
	if r.isText {
		return nil, false
	}
	return r.structured, true
}

// IsText reports whether the return value is unstructured text.
func (r ReturnValue) IsText() bool {
	return r.isText
}
