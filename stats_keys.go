package reagent

// Standard key prefix for all reagent library keys.
// Users should use their own prefix (e.g., "myapp:") for custom metrics
// to avoid collisions with the standard keys.
const KeyPrefix = "reagent:"

// Iteration tracking.
// This key is protected - attempts to modify it via IncrCounter will be
// silently ignored. Only the executor can increment this counter.
const KeyIterations = "reagent:iterations"

// Model call and token tracking keys.
const (
	KeyModelCalls      = "reagent:model_calls"
	KeyModelCallsFor   = "reagent:model_calls:" // + model name
	KeyInputTokens     = "reagent:input_tokens"
	KeyInputTokensFor  = "reagent:input_tokens:" // + model name
	KeyOutputTokens    = "reagent:output_tokens"
	KeyOutputTokensFor = "reagent:output_tokens:" // + model name
)

// Tool call tracking keys.
const (
	KeyToolCalls                 = "reagent:tool_calls"
	KeyToolCallsFor              = "reagent:tool_calls:" // + tool name
	KeyToolCallsError            = "reagent:tool_calls_error"
	KeyToolCallsErrorFor         = "reagent:tool_calls_error:" // + tool name
	KeyToolCallsErrorConsecutive = "reagent:tool_calls_error_consecutive"
)

// Thought tracking keys. The consecutive gauge resets whenever an
// iteration yields actions or a finish.
const (
	KeyThoughtsTotal       = "reagent:thoughts_total"
	KeyThoughtsConsecutive = "reagent:thoughts_consecutive"
)

// Parse error tracking keys (errors parsing model output).
const (
	KeyParseErrorTotal       = "reagent:parse_error_total"
	KeyParseErrorConsecutive = "reagent:parse_error_consecutive"
)

// protectedKeys contains keys that cannot be modified by user code.
var protectedKeys = map[string]bool{
	KeyIterations: true,
}

// isProtectedKey returns true if the key is protected from user modification.
func isProtectedKey(key string) bool {
	return protectedKeys[key]
}
