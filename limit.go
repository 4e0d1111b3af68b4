package reagent

// LimitType specifies how to match keys for limit checking.
type LimitType string

const (
	// LimitExactKey matches an exact key.
	// Use for specific counters like KeyIterations or KeyInputTokens.
	LimitExactKey LimitType = "exact"

	// LimitKeyPrefix matches any key with the given prefix.
	// Use for limits across all models or tools (e.g., KeyToolCallsFor
	// matches calls to every tool).
	LimitKeyPrefix LimitType = "prefix"
)

// Limit defines a threshold that triggers run termination.
//
// # How Limits Work
//
// Limits are checked automatically whenever stats are updated. When any
// limit is exceeded, the ExecutionContext is cancelled and the run resolves
// through its early-stop strategy.
//
// # Exact Key Limits
//
// Match a specific stat key:
//
//	// Stop after 50 iterations
//	{Type: LimitExactKey, Key: KeyIterations, MaxValue: 50}
//
//	// Stop after 100k input tokens total
//	{Type: LimitExactKey, Key: KeyInputTokens, MaxValue: 100000}
//
// # Prefix Limits
//
// Match any key starting with the prefix. Useful for aggregate limits:
//
//	// Stop if ANY tool is called more than 20 times
//	{Type: LimitKeyPrefix, Key: KeyToolCallsFor, MaxValue: 20}
//
//	// Stop if ANY tool has more than 5 errors
//	{Type: LimitKeyPrefix, Key: KeyToolCallsErrorFor, MaxValue: 5}
type Limit struct {
	// Type specifies how to match keys (exact or prefix).
	Type LimitType

	// Key is the exact key or prefix to match.
	// For exact: use the full key (e.g., "reagent:iterations")
	// For prefix: use the prefix (e.g., "reagent:tool_calls:")
	Key string

	// MaxValue is the threshold. The run terminates when the value exceeds
	// this. The comparison is: currentValue > MaxValue (not >=).
	// For counters, the int64 value is compared as float64.
	MaxValue float64
}

// DefaultLimits returns a set of sensible default limits.
//
// These defaults prevent runaway runs:
//   - 100 iterations max
//   - 3 consecutive parse errors
//   - 5 consecutive tool call errors
//   - 5 consecutive thoughts without actions or an answer
//
// Override with ExecutionContext.SetLimits():
//
//	customLimits := []reagent.Limit{
//	    {Type: reagent.LimitExactKey, Key: reagent.KeyIterations, MaxValue: 20},
//	}
//	execCtx.SetLimits(customLimits)
func DefaultLimits() []Limit {
	return []Limit{
		{Type: LimitExactKey, Key: KeyIterations, MaxValue: 100},
		{Type: LimitExactKey, Key: KeyParseErrorConsecutive, MaxValue: 3},
		{Type: LimitExactKey, Key: KeyToolCallsErrorConsecutive, MaxValue: 5},
		{Type: LimitExactKey, Key: KeyThoughtsConsecutive, MaxValue: 5},
	}
}
