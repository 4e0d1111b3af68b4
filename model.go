package reagent

import (
	"context"
	"time"

	"github.com/tmc/langchaingo/llms"
)

// Model is the reasoning backend boundary. It wraps LangChainGo's llms.Model
// with normalized token usage and automatic event publishing when an
// ExecutionContext is provided (pass nil to skip publishing).
//
// The call must honor ctx cancellation and deadlines: this is the sole
// suspension point of the decision loop, and callers distinguish
// cancellation from backend failure via context.Canceled /
// context.DeadlineExceeded in the returned error chain.
//
// Implementations must be safe for concurrent independent calls; no other
// resource in this package is shared across runs.
type Model interface {
	GenerateContent(
		ctx context.Context,
		execCtx *ExecutionContext,
		messages []llms.MessageContent,
		options ...llms.CallOption,
	) (*ContentResponse, error)
}

// ContentResponse is the normalized response from a model call.
type ContentResponse struct {
	// Choices contains the generated content choices. Interpreters read the
	// first choice.
	Choices []*ContentChoice

	// Info contains generation metadata including normalized token counts.
	Info *GenerationInfo
}

// ContentChoice is a single content choice from the model.
type ContentChoice struct {
	// Content is the textual content of the response.
	Content string

	// StopReason is the reason the model stopped generating.
	StopReason string

	// ToolCalls lists tool invocations the model asked for, for providers
	// with native tool calling.
	ToolCalls []llms.ToolCall

	// ReasoningContent contains reasoning/thinking content if the provider
	// exposes it.
	ReasoningContent string
}

// GenerationInfo contains metadata about one generation with token counts
// normalized across providers.
type GenerationInfo struct {
	// InputTokens is the number of prompt tokens used.
	InputTokens int

	// OutputTokens is the number of completion tokens generated.
	OutputTokens int

	// TotalTokens is InputTokens + OutputTokens unless the provider reports
	// a total directly.
	TotalTokens int

	// Estimated is true when token counts were estimated locally because the
	// provider reported no usage.
	Estimated bool

	// Raw contains the provider-specific generation info map, for fields not
	// covered by the normalized ones.
	Raw map[string]any

	// Duration is how long the generation took.
	Duration time.Duration
}

// FirstChoice returns the first choice of the response, or nil if the
// response has none.
func (r *ContentResponse) FirstChoice() *ContentChoice {
	if r == nil || len(r.Choices) == 0 {
		return nil
	}
	return r.Choices[0]
}
