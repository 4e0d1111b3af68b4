// Package models provides langchaingo-backed implementations of
// reagent.Model.
package models

import (
	"context"
	"time"

	"github.com/tmc/langchaingo/llms"

	"github.com/khoametz/reagent"
)

// LangChain wraps an llms.Model and implements reagent's Model interface.
// It normalizes token usage across providers, estimates tokens when the
// provider reports none, and publishes model call events when an
// ExecutionContext is provided.
//
//	llm, _ := openai.New(openai.WithToken(apiKey))
//	model := models.NewLangChain(llm).WithName("gpt-4o")
//
//	// With ExecutionContext (events and stats)
//	response, err := model.GenerateContent(ctx, execCtx, messages)
//
//	// Without ExecutionContext (plain call)
//	response, err := model.GenerateContent(ctx, nil, messages)
type LangChain struct {
	model llms.Model
	name  string
}

var _ reagent.Model = (*LangChain)(nil)

// NewLangChain creates a LangChain wrapping the given llms.Model.
func NewLangChain(model llms.Model) *LangChain {
	return &LangChain{model: model}
}

// WithName sets the model name used in events and per-model stat keys.
// Returns the model for chaining.
func (m *LangChain) WithName(name string) *LangChain {
	m.name = name
	return m
}

// Unwrap returns the underlying llms.Model.
func (m *LangChain) Unwrap() llms.Model {
	return m.model
}

// GenerateContent implements reagent.Model. Token usage is normalized
// across providers; when the provider reports no usage, tokens are
// estimated and Info.Estimated is set.
func (m *LangChain) GenerateContent(
	ctx context.Context,
	execCtx *reagent.ExecutionContext,
	messages []llms.MessageContent,
	options ...llms.CallOption,
) (*reagent.ContentResponse, error) {
	if execCtx != nil {
		execCtx.PublishBeforeModelCall(m.name, messages)
	}

	start := time.Now()
	raw, err := m.model.GenerateContent(ctx, messages, options...)
	duration := time.Since(start)

	var response *reagent.ContentResponse
	if raw != nil {
		response = convertResponse(raw, duration)
		if response.Info.TotalTokens == 0 {
			estimateUsage(messages, response)
		}
	}

	if execCtx != nil {
		execCtx.PublishAfterModelCall(m.name, messages, response, duration, err)
	}

	return response, err
}

// convertResponse converts an llms.ContentResponse into reagent's response
// type with normalized token counts.
func convertResponse(raw *llms.ContentResponse, duration time.Duration) *reagent.ContentResponse {
	response := &reagent.ContentResponse{
		Choices: make([]*reagent.ContentChoice, len(raw.Choices)),
		Info:    &reagent.GenerationInfo{Duration: duration},
	}

	for i, choice := range raw.Choices {
		response.Choices[i] = &reagent.ContentChoice{
			Content:          choice.Content,
			StopReason:       choice.StopReason,
			ToolCalls:        choice.ToolCalls,
			ReasoningContent: choice.ReasoningContent,
		}
	}

	if len(raw.Choices) > 0 && raw.Choices[0].GenerationInfo != nil {
		info := raw.Choices[0].GenerationInfo
		response.Info.Raw = info
		response.Info.InputTokens = extractInputTokens(info)
		response.Info.OutputTokens = extractOutputTokens(info)
		response.Info.TotalTokens = extractTotalTokens(
			info,
			response.Info.InputTokens,
			response.Info.OutputTokens,
		)
	}

	return response
}

// extractInputTokens handles the key names different providers use for
// prompt token counts.
func extractInputTokens(info map[string]any) int {
	// OpenAI / Ollama / Google (compat)
	if v := intFromMap(info, "PromptTokens"); v > 0 {
		return v
	}
	// Anthropic
	if v := intFromMap(info, "InputTokens"); v > 0 {
		return v
	}
	// Google / Bedrock
	if v := intFromMap(info, "input_tokens"); v > 0 {
		return v
	}
	return 0
}

func extractOutputTokens(info map[string]any) int {
	// OpenAI / Ollama / Google (compat)
	if v := intFromMap(info, "CompletionTokens"); v > 0 {
		return v
	}
	// Anthropic
	if v := intFromMap(info, "OutputTokens"); v > 0 {
		return v
	}
	// Google / Bedrock
	if v := intFromMap(info, "output_tokens"); v > 0 {
		return v
	}
	return 0
}

func extractTotalTokens(info map[string]any, input, output int) int {
	if v := intFromMap(info, "TotalTokens"); v > 0 {
		return v
	}
	if v := intFromMap(info, "total_tokens"); v > 0 {
		return v
	}
	return input + output
}

// intFromMap extracts an int value from a map, handling the numeric types
// providers actually send.
func intFromMap(m map[string]any, key string) int {
	v, ok := m[key]
	if !ok {
		return 0
	}
	switch n := v.(type) {
	case int:
		return n
	case int32:
		return int(n)
	case int64:
		return int(n)
	case float32:
		return int(n)
	case float64:
		return int(n)
	default:
		return 0
	}
}
