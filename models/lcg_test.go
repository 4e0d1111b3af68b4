package models

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"

	"github.com/khoametz/reagent"
)

// fakeLLM is a canned llms.Model.
type fakeLLM struct {
	response *llms.ContentResponse
	err      error
	calls    int
}

func (f *fakeLLM) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	f.calls++
	return f.response, f.err
}

func (f *fakeLLM) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return "", errors.New("not implemented")
}

// recordingDispatcher collects every dispatched event.
type recordingDispatcher struct {
	events []reagent.Event
}

func (d *recordingDispatcher) Dispatch(execCtx *reagent.ExecutionContext, event reagent.Event) {
	d.events = append(d.events, event)
}

func openAIStyleResponse(content string, info map[string]any) *llms.ContentResponse {
	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{
			Content:        content,
			StopReason:     "stop",
			GenerationInfo: info,
		}},
	}
}

func TestConvertResponse_TokenExtraction(t *testing.T) {
	type expected struct {
		input  int
		output int
		total  int
	}
	tests := []struct {
		name     string
		info     map[string]any
		expected expected
	}{
		{
			name: "openai style ints",
			info: map[string]any{
				"PromptTokens":     100,
				"CompletionTokens": 25,
				"TotalTokens":      125,
			},
			expected: expected{input: 100, output: 25, total: 125},
		},
		{
			name: "anthropic style",
			info: map[string]any{
				"InputTokens":  80,
				"OutputTokens": 40,
			},
			expected: expected{input: 80, output: 40, total: 120},
		},
		{
			name: "bedrock style lowercase floats",
			info: map[string]any{
				"input_tokens":  float64(60),
				"output_tokens": float64(15),
			},
			expected: expected{input: 60, output: 15, total: 75},
		},
		{
			name: "total only from lowercase key",
			info: map[string]any{
				"total_tokens": 200,
			},
			expected: expected{total: 200},
		},
		{
			name:     "no usage reported",
			info:     map[string]any{"FinishReason": "stop"},
			expected: expected{},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			raw := openAIStyleResponse("hi", test.info)
			response := convertResponse(raw, 10*time.Millisecond)

			assert.Equal(t, test.expected.input, response.Info.InputTokens)
			assert.Equal(t, test.expected.output, response.Info.OutputTokens)
			assert.Equal(t, test.expected.total, response.Info.TotalTokens)
			assert.False(t, response.Info.Estimated)
			assert.Equal(t, 10*time.Millisecond, response.Info.Duration)
		})
	}
}

func TestConvertResponse_Choices(t *testing.T) {
	raw := &llms.ContentResponse{
		Choices: []*llms.ContentChoice{
			{
				Content:    "first",
				StopReason: "tool_calls",
				ToolCalls: []llms.ToolCall{{
					ID:           "call_1",
					Type:         "function",
					FunctionCall: &llms.FunctionCall{Name: "search", Arguments: `{"q":"x"}`},
				}},
			},
			{Content: "second"},
		},
	}

	response := convertResponse(raw, time.Millisecond)

	require.Len(t, response.Choices, 2)
	assert.Equal(t, "first", response.Choices[0].Content)
	assert.Equal(t, "tool_calls", response.Choices[0].StopReason)
	require.Len(t, response.Choices[0].ToolCalls, 1)
	assert.Equal(t, "search", response.Choices[0].ToolCalls[0].FunctionCall.Name)
	assert.Equal(t, "second", response.Choices[1].Content)

	first := response.FirstChoice()
	require.NotNil(t, first)
	assert.Equal(t, "first", first.Content)
}

func TestConvertResponse_NoChoices(t *testing.T) {
	response := convertResponse(&llms.ContentResponse{}, time.Millisecond)

	assert.Empty(t, response.Choices)
	assert.Zero(t, response.Info.TotalTokens)
	assert.Nil(t, response.FirstChoice())
}

func TestIntFromMap(t *testing.T) {
	m := map[string]any{
		"int":     42,
		"int32":   int32(42),
		"int64":   int64(42),
		"float32": float32(42),
		"float64": float64(42),
		"string":  "42",
	}

	for _, key := range []string{"int", "int32", "int64", "float32", "float64"} {
		assert.Equal(t, 42, intFromMap(m, key), key)
	}
	assert.Zero(t, intFromMap(m, "string"))
	assert.Zero(t, intFromMap(m, "missing"))
}

func TestEstimateUsage(t *testing.T) {
	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, "You are a helpful assistant."),
		llms.TextParts(llms.ChatMessageTypeHuman, "What is the capital of France?"),
	}
	response := &reagent.ContentResponse{
		Choices: []*reagent.ContentChoice{{Content: "The capital of France is Paris."}},
		Info:    &reagent.GenerationInfo{},
	}

	estimateUsage(messages, response)

	assert.True(t, response.Info.Estimated)
	assert.Greater(t, response.Info.InputTokens, 0)
	assert.Greater(t, response.Info.OutputTokens, 0)
	assert.Equal(t,
		response.Info.InputTokens+response.Info.OutputTokens,
		response.Info.TotalTokens,
	)
}

func TestEstimateUsage_NilSafe(t *testing.T) {
	estimateUsage(nil, nil)
	estimateUsage(nil, &reagent.ContentResponse{})
}

func TestLangChain_GenerateContent(t *testing.T) {
	llm := &fakeLLM{response: openAIStyleResponse("hello", map[string]any{
		"PromptTokens":     50,
		"CompletionTokens": 10,
		"TotalTokens":      60,
	})}
	model := NewLangChain(llm).WithName("gpt-4o")

	execCtx := reagent.NewExecutionContext(context.Background(), "test")
	dispatcher := &recordingDispatcher{}
	execCtx.SetDispatcher(dispatcher)

	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeHuman, "say hello"),
	}
	response, err := model.GenerateContent(context.Background(), execCtx, messages)

	require.NoError(t, err)
	assert.Equal(t, 1, llm.calls)
	assert.Equal(t, "hello", response.FirstChoice().Content)
	assert.Equal(t, 60, response.Info.TotalTokens)
	assert.False(t, response.Info.Estimated)

	stats := execCtx.Stats()
	assert.Equal(t, int64(1), stats.GetCounter(reagent.KeyModelCalls))
	assert.Equal(t, int64(1), stats.GetCounter(reagent.KeyModelCallsFor+"gpt-4o"))
	assert.Equal(t, int64(50), stats.GetCounter(reagent.KeyInputTokens))
	assert.Equal(t, int64(10), stats.GetCounter(reagent.KeyOutputTokensFor+"gpt-4o"))

	require.Len(t, dispatcher.events, 2)
	before, ok := dispatcher.events[0].(*reagent.BeforeModelCallEvent)
	require.True(t, ok)
	assert.Equal(t, "gpt-4o", before.Model)
	after, ok := dispatcher.events[1].(*reagent.AfterModelCallEvent)
	require.True(t, ok)
	assert.NoError(t, after.Err)
	assert.Equal(t, response, after.Response)
}

func TestLangChain_GenerateContentEstimates(t *testing.T) {
	llm := &fakeLLM{response: openAIStyleResponse("a longer answer without usage", nil)}
	model := NewLangChain(llm)

	response, err := model.GenerateContent(context.Background(), nil, []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeHuman, "question"),
	})

	require.NoError(t, err)
	assert.True(t, response.Info.Estimated)
	assert.Greater(t, response.Info.TotalTokens, 0)
}

func TestLangChain_GenerateContentError(t *testing.T) {
	llm := &fakeLLM{err: errors.New("rate limited")}
	model := NewLangChain(llm).WithName("gpt-4o")

	execCtx := reagent.NewExecutionContext(context.Background(), "test")
	dispatcher := &recordingDispatcher{}
	execCtx.SetDispatcher(dispatcher)

	response, err := model.GenerateContent(context.Background(), execCtx, nil)

	require.Error(t, err)
	assert.Nil(t, response)

	require.Len(t, dispatcher.events, 2)
	after, ok := dispatcher.events[1].(*reagent.AfterModelCallEvent)
	require.True(t, ok)
	assert.Error(t, after.Err)
	assert.Nil(t, after.Response)
}

func TestLangChain_Unwrap(t *testing.T) {
	llm := &fakeLLM{}
	model := NewLangChain(llm)

	assert.Same(t, llm, model.Unwrap())
}
