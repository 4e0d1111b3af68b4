package agents

import (
	"fmt"

	"github.com/tmc/langchaingo/llms"

	"github.com/khoametz/reagent"
)

// ToolCalling is an agent for models with native tool calling. Instead of
// a text format, tools are passed as API-level definitions and the model's
// tool_calls drive the loop. Plain text content with no tool calls is the
// final answer.
//
// Use React for models without native tool support.
type ToolCalling struct {
	behavior string
	toolbox  *reagent.Toolbox
}

var _ reagent.Agent = (*ToolCalling)(nil)

// NewToolCalling creates a ToolCalling agent over the given toolbox.
func NewToolCalling(toolbox *reagent.Toolbox) *ToolCalling {
	return &ToolCalling{toolbox: toolbox}
}

// WithBehavior sets the system prompt.
func (a *ToolCalling) WithBehavior(behavior string) *ToolCalling {
	a.behavior = behavior
	return a
}

// BuildScratchpad renders each executed action as an assistant message
// carrying the tool call followed by a tool message carrying its result.
// Providers require a tool call ID on both sides; one is synthesized for
// actions recorded without it.
func (a *ToolCalling) BuildScratchpad(history []reagent.Action) []llms.MessageContent {
	messages := make([]llms.MessageContent, 0, len(history)*2)
	for i, action := range history {
		id := action.ID
		if id == "" {
			id = fmt.Sprintf("call_%d", i)
		}

		assistant := llms.MessageContent{Role: llms.ChatMessageTypeAI}
		if action.Log != "" {
			assistant.Parts = append(assistant.Parts, llms.TextContent{Text: action.Log})
		}
		assistant.Parts = append(assistant.Parts, llms.ToolCall{
			ID:   id,
			Type: "function",
			FunctionCall: &llms.FunctionCall{
				Name:      action.Tool,
				Arguments: action.Input,
			},
		})
		messages = append(messages, assistant)

		obs, _ := action.Observation()
		messages = append(messages, llms.MessageContent{
			Role: llms.ChatMessageTypeTool,
			Parts: []llms.ContentPart{
				llms.ToolCallResponse{
					ToolCallID: id,
					Name:       action.Tool,
					Content:    obs,
				},
			},
		})
	}
	return messages
}

// BuildFinalScratchpad is BuildScratchpad plus a closing instruction that
// asks for a direct answer.
func (a *ToolCalling) BuildFinalScratchpad(history []reagent.Action) []llms.MessageContent {
	messages := a.BuildScratchpad(history)
	return append(messages, llms.TextParts(
		llms.ChatMessageTypeHuman,
		"Answer directly now based on what you have learned so far. Do not call any more tools.",
	))
}

// BuildPrompt assembles the message list: system prompt, the task, then
// the scratchpad.
func (a *ToolCalling) BuildPrompt(task *reagent.Task, scratchpad []llms.MessageContent) []llms.MessageContent {
	var messages []llms.MessageContent
	if a.behavior != "" {
		messages = append(messages, llms.TextParts(llms.ChatMessageTypeSystem, a.behavior))
	}
	messages = append(messages, llms.TextParts(llms.ChatMessageTypeHuman, task.Text))
	return append(messages, scratchpad...)
}

// PrepareRequest attaches the toolbox as native tool definitions.
func (a *ToolCalling) PrepareRequest(execCtx *reagent.ExecutionContext, req *reagent.ModelRequest) {
	if a.toolbox.Len() > 0 {
		req.Options = append(req.Options, llms.WithTools(a.toolbox.Definitions()))
	}
}

// Interpret maps tool calls to actions and plain content to a finish.
// A response with neither becomes a thought.
func (a *ToolCalling) Interpret(execCtx *reagent.ExecutionContext, response *reagent.ContentResponse) *reagent.Decision {
	choice := response.FirstChoice()
	if choice == nil {
		return reagent.ThoughtDecision("")
	}

	if len(choice.ToolCalls) > 0 {
		actions := make([]reagent.Action, 0, len(choice.ToolCalls))
		for _, tc := range choice.ToolCalls {
			if tc.FunctionCall == nil {
				continue
			}
			actions = append(actions, reagent.Action{
				ID:    tc.ID,
				Tool:  tc.FunctionCall.Name,
				Input: tc.FunctionCall.Arguments,
				Log:   choice.Content,
			})
		}
		if len(actions) > 0 {
			return reagent.ActionsDecision(actions...)
		}
		if execCtx != nil {
			execCtx.PublishParseError("tool_calls", choice.Content,
				fmt.Errorf("tool calls present but none had a function payload"))
		}
		return reagent.ThoughtDecision(choice.Content)
	}

	if choice.Content != "" {
		return reagent.FinishDecision(&reagent.Finish{
			Return: reagent.TextReturn(choice.Content),
			Log:    choice.Content,
		})
	}

	return reagent.ThoughtDecision("")
}
