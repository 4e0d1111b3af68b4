package agents

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"text/template"

	"github.com/tmc/langchaingo/llms"
	"gopkg.in/yaml.v3"

	"github.com/khoametz/reagent"
	"github.com/khoametz/reagent/schema"
)

// React implements the ReAct (Reasoning and Acting) pattern as a text
// format agent: the model writes <think>, <action>, and <answer> sections,
// tool calls are YAML inside the action section, and observations are fed
// back as <observation> blocks in the next message.
//
// # Interpretation Rules
//
// The rules below are applied in order to each model response:
//
//  1. Actions take priority. If the response contains a parseable
//     <action> section, the agent proposes those tool calls, even when an
//     <answer> section is also present. A premature answer written before
//     seeing tool results is discarded.
//
//  2. An <answer> section (with no actions) finishes the run. When an
//     answer schema is configured the section must contain JSON matching
//     it; an invalid answer degrades to a thought so the model can retry.
//
//  3. Anything else is a thought. Malformed YAML, missing sections, and
//     plain prose never abort the run: the raw text becomes a thought and
//     the loop continues.
type React struct {
	behavior       string
	systemTemplate *template.Template
	toolbox        *reagent.Toolbox
	answerSchema   *schema.Schema
	timeProvider   reagent.TimeProvider
	maxHistory     int
}

var _ reagent.Agent = (*React)(nil)

// NewReact creates a React agent over the given toolbox.
// Defaults:
//   - SystemTemplate: DefaultReactSystemTemplate
//   - TimeProvider: reagent.NewDefaultTimeProvider()
//   - MaxHistory: 0 (unlimited)
func NewReact(toolbox *reagent.Toolbox) *React {
	return &React{
		toolbox:        toolbox,
		systemTemplate: DefaultReactSystemTemplate,
		timeProvider:   reagent.NewDefaultTimeProvider(),
	}
}

// WithBehavior sets behavior instructions to include in the system prompt.
// This is appended to the default ReAct instructions, not a replacement.
func (r *React) WithBehavior(behavior string) *React {
	r.behavior = behavior
	return r
}

// WithSystemTemplate sets a custom system prompt template.
// See DefaultReactSystemTemplate for the expected template structure.
func (r *React) WithSystemTemplate(tmpl *template.Template) *React {
	r.systemTemplate = tmpl
	return r
}

// WithSystemTemplateString sets a custom system prompt template from a
// string, parsed as a Go text/template with access to SystemPromptData
// fields. Returns an error if the template string is invalid.
func (r *React) WithSystemTemplateString(tmplStr string) (*React, error) {
	tmpl, err := template.New("react_system").Parse(tmplStr)
	if err != nil {
		return r, fmt.Errorf("parse template: %w", err)
	}
	r.systemTemplate = tmpl
	return r, nil
}

// WithAnswerSchema requires the final answer to be JSON matching the
// given schema. Valid answers become structured return values; invalid
// ones degrade to thoughts so the model can retry.
func (r *React) WithAnswerSchema(s *schema.Schema) *React {
	r.answerSchema = s
	return r
}

// WithTimeProvider sets the time provider. Use a mock provider for
// deterministic prompts in tests.
func (r *React) WithTimeProvider(tp reagent.TimeProvider) *React {
	r.timeProvider = tp
	return r
}

// WithMaxHistory limits how many of the most recent actions the
// scratchpad renders. Older steps are replaced with an omission marker.
// Zero means unlimited.
func (r *React) WithMaxHistory(n int) *React {
	r.maxHistory = n
	return r
}

// -----------------------------------------------------------------------------
// Prompt Construction
// -----------------------------------------------------------------------------

const historyOmittedMarker = "(earlier steps omitted)"

const finalAnswerNudge = "Provide your final answer now in an <answer> " +
	"section, based on what you have learned so far. Do not call any more tools."

// BuildScratchpad renders the action history as alternating messages: one
// AI message per model response, followed by a human message carrying the
// observations of the actions that response proposed. Consecutive actions
// with the same log text came from the same response and are grouped.
func (r *React) BuildScratchpad(history []reagent.Action) []llms.MessageContent {
	var messages []llms.MessageContent

	if r.maxHistory > 0 && len(history) > r.maxHistory {
		history = history[len(history)-r.maxHistory:]
		messages = append(messages, llms.TextParts(llms.ChatMessageTypeHuman, historyOmittedMarker))
	}

	for start := 0; start < len(history); {
		end := start + 1
		for end < len(history) && history[end].Log == history[start].Log {
			end++
		}
		group := history[start:end]

		messages = append(messages, llms.TextParts(llms.ChatMessageTypeAI, group[0].Log))

		var sb strings.Builder
		for i, action := range group {
			obs, _ := action.Observation()
			if i > 0 {
				sb.WriteString("\n")
			}
			fmt.Fprintf(&sb, "<observation>\n%s\n</observation>", obs)
		}
		messages = append(messages, llms.TextParts(llms.ChatMessageTypeHuman, sb.String()))

		start = end
	}

	return messages
}

// BuildFinalScratchpad is BuildScratchpad plus a closing instruction that
// asks for the final answer. Used by the generate early-stop strategy.
func (r *React) BuildFinalScratchpad(history []reagent.Action) []llms.MessageContent {
	messages := r.BuildScratchpad(history)
	return append(messages, llms.TextParts(llms.ChatMessageTypeHuman, finalAnswerNudge))
}

// BuildPrompt assembles the full message list: system prompt, the task,
// then the scratchpad.
func (r *React) BuildPrompt(task *reagent.Task, scratchpad []llms.MessageContent) []llms.MessageContent {
	system, err := executeTemplate(r.systemTemplate, SystemPromptData{
		Behavior:     r.behavior,
		FormatPrompt: reactFormatPrompt,
		ToolsPrompt:  r.toolbox.Prompt(),
		AnswerPrompt: r.answerPrompt(),
		Time:         r.timeProvider,
	})
	if err != nil {
		// A broken custom template falls back to the raw behavior text so
		// the run can still proceed.
		system = r.behavior
	}

	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, system),
		llms.TextParts(llms.ChatMessageTypeHuman, task.Text),
	}
	return append(messages, scratchpad...)
}

func (r *React) answerPrompt() string {
	if r.answerSchema == nil {
		return ""
	}
	encoded, err := yaml.Marshal(r.answerSchema.Raw())
	if err != nil {
		return ""
	}
	return "# Answer format\n\nThe <answer> section must contain a single JSON value matching this schema:\n\n" +
		string(encoded)
}

// PrepareRequest is a no-op: the ReAct format needs no native tool
// definitions or special call options.
func (r *React) PrepareRequest(execCtx *reagent.ExecutionContext, req *reagent.ModelRequest) {}

// -----------------------------------------------------------------------------
// Interpretation
// -----------------------------------------------------------------------------

var (
	actionSectionRe = regexp.MustCompile(`(?s)<action>\s*(.*?)\s*</action>`)
	answerSectionRe = regexp.MustCompile(`(?s)<answer>\s*(.*?)\s*</answer>`)
)

// toolCall is the YAML shape of a single tool call in an action section.
type toolCall struct {
	Tool string         `yaml:"tool"`
	Args map[string]any `yaml:"args"`
}

// Interpret applies the interpretation rules to a model response.
func (r *React) Interpret(execCtx *reagent.ExecutionContext, response *reagent.ContentResponse) *reagent.Decision {
	content := ""
	if choice := response.FirstChoice(); choice != nil {
		content = choice.Content
	}

	if match := actionSectionRe.FindStringSubmatch(content); match != nil {
		actions, err := r.parseToolCalls(match[1], content)
		if err != nil {
			if execCtx != nil {
				execCtx.PublishParseError("action", content, err)
			}
			return reagent.ThoughtDecision(content)
		}
		if len(actions) > 0 {
			if execCtx != nil {
				execCtx.ResetParseErrorStreak()
			}
			return reagent.ActionsDecision(actions...)
		}
	}

	if match := answerSectionRe.FindStringSubmatch(content); match != nil {
		finish, err := r.parseAnswer(match[1], content)
		if err != nil {
			if execCtx != nil {
				execCtx.PublishParseError("answer", content, err)
			}
			return reagent.ThoughtDecision(content)
		}
		if execCtx != nil {
			execCtx.ResetParseErrorStreak()
		}
		return reagent.FinishDecision(finish)
	}

	return reagent.ThoughtDecision(content)
}

// parseToolCalls decodes the action section as either a single tool call
// or a list of parallel tool calls.
func (r *React) parseToolCalls(section, raw string) ([]reagent.Action, error) {
	var calls []toolCall
	if err := yaml.Unmarshal([]byte(section), &calls); err != nil {
		var single toolCall
		if err2 := yaml.Unmarshal([]byte(section), &single); err2 != nil {
			return nil, fmt.Errorf("parse tool calls: %w", err)
		}
		calls = []toolCall{single}
	}

	actions := make([]reagent.Action, 0, len(calls))
	for _, call := range calls {
		if call.Tool == "" {
			return nil, fmt.Errorf("parse tool calls: missing tool name")
		}
		input := ""
		if len(call.Args) > 0 {
			encoded, err := yaml.Marshal(call.Args)
			if err != nil {
				return nil, fmt.Errorf("parse tool calls: %w", err)
			}
			input = string(encoded)
		}
		actions = append(actions, reagent.Action{
			Tool:  call.Tool,
			Input: input,
			Log:   raw,
		})
	}
	return actions, nil
}

// parseAnswer builds the finish for an answer section, validating it
// against the answer schema when one is configured.
func (r *React) parseAnswer(section, raw string) (*reagent.Finish, error) {
	if r.answerSchema == nil {
		return &reagent.Finish{
			Return: reagent.TextReturn(section),
			Log:    raw,
		}, nil
	}

	var value any
	if err := json.Unmarshal([]byte(section), &value); err != nil {
		return nil, fmt.Errorf("parse answer: %w", err)
	}
	if err := r.answerSchema.Validate(value); err != nil {
		return nil, fmt.Errorf("parse answer: %w", err)
	}
	return &reagent.Finish{
		Return: reagent.StructuredReturn(value),
		Log:    raw,
	}, nil
}
