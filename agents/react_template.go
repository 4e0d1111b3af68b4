package agents

import (
	"bytes"
	"text/template"

	"github.com/khoametz/reagent"
)

// SystemPromptData contains the data passed to the ReAct system template.
type SystemPromptData struct {
	// Behavior contains behavior instructions provided by the user.
	Behavior string

	// FormatPrompt explains the output sections the model must use.
	FormatPrompt string

	// ToolsPrompt describes available tools and how to call them.
	ToolsPrompt string

	// AnswerPrompt describes the expected answer format. Empty unless an
	// answer schema is configured.
	AnswerPrompt string

	// Time provides access to time-related functions in templates.
	// Use {{.Time.Today}}, {{.Time.Weekday}}, {{.Time.Format "2006-01-02"}}, etc.
	Time reagent.TimeProvider
}

const reactSystemTemplateContent = `You are an agent that solves tasks by reasoning and calling tools.
{{if .Behavior}}
# Behavior

{{.Behavior}}
{{end}}
{{.FormatPrompt}}

{{.ToolsPrompt}}
{{if .AnswerPrompt}}
{{.AnswerPrompt}}
{{end}}
Today is {{.Time.Today}} ({{.Time.Weekday}}).`

const reactFormatPrompt = `# Output format

Work in steps. In each response, first reason inside a <think> section,
then either call tools or give the final answer.

To call a tool:

<think>why this tool helps</think>
<action>
tool: tool_name
args:
  param: value
</action>

To call several tools in parallel, use a list:

<action>
- tool: tool_one
  args:
    param: value
- tool: tool_two
  args:
    param: value
</action>

For strings with special characters (colons, quotes) or multiple lines,
use double quotes. Tool results appear in the next message as
<observation> sections.

When you know the final answer, stop calling tools and respond with:

<answer>your final answer</answer>`

// DefaultReactSystemTemplate is the default template for the ReAct system
// prompt. Replace it via React.WithSystemTemplate for full control.
var DefaultReactSystemTemplate = template.Must(
	template.New("react_system").Parse(reactSystemTemplateContent),
)

func executeTemplate(tmpl *template.Template, data SystemPromptData) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
