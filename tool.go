package reagent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"gopkg.in/yaml.v3"

	"github.com/khoametz/reagent/schema"
)

// Tool is a single callable tool.
//
// Tools focus on business logic only. Argument parsing, schema validation,
// and observation formatting are handled by [Toolbox], so the same tool
// works with both text-format agents and native tool-calling agents.
type Tool interface {
	// Name returns the tool's identifier used in tool calls.
	Name() string

	// Description returns a human-readable description for the model.
	Description() string

	// ParameterSchema returns the JSON Schema for the tool's parameters.
	// Returns nil if the tool takes no parameters.
	ParameterSchema() map[string]any

	// Call executes the tool. Args is the decoded, schema-validated
	// argument map. The returned string becomes the action's observation.
	Call(ctx context.Context, args map[string]any) (string, error)
}

// ToolFunc is a convenience type for creating tools from functions.
type ToolFunc struct {
	name        string
	description string
	params      map[string]any
	fn          func(ctx context.Context, args map[string]any) (string, error)
}

var _ Tool = (*ToolFunc)(nil)

// NewToolFunc creates a Tool from a function.
//
//	tool := reagent.NewToolFunc(
//	    "search",
//	    "Search the knowledge base",
//	    schema.Object(map[string]*schema.Property{
//	        "query": schema.String("Search query"),
//	    }, "query"),
//	    func(ctx context.Context, args map[string]any) (string, error) {
//	        return doSearch(ctx, args["query"].(string))
//	    },
//	)
func NewToolFunc(
	name, description string,
	params map[string]any,
	fn func(ctx context.Context, args map[string]any) (string, error),
) *ToolFunc {
	return &ToolFunc{
		name:        name,
		description: description,
		params:      params,
		fn:          fn,
	}
}

func (t *ToolFunc) Name() string                    { return t.name }
func (t *ToolFunc) Description() string             { return t.description }
func (t *ToolFunc) ParameterSchema() map[string]any { return t.params }

func (t *ToolFunc) Call(ctx context.Context, args map[string]any) (string, error) {
	return t.fn(ctx, args)
}

// -----------------------------------------------------------------------------
// Toolbox
// -----------------------------------------------------------------------------

// Toolbox holds the tools available to an agent and executes actions
// against them.
//
// # Responsibilities
//
//   - Prompt: tool catalog text for prompt-format agents
//   - Definitions: native tool definitions for tool-calling models
//   - Execute: decode args, validate against schema, call the tool
//
// Registration order is preserved in Prompt, Definitions, and Names.
type Toolbox struct {
	order   []string
	tools   map[string]Tool
	schemas map[string]*schema.Schema
}

// NewToolbox creates an empty Toolbox.
func NewToolbox(tools ...Tool) *Toolbox {
	tb := &Toolbox{
		tools:   make(map[string]Tool),
		schemas: make(map[string]*schema.Schema),
	}
	for _, t := range tools {
		tb.Register(t)
	}
	return tb
}

// Register adds a tool. Panics on a nil tool, a duplicate name, or an
// invalid parameter schema. Returns the Toolbox for chaining.
func (tb *Toolbox) Register(tool Tool) *Toolbox {
	if tool == nil {
		panic("reagent: Register called with nil tool")
	}
	name := tool.Name()
	if _, exists := tb.tools[name]; exists {
		panic("reagent: duplicate tool name: " + name)
	}
	tb.order = append(tb.order, name)
	tb.tools[name] = tool
	tb.schemas[name] = schema.MustCompile(tool.ParameterSchema())
	return tb
}

// Get returns the tool with the given name, or nil.
func (tb *Toolbox) Get(name string) Tool {
	return tb.tools[name]
}

// Names returns all registered tool names in registration order.
func (tb *Toolbox) Names() []string {
	out := make([]string, len(tb.order))
	copy(out, tb.order)
	return out
}

// Len returns the number of registered tools.
func (tb *Toolbox) Len() int {
	return len(tb.order)
}

// Prompt returns the tool catalog for prompt-format agents: each tool's
// name, description, and parameter schema rendered as YAML.
func (tb *Toolbox) Prompt() string {
	var sb strings.Builder
	sb.WriteString("Available tools:\n")
	for _, name := range tb.order {
		tool := tb.tools[name]
		fmt.Fprintf(&sb, "\n- %s: %s\n", tool.Name(), tool.Description())
		params := tool.ParameterSchema()
		if params == nil {
			continue
		}
		encoded, err := yaml.Marshal(params)
		if err != nil {
			continue
		}
		sb.WriteString("  Parameters:\n")
		for _, line := range strings.Split(string(encoded), "\n") {
			if line != "" {
				sb.WriteString("    ")
				sb.WriteString(line)
				sb.WriteString("\n")
			}
		}
	}
	return sb.String()
}

// Definitions returns the tools as native tool definitions for models that
// support tool calling.
func (tb *Toolbox) Definitions() []llms.Tool {
	out := make([]llms.Tool, 0, len(tb.order))
	for _, name := range tb.order {
		tool := tb.tools[name]
		out = append(out, llms.Tool{
			Type: "function",
			Function: &llms.FunctionDefinition{
				Name:        tool.Name(),
				Description: tool.Description(),
				Parameters:  tool.ParameterSchema(),
			},
		})
	}
	return out
}

// Execute runs a single action against the toolbox: decode the action's
// input, validate it against the tool's parameter schema, and call the
// tool. The returned string is the observation text.
//
// Errors are returned, not formatted: the executor attaches them to the
// observation so the model can react.
func (tb *Toolbox) Execute(ctx context.Context, action Action) (string, error) {
	tool, ok := tb.tools[action.Tool]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownTool, action.Tool)
	}

	args, err := decodeArgs(action.Input)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToolInput, err)
	}

	if err := tb.schemas[action.Tool].Validate(args); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToolInput, err)
	}

	return tool.Call(ctx, args)
}

// decodeArgs parses an action input into an argument map. YAML is a
// superset of JSON, so both text-format and native tool-call arguments
// decode through the same path. The result is round-tripped through JSON
// so the schema validator sees canonical JSON types.
func decodeArgs(input string) (map[string]any, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return map[string]any{}, nil
	}

	var raw map[string]any
	if err := yaml.Unmarshal([]byte(trimmed), &raw); err != nil {
		return nil, err
	}
	if raw == nil {
		return map[string]any{}, nil
	}

	encoded, err := json.Marshal(raw)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(encoded, &out); err != nil {
		return nil, err
	}
	return out, nil
}
