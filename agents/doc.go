// Package agents provides the built-in reagent.Agent implementations.
//
// # Overview
//
// An Agent owns the two agent-specific halves of the decision loop: how
// history is rendered into a prompt, and how model output is interpreted
// into a decision. Two implementations are provided:
//
//   - React: a text-format agent following the ReAct pattern. The model
//     writes <think>, <action>, and <answer> sections; tool calls are YAML
//     in the action section. Works with any chat model.
//
//   - ToolCalling: for models with native tool calling. Tools are passed
//     as API-level definitions and the model's tool_calls drive the loop.
//
// # Degradation, Not Errors
//
// Both agents treat malformed output as a thought rather than an error:
// the raw text is kept, a parse error event is published, and the loop
// continues so the model can correct itself. Runaway correction loops are
// stopped by the consecutive parse error limit (see reagent.DefaultLimits).
package agents
