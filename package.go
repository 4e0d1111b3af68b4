// Package reagent implements a tool-augmented agent decision loop for Go.
//
// An agent run alternates model decisions with tool execution: the model
// proposes tool calls, the executor runs them and feeds the observations
// back, and the loop continues until the model produces a final answer or
// a budget runs out. The loop itself is generic; what varies is how an
// [Agent] renders history into a prompt and interprets model output into a
// [Decision].
//
// # Quick Start
//
//	package main
//
//	import (
//	    "context"
//	    "fmt"
//
//	    "github.com/khoametz/reagent"
//	    "github.com/khoametz/reagent/agents"
//	    "github.com/khoametz/reagent/executor"
//	    "github.com/khoametz/reagent/models"
//	    "github.com/khoametz/reagent/schema"
//	    "github.com/tmc/langchaingo/llms/openai"
//	)
//
//	func main() {
//	    llm, _ := openai.New()
//	    model := models.NewLangChain(llm).WithName("gpt-4o")
//
//	    toolbox := reagent.NewToolbox(reagent.NewToolFunc(
//	        "lookup_order",
//	        "Look up order details by order ID",
//	        schema.Object(map[string]*schema.Property{
//	            "order_id": schema.String("The order ID"),
//	        }, "order_id"),
//	        func(ctx context.Context, args map[string]any) (string, error) {
//	            return lookupOrder(ctx, args["order_id"].(string))
//	        },
//	    ))
//
//	    agent := agents.NewReact(toolbox).
//	        WithBehavior("You are a helpful customer service agent.")
//
//	    exec := executor.New(agent, model, toolbox, executor.DefaultConfig())
//
//	    execCtx := reagent.NewExecutionContext(context.Background(), "main")
//	    result := exec.Execute(execCtx, &reagent.Task{Text: "Where is order A-1042?"})
//	    if text, ok := result.Finish.Return.Text(); ok {
//	        fmt.Println(text)
//	    }
//	}
//
// # Structure
//
// The root package holds the shared vocabulary: [Action], [Finish],
// [Decision], [Agent], [Model], [Toolbox], [ExecutionContext], events, and
// stats. Subpackages provide the moving parts:
//
//   - executor: the decision loop driver with budgets and early stopping
//   - agents: a text-format ReAct agent and a native tool-calling agent
//   - models: langchaingo-backed model wrappers
//   - events: the subscriber registry that dispatches run events
//   - schema: JSON Schema building and validation
package reagent
