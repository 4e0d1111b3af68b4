package models

import (
	"sync"

	"github.com/pkoukk/tiktoken-go"
	"github.com/tmc/langchaingo/llms"

	"github.com/khoametz/reagent"
)

var (
	encodingOnce sync.Once
	encoding     *tiktoken.Tiktoken
)

// tokenCount counts tokens with the cl100k_base encoding. The encoding is
// an approximation for non-OpenAI models but close enough for budget
// accounting. Falls back to len/4 if the encoding cannot be loaded
// (tiktoken-go downloads it on first use unless an offline loader is set).
func tokenCount(text string) int {
	encodingOnce.Do(func() {
		enc, err := tiktoken.GetEncoding(tiktoken.MODEL_CL100K_BASE)
		if err == nil {
			encoding = enc
		}
	})
	if encoding == nil {
		return len(text) / 4
	}
	return len(encoding.Encode(text, nil, nil))
}

// estimateUsage fills in token counts for providers that report no usage,
// marking the info as estimated. Input tokens are counted from the text
// parts of the prompt, output tokens from the choice contents.
func estimateUsage(messages []llms.MessageContent, response *reagent.ContentResponse) {
	if response == nil || response.Info == nil {
		return
	}

	input := 0
	for _, msg := range messages {
		for _, part := range msg.Parts {
			if text, ok := part.(llms.TextContent); ok {
				input += tokenCount(text.Text)
			}
		}
	}

	output := 0
	for _, choice := range response.Choices {
		if choice.Content != "" {
			output += tokenCount(choice.Content)
		}
	}

	response.Info.InputTokens = input
	response.Info.OutputTokens = output
	response.Info.TotalTokens = input + output
	response.Info.Estimated = true
}
