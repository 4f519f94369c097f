package sentiment

import (
	"context"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const (
	defaultClaudeModel = "claude-3-5-haiku-latest"
	claudeMaxTokens    = 16
)

// NewClaudeAnalyzer rates sentiment with the Anthropic Messages API.
func NewClaudeAnalyzer(apiKey, model string) (Analyzer, error) {
	if apiKey == "" {
		return nil, ErrNoAPIKey
	}
	if model == "" {
		model = defaultClaudeModel
	}

	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &llmAnalyzer{
		name: "anthropic",
		complete: func(ctx context.Context, prompt string) (string, error) {
			resp, err := client.Messages.New(ctx, anthropic.MessageNewParams{
				Model:     anthropic.Model(model),
				MaxTokens: claudeMaxTokens,
				Messages: []anthropic.MessageParam{
					anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
				},
			})
			if err != nil {
				return "", err
			}

			var text strings.Builder
			for _, block := range resp.Content {
				if block.Type == "text" {
					text.WriteString(block.Text)
				}
			}
			return text.String(), nil
		},
	}, nil
}
