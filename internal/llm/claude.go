package llm

import (
	"context"
	"errors"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

type claudeProvider struct {
	client      anthropic.Client
	model       string
	temperature float64
	maxTokens   int
}

// newClaude builds a provider on the Messages API. The SDK's own retries are
// disabled; Client owns the retry policy.
func newClaude(apiKey, baseURL, model string, temperature float64, maxTokens int) *claudeProvider {
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	return &claudeProvider{
		client:      anthropic.NewClient(opts...),
		model:       model,
		temperature: temperature,
		maxTokens:   maxTokens,
	}
}

func (c *claudeProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	temperature, maxTokens := c.temperature, c.maxTokens
	if req.Options.Temperature != 0 {
		temperature = req.Options.Temperature
	}
	if req.Options.MaxTokens != 0 {
		maxTokens = req.Options.MaxTokens
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: int64(maxTokens),
		System:    []anthropic.TextBlockParam{{Text: req.SystemPrompt}},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.UserPrompt)),
		},
		Temperature: anthropic.Float(temperature),
	}

	msg, err := c.client.Messages.New(ctx, params)
	if err != nil {
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) {
			return nil, errorForStatus(apiErr.StatusCode, err)
		}
		return nil, &APIError{Code: CodeClaudeAPI, Msg: "error calling Claude API", Err: err}
	}

	var content strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			content.WriteString(block.Text)
		}
	}

	return &Response{
		ID:      msg.ID,
		Content: content.String(),
		Model:   string(msg.Model),
		Usage: Usage{
			InputTokens:  msg.Usage.InputTokens,
			OutputTokens: msg.Usage.OutputTokens,
		},
		FinishReason: string(msg.StopReason),
	}, nil
}
