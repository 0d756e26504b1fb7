package llm

import (
	"context"
	"errors"
	"time"

	"github.com/chainguard-dev/clog"
	"github.com/sethvargo/go-retry"

	"github.com/joestump/gator-probe/internal/metrics"
)

const defaultRetryDelay = time.Second

// Client validates requests and retries transient provider failures with
// exponential backoff. It implements Generator.
type Client struct {
	provider    Generator
	name        string
	maxAttempts int
	delay       time.Duration
}

// NewClient wraps provider. maxAttempts counts the first call; delay is the
// wait before the first retry and doubles after each one.
func NewClient(provider Generator, maxAttempts int, delay time.Duration) *Client {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	if delay <= 0 {
		delay = defaultRetryDelay
	}
	return &Client{provider: provider, name: "custom", maxAttempts: maxAttempts, delay: delay}
}

// Provider names the wrapped provider.
func (c *Client) Provider() string { return c.name }

func (c *Client) Generate(ctx context.Context, req Request) (*Response, error) {
	if req.SystemPrompt == "" {
		return nil, &APIError{Code: CodeMissingSystemPrompt, Msg: "system prompt is required"}
	}
	if req.UserPrompt == "" {
		return nil, &APIError{Code: CodeMissingUserPrompt, Msg: "user prompt is required"}
	}

	var (
		resp    *Response
		attempt int
	)
	backoff := retry.WithMaxRetries(uint64(c.maxAttempts-1), retry.NewExponential(c.delay))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		if attempt > 1 {
			metrics.LLMRetriesTotal.Inc()
		}

		r, err := c.provider.Generate(ctx, req)
		if err != nil {
			if Retryable(err) && attempt < c.maxAttempts {
				clog.FromContext(ctx).With("attempt", attempt).Warnf("llm: retrying after %v", err)
				return retry.RetryableError(err)
			}
			return err
		}
		resp = r
		return nil
	})
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			return nil, err
		}
		return nil, &APIError{Code: CodeGenerateResponse, Msg: "error generating response", Err: err}
	}
	return resp, nil
}
