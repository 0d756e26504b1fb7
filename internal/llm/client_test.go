package llm

import (
	"context"
	"errors"
	"testing"
	"time"
)

// scriptedProvider returns errs in order, then succeeds.
type scriptedProvider struct {
	errs  []error
	calls int
}

func (p *scriptedProvider) Generate(context.Context, Request) (*Response, error) {
	p.calls++
	if p.calls <= len(p.errs) {
		return nil, p.errs[p.calls-1]
	}
	return &Response{ID: "msg_1", Content: "ok"}, nil
}

var validRequest = Request{SystemPrompt: "sys", UserPrompt: "user"}

func TestClient_Validation(t *testing.T) {
	tests := []struct {
		name     string
		req      Request
		wantCode Code
	}{
		{name: "missing system prompt", req: Request{UserPrompt: "u"}, wantCode: CodeMissingSystemPrompt},
		{name: "missing user prompt", req: Request{SystemPrompt: "s"}, wantCode: CodeMissingUserPrompt},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &scriptedProvider{}
			_, err := NewClient(p, 3, time.Millisecond).Generate(context.Background(), tt.req)
			if got := CodeOf(err); got != tt.wantCode {
				t.Errorf("code = %q (err %v), want %q", got, err, tt.wantCode)
			}
			if p.calls != 0 {
				t.Errorf("provider calls = %d, want 0", p.calls)
			}
		})
	}
}

func TestClient_Retries(t *testing.T) {
	serverErr := &APIError{Code: CodeServerError, Msg: "boom", StatusCode: 500}
	authErr := &APIError{Code: CodeAuthentication, Msg: "nope", StatusCode: 401}

	tests := []struct {
		name      string
		errs      []error
		attempts  int
		wantCalls int
		wantCode  Code
	}{
		{name: "success first try", attempts: 3, wantCalls: 1},
		{name: "recovers after transient errors", errs: []error{serverErr, serverErr}, attempts: 3, wantCalls: 3},
		{
			name:      "gives up after max attempts",
			errs:      []error{serverErr, serverErr, serverErr, serverErr},
			attempts:  3,
			wantCalls: 3,
			wantCode:  CodeServerError,
		},
		{name: "does not retry auth errors", errs: []error{authErr}, attempts: 3, wantCalls: 1, wantCode: CodeAuthentication},
		{
			name:      "rate limit is retried",
			errs:      []error{&APIError{Code: CodeRateLimitExceeded, StatusCode: 429}},
			attempts:  2,
			wantCalls: 2,
		},
		{
			name:      "plain errors are wrapped",
			errs:      []error{errors.New("socket closed")},
			attempts:  3,
			wantCalls: 1,
			wantCode:  CodeGenerateResponse,
		},
		{name: "single attempt", errs: []error{serverErr}, attempts: 1, wantCalls: 1, wantCode: CodeServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &scriptedProvider{errs: tt.errs}
			resp, err := NewClient(p, tt.attempts, time.Millisecond).Generate(context.Background(), validRequest)
			if p.calls != tt.wantCalls {
				t.Errorf("provider calls = %d, want %d", p.calls, tt.wantCalls)
			}
			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("Generate: %v", err)
				}
				if resp.Content != "ok" {
					t.Errorf("Content = %q, want ok", resp.Content)
				}
				return
			}
			if got := CodeOf(err); got != tt.wantCode {
				t.Errorf("code = %q (err %v), want %q", got, err, tt.wantCode)
			}
		})
	}
}

func TestClient_HonoursCancellation(t *testing.T) {
	p := &scriptedProvider{errs: []error{&APIError{Code: CodeServiceUnavailable, StatusCode: 503}}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewClient(p, 5, time.Hour).Generate(ctx, validRequest)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
	if p.calls > 1 {
		t.Errorf("provider calls = %d, want at most 1", p.calls)
	}
}
