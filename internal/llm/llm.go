// Package llm sends assembled prompts to a language model provider.
package llm

import (
	"context"
	"strings"

	"github.com/joestump/gator-probe/internal/catalog"
	"github.com/joestump/gator-probe/internal/config"
)

// Options tune a single generation. Zero values fall back to the provider
// defaults.
type Options struct {
	Temperature float64
	MaxTokens   int
}

// Request is the input to a Generator.
type Request struct {
	SystemPrompt string
	UserPrompt   string
	Options      Options
}

// Usage reports token consumption.
type Usage struct {
	InputTokens  int64 `json:"inputTokens"`
	OutputTokens int64 `json:"outputTokens"`
}

// Response is the model's reply.
type Response struct {
	ID           string
	Content      string
	Model        string
	Usage        Usage
	FinishReason string
	Simulated    bool
}

// Generator produces a completion for a system/user prompt pair.
type Generator interface {
	Generate(ctx context.Context, req Request) (*Response, error)
}

// New builds the provider selected by cfg, falling back to the catalog
// settings for anything cfg leaves unset, and wraps it in a retrying Client.
func New(cfg *config.Config, settings *catalog.Settings) (*Client, error) {
	api := settings.APISettings

	provider := firstNonEmpty(cfg.LLM.Provider, api.Provider)
	model := firstNonEmpty(cfg.LLM.Model, api.Model)
	baseURL := firstNonEmpty(cfg.LLM.BaseURL, api.BaseURL)
	temperature := cfg.LLM.Temperature
	if temperature == 0 {
		temperature = api.Temperature
	}
	maxTokens := cfg.LLM.MaxTokens
	if maxTokens == 0 {
		maxTokens = api.MaxTokens
	}
	simulate := cfg.LLM.Simulation || api.UseSimulationMode

	if provider == "" {
		return nil, &APIError{Code: CodeMissingProviderType, Msg: "provider type is required"}
	}

	var g Generator
	switch strings.ToLower(provider) {
	case "claude":
		if !simulate && cfg.LLM.APIKey == "" {
			return nil, &APIError{Code: CodeMissingAPIKey, Msg: "Claude API key is required when not in simulation mode"}
		}
		if model == "" {
			return nil, &APIError{Code: CodeMissingModel, Msg: "Claude model is required"}
		}
		if simulate {
			g = newSimulator(model)
		} else {
			g = newClaude(cfg.LLM.APIKey, baseURL, model, temperature, maxTokens)
		}
	case "simulation":
		if model == "" {
			return nil, &APIError{Code: CodeMissingModel, Msg: "model is required"}
		}
		g = newSimulator(model)
	default:
		return nil, &APIError{Code: CodeUnsupportedProvider, Msg: "unsupported provider type: " + provider}
	}

	c := NewClient(g, cfg.LLM.MaxRetries, cfg.LLM.RetryDelay)
	c.name = strings.ToLower(provider)
	if simulate {
		c.name = "simulation"
	}
	return c, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
