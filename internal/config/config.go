package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	HTTP struct {
		Addr           string
		MaxInputLength int
	}
	Catalog struct {
		Dir string
	}
	Prompt struct {
		Style string
	}
	LLM struct {
		Provider    string
		APIKey      string
		Model       string
		BaseURL     string
		Temperature float64
		MaxTokens   int
		MaxRetries  int
		RetryDelay  time.Duration
		Simulation  bool
	}
	Log struct {
		Level string
	}
}

// Load reads config from environment (GATOR_ prefix) and optional gator-probe.yaml.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("GATOR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetConfigName("gator-probe")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // optional config file

	v.SetDefault("http.addr", ":3000")
	v.SetDefault("http.max_input_length", 7000)
	v.SetDefault("catalog.dir", "config")
	v.SetDefault("prompt.style", "standard")
	v.SetDefault("llm.max_retries", 3)
	v.SetDefault("llm.retry_delay", "1s")
	v.SetDefault("log.level", "info")

	cfg := &Config{}
	cfg.HTTP.Addr = v.GetString("http.addr")
	cfg.HTTP.MaxInputLength = v.GetInt("http.max_input_length")
	cfg.Catalog.Dir = v.GetString("catalog.dir")
	cfg.Prompt.Style = strings.ToLower(v.GetString("prompt.style"))
	cfg.LLM.Provider = v.GetString("llm.provider")
	cfg.LLM.APIKey = v.GetString("llm.api_key")
	cfg.LLM.Model = v.GetString("llm.model")
	cfg.LLM.BaseURL = v.GetString("llm.base_url")
	cfg.LLM.Temperature = v.GetFloat64("llm.temperature")
	cfg.LLM.MaxTokens = v.GetInt("llm.max_tokens")
	cfg.LLM.MaxRetries = v.GetInt("llm.max_retries")
	cfg.LLM.Simulation = v.GetBool("llm.simulation")
	cfg.Log.Level = strings.ToLower(v.GetString("log.level"))

	delay, err := time.ParseDuration(v.GetString("llm.retry_delay"))
	if err != nil {
		return nil, fmt.Errorf("invalid GATOR_LLM_RETRY_DELAY: %w", err)
	}
	cfg.LLM.RetryDelay = delay

	if cfg.HTTP.MaxInputLength <= 0 {
		return nil, fmt.Errorf("GATOR_HTTP_MAX_INPUT_LENGTH must be positive")
	}
	if cfg.Prompt.Style != "standard" && cfg.Prompt.Style != "natural" {
		return nil, fmt.Errorf("GATOR_PROMPT_STYLE must be standard or natural, got %q", cfg.Prompt.Style)
	}
	if cfg.LLM.MaxRetries < 1 {
		return nil, fmt.Errorf("GATOR_LLM_MAX_RETRIES must be at least 1")
	}
	if cfg.LLM.RetryDelay <= 0 {
		return nil, fmt.Errorf("GATOR_LLM_RETRY_DELAY must be positive")
	}
	switch cfg.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("GATOR_LOG_LEVEL must be one of debug, info, warn, error, got %q", cfg.Log.Level)
	}

	return cfg, nil
}
