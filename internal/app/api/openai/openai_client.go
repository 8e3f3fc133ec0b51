package openai

import (
	"github.com/sashabaranov/go-openai"
)

// NewClient builds a go-openai client. baseURL may point at any
// OpenAI-compatible server; empty keeps the public API.
func NewClient(apiKey, baseURL string) *openai.Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return openai.NewClientWithConfig(cfg)
}
