package llm

import (
	"context"
	"fmt"
	"strings"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatRequest struct {
	Model     string        `json:"model"`
	Messages  []ChatMessage `json:"messages"`
	System    string        `json:"system,omitempty"`
	MaxTokens int           `json:"max_tokens,omitempty"`
}

// ChatResponse is one complete reply. Text is the concatenated textual
// content of the model's answer.
type ChatResponse struct {
	Text  string `json:"text"`
	Usage Usage  `json:"usage"`
}

type Usage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

type ModelInfo struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	MaxContextTokens int    `json:"max_context_tokens"`
}

// Provider is a chat-completion backend. Chat performs exactly one request
// and blocks until the full reply is available.
type Provider interface {
	Name() string

	Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error)

	Models() []ModelInfo
}

// Config selects and parameterizes a provider.
type Config struct {
	Provider string
	APIKey   string
	BaseURL  string
}

// New builds the provider named in cfg. "azure" is the OpenAI client pointed
// at an Azure deployment base URL.
func New(cfg Config) (Provider, error) {
	switch strings.ToLower(cfg.Provider) {
	case "openai", "azure", "":
		return NewOpenAIProvider(cfg.APIKey, cfg.BaseURL)
	case "anthropic":
		return NewAnthropicProvider(cfg.APIKey)
	default:
		return nil, fmt.Errorf("llm: unknown provider %q", cfg.Provider)
	}
}
