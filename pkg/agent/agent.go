package agent

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/localguide-ai/localguide/pkg/llm"
	"github.com/localguide-ai/localguide/pkg/telemetry"
)

const defaultSystemPrompt = `You are an expert local guide. Provide detailed information about attractions in the specified city.`

const defaultMaxOutputTokens = 4096

// Result is one complete answer from the agent.
type Result struct {
	Text  string
	Usage llm.Usage
}

// Runtime runs prompts against a chat provider. It holds no mutable state, so
// concurrent Run calls are independent; each call makes exactly one provider
// request with no retries.
type Runtime struct {
	provider        llm.Provider
	model           string
	systemPrompt    string
	maxOutputTokens int
}

type RuntimeConfig struct {
	Provider        llm.Provider
	Model           string
	SystemPrompt    string
	MaxOutputTokens int
}

func NewRuntime(cfg RuntimeConfig) *Runtime {
	if cfg.SystemPrompt == "" {
		cfg.SystemPrompt = defaultSystemPrompt
	}
	if cfg.MaxOutputTokens <= 0 {
		cfg.MaxOutputTokens = defaultMaxOutputTokens
	}
	return &Runtime{
		provider:        cfg.Provider,
		model:           cfg.Model,
		systemPrompt:    cfg.SystemPrompt,
		maxOutputTokens: cfg.MaxOutputTokens,
	}
}

// Run sends one prompt and returns the full textual reply.
func (r *Runtime) Run(ctx context.Context, prompt string) (*Result, error) {
	logger := telemetry.FromContext(ctx)

	start := time.Now()
	telemetry.Metrics.LLMRequestsTotal.WithLabelValues(r.provider.Name(), r.model).Inc()

	resp, err := r.provider.Chat(ctx, llm.ChatRequest{
		Model:     r.model,
		System:    r.systemPrompt,
		Messages:  []llm.ChatMessage{{Role: llm.RoleUser, Content: prompt}},
		MaxTokens: r.maxOutputTokens,
	})
	telemetry.Metrics.LLMLatency.WithLabelValues(r.provider.Name(), r.model).Observe(time.Since(start).Seconds())
	if err != nil {
		telemetry.Metrics.ErrorsTotal.WithLabelValues("agent").Inc()
		return nil, fmt.Errorf("agent run: %w", err)
	}

	telemetry.Metrics.TokensUsed.WithLabelValues("input", r.model).Add(float64(resp.Usage.InputTokens))
	telemetry.Metrics.TokensUsed.WithLabelValues("output", r.model).Add(float64(resp.Usage.OutputTokens))

	logger.Debug("agent run finished",
		slog.String("provider", r.provider.Name()),
		slog.Int("input_tokens", resp.Usage.InputTokens),
		slog.Int("output_tokens", resp.Usage.OutputTokens),
	)

	return &Result{Text: resp.Text, Usage: resp.Usage}, nil
}
