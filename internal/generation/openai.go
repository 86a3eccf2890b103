package generation

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	goopenai "github.com/sashabaranov/go-openai"

	"clinicalqa/internal/domain"
)

// OpenAIGenerator produces answers through the chat completions endpoint of
// an OpenAI-compatible API.
type OpenAIGenerator struct {
	client      *goopenai.Client
	model       string
	temperature float32
	maxTokens   int
}

// Config configures the answer-generation collaborator.
type Config struct {
	BaseURL     string
	APIKeyEnv   string
	Model       string
	Temperature float32
	MaxTokens   int
	Timeout     time.Duration
}

// NewOpenAIGenerator creates a generator using the provided configuration.
func NewOpenAIGenerator(cfg Config) (*OpenAIGenerator, error) {
	key := os.Getenv(cfg.APIKeyEnv)
	if key == "" {
		return nil, fmt.Errorf("missing API key in env %s", cfg.APIKeyEnv)
	}
	if cfg.Model == "" {
		cfg.Model = goopenai.GPT4oMini
	}
	t := cfg.Timeout
	if t == 0 {
		t = 60 * time.Second
	}
	clientCfg := goopenai.DefaultConfig(key)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	clientCfg.HTTPClient = &http.Client{Timeout: t}
	return &OpenAIGenerator{
		client:      goopenai.NewClientWithConfig(clientCfg),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
	}, nil
}

// Generate sends the message sequence as-is and returns the completion text.
func (g *OpenAIGenerator) Generate(messages []domain.Message) (string, error) {
	converted := make([]goopenai.ChatCompletionMessage, len(messages))
	for i, m := range messages {
		converted[i] = goopenai.ChatCompletionMessage{Role: string(m.Role), Content: m.Content}
	}
	resp, err := g.client.CreateChatCompletion(context.Background(), goopenai.ChatCompletionRequest{
		Model:       g.model,
		Messages:    converted,
		Temperature: g.temperature,
		MaxTokens:   g.maxTokens,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("empty generation response")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
