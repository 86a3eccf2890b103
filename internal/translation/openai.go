package translation

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	goopenai "github.com/sashabaranov/go-openai"
)

// OpenAITranslator renders text into a target language through a chat
// completion against an OpenAI-compatible API.
type OpenAITranslator struct {
	client *goopenai.Client
	model  string
}

// OpenAIConfig configures the translation collaborator.
type OpenAIConfig struct {
	BaseURL   string
	APIKeyEnv string
	Model     string
	Timeout   time.Duration
}

// NewOpenAITranslator creates a translator using the provided configuration.
func NewOpenAITranslator(cfg OpenAIConfig) (*OpenAITranslator, error) {
	key := os.Getenv(cfg.APIKeyEnv)
	if key == "" {
		return nil, fmt.Errorf("missing API key in env %s", cfg.APIKeyEnv)
	}
	if cfg.Model == "" {
		cfg.Model = goopenai.GPT4oMini
	}
	t := cfg.Timeout
	if t == 0 {
		t = 30 * time.Second
	}
	clientCfg := goopenai.DefaultConfig(key)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	clientCfg.HTTPClient = &http.Client{Timeout: t}
	return &OpenAITranslator{client: goopenai.NewClientWithConfig(clientCfg), model: cfg.Model}, nil
}

// Translate renders text into the language identified by lang.
func (t *OpenAITranslator) Translate(text, lang string) (string, error) {
	name, ok := SupportedLanguages[lang]
	if !ok {
		return "", fmt.Errorf("unsupported target language %q", lang)
	}
	resp, err := t.client.CreateChatCompletion(context.Background(), goopenai.ChatCompletionRequest{
		Model: t.model,
		Messages: []goopenai.ChatCompletionMessage{
			{
				Role:    goopenai.ChatMessageRoleSystem,
				Content: "You translate medical text. Reply with the translation only, no commentary.",
			},
			{
				Role:    goopenai.ChatMessageRoleUser,
				Content: fmt.Sprintf("Translate into %s:\n\n%s", name, text),
			},
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("empty translation response")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
