package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"clinicalqa/internal/translation"
)

// OpenAIEmbedderConfig holds configuration for the OpenAI-compatible embedder.
type OpenAIEmbedderConfig struct {
	BaseURL     string `yaml:"base_url"`
	APIKeyEnv   string `yaml:"api_key_env"`
	Model       string `yaml:"model"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// EmbedderConfig selects and configures the text embedder implementation.
type EmbedderConfig struct {
	Type   string                `yaml:"type"`
	OpenAI *OpenAIEmbedderConfig `yaml:"openai,omitempty"`
}

// RetrievalConfig configures passage chunking and similarity retrieval.
// TopK and MinSimilarity are pointers so an explicit zero in the file is
// distinguishable from an omitted key.
type RetrievalConfig struct {
	ChunkSize     int      `yaml:"chunk_size"`
	TopK          *int     `yaml:"top_k"`
	MinSimilarity *float64 `yaml:"min_similarity"`
}

// SummaryConfig configures extractive summarization.
type SummaryConfig struct {
	Sentences int `yaml:"sentences"`
}

// SessionConfig configures the conversational context window.
type SessionConfig struct {
	HistoryWindow int `yaml:"history_window"`
}

// TranslationConfig configures the translation target and cache.
type TranslationConfig struct {
	TargetLanguage string `yaml:"target_language"`
	CacheCapacity  int    `yaml:"cache_capacity"`
	BaseURL        string `yaml:"base_url"`
	APIKeyEnv      string `yaml:"api_key_env"`
	Model          string `yaml:"model"`
	TimeoutSecs    int    `yaml:"timeout_secs"`
}

// GenerationConfig configures the answer-generation collaborator.
type GenerationConfig struct {
	BaseURL     string  `yaml:"base_url"`
	APIKeyEnv   string  `yaml:"api_key_env"`
	Model       string  `yaml:"model"`
	Temperature float32 `yaml:"temperature"`
	MaxTokens   int     `yaml:"max_tokens"`
	TimeoutSecs int     `yaml:"timeout_secs"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Embedder    EmbedderConfig    `yaml:"embedder"`
	Retrieval   RetrievalConfig   `yaml:"retrieval"`
	Summary     SummaryConfig     `yaml:"summary"`
	Session     SessionConfig     `yaml:"session"`
	Translation TranslationConfig `yaml:"translation"`
	Generation  GenerationConfig  `yaml:"generation"`
}

// Load reads a config from a specified path. If the file does not exist,
// returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaultConfig(), nil
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadDefault tries ./config.yaml first, then ~/.config/clinicalqa/config.yaml.
// If neither exists, it writes defaults to the user path and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "config.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := defaultConfig()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	return cfg, userPath, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate rejects configuration the pipeline cannot run with.
func (cfg *AppConfig) Validate() error {
	if cfg.Retrieval.ChunkSize <= 0 {
		return fmt.Errorf("chunk_size must be positive, got %d", cfg.Retrieval.ChunkSize)
	}
	if *cfg.Retrieval.TopK < 0 {
		return fmt.Errorf("top_k must not be negative, got %d", *cfg.Retrieval.TopK)
	}
	if *cfg.Retrieval.MinSimilarity < -1 || *cfg.Retrieval.MinSimilarity > 1 {
		return fmt.Errorf("min_similarity must be in [-1, 1], got %g", *cfg.Retrieval.MinSimilarity)
	}
	if !translation.Supported(cfg.Translation.TargetLanguage) {
		return fmt.Errorf("unsupported target_language %q", cfg.Translation.TargetLanguage)
	}
	return nil
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "clinicalqa", "config.yaml"), nil
}

func defaultConfig() *AppConfig {
	return &AppConfig{
		Embedder:  EmbedderConfig{Type: "tfidf"},
		Retrieval: RetrievalConfig{ChunkSize: 200, TopK: intPtr(3), MinSimilarity: floatPtr(0.7)},
		Summary:   SummaryConfig{Sentences: 5},
		Session:   SessionConfig{HistoryWindow: 3},
		Translation: TranslationConfig{
			TargetLanguage: "es",
			APIKeyEnv:      "OPENAI_API_KEY",
			TimeoutSecs:    30,
		},
		Generation: GenerationConfig{
			APIKeyEnv:   "OPENAI_API_KEY",
			Temperature: 0.7,
			MaxTokens:   512,
			TimeoutSecs: 60,
		},
	}
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Retrieval.ChunkSize == 0 {
		cfg.Retrieval.ChunkSize = 200
	}
	if cfg.Retrieval.TopK == nil {
		cfg.Retrieval.TopK = intPtr(3)
	}
	if cfg.Retrieval.MinSimilarity == nil {
		cfg.Retrieval.MinSimilarity = floatPtr(0.7)
	}
	if cfg.Summary.Sentences == 0 {
		cfg.Summary.Sentences = 5
	}
	if cfg.Session.HistoryWindow == 0 {
		cfg.Session.HistoryWindow = 3
	}
	if cfg.Translation.TargetLanguage == "" {
		cfg.Translation.TargetLanguage = "es"
	}
	if cfg.Translation.APIKeyEnv == "" {
		cfg.Translation.APIKeyEnv = "OPENAI_API_KEY"
	}
	if cfg.Translation.TimeoutSecs == 0 {
		cfg.Translation.TimeoutSecs = 30
	}
	if cfg.Generation.APIKeyEnv == "" {
		cfg.Generation.APIKeyEnv = "OPENAI_API_KEY"
	}
	if cfg.Generation.MaxTokens == 0 {
		cfg.Generation.MaxTokens = 512
	}
	if cfg.Generation.TimeoutSecs == 0 {
		cfg.Generation.TimeoutSecs = 60
	}
	if cfg.Embedder.Type == "openai" && cfg.Embedder.OpenAI != nil {
		if cfg.Embedder.OpenAI.APIKeyEnv == "" {
			cfg.Embedder.OpenAI.APIKeyEnv = "OPENAI_API_KEY"
		}
		if cfg.Embedder.OpenAI.TimeoutSecs == 0 {
			cfg.Embedder.OpenAI.TimeoutSecs = 30
		}
	}
}

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }
