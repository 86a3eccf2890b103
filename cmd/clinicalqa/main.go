package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"clinicalqa/internal/config"
	"clinicalqa/internal/domain"
	"clinicalqa/internal/embedding/openai"
	"clinicalqa/internal/embedding/tfidf"
	"clinicalqa/internal/generation"
	"clinicalqa/internal/sentence"
	"clinicalqa/internal/sentiment"
	"clinicalqa/internal/service"
	"clinicalqa/internal/session"
	"clinicalqa/internal/summarizer"
	"clinicalqa/internal/translation"
	"clinicalqa/internal/tui"
)

func main() {
	_ = godotenv.Load()

	var cfgPath string
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional; uses ~/.config/clinicalqa/config.yaml if not provided)")
	flag.Parse()
	inputs := flag.Args()
	if len(inputs) == 0 {
		fmt.Println("Usage: clinicalqa [--config=config.yaml] data.txt [more.txt ...]")
		os.Exit(1)
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true, Prefix: "clinicalqa"})

	cfg, path, err := loadConfig(cfgPath)
	if err != nil {
		logger.Fatal("failed to load config", "err", err)
	}
	logger.Info("config loaded", "path", path)

	var raw strings.Builder
	for i, p := range inputs {
		data, err := os.ReadFile(p)
		if err != nil {
			logger.Fatal("failed to read document", "path", p, "err", err)
		}
		if i > 0 {
			raw.WriteString("\n")
		}
		raw.Write(data)
	}

	emb := buildEmbedder(cfg, logger)

	gen, err := generation.NewOpenAIGenerator(generation.Config{
		BaseURL:     cfg.Generation.BaseURL,
		APIKeyEnv:   cfg.Generation.APIKeyEnv,
		Model:       cfg.Generation.Model,
		Temperature: cfg.Generation.Temperature,
		MaxTokens:   cfg.Generation.MaxTokens,
		Timeout:     time.Duration(cfg.Generation.TimeoutSecs) * time.Second,
	})
	if err != nil {
		logger.Fatal("failed to create generator", "err", err)
	}

	tr, err := translation.NewOpenAITranslator(translation.OpenAIConfig{
		BaseURL:   cfg.Translation.BaseURL,
		APIKeyEnv: cfg.Translation.APIKeyEnv,
		Model:     cfg.Translation.Model,
		Timeout:   time.Duration(cfg.Translation.TimeoutSecs) * time.Second,
	})
	if err != nil {
		logger.Fatal("failed to create translator", "err", err)
	}

	splitter := sentence.NewSplitter()
	sess := session.New(cfg.Session.HistoryWindow)
	assistant := service.New(
		emb,
		gen,
		summarizer.NewEmbedRank(emb, splitter),
		translation.NewCache(tr, cfg.Translation.CacheCapacity),
		sentiment.NewAnalyzer(splitter),
		sess,
		logger,
		service.Options{
			ChunkSize:        cfg.Retrieval.ChunkSize,
			TopK:             *cfg.Retrieval.TopK,
			MinSimilarity:    *cfg.Retrieval.MinSimilarity,
			SummarySentences: cfg.Summary.Sentences,
			TargetLanguage:   cfg.Translation.TargetLanguage,
		},
	)

	n, err := assistant.LoadDocument(raw.String())
	if err != nil {
		logger.Fatal("failed to index document", "err", err)
	}

	banner := fmt.Sprintf("Indexed %d passages with %s embeddings. Session %s.", n, emb.Name(), sess.ID())
	if _, err := tea.NewProgram(tui.New(assistant, banner), tea.WithAltScreen()).Run(); err != nil {
		logger.Fatal("tui error", "err", err)
	}
}

func buildEmbedder(cfg *config.AppConfig, logger *log.Logger) domain.Embedder {
	switch cfg.Embedder.Type {
	case "tfidf", "":
		return tfidf.NewEmbedder()
	case "openai":
		oc := cfg.Embedder.OpenAI
		if oc == nil {
			logger.Fatal("embedder type openai requires an openai section in the config")
		}
		emb, err := openai.NewClient(openai.Config{
			BaseURL:   oc.BaseURL,
			APIKeyEnv: oc.APIKeyEnv,
			Model:     oc.Model,
			Timeout:   time.Duration(oc.TimeoutSecs) * time.Second,
		})
		if err != nil {
			logger.Fatal("failed to create embedder", "err", err)
		}
		return emb
	default:
		logger.Fatal("unknown embedder type", "type", cfg.Embedder.Type)
		return nil
	}
}

func loadConfig(path string) (*config.AppConfig, string, error) {
	if path != "" {
		cfg, err := config.Load(path)
		return cfg, path, err
	}
	return config.LoadDefault()
}
