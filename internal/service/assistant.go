package service

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/log"

	"clinicalqa/internal/chunker"
	"clinicalqa/internal/domain"
	"clinicalqa/internal/index"
	"clinicalqa/internal/retriever"
	"clinicalqa/internal/sentiment"
	"clinicalqa/internal/session"
	"clinicalqa/internal/summarizer"
	"clinicalqa/internal/translation"
)

// Options carries the pipeline settings the assistant runs with.
type Options struct {
	ChunkSize        int
	TopK             int
	MinSimilarity    float64
	SummarySentences int
	TargetLanguage   string
}

// Assistant orchestrates the clinical QA pipeline for one user session:
// document indexing, grounded question answering, extractive summaries,
// cached translation, and sentiment breakdowns. One assistant serves one
// conversation at a time.
type Assistant struct {
	embedder   domain.Embedder
	generator  domain.Generator
	summarizer *summarizer.EmbedRank
	cache      *translation.Cache
	analyzer   *sentiment.Analyzer
	session    *session.Session
	logger     *log.Logger
	opts       Options

	idx     *index.Index
	docText string
}

// New assembles an assistant from its collaborators.
func New(
	embedder domain.Embedder,
	generator domain.Generator,
	summ *summarizer.EmbedRank,
	cache *translation.Cache,
	analyzer *sentiment.Analyzer,
	sess *session.Session,
	logger *log.Logger,
	opts Options,
) *Assistant {
	return &Assistant{
		embedder:   embedder,
		generator:  generator,
		summarizer: summ,
		cache:      cache,
		analyzer:   analyzer,
		session:    sess,
		logger:     logger,
		opts:       opts,
	}
}

// LoadDocument chunks the text, prepares the embedder over the passage
// corpus, and builds a fresh index, atomically replacing any previous
// document. Returns the passage count. Embedding failures degrade to an
// unindexed document so questions are still answered, just without
// grounding; only an invalid chunk size is an error.
func (a *Assistant) LoadDocument(text string) (int, error) {
	passages, err := chunker.Chunk(text, a.opts.ChunkSize)
	if err != nil {
		return 0, err
	}
	if len(passages) == 0 || strings.TrimSpace(text) == "" {
		a.idx = nil
		a.docText = ""
		return 0, nil
	}
	corpus := make([]string, len(passages))
	for i, p := range passages {
		corpus[i] = p.Text
	}
	if err := a.embedder.Prepare(corpus); err != nil {
		a.idx = nil
		a.docText = text
		a.logger.Warn("embedder preparation failed, answering without grounding", "err", err)
		return 0, nil
	}
	idx, err := index.Build(a.embedder, passages)
	if err != nil {
		a.idx = nil
		a.docText = text
		a.logger.Warn("document indexing failed, answering without grounding", "err", err)
		return 0, nil
	}
	a.idx = idx
	a.docText = text
	a.logger.Info("document indexed", "passages", idx.Len(), "dimension", idx.Dimension())
	return idx.Len(), nil
}

// Ask retrieves grounding context for the question and generates an answer
// within the session's conversation window. Embedding failures degrade to an
// empty context; generation failures are surfaced and leave the history
// unchanged.
func (a *Assistant) Ask(question string) (string, error) {
	return a.session.Ask(question, a.retrieveContext(question), a.generator)
}

// retrieveContext embeds the preprocessed question and gathers the
// similarity-gated passages. An empty result means no grounding is
// available, not an error.
func (a *Assistant) retrieveContext(question string) string {
	if a.idx == nil {
		return ""
	}
	vec, err := a.idx.QueryVector(preprocessQuery(question))
	if err != nil {
		a.logger.Warn("query embedding failed, answering without grounding", "err", err)
		return ""
	}
	hits := retriever.Retrieve(vec, a.idx, a.opts.TopK, a.opts.MinSimilarity)
	return retriever.Context(hits)
}

// Summarize produces an extractive summary of the loaded document. Best
// effort: a degraded summary still carries usable text alongside the error.
func (a *Assistant) Summarize() (string, error) {
	if a.docText == "" {
		return "", nil
	}
	out, err := a.summarizer.Summarize(a.docText, a.opts.SummarySentences)
	if err != nil {
		a.logger.Warn("summarization degraded", "err", err)
	}
	return out, err
}

// Translate renders text into the configured target language through the
// memoizing cache. On failure the original text comes back with the error.
func (a *Assistant) Translate(text string) (string, error) {
	out, err := a.cache.Translate(text, a.opts.TargetLanguage)
	if err != nil {
		a.logger.Warn("translation degraded, returning original text", "err", err)
	}
	return out, err
}

// Sentiment tallies per-sentence sentiment over the text.
func (a *Assistant) Sentiment(text string) domain.SentimentBreakdown {
	return a.analyzer.Analyze(text)
}

// History returns the full conversation log.
func (a *Assistant) History() []domain.Turn {
	return a.session.History()
}

// Reset clears the conversation history. The document index is kept.
func (a *Assistant) Reset() {
	a.session.Clear()
}

var (
	digitsRe     = regexp.MustCompile(`\p{N}+`)
	nonWordRe    = regexp.MustCompile(`[^\p{L}\p{N}\s]`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// preprocessQuery lowercases the question and strips digits and punctuation
// before embedding, keeping letters of any script. Stored passages are never
// normalized, only queries.
func preprocessQuery(question string) string {
	q := digitsRe.ReplaceAllString(question, "")
	q = nonWordRe.ReplaceAllString(q, "")
	q = whitespaceRe.ReplaceAllString(q, " ")
	return strings.ToLower(strings.TrimSpace(q))
}
