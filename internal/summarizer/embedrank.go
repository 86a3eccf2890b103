package summarizer

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"

	"clinicalqa/internal/domain"
	"clinicalqa/internal/index"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// EmbedRank ranks the sentences of a document by cosine similarity to the
// embedding of the whole document and keeps the best ones in reading order.
// The document vector is computed lazily and cached per document identity,
// discarded when a different document comes in.
type EmbedRank struct {
	embedder domain.Embedder
	splitter domain.SentenceSplitter

	mu      sync.Mutex
	lastDoc string
	lastVec []float64
}

// NewEmbedRank creates an embedding-based extractive summarizer.
func NewEmbedRank(embedder domain.Embedder, splitter domain.SentenceSplitter) *EmbedRank {
	return &EmbedRank{embedder: embedder, splitter: splitter}
}

// Summarize selects the pickN sentences closest to the whole-document
// embedding and joins them with single spaces, in original document order.
// Summarization is best-effort: on any embedding failure the untouched input
// text is returned together with a non-nil error so callers can observe the
// degradation without losing output.
func (s *EmbedRank) Summarize(text string, pickN int) (string, error) {
	if pickN <= 0 {
		pickN = 5
	}
	normalized := strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))
	sentences := s.splitter.Split(normalized)
	if len(sentences) == 0 {
		return normalized, nil
	}
	if len(sentences) <= pickN {
		return strings.Join(sentences, " "), nil
	}

	docVec, err := s.docVector(normalized)
	if err != nil {
		return text, fmt.Errorf("embedding document: %w", err)
	}

	type scored struct {
		idx   int
		text  string
		score float64
	}
	ranked := make([]scored, len(sentences))
	for i, sent := range sentences {
		vec, err := s.embedder.Embed(sent)
		if err != nil {
			return text, fmt.Errorf("embedding sentence %d: %w", i, err)
		}
		ranked[i] = scored{idx: i, text: sent, score: index.Cosine(vec, docVec)}
	}
	// Stable sort keeps the lowest original index first among equal scores.
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })
	selected := ranked[:pickN]
	// Restore reading order.
	sort.Slice(selected, func(i, j int) bool { return selected[i].idx < selected[j].idx })

	parts := make([]string, len(selected))
	for i, sc := range selected {
		parts[i] = sc.text
	}
	return strings.Join(parts, " "), nil
}

// docVector returns the cached whole-document embedding, recomputing it only
// when the document changes.
func (s *EmbedRank) docVector(normalized string) ([]float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if normalized == s.lastDoc && s.lastVec != nil {
		return s.lastVec, nil
	}
	vec, err := s.embedder.Embed(normalized)
	if err != nil {
		return nil, err
	}
	s.lastDoc, s.lastVec = normalized, vec
	return vec, nil
}
