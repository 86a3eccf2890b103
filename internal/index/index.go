package index

import (
	"errors"
	"fmt"
	"math"

	"clinicalqa/internal/domain"
)

// Index holds the embedded passages of one document. It is immutable once
// built; loading a new document builds a replacement index, there is no
// partial update.
type Index struct {
	embedder  domain.Embedder
	passages  []domain.Passage
	dimension int
}

// Build embeds every passage with the injected embedder and returns the
// finished index. Any embedding failure aborts the build; callers decide how
// to degrade.
func Build(embedder domain.Embedder, passages []domain.Passage) (*Index, error) {
	if embedder == nil {
		return nil, errors.New("nil embedder")
	}
	idx := &Index{
		embedder: embedder,
		passages: make([]domain.Passage, len(passages)),
	}
	for i, p := range passages {
		vec, err := embedder.Embed(p.Text)
		if err != nil {
			return nil, fmt.Errorf("embedding passage %d: %w", p.ID, err)
		}
		if idx.dimension == 0 {
			idx.dimension = len(vec)
		} else if len(vec) != idx.dimension {
			return nil, fmt.Errorf("passage %d: vector dimension %d, want %d", p.ID, len(vec), idx.dimension)
		}
		p.Vector = vec
		idx.passages[i] = p
	}
	return idx, nil
}

// Len returns the number of indexed passages.
func (idx *Index) Len() int { return len(idx.passages) }

// Dimension returns the embedding dimension of the indexed vectors.
func (idx *Index) Dimension() int { return idx.dimension }

// QueryVector embeds a query with the same embedder the passages were
// embedded with.
func (idx *Index) QueryVector(text string) ([]float64, error) {
	return idx.embedder.Embed(text)
}

// Scores computes the cosine similarity between the query vector and every
// passage, in passage order. Brute force; the index is small enough that a
// full scan per query is fine.
func (idx *Index) Scores(queryVec []float64) []domain.ScoredPassage {
	scored := make([]domain.ScoredPassage, len(idx.passages))
	for i, p := range idx.passages {
		scored[i] = domain.ScoredPassage{Passage: p, Score: Cosine(queryVec, p.Vector)}
	}
	return scored
}

// Cosine returns the cosine similarity of two vectors: their dot product
// divided by the product of their magnitudes. A zero vector scores 0.
func Cosine(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, na, nb float64
	for i := 0; i < n; i++ {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
