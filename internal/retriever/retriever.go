package retriever

import (
	"sort"
	"strings"

	"clinicalqa/internal/domain"
	"clinicalqa/internal/index"
)

// Retrieve scores every passage in the index against the query vector, keeps
// only those strictly above minSimilarity, sorts them by similarity
// descending with ties broken by original passage order, and truncates to
// topK. Passages scoring exactly minSimilarity are excluded; the boundary is
// open. An empty result means no grounding is available, not an error.
func Retrieve(queryVec []float64, idx *index.Index, topK int, minSimilarity float64) []domain.ScoredPassage {
	if idx == nil || topK <= 0 {
		return nil
	}
	scored := idx.Scores(queryVec)
	kept := make([]domain.ScoredPassage, 0, len(scored))
	for _, sp := range scored {
		if sp.Score > minSimilarity {
			kept = append(kept, sp)
		}
	}
	// Stable sort keeps passage order among equal scores.
	sort.SliceStable(kept, func(i, j int) bool { return kept[i].Score > kept[j].Score })
	if len(kept) > topK {
		kept = kept[:topK]
	}
	return kept
}

// Context joins the retrieved passage texts with single spaces, in rank
// order, into the grounding context handed to the generator.
func Context(passages []domain.ScoredPassage) string {
	if len(passages) == 0 {
		return ""
	}
	parts := make([]string, len(passages))
	for i, sp := range passages {
		parts[i] = sp.Passage.Text
	}
	return strings.Join(parts, " ")
}
