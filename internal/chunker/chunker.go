package chunker

import (
	"errors"

	"clinicalqa/internal/domain"
)

// ErrInvalidSize is returned when the requested passage size is not positive.
var ErrInvalidSize = errors.New("chunk size must be positive")

// Chunk splits text into consecutive, non-overlapping windows of exactly size
// characters; the final window may be shorter. No normalization is applied,
// so concatenating the passage texts reconstructs the input exactly. Passage
// IDs follow chunk offset order.
func Chunk(text string, size int) ([]domain.Passage, error) {
	if size <= 0 {
		return nil, ErrInvalidSize
	}
	runes := []rune(text)
	passages := make([]domain.Passage, 0, (len(runes)+size-1)/size)
	for start := 0; start < len(runes); start += size {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		}
		passages = append(passages, domain.Passage{
			ID:   len(passages),
			Text: string(runes[start:end]),
		})
	}
	return passages, nil
}
