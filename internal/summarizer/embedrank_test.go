package summarizer

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clinicalqa/internal/sentence"
)

// fixedEmbedder returns a unit vector per exact text so that the similarity
// of a sentence against the document vector (1, 0) is a chosen value.
type fixedEmbedder struct {
	scores map[string]float64
	err    error
	calls  int
}

func (f *fixedEmbedder) Name() string { return "fixed" }

func (f *fixedEmbedder) Prepare(_ []string) error { return nil }

func (f *fixedEmbedder) Dimension() int { return 2 }

func (f *fixedEmbedder) Embed(text string) ([]float64, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if s, ok := f.scores[text]; ok {
		return []float64{s, math.Sqrt(1 - s*s)}, nil
	}
	// The whole document embeds to the reference direction.
	return []float64{1, 0}, nil
}

const clinicalNote = "Patient has fever. Patient denies cough. Blood pressure is normal. No other symptoms reported. Follow-up in two weeks."

func TestSummarize(t *testing.T) {
	splitter := sentence.NewSplitter()

	t.Run("Should emit selected sentences in document order", func(t *testing.T) {
		emb := &fixedEmbedder{scores: map[string]float64{
			"Patient has fever.":          0.9,
			"Patient denies cough.":       0.2,
			"Blood pressure is normal.":   0.3,
			"No other symptoms reported.": 0.1,
			"Follow-up in two weeks.":     0.95,
		}}
		s := NewEmbedRank(emb, splitter)

		got, err := s.Summarize(clinicalNote, 2)
		require.NoError(t, err)
		assert.Equal(t, "Patient has fever. Follow-up in two weeks.", got)
	})

	t.Run("Should prefer the earliest sentence on score ties", func(t *testing.T) {
		emb := &fixedEmbedder{scores: map[string]float64{
			"Patient has fever.":          0.5,
			"Patient denies cough.":       0.5,
			"Blood pressure is normal.":   0.5,
			"No other symptoms reported.": 0.25,
			"Follow-up in two weeks.":     0.25,
		}}
		s := NewEmbedRank(emb, splitter)

		got, err := s.Summarize(clinicalNote, 2)
		require.NoError(t, err)
		assert.Equal(t, "Patient has fever. Patient denies cough.", got)
	})

	t.Run("Should return the whole document when it has few sentences", func(t *testing.T) {
		s := NewEmbedRank(&fixedEmbedder{}, splitter)
		got, err := s.Summarize("Patient has fever.  Patient denies cough.", 5)
		require.NoError(t, err)
		assert.Equal(t, "Patient has fever. Patient denies cough.", got)
	})

	t.Run("Should normalize whitespace", func(t *testing.T) {
		s := NewEmbedRank(&fixedEmbedder{}, splitter)
		got, err := s.Summarize("  Patient \t has\n\nfever.  ", 3)
		require.NoError(t, err)
		assert.Equal(t, "Patient has fever.", got)
	})

	t.Run("Should pass empty input through unchanged", func(t *testing.T) {
		s := NewEmbedRank(&fixedEmbedder{}, splitter)
		got, err := s.Summarize("   ", 3)
		require.NoError(t, err)
		assert.Equal(t, "", got)
	})

	t.Run("Should cache the document vector per document", func(t *testing.T) {
		emb := &fixedEmbedder{scores: map[string]float64{
			"Patient has fever.":          0.9,
			"Patient denies cough.":       0.2,
			"Blood pressure is normal.":   0.3,
			"No other symptoms reported.": 0.1,
			"Follow-up in two weeks.":     0.95,
		}}
		s := NewEmbedRank(emb, splitter)

		_, err := s.Summarize(clinicalNote, 2)
		require.NoError(t, err)
		first := emb.calls
		_, err = s.Summarize(clinicalNote, 2)
		require.NoError(t, err)

		// The second pass re-embeds the sentences but not the document.
		assert.Equal(t, first+5, emb.calls)
	})

	t.Run("Should degrade to the untouched input when embedding fails", func(t *testing.T) {
		s := NewEmbedRank(&fixedEmbedder{err: errors.New("model offline")}, splitter)
		got, err := s.Summarize(clinicalNote, 2)
		require.Error(t, err)
		assert.Equal(t, clinicalNote, got)
	})
}
