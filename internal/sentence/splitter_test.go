package sentence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplit(t *testing.T) {
	s := NewSplitter()

	t.Run("Should split on terminal punctuation", func(t *testing.T) {
		got := s.Split("Patient has fever. Patient denies cough! Blood pressure is normal?")
		assert.Equal(t, []string{
			"Patient has fever.",
			"Patient denies cough!",
			"Blood pressure is normal?",
		}, got)
	})

	t.Run("Should keep a trailing fragment without punctuation", func(t *testing.T) {
		got := s.Split("First sentence. trailing fragment")
		assert.Equal(t, []string{"First sentence.", "trailing fragment"}, got)
	})

	t.Run("Should return nothing for whitespace-only input", func(t *testing.T) {
		assert.Empty(t, s.Split(""))
		assert.Empty(t, s.Split("   \n\t "))
	})

	t.Run("Should treat unpunctuated text as one sentence", func(t *testing.T) {
		got := s.Split("no punctuation here")
		assert.Equal(t, []string{"no punctuation here"}, got)
	})
}
