package chunker

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunk(t *testing.T) {
	t.Run("Should produce ceil(len/size) passages", func(t *testing.T) {
		text := strings.Repeat("a", 450)
		passages, err := Chunk(text, 200)
		require.NoError(t, err)
		assert.Len(t, passages, 3)
		assert.Len(t, passages[0].Text, 200)
		assert.Len(t, passages[1].Text, 200)
		assert.Len(t, passages[2].Text, 50)
	})

	t.Run("Should reconstruct the input exactly", func(t *testing.T) {
		text := "Patient has fever. Patient denies cough. Blood pressure is normal."
		passages, err := Chunk(text, 7)
		require.NoError(t, err)
		var sb strings.Builder
		for _, p := range passages {
			sb.WriteString(p.Text)
		}
		assert.Equal(t, text, sb.String())
	})

	t.Run("Should number passages in offset order", func(t *testing.T) {
		passages, err := Chunk("abcdefghij", 3)
		require.NoError(t, err)
		for i, p := range passages {
			assert.Equal(t, i, p.ID)
		}
	})

	t.Run("Should count characters not bytes", func(t *testing.T) {
		passages, err := Chunk("fièvre légère", 4)
		require.NoError(t, err)
		assert.Len(t, passages, 4)
		assert.Equal(t, "fièv", passages[0].Text)
	})

	t.Run("Should return no passages for empty input", func(t *testing.T) {
		passages, err := Chunk("", 200)
		require.NoError(t, err)
		assert.Empty(t, passages)
	})

	t.Run("Should reject a non-positive size", func(t *testing.T) {
		_, err := Chunk("text", 0)
		assert.ErrorIs(t, err, ErrInvalidSize)
		_, err = Chunk("text", -1)
		assert.ErrorIs(t, err, ErrInvalidSize)
	})
}
