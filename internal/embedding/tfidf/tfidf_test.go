package tfidf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbedder(t *testing.T) {
	t.Run("Should require a prepare pass", func(t *testing.T) {
		e := NewEmbedder()
		_, err := e.Embed("fever")
		assert.Error(t, err)
	})

	t.Run("Should reject an empty corpus", func(t *testing.T) {
		assert.Error(t, NewEmbedder().Prepare(nil))
	})

	t.Run("Should produce L2-normalized vectors of fixed dimension", func(t *testing.T) {
		e := NewEmbedder()
		require.NoError(t, e.Prepare([]string{"patient fever cough", "blood pressure normal"}))

		vec, err := e.Embed("patient fever")
		require.NoError(t, err)
		assert.Len(t, vec, e.Dimension())

		var norm float64
		for _, v := range vec {
			norm += v * v
		}
		assert.InDelta(t, 1.0, norm, 1e-9)
	})

	t.Run("Should embed out-of-vocabulary text to the zero vector", func(t *testing.T) {
		e := NewEmbedder()
		require.NoError(t, e.Prepare([]string{"patient fever"}))

		vec, err := e.Embed("xyzzy")
		require.NoError(t, err)
		for _, v := range vec {
			assert.Zero(t, v)
		}
	})

	t.Run("Should be deterministic", func(t *testing.T) {
		e := NewEmbedder()
		require.NoError(t, e.Prepare([]string{"patient fever cough", "blood pressure normal"}))
		a, err := e.Embed("patient blood pressure")
		require.NoError(t, err)
		b, err := e.Embed("patient blood pressure")
		require.NoError(t, err)
		assert.Equal(t, a, b)
	})
}
