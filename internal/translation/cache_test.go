package translation

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingTranslator records every collaborator call.
type countingTranslator struct {
	calls int
	fail  bool
}

func (c *countingTranslator) Translate(text, lang string) (string, error) {
	c.calls++
	if c.fail {
		return "", errors.New("network error")
	}
	return fmt.Sprintf("[%s] %s", lang, text), nil
}

func TestCacheTranslate(t *testing.T) {
	t.Run("Should call the collaborator once per distinct key", func(t *testing.T) {
		fake := &countingTranslator{}
		c := NewCache(fake, 0)

		first, err := c.Translate("fever", "es")
		require.NoError(t, err)
		second, err := c.Translate("fever", "es")
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.Equal(t, 1, fake.calls)
	})

	t.Run("Should treat language codes as part of the key", func(t *testing.T) {
		fake := &countingTranslator{}
		c := NewCache(fake, 0)

		es, err := c.Translate("fever", "es")
		require.NoError(t, err)
		fr, err := c.Translate("fever", "fr")
		require.NoError(t, err)

		assert.NotEqual(t, es, fr)
		assert.Equal(t, 2, fake.calls)
	})

	t.Run("Should treat differently-whitespaced texts as distinct keys", func(t *testing.T) {
		fake := &countingTranslator{}
		c := NewCache(fake, 0)

		_, err := c.Translate("fever", "es")
		require.NoError(t, err)
		_, err = c.Translate(" fever", "es")
		require.NoError(t, err)

		assert.Equal(t, 2, fake.calls)
	})

	t.Run("Should return the original text on failure without caching it", func(t *testing.T) {
		fake := &countingTranslator{fail: true}
		c := NewCache(fake, 0)

		got, err := c.Translate("fever", "es")
		require.Error(t, err)
		assert.Equal(t, "fever", got)
		assert.Equal(t, 0, c.Len())

		// The next attempt retries the collaborator.
		fake.fail = false
		got, err = c.Translate("fever", "es")
		require.NoError(t, err)
		assert.Equal(t, "[es] fever", got)
		assert.Equal(t, 2, fake.calls)
	})

	t.Run("Should evict the oldest entry when a capacity is set", func(t *testing.T) {
		fake := &countingTranslator{}
		c := NewCache(fake, 2)

		_, _ = c.Translate("one", "es")
		_, _ = c.Translate("two", "es")
		_, _ = c.Translate("three", "es")
		assert.Equal(t, 2, c.Len())

		// "one" was evicted, so it costs another collaborator call.
		_, _ = c.Translate("one", "es")
		assert.Equal(t, 4, fake.calls)
	})
}

func TestSupported(t *testing.T) {
	t.Run("Should recognize configured language codes", func(t *testing.T) {
		assert.True(t, Supported("es"))
		assert.True(t, Supported("en"))
		assert.False(t, Supported("xx"))
	})
}
