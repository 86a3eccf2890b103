package translation

import (
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"clinicalqa/internal/domain"
)

type key struct {
	text string
	lang string
}

// Cache memoizes translations keyed by the exact (text, language) pair.
// Keys are deliberately not normalized: two differently-whitespaced inputs
// are distinct entries. With capacity 0 the cache grows for the lifetime of
// the session; a positive capacity switches to LRU eviction.
type Cache struct {
	mu         sync.Mutex
	translator domain.Translator
	entries    map[key]string
	bounded    *lru.Cache[key, string]
}

// NewCache wraps the translator collaborator with memoization.
func NewCache(translator domain.Translator, capacity int) *Cache {
	c := &Cache{translator: translator}
	if capacity > 0 {
		c.bounded, _ = lru.New[key, string](capacity)
	} else {
		c.entries = make(map[key]string)
	}
	return c
}

// Translate returns the cached translation for (text, lang) or calls the
// collaborator on a miss. Translation is best-effort: on failure the original
// text is returned together with the error, and nothing is cached, so the
// next call retries the collaborator.
func (c *Cache) Translate(text, lang string) (string, error) {
	k := key{text: text, lang: lang}
	if v, ok := c.get(k); ok {
		return v, nil
	}
	out, err := c.translator.Translate(text, lang)
	if err != nil {
		return text, fmt.Errorf("translating to %s: %w", lang, err)
	}
	c.put(k, out)
	return out, nil
}

// Len reports the number of cached entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.bounded != nil {
		return c.bounded.Len()
	}
	return len(c.entries)
}

func (c *Cache) get(k key) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.bounded != nil {
		return c.bounded.Get(k)
	}
	v, ok := c.entries[k]
	return v, ok
}

func (c *Cache) put(k key, v string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.bounded != nil {
		c.bounded.Add(k, v)
		return
	}
	c.entries[k] = v
}
