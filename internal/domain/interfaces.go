package domain

// Embedder converts free text into a numeric vector representation.
// Implementations may require a preparation phase over the corpus.
type Embedder interface {
	Name() string
	Prepare(corpus []string) error
	Dimension() int
	Embed(text string) ([]float64, error)
}

// SentenceSplitter detects sentence boundaries in free text.
type SentenceSplitter interface {
	Split(text string) []string
}

// Translator renders text into the given target language.
type Translator interface {
	Translate(text, lang string) (string, error)
}

// Generator produces an answer from an ordered message sequence.
type Generator interface {
	Generate(messages []Message) (string, error)
}
