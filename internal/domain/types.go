package domain

// Passage is a fixed-length chunk of source text, the unit of retrieval.
// Passages are created once per chunking pass and owned by the index built
// over them.
type Passage struct {
	ID     int
	Text   string
	Vector []float64
}

// ScoredPassage pairs a passage with its cosine similarity to a query.
// Scores live in [-1, 1] and are produced fresh on every retrieval call.
type ScoredPassage struct {
	Passage Passage
	Score   float64
}

// Role identifies the author of a message or conversation turn.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one entry of the ordered sequence sent to the answer generator.
type Message struct {
	Role    Role
	Content string
}

// Turn is one recorded conversation turn. Ordering implies time; turns are
// append-only and never rewritten.
type Turn struct {
	Role    Role
	Content string
}

// SentimentBreakdown tallies per-sentence sentiment over a text.
type SentimentBreakdown struct {
	Positive int
	Negative int
	Neutral  int
	Label    string
}
