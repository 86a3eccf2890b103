package sentence

import (
	"regexp"
	"strings"
)

// Splitter detects sentence boundaries on terminal punctuation. A trailing
// fragment without terminal punctuation is kept as a final sentence so that
// splitting never loses text.
type Splitter struct {
	re *regexp.Regexp
}

// NewSplitter creates a punctuation-based sentence splitter.
func NewSplitter() *Splitter {
	return &Splitter{re: regexp.MustCompile(`(?m)(?U)([^.!?]+[.!?])`)}
}

// Split returns the sentences of text in document order, each trimmed of
// surrounding whitespace. Empty or whitespace-only input yields no sentences.
func (s *Splitter) Split(text string) []string {
	locs := s.re.FindAllStringIndex(text, -1)
	sentences := make([]string, 0, len(locs)+1)
	last := 0
	for _, loc := range locs {
		if sent := strings.TrimSpace(text[loc[0]:loc[1]]); sent != "" {
			sentences = append(sentences, sent)
		}
		last = loc[1]
	}
	if rest := strings.TrimSpace(text[last:]); rest != "" {
		sentences = append(sentences, rest)
	}
	return sentences
}
