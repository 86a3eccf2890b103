package sentiment

import (
	"regexp"
	"strings"

	"clinicalqa/internal/domain"
)

// Analyzer assigns a coarse positive/negative/neutral label to each sentence
// using a small clinical-leaning lexicon and reports the tallies. Negation
// handling and model-grade accuracy are out of scope; this mirrors the
// breakdown the UI shows next to an answer.
type Analyzer struct {
	splitter     domain.SentenceSplitter
	tokenPattern *regexp.Regexp
	positive     map[string]struct{}
	negative     map[string]struct{}
}

// NewAnalyzer creates a lexicon-based sentiment analyzer.
func NewAnalyzer(splitter domain.SentenceSplitter) *Analyzer {
	return &Analyzer{
		splitter:     splitter,
		tokenPattern: regexp.MustCompile(`\p{L}+(?:['’]\p{L}+)*`),
		positive:     wordSet(positiveWords),
		negative:     wordSet(negativeWords),
	}
}

// Analyze tallies sentence-level sentiment over the text. A sentence counts
// as positive or negative when one polarity's tokens outnumber the other's,
// neutral otherwise. The overall label follows the majority polarity, with
// "mixed" for an exact positive/negative tie when both are present.
func (a *Analyzer) Analyze(text string) domain.SentimentBreakdown {
	var b domain.SentimentBreakdown
	for _, sent := range a.splitter.Split(text) {
		pos, neg := 0, 0
		for _, tok := range a.tokenPattern.FindAllString(strings.ToLower(sent), -1) {
			if _, ok := a.positive[tok]; ok {
				pos++
			}
			if _, ok := a.negative[tok]; ok {
				neg++
			}
		}
		switch {
		case pos > neg:
			b.Positive++
		case neg > pos:
			b.Negative++
		default:
			b.Neutral++
		}
	}
	switch {
	case b.Positive > b.Negative:
		b.Label = "positive"
	case b.Negative > b.Positive:
		b.Label = "negative"
	case b.Positive > 0:
		b.Label = "mixed"
	default:
		b.Label = "neutral"
	}
	return b
}

var positiveWords = []string{
	"normal", "stable", "improved", "improving", "recovered", "recovery",
	"healthy", "well", "good", "better", "clear", "resolved",
	"unremarkable", "denies", "tolerated", "afebrile",
}

var negativeWords = []string{
	"fever", "pain", "severe", "acute", "worse", "worsening", "abnormal",
	"elevated", "infection", "chronic", "distress", "critical", "cough",
	"nausea", "fatigue", "bleeding", "swelling", "deteriorating",
}

func wordSet(words []string) map[string]struct{} {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}
