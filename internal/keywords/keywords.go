package keywords

import (
	"regexp"
	"sort"
	"strings"
)

// Extractor picks the most frequent non-stopword terms of a text,
// used to tag ingested knowledge entries with a keyword list.
type Extractor struct {
	tokenPattern *regexp.Regexp
	stopwords    map[string]struct{}
}

// NewExtractor creates a frequency-based keyword extractor.
func NewExtractor() *Extractor {
	return &Extractor{
		tokenPattern: regexp.MustCompile(`\b\w+\b`),
		stopwords:    defaultStopwords(),
	}
}

// Top returns up to max keywords ordered by descending frequency.
// Equal frequencies are ordered alphabetically so the output is
// deterministic.
func (e *Extractor) Top(text string, max int) []string {
	if max <= 0 {
		max = 5
	}
	freq := map[string]int{}
	for _, tok := range e.tokenPattern.FindAllString(strings.ToLower(text), -1) {
		if _, ok := e.stopwords[tok]; ok {
			continue
		}
		freq[tok]++
	}
	if len(freq) == 0 {
		return nil
	}
	terms := make([]string, 0, len(freq))
	for term := range freq {
		terms = append(terms, term)
	}
	sort.Slice(terms, func(i, j int) bool {
		if freq[terms[i]] != freq[terms[j]] {
			return freq[terms[i]] > freq[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if max > len(terms) {
		max = len(terms)
	}
	return terms[:max]
}

func defaultStopwords() map[string]struct{} {
	words := []string{
		"a", "an", "the", "and", "or", "but", "if", "then", "else", "for", "to", "of", "in", "on", "at", "by", "with", "as", "is", "are", "was", "were", "be", "been", "being", "it", "this", "that", "these", "those", "from", "up", "down", "over", "under", "again", "further", "than", "so", "such", "into", "about", "between", "through", "during", "before", "after", "above", "below", "out", "off", "own", "same", "too", "very", "can", "will", "just", "don", "should", "now", "you", "your", "we", "our",
	}
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}
