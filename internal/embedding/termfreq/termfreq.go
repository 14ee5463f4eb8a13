package termfreq

import (
	"context"
	"regexp"
	"strings"

	"kbsearch/internal/embedding"
)

// Embedder computes per-document term-frequency vectors. Every document
// carries its own vocabulary: the distinct tokens of its text in
// first-seen order, with vector[i] holding the frequency of
// vocabulary[i] normalized by the total token count. It makes no
// external calls and is a pure function of the input text.
type Embedder struct {
	tokenPattern *regexp.Regexp
}

// NewEmbedder creates a term-frequency embedder.
func NewEmbedder() *Embedder {
	return &Embedder{tokenPattern: regexp.MustCompile(`\b\w+\b`)}
}

// Name returns the identifier of this embedder implementation.
func (e *Embedder) Name() string { return "termfreq" }

// Embed tokenizes the text and returns its frequency vector with the
// parallel vocabulary. Empty or punctuation-only text yields an empty
// embedding and no error.
func (e *Embedder) Embed(_ context.Context, text string) (embedding.Embedding, error) {
	tokens := e.tokenize(text)
	if len(tokens) == 0 {
		return embedding.Embedding{}, nil
	}
	counts := make(map[string]int, len(tokens))
	vocab := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if _, seen := counts[tok]; !seen {
			vocab = append(vocab, tok)
		}
		counts[tok]++
	}
	total := float64(len(tokens))
	vec := make([]float64, len(vocab))
	for i, term := range vocab {
		vec[i] = float64(counts[term]) / total
	}
	return embedding.Embedding{Vector: vec, Vocabulary: vocab}, nil
}

// Vocabulary returns the distinct tokens of text in first-seen order.
// The store uses it to rebuild per-record vocabularies after restoring
// a snapshot, since tokenization is deterministic.
func (e *Embedder) Vocabulary(text string) []string {
	tokens := e.tokenize(text)
	if len(tokens) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(tokens))
	vocab := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if _, ok := seen[tok]; ok {
			continue
		}
		seen[tok] = struct{}{}
		vocab = append(vocab, tok)
	}
	return vocab
}

func (e *Embedder) tokenize(text string) []string {
	return e.tokenPattern.FindAllString(strings.ToLower(text), -1)
}
