package chunker

import (
	"regexp"
	"strings"
)

// SentenceChunker splits text into chunks bounded by a maximum
// character size without severing a sentence mid-way.
type SentenceChunker struct {
	maxChunkChars int
	splitter      *regexp.Regexp
}

// NewSentenceChunker creates a chunker with the given character budget
// per chunk. Non-positive budgets fall back to 1000.
func NewSentenceChunker(maxChunkChars int) *SentenceChunker {
	if maxChunkChars <= 0 {
		maxChunkChars = 1000
	}
	return &SentenceChunker{
		maxChunkChars: maxChunkChars,
		splitter:      regexp.MustCompile(`(?m)(?U)([^.!?]+[.!?])`),
	}
}

// Chunk splits the text on sentence-terminating punctuation and
// greedily accumulates sentences into a chunk until adding the next one
// would exceed the budget. A single sentence longer than the budget
// becomes its own oversized chunk. Empty text yields no chunks.
func (c *SentenceChunker) Chunk(text string) []string {
	sentences := c.sentences(text)
	if len(sentences) == 0 {
		return nil
	}
	var chunks []string
	var current strings.Builder
	for _, sent := range sentences {
		if current.Len() > 0 && current.Len()+1+len(sent) > c.maxChunkChars {
			chunks = append(chunks, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteByte(' ')
		}
		current.WriteString(sent)
	}
	if current.Len() > 0 {
		chunks = append(chunks, current.String())
	}
	return chunks
}

func (c *SentenceChunker) sentences(text string) []string {
	locs := c.splitter.FindAllStringIndex(text, -1)
	var out []string
	last := 0
	for _, loc := range locs {
		if s := strings.TrimSpace(text[loc[0]:loc[1]]); s != "" {
			out = append(out, s)
		}
		last = loc[1]
	}
	// Trailing text without a terminator is still a sentence.
	if tail := strings.TrimSpace(text[last:]); tail != "" {
		out = append(out, tail)
	}
	return out
}
