package embedding

import "context"

// Embedding is the numeric representation of one piece of text.
// Vocabulary is populated only by embedders that build a per-document
// term vector; dense embedders leave it nil. When present it is
// parallel-indexed with Vector.
type Embedding struct {
	Vector     []float64
	Vocabulary []string
}

// Embedder converts free text into a numeric vector representation.
// Remote implementations may suspend on network I/O and must honor ctx.
type Embedder interface {
	Name() string
	Embed(ctx context.Context, text string) (Embedding, error)
}
