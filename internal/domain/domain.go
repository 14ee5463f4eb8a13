package domain

// Metadata is an open key-value mapping attached 1:1 to a stored record.
type Metadata map[string]any

// Metadata keys attached by the store when a document is chunked before
// embedding. They relate a search hit back to its position in the source.
const (
	MetaChunkIndex     = "chunkIndex"
	MetaTotalChunks    = "totalChunks"
	MetaOriginalLength = "originalLength"
)

// Record is a single stored chunk of knowledge-base content together
// with its numeric representation. Records are immutable once appended.
type Record struct {
	Text     string
	Metadata Metadata
	Vector   []float64
	// Vocabulary lists the distinct terms of Text in first-seen order,
	// parallel-indexed with Vector. Only term-frequency embeddings
	// carry a vocabulary; dense embeddings leave it nil.
	Vocabulary []string
}

// SearchResult is one ranked match for a query.
type SearchResult struct {
	Text       string
	Metadata   Metadata
	Similarity float64
	// Index is the zero-based insertion position of the record within
	// the full store, not within the ranked result set.
	Index int
}

// Stats are aggregate diagnostics over a store's contents.
type Stats struct {
	TotalVectors      int
	TotalTexts        int
	AverageTextLength float64
	VectorDimension   int
}
