package vectorstore

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"kbsearch/internal/domain"
	"kbsearch/internal/embedding"
	"kbsearch/internal/embedding/termfreq"
	"kbsearch/internal/persist"
)

// DefaultTopK is used when a caller passes a non-positive topK.
const DefaultTopK = 5

// minSimilarity is the relevance floor applied when low-score
// suppression is enabled; results at or below it never surface.
const minSimilarity = 0.1

// Chunker splits long text into bounded pieces before embedding.
type Chunker interface {
	Chunk(text string) []string
}

// vocabularyProvider is implemented by embedders whose embeddings carry
// per-document vocabularies reconstructible from text alone.
type vocabularyProvider interface {
	Vocabulary(text string) []string
}

// Options configures a Store beyond its embedder.
type Options struct {
	// Chunker splits documents before embedding; nil stores each
	// document as a single record.
	Chunker Chunker
	// FilterLowScores suppresses results with similarity at or below
	// the relevance floor.
	FilterLowScores bool
}

// Store is an append-only, insertion-ordered document store with
// brute-force similarity search. Records are never updated in place;
// the embedder chosen at construction is used for both documents and
// queries, and mixing embedders within one store is a usage error.
type Store struct {
	mu       sync.RWMutex
	embedder embedding.Embedder
	vocab    vocabularyProvider // non-nil for the term-frequency strategy
	chunker  Chunker
	filtered bool
	records  []domain.Record
}

// New creates a store around the given embedder.
func New(emb embedding.Embedder, opts Options) *Store {
	vp, _ := emb.(vocabularyProvider)
	return &Store{
		embedder: emb,
		vocab:    vp,
		chunker:  opts.Chunker,
		filtered: opts.FilterLowScores,
	}
}

// NewTermFrequency creates the local-strategy store: per-document
// vocabularies, no chunking, no external calls, and low-relevance
// suppression on search.
func NewTermFrequency() *Store {
	return New(termfreq.NewEmbedder(), Options{FilterLowScores: true})
}

// NewDense creates the remote-strategy store: fixed-dimension vectors,
// sentence-aware chunking before embedding, and raw top-K results with
// no relevance floor.
func NewDense(emb embedding.Embedder, ch Chunker) *Store {
	return New(emb, Options{Chunker: ch})
}

// Add embeds the text and appends the resulting record(s). When a
// chunker is configured each chunk becomes an independent record whose
// metadata is augmented with its chunk index, sibling count, and the
// original text's length. Chunks are committed one at a time: an embed
// failure aborts the remaining chunks but keeps the ones already
// appended.
func (s *Store) Add(ctx context.Context, text string, meta domain.Metadata) error {
	if strings.TrimSpace(text) == "" {
		return domain.ErrEmptyInput
	}
	chunks := []string{text}
	chunked := s.chunker != nil
	if chunked {
		chunks = s.chunker.Chunk(text)
	}
	total := len(chunks)
	for i, chunk := range chunks {
		emb, err := s.embedder.Embed(ctx, chunk)
		if err != nil {
			return err
		}
		m := make(domain.Metadata, len(meta)+3)
		for k, v := range meta {
			m[k] = v
		}
		if chunked {
			m[domain.MetaChunkIndex] = i
			m[domain.MetaTotalChunks] = total
			m[domain.MetaOriginalLength] = len(text)
		}
		s.mu.Lock()
		s.records = append(s.records, domain.Record{
			Text:       chunk,
			Metadata:   m,
			Vector:     emb.Vector,
			Vocabulary: emb.Vocabulary,
		})
		s.mu.Unlock()
	}
	return nil
}

// Search embeds the query and ranks every stored record against it by
// cosine similarity, descending, with ties kept in insertion order.
// The result is truncated to topK after optional low-score suppression.
// An empty store yields an empty result, not an error.
func (s *Store) Search(ctx context.Context, query string, topK int) ([]domain.SearchResult, error) {
	if topK <= 0 {
		topK = DefaultTopK
	}
	q, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	results := make([]domain.SearchResult, 0, len(s.records))
	for i, rec := range s.records {
		var score float64
		if s.vocab != nil {
			score = overlapCosine(q.Vector, q.Vocabulary, rec.Vector, rec.Vocabulary)
		} else {
			if len(rec.Vector) != len(q.Vector) {
				return nil, fmt.Errorf("%w: query has %d dimensions, record %d has %d",
					domain.ErrDimensionMismatch, len(q.Vector), i, len(rec.Vector))
			}
			score = cosine(q.Vector, rec.Vector)
		}
		results = append(results, domain.SearchResult{
			Text:       rec.Text,
			Metadata:   rec.Metadata,
			Similarity: score,
			Index:      i,
		})
	}
	sort.SliceStable(results, func(a, b int) bool {
		return results[a].Similarity > results[b].Similarity
	})
	if s.filtered {
		kept := results[:0]
		for _, r := range results {
			if r.Similarity > minSimilarity {
				kept = append(kept, r)
			}
		}
		results = kept
	}
	if len(results) > topK {
		results = results[:topK]
	}
	return results, nil
}

// Stats returns aggregate diagnostics over the store's contents.
func (s *Store) Stats() domain.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := domain.Stats{
		TotalVectors: len(s.records),
		TotalTexts:   len(s.records),
	}
	if len(s.records) == 0 {
		return st
	}
	st.VectorDimension = len(s.records[0].Vector)
	total := 0
	for _, rec := range s.records {
		total += len(rec.Text)
	}
	st.AverageTextLength = float64(total) / float64(len(s.records))
	return st
}

// Save writes the full store contents through the given adapter.
func (s *Store) Save(ctx context.Context, adapter persist.Adapter) error {
	s.mu.RLock()
	snap := persist.Snapshot{
		Vectors:   make([][]float64, len(s.records)),
		Texts:     make([]string, len(s.records)),
		Metadata:  make([]domain.Metadata, len(s.records)),
		Timestamp: time.Now().UTC(),
	}
	for i, rec := range s.records {
		snap.Vectors[i] = rec.Vector
		snap.Texts[i] = rec.Text
		snap.Metadata[i] = rec.Metadata
	}
	s.mu.RUnlock()
	return adapter.Save(ctx, &snap)
}

// Load replaces the store contents with a previously saved snapshot.
// It reports false when no snapshot exists (nil error) or the snapshot
// is corrupt (*domain.StoreLoadError); in both cases the prior state is
// left untouched. For the term-frequency strategy the per-record
// vocabularies are recomputed from the texts, which is deterministic.
func (s *Store) Load(ctx context.Context, adapter persist.Adapter) (bool, error) {
	snap, ok, err := adapter.Load(ctx)
	if err != nil || !ok {
		return false, err
	}
	records := make([]domain.Record, len(snap.Texts))
	for i := range snap.Texts {
		rec := domain.Record{
			Text:     snap.Texts[i],
			Metadata: snap.Metadata[i],
			Vector:   snap.Vectors[i],
		}
		if s.vocab != nil {
			rec.Vocabulary = s.vocab.Vocabulary(rec.Text)
		}
		records[i] = rec
	}
	s.mu.Lock()
	s.records = records
	s.mu.Unlock()
	return true, nil
}
