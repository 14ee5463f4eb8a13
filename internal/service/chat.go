package service

import (
	"context"

	"kbsearch/internal/domain"
	"kbsearch/internal/ingest"
	"kbsearch/internal/keywords"
	"kbsearch/internal/vectorstore"
)

// fallbackAnswer is returned when nothing clears the relevance floor.
const fallbackAnswer = "Sorry, I couldn't find an answer to that. Please reach out to our support team and we'll help you directly."

// ChatService answers questions against a knowledge store it owns
// explicitly. There is no package-level state: callers construct the
// service with its store and pass it where it is needed.
type ChatService struct {
	store    *vectorstore.Store
	keywords *keywords.Extractor
	topK     int
}

// New creates a chat service over the given store.
func New(store *vectorstore.Store, topK int) *ChatService {
	if topK <= 0 {
		topK = 3
	}
	return &ChatService{
		store:    store,
		keywords: keywords.NewExtractor(),
		topK:     topK,
	}
}

// Answer is the chatbot's reply to one question.
type Answer struct {
	Text    string
	Found   bool
	Sources []domain.SearchResult
}

// IngestEntries indexes canonical knowledge entries, attaching an
// extracted keyword list when the source provided none.
func (s *ChatService) IngestEntries(ctx context.Context, entries []ingest.Entry) error {
	for _, e := range entries {
		meta := e.Metadata
		if meta == nil {
			meta = domain.Metadata{}
		}
		if _, ok := meta["keywords"]; !ok {
			if kw := s.keywords.Top(e.Text, 5); len(kw) > 0 {
				meta["keywords"] = kw
			}
		}
		if err := s.store.Add(ctx, e.Text, meta); err != nil {
			return err
		}
	}
	return nil
}

// Ask returns the best matching passage for the question, or the
// fallback reply when the store has nothing relevant.
func (s *ChatService) Ask(ctx context.Context, question string) (Answer, error) {
	results, err := s.store.Search(ctx, question, s.topK)
	if err != nil {
		return Answer{}, err
	}
	if len(results) == 0 {
		return Answer{Text: fallbackAnswer}, nil
	}
	return Answer{Text: results[0].Text, Found: true, Sources: results}, nil
}

// Search exposes raw ranked results for callers that render more than
// the single best passage.
func (s *ChatService) Search(ctx context.Context, query string, topK int) ([]domain.SearchResult, error) {
	return s.store.Search(ctx, query, topK)
}

// Stats reports aggregate diagnostics for the underlying store.
func (s *ChatService) Stats() domain.Stats {
	return s.store.Stats()
}
