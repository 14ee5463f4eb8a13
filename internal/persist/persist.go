package persist

import (
	"context"
	"fmt"
	"time"

	"kbsearch/internal/domain"
)

// Snapshot is the portable form of a store's contents: three parallel
// sequences plus the time the snapshot was taken. Per-document
// vocabularies are not persisted; they are recomputed from the texts
// when a term-frequency store restores the snapshot.
type Snapshot struct {
	Vectors   [][]float64       `json:"vectors"`
	Texts     []string          `json:"texts"`
	Metadata  []domain.Metadata `json:"metadata"`
	Timestamp time.Time         `json:"timestamp"`
}

// Adapter reads and writes store snapshots. Snapshot files are assumed
// single-writer; concurrent writers may corrupt them.
type Adapter interface {
	Save(ctx context.Context, snap *Snapshot) error
	// Load reports ok=false with a nil error when no snapshot exists
	// yet. A snapshot that exists but cannot be restored yields a
	// *domain.StoreLoadError.
	Load(ctx context.Context) (snap *Snapshot, ok bool, err error)
}

// validate enforces the load-time invariant: the three parallel
// sequences must have equal length. A mismatch is corruption, never
// silently fixed.
func (s *Snapshot) validate() error {
	if len(s.Texts) != len(s.Vectors) || len(s.Metadata) != len(s.Vectors) {
		return fmt.Errorf("parallel sequences differ in length: %d vectors, %d texts, %d metadata",
			len(s.Vectors), len(s.Texts), len(s.Metadata))
	}
	return nil
}
