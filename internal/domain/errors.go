package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput rejects empty or whitespace-only text before it
	// reaches an embedder.
	ErrEmptyInput = errors.New("kbsearch: empty input text")

	// ErrDimensionMismatch reports a query vector whose dimensionality
	// differs from the stored vectors. This is a configuration error.
	ErrDimensionMismatch = errors.New("kbsearch: vector dimension mismatch")
)

// EmbeddingServiceError reports a failed call to a remote embedding
// service. The core does not retry; callers may.
type EmbeddingServiceError struct {
	Service string
	Err     error
}

func (e *EmbeddingServiceError) Error() string {
	return fmt.Sprintf("%s embedding failed: %v", e.Service, e.Err)
}

func (e *EmbeddingServiceError) Unwrap() error { return e.Err }

// StoreLoadError reports a persisted snapshot that could not be
// restored: unreadable file, invalid syntax, or parallel sequences of
// differing lengths.
type StoreLoadError struct {
	Path string
	Err  error
}

func (e *StoreLoadError) Error() string {
	return fmt.Sprintf("load snapshot %s: %v", e.Path, e.Err)
}

func (e *StoreLoadError) Unwrap() error { return e.Err }
