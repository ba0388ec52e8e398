package reembed

import "errors"

var (
	// ErrInvalidMaxAttempts is returned when maxAttempts is <= 0
	ErrInvalidMaxAttempts = errors.New("maxAttempts must be greater than 0")

	// ErrChunkStoreRequired is returned when no chunk store is provided
	ErrChunkStoreRequired = errors.New("chunk store is required")

	// ErrEmbedderRequired is returned when no embedder is provided
	ErrEmbedderRequired = errors.New("embedder is required")
)
