package reembed

import (
	"context"
	"fmt"
	"time"

	"github.com/poiesic/realsearch/ai"
	"github.com/poiesic/realsearch/core"
)

// BatchProcessor handles embedding generation for batches of document chunks.
type BatchProcessor struct {
	store          ChunkStore
	embedder       ai.Embedder
	maxAttempts    int
	retryBaseDelay time.Duration
}

// NewBatchProcessor creates a new batch processor.
// maxAttempts: maximum number of attempts for embedding API calls
// retryBaseDelay: base delay for exponential backoff
func NewBatchProcessor(store ChunkStore, embedder ai.Embedder, maxAttempts int, retryBaseDelay time.Duration) *BatchProcessor {
	return &BatchProcessor{
		store:          store,
		embedder:       embedder,
		maxAttempts:    maxAttempts,
		retryBaseDelay: retryBaseDelay,
	}
}

// Process generates embeddings for a batch of chunks and writes them back to
// the index. Vectors are normalized after embedding to ensure compatibility
// with cosine similarity.
func (bp *BatchProcessor) Process(ctx context.Context, chunks []*core.DocumentChunk) error {
	if len(chunks) == 0 {
		return nil
	}

	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Content
	}

	var embeddings [][]float32
	err := RetryWithBackoff(ctx, func() error {
		var err error
		embeddings, err = bp.embedder.EmbedTexts(ctx, texts)
		return err
	}, bp.maxAttempts, bp.retryBaseDelay)

	if err != nil {
		return fmt.Errorf("failed to generate embeddings after %d attempts: %w", bp.maxAttempts, err)
	}

	if len(embeddings) != len(chunks) {
		return fmt.Errorf("embedding count mismatch: expected %d, got %d", len(chunks), len(embeddings))
	}

	for i := range chunks {
		chunks[i].Vector = NormalizeVector(embeddings[i])
	}

	// Chunk IDs are content-derived and content is unchanged, so the write
	// overwrites records in place.
	if _, err := bp.store.AddChunks(ctx, chunks...); err != nil {
		return fmt.Errorf("failed to update chunks: %w", err)
	}

	return nil
}
