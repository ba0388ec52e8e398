package ingestion

import (
	"context"
	"log/slog"
	"runtime"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/realsearch/ai"
	"github.com/poiesic/realsearch/core"
	"github.com/poiesic/realsearch/storage"
)

// Pipeline orchestrates the ingestion of document chunks: embedding their
// content and writing them to the vector index.
type Pipeline struct {
	index    storage.VectorIndex
	embedder ai.Embedder
	pool     *ants.Pool
	logger   *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent embedding.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		if p.pool != nil {
			p.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a new ingestion pipeline.
func NewPipeline(index storage.VectorIndex, embedder ai.Embedder, opts ...Option) (*Pipeline, error) {
	if index == nil {
		return nil, ErrVectorIndexRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		index:    index,
		embedder: embedder,
		pool:     pool,
		logger:   slog.Default().With("component", "ingestion"),
	}

	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	return p, nil
}

// IngestOptions holds optional parameters for ingestion.
type IngestOptions struct {
	Region    string            // Region label applied to all chunks
	Metadata  map[string]string // Optional metadata to attach to chunks
	Timestamp time.Time         // Optional timestamp (uses current time if zero)
}

// Ingest builds chunks from the given contents and processes them
// asynchronously. The chunkType applies to the whole batch. Errors during
// async embedding are logged but do not fail the ingestion.
func (p *Pipeline) Ingest(ctx context.Context, chunkType core.ChunkType, contents []string, opts *IngestOptions) error {
	if opts == nil {
		opts = &IngestOptions{}
	}
	if err := core.ValidateChunkType(chunkType); err != nil {
		return err
	}

	chunks := make([]*core.DocumentChunk, len(contents))
	for i, content := range contents {
		timestamp := opts.Timestamp
		if timestamp.IsZero() {
			timestamp = time.Now().UTC()
		}

		chunks[i] = &core.DocumentChunk{
			Content:    content,
			ChunkType:  chunkType,
			Region:     opts.Region,
			Metadata:   opts.Metadata,
			InsertedAt: timestamp,
		}
	}

	for _, chunk := range chunks {
		if err := core.ValidateDocumentChunk(chunk); err != nil {
			return err
		}
	}

	// Submit for async embedding and indexing
	p.pool.Submit(func() {
		if err := p.embedAndIndex(context.Background(), chunks); err != nil {
			p.logger.Error("error processing chunks", "err", err)
		}
	})

	return nil
}

// IngestChunks embeds and indexes prepared chunks synchronously. Chunks
// that already carry a vector are indexed as-is.
func (p *Pipeline) IngestChunks(ctx context.Context, chunks ...*core.DocumentChunk) error {
	for _, chunk := range chunks {
		if err := core.ValidateDocumentChunk(chunk); err != nil {
			return err
		}
	}
	return p.embedAndIndex(ctx, chunks)
}

func (p *Pipeline) embedAndIndex(ctx context.Context, chunks []*core.DocumentChunk) error {
	pending := make([]*core.DocumentChunk, 0, len(chunks))
	texts := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		if len(chunk.Vector) == 0 {
			pending = append(pending, chunk)
			texts = append(texts, chunk.Content)
		}
	}

	if len(pending) > 0 {
		p.logger.Debug("generating embeddings for chunks", "chunks", len(pending))
		embeddings, err := p.embedder.EmbedTexts(ctx, texts)
		if err != nil {
			p.logger.Error("error generating embeddings", "err", err)
			return err
		}
		if len(embeddings) != len(pending) {
			return ErrEmbeddingMismatch
		}
		for i := range embeddings {
			pending[i].Vector = embeddings[i]
		}
	}

	added, err := p.index.AddChunks(ctx, chunks...)
	if err != nil {
		return err
	}

	p.logger.Info("chunks indexed", "count", len(added))
	return nil
}

// Release releases the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}
