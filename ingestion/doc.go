// Package ingestion provides pipeline orchestration for indexing document chunks.
//
// The Pipeline type manages the ingestion workflow for market and property
// content, including:
//   - Validating and stamping chunks
//   - Generating embeddings asynchronously
//   - Writing chunks to the vector index
//
// Embedding is performed concurrently using a worker pool. Errors during
// async processing are logged but do not fail the ingestion operation.
package ingestion
