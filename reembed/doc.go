// Package reembed provides functionality for re-embedding stored document
// chunks with a new or updated embedding model.
//
// This package supports batch processing of chunks, progress tracking, retry
// logic with exponential backoff, and vector normalization so re-embedded
// chunks stay compatible with cosine similarity search.
package reembed
