// Package mock provides test doubles for the ai package interfaces.
//
// MockEmbedder produces deterministic vectors from text hashes so tests get
// stable similarity behavior without calling a real embedding service.
// Behavior can be overridden per test via the exported function fields.
package mock
