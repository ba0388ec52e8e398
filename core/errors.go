// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package core

import "errors"

// Domain errors
var (
	// ErrNoEvidenceFound indicates that every executed source returned zero results.
	// This is a terminal state, not a retryable failure: callers must fall back to
	// an explicit "no reliable information found" message rather than generate.
	ErrNoEvidenceFound = errors.New("no evidence found")

	// ErrValidationFailed indicates a generated answer did not pass the
	// hallucination gate. Surfaced to callers as a low-confidence result,
	// never silently suppressed.
	ErrValidationFailed = errors.New("response validation failed")

	// ErrInvalidQuery indicates a Query failed validation.
	ErrInvalidQuery = errors.New("invalid query")

	// ErrEmptyQueryText indicates the query text is empty.
	ErrEmptyQueryText = errors.New("query text cannot be empty")

	// ErrInvalidChunk indicates a DocumentChunk failed validation.
	ErrInvalidChunk = errors.New("invalid document chunk")

	// ErrEmptyChunkContent indicates the chunk Content field is empty.
	ErrEmptyChunkContent = errors.New("chunk content cannot be empty")

	// ErrInvalidChunkType indicates an unknown ChunkType value.
	ErrInvalidChunkType = errors.New("invalid chunk type")

	// ErrUnknownRole indicates a UserRole outside the closed enumeration.
	ErrUnknownRole = errors.New("unknown user role")

	// ErrInvalidWeights indicates fusion weights that do not sum to 1.0.
	ErrInvalidWeights = errors.New("fusion weights must sum to 1.0")

	// ErrInvalidThreshold indicates a confidence threshold outside [0,1].
	ErrInvalidThreshold = errors.New("threshold must be between 0 and 1")
)
