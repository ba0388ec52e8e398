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

import (
	"fmt"
	"strings"
)

// ValidateQuery validates a Query according to domain rules.
//
// Validation rules:
//   - Text must not be empty or whitespace-only
//   - Role, if set, must be one of the closed enumeration
//
// NOT validated:
//   - Filters (a zero Filters value means "no filters")
func ValidateQuery(query *Query) error {
	if query == nil {
		return fmt.Errorf("%w: query is nil", ErrInvalidQuery)
	}

	if strings.TrimSpace(query.Text) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidQuery, ErrEmptyQueryText)
	}

	if query.Role != "" {
		if err := ValidateUserRole(query.Role); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidQuery, err)
		}
	}

	return nil
}

// ValidateDocumentChunk validates a DocumentChunk according to domain rules.
//
// Validation rules:
//   - Content must not be empty
//   - ChunkType must be valid
//
// NOT validated (populated by processors):
//   - Vector (can be empty until embedded)
//   - Id (derived from content on insert)
func ValidateDocumentChunk(chunk *DocumentChunk) error {
	if chunk == nil {
		return fmt.Errorf("%w: chunk is nil", ErrInvalidChunk)
	}

	if chunk.Content == "" {
		return fmt.Errorf("%w: %w", ErrInvalidChunk, ErrEmptyChunkContent)
	}

	if err := ValidateChunkType(chunk.ChunkType); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidChunk, err)
	}

	return nil
}

// ValidateChunkType validates that a ChunkType has a valid value.
func ValidateChunkType(ct ChunkType) error {
	if ct != ChunkProperty && ct != ChunkMarket {
		return fmt.Errorf("%w: value %q", ErrInvalidChunkType, ct)
	}
	return nil
}

// ValidateUserRole validates that a UserRole is one of the closed enumeration.
func ValidateUserRole(role UserRole) error {
	switch role {
	case RoleInvestor, RoleBuyer, RoleDeveloper, RoleAgent:
		return nil
	}
	return fmt.Errorf("%w: value %q", ErrUnknownRole, role)
}
