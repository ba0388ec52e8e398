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


// Package storage provides the storage abstraction layer for realsearch.
//
// This package defines the two store-facing interfaces the retrieval pipeline
// consumes: VectorIndex (embedding similarity search) and GraphStore
// (parameterized relationship queries over typed nodes and edges). Both stores
// are treated as opaque query-able collaborators; how they are populated is out
// of scope.
//
// # Constructor Return Type Pattern
//
// This package follows a strict "return interface" pattern for all public
// constructors to enforce abstraction and enable multiple backend
// implementations:
//
//	index, err := badger.NewVectorIndex(path)   // returns storage.VectorIndex
//	store, err := neo4j.NewGraphStore(cfg)      // returns storage.GraphStore
//
// Internal package constructors may return concrete types since they're only
// used within the implementation package.
//
// # Backends
//
//   - storage/badger: embedded VectorIndex over BadgerDB, for local deployments
//     and tests (in-memory mode).
//   - storage/weaviate: remote VectorIndex over a Weaviate instance.
//   - storage/neo4j: GraphStore over a Neo4j-protocol database, with a closed
//     set of Cypher templates keyed by TemplateKey.
//
// # Error taxonomy
//
// Connectivity failures surface as ErrUnavailable (possibly wrapped) and are
// retried once by executors. An empty result slice is a normal terminal
// outcome and never an error; the two must not be conflated.
//
// # Thread Safety
//
// All implementations must be thread-safe and support concurrent access from
// multiple goroutines.
package storage
