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


// Package search routes real-estate queries to retrieval sources and fuses
// their results.
//
// The Pipeline type orchestrates the full flow:
//
//   - entity extraction and intent classification (concurrent, no data
//     dependency)
//   - strategy selection via a pure decision table (SelectStrategy)
//   - vector and/or graph retrieval, concurrent in hybrid mode, each call
//     bounded by its own timeout and retried once on store unavailability
//   - weighted score fusion with cross-source corroboration bonus (Fuse)
//
// A failed or timed-out source degrades to an empty contribution; the
// request only surfaces core.ErrNoEvidenceFound when every executed source
// came back empty. The SearchMonitor interface exposes per-stage hooks for
// observation, with a no-op default.
package search
