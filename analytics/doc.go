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


// Package analytics records search observations as an append-only event log.
//
// The Recorder interface is injected into the search pipeline rather than
// accumulated in shared globals, so each deployment chooses its sink:
//
//   - LogRecorder: one structured log line per search
//   - MemoryRecorder: in-memory accumulation with aggregate counters (tests)
//   - AsyncRecorder: wraps any sink in a worker pool; never blocks, drops
//     events on saturation
//
// Recording is fire-and-forget: the pipeline ignores recorder errors beyond
// logging them, and no recorder sits in the request decision path.
package analytics
