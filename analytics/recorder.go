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


package analytics

import (
	"context"
	"log/slog"

	"github.com/poiesic/realsearch/core"
)

// Event is one append-only search observation.
type Event struct {
	Query       string
	Strategy    core.Strategy
	LatencyMS   int64
	ResultCount int
	HadError    bool
}

// Recorder receives search events. Implementations must be safe for
// concurrent use; Record must never block the caller's response path for
// longer than a log write.
type Recorder interface {
	// Record observes one completed search. The return value is advisory;
	// the pipeline logs failures and moves on.
	Record(ctx context.Context, event Event) error
}

// noopRecorder discards every event.
type noopRecorder struct{}

var _ Recorder = (*noopRecorder)(nil)

func (n *noopRecorder) Record(_ context.Context, _ Event) error { return nil }

// NewNopRecorder returns a recorder that discards every event.
func NewNopRecorder() Recorder {
	return &noopRecorder{}
}

// LogRecorder writes events to structured logs.
type LogRecorder struct {
	logger *slog.Logger
}

var _ Recorder = (*LogRecorder)(nil)

// NewLogRecorder creates a recorder that emits one Info line per search.
func NewLogRecorder(logger *slog.Logger) *LogRecorder {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogRecorder{logger: logger.With("component", "search-analytics")}
}

// Record logs the event.
func (r *LogRecorder) Record(ctx context.Context, event Event) error {
	r.logger.InfoContext(ctx, "search completed",
		"strategy", event.Strategy,
		"latencyMs", event.LatencyMS,
		"resultCount", event.ResultCount,
		"hadError", event.HadError,
	)
	return nil
}
