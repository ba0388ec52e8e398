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

	"github.com/panjf2000/ants/v2"
)

// AsyncRecorder wraps another recorder in a worker pool so Record never
// blocks the caller. Events are dropped when the pool is saturated; analytics
// are advisory and must not slow the response path.
type AsyncRecorder struct {
	sink   Recorder
	pool   *ants.Pool
	logger *slog.Logger
}

var _ Recorder = (*AsyncRecorder)(nil)

// Option configures an AsyncRecorder.
type Option func(*AsyncRecorder) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *AsyncRecorder) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// NewAsyncRecorder creates an async recorder delegating to sink with
// poolSize workers. poolSize below 1 is raised to 1.
func NewAsyncRecorder(sink Recorder, poolSize int, opts ...Option) (*AsyncRecorder, error) {
	if sink == nil {
		return nil, ErrSinkRequired
	}
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize, ants.WithNonblocking(true))
	if err != nil {
		return nil, err
	}

	r := &AsyncRecorder{
		sink:   sink,
		pool:   pool,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(r); err != nil {
			pool.Release()
			return nil, err
		}
	}

	return r, nil
}

// Record submits the event to the pool. A saturated pool drops the event
// with a debug log instead of blocking.
func (r *AsyncRecorder) Record(_ context.Context, event Event) error {
	err := r.pool.Submit(func() {
		// The request context may already be done when the worker runs.
		if err := r.sink.Record(context.Background(), event); err != nil {
			r.logger.Warn("analytics sink failed", "err", err)
		}
	})
	if err != nil {
		r.logger.Debug("analytics event dropped", "err", err)
	}
	return nil
}

// Release shuts down the worker pool. Pending events may be lost.
func (r *AsyncRecorder) Release() {
	r.pool.Release()
}
