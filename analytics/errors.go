package analytics

import "errors"

var (
	// ErrSinkRequired is returned when an async recorder is built without a sink.
	ErrSinkRequired = errors.New("analytics sink required")
)
