package loading

//go:generate mockgen -source=operation.go -package=loading -destination=operation_mock.go

import (
	"context"
)

// Operation is one step of a loading run.
type Operation interface {
	// Description is shown while the operation runs.
	Description() string

	// Load does the work. It must return promptly once ctx is done.
	Load(ctx context.Context) error
}

// ProgressReporter shows the progress of a loading run, from 0 to 1.
type ProgressReporter interface {
	Report(description string, progress float64)
}
