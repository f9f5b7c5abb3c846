package executor

import (
	"context"
	"io"
)

// Executor defines the interface for executing external commands
type Executor interface {
	// Execute runs name with args and returns its stdout. A nil stdin runs the
	// command with no input.
	Execute(ctx context.Context, stdin io.Reader, name string, args ...string) (string, error)
}
