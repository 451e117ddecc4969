package exec

import (
	"fmt"

	"github.com/pkg/errors"
)

// InvocationError means the toolchain command could not be started at all,
// e.g. the binary is missing or the target toolchain is not installed.
type InvocationError struct {
	Tool string
	Err  error
}

func (e *InvocationError) Error() string {
	return fmt.Sprintf("failed to start %s: %v", e.Tool, e.Err)
}

func (e *InvocationError) Unwrap() error {
	return e.Err
}

// ExecutionError means the toolchain ran and exited non-zero.
type ExecutionError struct {
	Tool     string
	ExitCode int
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("%s exited with status %d", e.Tool, e.ExitCode)
}

// CouldNotStart reports whether err stems from a failed process start rather
// than a non-zero exit.
func CouldNotStart(err error) bool {
	var invErr *InvocationError
	return errors.As(err, &invErr)
}
