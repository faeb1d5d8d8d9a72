package orgrun

import (
	stderrors "errors"
	"fmt"
)

// Process exit codes
const (
	ExitOK           = 0
	ExitRunFailed    = 1
	ExitCommandError = 2
)

// ExitError carries the process exit code for a failed command. A nil Err
// means the failure has already been reported to the user.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error { return e.Err }

// Reported tells main whether the error still needs printing.
func (e *ExitError) Reported() bool { return e.Err == nil }

// ExitCode maps a command error to the process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var exitErr *ExitError
	if stderrors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitCommandError
}
