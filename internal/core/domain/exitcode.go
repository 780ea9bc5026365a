package domain

import (
	"errors"
	"fmt"
)

// Exit codes returned by the release pipeline. The invoking CI system uses
// them to tell which phase failed, so they are part of the public contract
// and must not be renumbered.
const (
	// ExitSuccess indicates the whole pipeline completed.
	ExitSuccess = 0

	// ExitToolchainMissing indicates the toolchain launcher was not on PATH.
	ExitToolchainMissing = 7

	// ExitLintFailed indicates the static analysis phase failed.
	ExitLintFailed = 17

	// ExitBuildFailed indicates the build phase failed.
	ExitBuildFailed = 18

	// ExitTestsFailed indicates the test phase failed.
	ExitTestsFailed = 19

	// ExitSignFailed indicates the signing helper failed.
	ExitSignFailed = 20

	// ExitNotElevated indicates the session lacks administrative privileges.
	ExitNotElevated = 21
)

// PhaseError couples a failed pipeline phase with its process exit code.
type PhaseError struct {
	Phase string
	Code  int
	Err   error
}

func (e *PhaseError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("phase %s failed", e.Phase)
	}
	return fmt.Sprintf("phase %s failed: %v", e.Phase, e.Err)
}

func (e *PhaseError) Unwrap() error {
	return e.Err
}

// NewPhaseError wraps err with the phase name and its exit code.
func NewPhaseError(phase string, code int, err error) *PhaseError {
	return &PhaseError{Phase: phase, Code: code, Err: err}
}

// ExitCodeFor maps an error to the process exit code: the phase code when a
// PhaseError is in the chain, 1 for any other failure, 0 for nil.
func ExitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var pe *PhaseError
	if errors.As(err, &pe) {
		return pe.Code
	}
	return 1
}
