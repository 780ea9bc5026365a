// Package ports defines the core interfaces for the application.
package ports

import (
	"context"
	"io"

	"go.trai.ch/ship/internal/core/domain"
)

// Executor runs external commands for pipeline phases and packaging stages.
//
//go:generate go run go.uber.org/mock/mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Execute runs the command and streams its output to stdout and stderr.
	//
	// The env parameter contains additional environment variables in
	// "KEY=VALUE" form layered over the process environment. A non-zero
	// command exit is returned as an error carrying the exit code.
	Execute(ctx context.Context, cmd domain.Command, env []string, stdout, stderr io.Writer) error
}
