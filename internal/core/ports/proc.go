package ports

import "context"

// ProcessTerminator kills stale processes from a previous run so they do not
// hold build outputs open. Termination is best effort: a process that is not
// running is not an error.
//
//go:generate go run go.uber.org/mock/mockgen -source=proc.go -destination=mocks/mock_proc.go -package=mocks
type ProcessTerminator interface {
	Terminate(ctx context.Context, names []string)
}
