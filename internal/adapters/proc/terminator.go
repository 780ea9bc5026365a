// Package proc terminates stale processes from a previous pipeline run.
package proc

import (
	"context"
	"os/exec"

	"go.trai.ch/ship/internal/core/ports"
)

// Terminator implements ports.ProcessTerminator by shelling out to the
// platform's kill-by-name tool. A non-zero exit only means no matching
// process was running, so failures are logged and swallowed.
type Terminator struct {
	logger ports.Logger
}

// NewTerminator creates a new Terminator.
func NewTerminator(logger ports.Logger) *Terminator {
	return &Terminator{logger: logger}
}

// Terminate kills every process whose name matches one of names, best effort.
func (t *Terminator) Terminate(ctx context.Context, names []string) {
	for _, name := range names {
		argv := killCommand(name)
		cmd := exec.CommandContext(ctx, argv[0], argv[1:]...) //nolint:gosec // fixed kill tool, plan provided name
		if err := cmd.Run(); err != nil {
			t.logger.Info("no stale process to terminate: " + name)
		} else {
			t.logger.Warn("terminated stale process: " + name)
		}
	}
}

var _ ports.ProcessTerminator = (*Terminator)(nil)
