// Package toolchain detects the compiler toolchain launcher.
package toolchain

import (
	"os/exec"

	"go.trai.ch/zerr"

	"go.trai.ch/ship/internal/core/ports"
)

// Locator implements ports.ToolchainLocator using exec.LookPath.
type Locator struct{}

// NewLocator creates a new Locator.
func NewLocator() *Locator {
	return &Locator{}
}

// Locate returns the absolute path of the launcher binary.
func (l *Locator) Locate(launcher string) (string, error) {
	path, err := exec.LookPath(launcher)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "toolchain launcher not found"), "launcher", launcher)
	}
	return path, nil
}

var _ ports.ToolchainLocator = (*Locator)(nil)
