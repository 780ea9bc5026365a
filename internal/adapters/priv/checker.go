// Package priv reports whether the current session has administrative
// privileges.
package priv

import "go.trai.ch/ship/internal/core/ports"

// Checker implements ports.ElevationChecker for the current platform.
type Checker struct{}

// NewChecker creates a new Checker.
func NewChecker() *Checker {
	return &Checker{}
}

// Elevated reports whether the process runs with administrative privileges.
func (c *Checker) Elevated() (bool, error) {
	return elevated()
}

var _ ports.ElevationChecker = (*Checker)(nil)
