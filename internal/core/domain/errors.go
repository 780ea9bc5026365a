package domain

import "go.trai.ch/zerr"

var (
	// ErrStageAlreadyExists is returned when adding a stage whose name is already taken.
	ErrStageAlreadyExists = zerr.New("stage already exists")

	// ErrMissingStageDependency is returned when a stage depends on an unknown stage.
	ErrMissingStageDependency = zerr.New("missing stage dependency")

	// ErrCycleDetected is returned when the stage chain contains a cycle.
	ErrCycleDetected = zerr.New("cycle detected")

	// ErrStageNotFound is returned when a requested stage is not in the plan.
	ErrStageNotFound = zerr.New("stage not found")

	// ErrNoReleasePlan is returned when the plan file has no release section.
	ErrNoReleasePlan = zerr.New("plan has no release section")

	// ErrNoPackagePlan is returned when the plan file has no package section.
	ErrNoPackagePlan = zerr.New("plan has no package section")
)
