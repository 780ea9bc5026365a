// Package app implements the application layer for ship.
package app

import (
	"context"

	"go.trai.ch/zerr"

	"go.trai.ch/ship/internal/core/ports"
	"go.trai.ch/ship/internal/engine/packager"
	"go.trai.ch/ship/internal/engine/pipeline"
)

// DefaultConfigPath is the plan file loaded when no --config flag is given.
const DefaultConfigPath = "ship.yaml"

// App ties the engines to the loaded plan. The CLI layer calls exactly one
// of its methods per invocation.
type App struct {
	loader   ports.ConfigLoader
	pipeline *pipeline.Runner
	packager *packager.Packager

	configPath string
}

// New creates a new App instance.
func New(loader ports.ConfigLoader, runner *pipeline.Runner, pack *packager.Packager) *App {
	return &App{
		loader:     loader,
		pipeline:   runner,
		packager:   pack,
		configPath: DefaultConfigPath,
	}
}

// SetConfigPath overrides the plan file path before a run.
func (a *App) SetConfigPath(path string) {
	if path != "" {
		a.configPath = path
	}
}

// Release runs the release pipeline. The two optional parameters mirror the
// CLI positionals: both enable signing, anything less skips it.
func (a *App) Release(ctx context.Context, credentialFile, password string) error {
	plan, err := a.loader.Load(a.configPath)
	if err != nil {
		return zerr.Wrap(err, "failed to load plan")
	}
	return a.pipeline.Run(ctx, plan.Release, credentialFile, password)
}

// Pack runs the packaging stages, all of them when names is empty.
func (a *App) Pack(ctx context.Context, names []string, force bool) error {
	plan, err := a.loader.Load(a.configPath)
	if err != nil {
		return zerr.Wrap(err, "failed to load plan")
	}
	return a.packager.Run(ctx, plan.Package, names, force)
}
