package app

import (
	"context"
	iofs "io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/zerr"

	"go.trai.ch/ship/internal/adapters/cas"
)

// CleanOptions selects what Clean removes.
type CleanOptions struct {
	// Caches also deletes the compiled cache directories of every
	// packaging stage, not just the recorded build state.
	Caches bool
}

// Clean removes the recorded build state so the next run rebuilds from
// scratch. With Caches set it additionally deletes the cache directories
// produced by the compile stages.
func (a *App) Clean(_ context.Context, opts CleanOptions) error {
	stateDir := filepath.Dir(cas.DefaultPath)
	if err := os.RemoveAll(stateDir); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to remove build state"), "path", stateDir)
	}

	if !opts.Caches {
		return nil
	}

	plan, err := a.loader.Load(a.configPath)
	if err != nil {
		return zerr.Wrap(err, "failed to load plan")
	}
	if plan.Package == nil {
		return nil
	}

	for _, stage := range plan.Package.Stages {
		if stage.Compile == nil || stage.Compile.CacheDir == "" {
			continue
		}
		if err := removeCacheDirs(stage.Compile.Root, stage.Compile.CacheDir); err != nil {
			return zerr.With(err, "stage", stage.Name)
		}
	}
	return nil
}

// removeCacheDirs deletes every directory named cacheDir under root.
func removeCacheDirs(root, cacheDir string) error {
	var doomed []string
	err := filepath.WalkDir(root, func(path string, d iofs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if d.IsDir() && d.Name() == cacheDir {
			doomed = append(doomed, path)
			return filepath.SkipDir
		}
		return nil
	})
	if err != nil {
		return zerr.Wrap(err, "failed to scan for cache directories")
	}

	for _, path := range doomed {
		if err := os.RemoveAll(path); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to remove cache directory"), "path", path)
		}
	}
	return nil
}
