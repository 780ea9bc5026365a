// Package packager implements the packaging stage chain: external build
// commands, tree mirroring with permission repair, and incremental cache
// precompilation.
package packager

import (
	"context"
	"iter"
	"os"
	"path/filepath"
	"time"

	"go.trai.ch/zerr"

	"go.trai.ch/ship/internal/core/domain"
	"go.trai.ch/ship/internal/core/ports"
)

// TreeOps mirrors trees and repairs permissions between stages.
type TreeOps interface {
	Sync(src, dest string, deleteExtra bool) error
	ForceExecutable(dir string) error
}

// SourceWalker enumerates the files a stage compiles.
type SourceWalker interface {
	WalkFiles(root, pattern string) iter.Seq[string]
}

// Packager runs the packaging stages of a plan in dependency order. Each
// stage is incremental: a recorded input hash lets an unchanged stage be
// skipped entirely, and the compile step skips unchanged files even when the
// stage itself runs.
type Packager struct {
	executor  ports.Executor
	hasher    ports.Hasher
	store     ports.BuildInfoStore
	trees     TreeOps
	walker    SourceWalker
	telemetry ports.Telemetry
	console   ports.Console
	logger    ports.Logger
}

// NewPackager creates a new Packager.
func NewPackager(
	executor ports.Executor,
	hasher ports.Hasher,
	store ports.BuildInfoStore,
	trees TreeOps,
	walker SourceWalker,
	telemetry ports.Telemetry,
	console ports.Console,
	logger ports.Logger,
) *Packager {
	return &Packager{
		executor:  executor,
		hasher:    hasher,
		store:     store,
		trees:     trees,
		walker:    walker,
		telemetry: telemetry,
		console:   console,
		logger:    logger,
	}
}

// Run executes the packaging stages. An empty names slice runs every stage;
// otherwise only the named stages and their transitive dependencies run.
// When force is set, recorded input hashes are ignored.
func (p *Packager) Run(ctx context.Context, plan *domain.PackagePlan, names []string, force bool) error {
	if plan == nil {
		return domain.ErrNoPackagePlan
	}

	graph := domain.NewStageGraph()
	for _, spec := range plan.Stages {
		if err := graph.AddStage(spec); err != nil {
			return err
		}
	}
	if err := graph.Validate(); err != nil {
		return err
	}

	selected, err := selectStages(graph, names)
	if err != nil {
		return err
	}

	for stage := range graph.Walk() {
		if !selected[stage.Name] {
			continue
		}
		if err := p.runStage(ctx, plan, stage, force); err != nil {
			return zerr.With(err, "stage", stage.Name)
		}
	}
	return nil
}

// selectStages resolves the requested stage names plus their transitive
// dependencies into a set. Validate has already rejected unknown deps, so
// only the requested names themselves can miss.
func selectStages(graph *domain.StageGraph, names []string) (map[string]bool, error) {
	selected := make(map[string]bool, graph.Count())
	if len(names) == 0 {
		for stage := range graph.Walk() {
			selected[stage.Name] = true
		}
		return selected, nil
	}

	var mark func(name string) error
	mark = func(name string) error {
		if selected[name] {
			return nil
		}
		stage, err := graph.Stage(name)
		if err != nil {
			return err
		}
		selected[name] = true
		for _, dep := range stage.DependsOn {
			if err := mark(dep); err != nil {
				return err
			}
		}
		return nil
	}

	for _, name := range names {
		if err := mark(name); err != nil {
			return nil, err
		}
	}
	return selected, nil
}

func (p *Packager) runStage(ctx context.Context, plan *domain.PackagePlan, stage domain.StageSpec, force bool) error {
	vctx, vertex := p.telemetry.Record(ctx, "pack: "+stage.Name)
	p.console.Step("pack: %s", stage.Name)

	err := p.executeStage(vctx, plan, stage, force, vertex)
	vertex.Complete(err)
	if err != nil {
		p.console.Failure("pack: %s failed", stage.Name)
		p.logger.Error(err)
		return err
	}
	p.console.Success("pack: %s", stage.Name)
	return nil
}

func (p *Packager) executeStage(ctx context.Context, plan *domain.PackagePlan, stage domain.StageSpec, force bool, v ports.Vertex) error {
	inputHash, skippable, err := p.stageInputHash(stage)
	if err != nil {
		return err
	}
	if skippable && !force && p.stageUpToDate(stage, inputHash) {
		p.logger.Info("stage up to date: " + stage.Name)
		v.Cached()
		return nil
	}

	env := flattenEnv(stage.Env)
	for _, cmd := range stage.Commands {
		if cmd.Dir == "" {
			cmd.Dir = plan.Root
		}
		if err := p.executor.Execute(ctx, cmd, env, v.Stdout(), v.Stderr()); err != nil {
			return zerr.Wrap(err, "stage command failed")
		}
	}

	if stage.Compile != nil {
		if err := p.compile(ctx, stage.Compile, stage.Jobs, env, force, v); err != nil {
			return err
		}
	}

	if stage.Mirror != nil {
		if err := p.trees.Sync(stage.Mirror.Source, stage.Mirror.Dest, stage.Mirror.Delete); err != nil {
			return err
		}
		for _, dir := range stage.BinDirs {
			if err := p.trees.ForceExecutable(filepath.Join(stage.Mirror.Dest, dir)); err != nil {
				return err
			}
		}
	}

	if skippable {
		return p.store.Put(domain.BuildInfo{
			Key:       stageKey(stage.Name),
			InputHash: inputHash,
			Timestamp: time.Now(),
		})
	}
	return nil
}

// stageInputHash hashes the stage's input tree. Only mirror-only stages are
// whole-stage skippable: command stages have no enumerable inputs, and
// compile stages rely on per-file skips because their outputs land inside
// the source tree.
func (p *Packager) stageInputHash(stage domain.StageSpec) (hash string, skippable bool, err error) {
	if stage.Mirror == nil || stage.Compile != nil || len(stage.Commands) > 0 {
		return "", false, nil
	}
	hash, err = p.hasher.HashTree(stage.Mirror.Source, "")
	if err != nil {
		return "", false, zerr.Wrap(err, "failed to hash stage inputs")
	}
	return hash, true, nil
}

func (p *Packager) stageUpToDate(stage domain.StageSpec, inputHash string) bool {
	prior, err := p.store.Get(stageKey(stage.Name))
	if err != nil || prior == nil {
		return false
	}
	if prior.InputHash != inputHash {
		return false
	}
	// Outputs must still be intact.
	if stage.Mirror != nil {
		if _, err := os.Stat(stage.Mirror.Dest); err != nil {
			return false
		}
	}
	return true
}

func stageKey(name string) string {
	return "stage:" + name
}
