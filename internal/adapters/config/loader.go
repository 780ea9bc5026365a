// Package config provides the plan file loader for ship.
package config

import (
	"os"

	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"

	"go.trai.ch/ship/internal/core/domain"
)

// Defaults applied when the plan file leaves a setting out.
const (
	DefaultTestWorkers = 4
	DefaultCacheDir    = "__cache__"
)

// DefaultCompileLevels are the optimization levels produced when a compile
// section names none.
var DefaultCompileLevels = []int{0, 1, 2}

// Loader implements ports.ConfigLoader using a YAML plan file.
type Loader struct{}

// NewLoader creates a new Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads a plan file from the given path.
func (l *Loader) Load(path string) (*domain.Plan, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, zerr.Wrap(err, "failed to read plan file")
	}

	var shipfile Shipfile
	if err := yaml.Unmarshal(data, &shipfile); err != nil {
		return nil, zerr.Wrap(err, "failed to parse plan file")
	}

	plan := &domain.Plan{Version: shipfile.Version}

	if shipfile.Release != nil {
		release, err := convertRelease(shipfile.Release)
		if err != nil {
			return nil, err
		}
		plan.Release = release
	}

	if shipfile.Package != nil {
		pkg, err := convertPackage(shipfile.Package)
		if err != nil {
			return nil, err
		}
		plan.Package = pkg
	}

	return plan, nil
}

func convertRelease(dto *ReleaseDTO) (*domain.ReleasePlan, error) {
	if dto.Toolchain.Launcher == "" {
		return nil, zerr.New("release.toolchain.launcher is required")
	}
	if dto.Artifact == "" {
		return nil, zerr.New("release.artifact is required")
	}
	if dto.PublishDir == "" {
		return nil, zerr.New("release.publishDir is required")
	}

	workers := dto.TestWorkers
	if workers <= 0 {
		workers = DefaultTestWorkers
	}

	// Elevation is required unless the plan opts out explicitly.
	requireElevation := true
	if dto.RequireElevation != nil {
		requireElevation = *dto.RequireElevation
	}

	return &domain.ReleasePlan{
		Toolchain: domain.Toolchain{
			Launcher: dto.Toolchain.Launcher,
			Version:  dto.Toolchain.Version,
			Target:   dto.Toolchain.Target,
			Setup:    convertCommands(dto.Toolchain.Setup),
		},
		Env:              dto.Env,
		StaleProcesses:   dto.StaleProcesses,
		Artifact:         dto.Artifact,
		PublishDir:       dto.PublishDir,
		Lint:             convertCommands(dto.Lint),
		Build:            convertCommands(dto.Build),
		Test:             convertCommands(dto.Test),
		TestWorkers:      workers,
		RequireElevation: requireElevation,
		Sign: domain.SignSpec{
			Tool:          dto.Sign.Tool,
			CredentialDir: dto.Sign.CredentialDir,
		},
	}, nil
}

func convertPackage(dto *PackageDTO) (*domain.PackagePlan, error) {
	if len(dto.Stages) == 0 {
		return nil, zerr.New("package.stages must not be empty")
	}

	stages := make([]domain.StageSpec, 0, len(dto.Stages))
	for _, s := range dto.Stages {
		if s.Name == "" {
			return nil, zerr.New("stage name is required")
		}
		if s.Name == "all" {
			return nil, zerr.With(zerr.New("stage name 'all' is reserved"), "stage", s.Name)
		}

		stage := domain.StageSpec{
			Name:      s.Name,
			DependsOn: s.DependsOn,
			Commands:  convertCommands(s.Commands),
			Env:       s.Env,
			BinDirs:   s.BinDirs,
			Jobs:      s.Jobs,
		}

		if s.Mirror != nil {
			if s.Mirror.Source == "" || s.Mirror.Dest == "" {
				return nil, zerr.With(zerr.New("mirror needs source and dest"), "stage", s.Name)
			}
			stage.Mirror = &domain.MirrorSpec{
				Source: s.Mirror.Source,
				Dest:   s.Mirror.Dest,
				Delete: s.Mirror.Delete,
			}
		}

		if s.Compile != nil {
			compile, err := convertCompile(s.Name, s.Compile)
			if err != nil {
				return nil, err
			}
			stage.Compile = compile
		}

		stages = append(stages, stage)
	}

	return &domain.PackagePlan{
		Root:   dto.Root,
		Stages: stages,
	}, nil
}

func convertCompile(stage string, dto *CompileDTO) (*domain.CompileSpec, error) {
	if dto.Root == "" {
		return nil, zerr.With(zerr.New("compile.root is required"), "stage", stage)
	}
	if len(dto.Command) == 0 {
		return nil, zerr.With(zerr.New("compile.command is required"), "stage", stage)
	}

	levels := dto.Levels
	if len(levels) == 0 {
		levels = DefaultCompileLevels
	}
	cacheDir := dto.CacheDir
	if cacheDir == "" {
		cacheDir = DefaultCacheDir
	}
	pattern := dto.Pattern
	if pattern == "" {
		pattern = "*"
	}

	return &domain.CompileSpec{
		Root:     dto.Root,
		Pattern:  pattern,
		Levels:   levels,
		CacheDir: cacheDir,
		Command:  dto.Command,
	}, nil
}

func convertCommands(dtos []CommandDTO) []domain.Command {
	if len(dtos) == 0 {
		return nil
	}
	cmds := make([]domain.Command, len(dtos))
	for i, dto := range dtos {
		cmds[i] = domain.Command{
			Argv:   dto.Argv,
			Script: dto.Script,
			Dir:    dto.Dir,
			Env:    dto.Env,
		}
	}
	return cmds
}
