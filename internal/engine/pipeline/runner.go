// Package pipeline implements the release pipeline: an ordered sequence of
// hard-gated phases producing a signed-or-unsigned binary in the publish
// directory.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"go.trai.ch/zerr"

	"go.trai.ch/ship/internal/core/domain"
	"go.trai.ch/ship/internal/core/ports"
)

// DefaultTestWorkers bounds test parallelism when the plan does not.
const DefaultTestWorkers = 4

// workersPlaceholder is substituted into test commands with the effective
// worker count.
const workersPlaceholder = "{workers}"

// Publisher copies the finished artifact into the publish directory.
type Publisher interface {
	CopyFile(src, dest string) error
}

// Runner drives the release pipeline. Phases run strictly in order and the
// first failure aborts the run with a phase-specific exit code; there are no
// retries and no rollback.
type Runner struct {
	executor   ports.Executor
	locator    ports.ToolchainLocator
	elevation  ports.ElevationChecker
	terminator ports.ProcessTerminator
	signer     ports.Signer
	publisher  Publisher
	telemetry  ports.Telemetry
	console    ports.Console
	logger     ports.Logger
}

// NewRunner creates a new Runner.
func NewRunner(
	executor ports.Executor,
	locator ports.ToolchainLocator,
	elevation ports.ElevationChecker,
	terminator ports.ProcessTerminator,
	signer ports.Signer,
	publisher Publisher,
	telemetry ports.Telemetry,
	console ports.Console,
	logger ports.Logger,
) *Runner {
	return &Runner{
		executor:   executor,
		locator:    locator,
		elevation:  elevation,
		terminator: terminator,
		signer:     signer,
		publisher:  publisher,
		telemetry:  telemetry,
		console:    console,
		logger:     logger,
	}
}

type phase struct {
	name string
	run  func(ctx context.Context, v ports.Vertex) error
}

// Run executes the release pipeline described by plan. Supplying only one of
// credentialFile and password skips signing without error; supplying both
// enables the signing phase.
func (r *Runner) Run(ctx context.Context, plan *domain.ReleasePlan, credentialFile, password string) error {
	if plan == nil {
		return domain.ErrNoReleasePlan
	}

	env := flattenEnv(plan.Env)
	signing := credentialFile != "" && password != ""
	if !signing && (credentialFile != "" || password != "") {
		r.logger.Info("signing skipped: both credential file and password are required")
	}

	phases := []phase{
		{"toolchain", func(ctx context.Context, _ ports.Vertex) error {
			return r.checkToolchain(plan.Toolchain)
		}},
		{"setup", func(ctx context.Context, v ports.Vertex) error {
			return r.setup(ctx, plan.Toolchain, env, v)
		}},
		{"cleanup", func(ctx context.Context, _ ports.Vertex) error {
			return r.cleanup(ctx, plan)
		}},
		{"lint", func(ctx context.Context, v ports.Vertex) error {
			return r.runPhase(ctx, "lint", domain.ExitLintFailed, plan.Lint, env, v)
		}},
		{"build", func(ctx context.Context, v ports.Vertex) error {
			return r.runPhase(ctx, "build", domain.ExitBuildFailed, plan.Build, env, v)
		}},
		{"elevation", func(ctx context.Context, _ ports.Vertex) error {
			return r.checkElevation(plan)
		}},
		{"test", func(ctx context.Context, v ports.Vertex) error {
			cmds := substituteWorkers(plan.Test, effectiveWorkers(plan.TestWorkers))
			return r.runPhase(ctx, "test", domain.ExitTestsFailed, cmds, env, v)
		}},
	}
	if signing {
		phases = append(phases, phase{"sign", func(ctx context.Context, _ ports.Vertex) error {
			return r.sign(ctx, plan, credentialFile, password)
		}})
	}
	phases = append(phases, phase{"publish", func(ctx context.Context, _ ports.Vertex) error {
		return r.publish(plan)
	}})

	for _, p := range phases {
		if err := r.runVertex(ctx, p); err != nil {
			return err
		}
	}

	r.console.Success("release complete: %s", filepath.Base(plan.Artifact))
	return nil
}

func (r *Runner) runVertex(ctx context.Context, p phase) error {
	vctx, vertex := r.telemetry.Record(ctx, "release: "+p.name)
	r.console.Step("release: %s", p.name)

	err := p.run(vctx, vertex)
	vertex.Complete(err)
	if err != nil {
		r.console.Failure("release: %s failed", p.name)
		r.logger.Error(err)
		return err
	}
	return nil
}

func (r *Runner) checkToolchain(tc domain.Toolchain) error {
	path, err := r.locator.Locate(tc.Launcher)
	if err != nil {
		return domain.NewPhaseError("toolchain", domain.ExitToolchainMissing,
			zerr.With(err, "launcher", tc.Launcher))
	}
	r.logger.Info("toolchain launcher: " + path)
	return nil
}

// setup selects the pinned toolchain version and target. Like the original
// driver it does not gate on these commands: a broken pin surfaces as a
// build failure.
func (r *Runner) setup(ctx context.Context, tc domain.Toolchain, env []string, v ports.Vertex) error {
	for _, cmd := range tc.Setup {
		if err := r.executor.Execute(ctx, cmd, env, v.Stdout(), v.Stderr()); err != nil {
			r.logger.Warn(fmt.Sprintf("toolchain setup command failed: %v", err))
		}
	}
	return nil
}

func (r *Runner) cleanup(ctx context.Context, plan *domain.ReleasePlan) error {
	r.terminator.Terminate(ctx, plan.StaleProcesses)

	published := filepath.Join(plan.PublishDir, filepath.Base(plan.Artifact))
	if err := os.Remove(published); err != nil && !os.IsNotExist(err) {
		return zerr.With(zerr.Wrap(err, "failed to remove previous artifact"), "path", published)
	}
	return nil
}

func (r *Runner) runPhase(ctx context.Context, name string, code int, cmds []domain.Command, env []string, v ports.Vertex) error {
	for _, cmd := range cmds {
		if err := r.executor.Execute(ctx, cmd, env, v.Stdout(), v.Stderr()); err != nil {
			return domain.NewPhaseError(name, code, err)
		}
	}
	return nil
}

func (r *Runner) checkElevation(plan *domain.ReleasePlan) error {
	if !plan.RequireElevation {
		return nil
	}
	elevated, err := r.elevation.Elevated()
	if err != nil {
		return domain.NewPhaseError("elevation", domain.ExitNotElevated, err)
	}
	if !elevated {
		return domain.NewPhaseError("elevation", domain.ExitNotElevated,
			zerr.New("tests need an elevated session"))
	}
	return nil
}

func (r *Runner) sign(ctx context.Context, plan *domain.ReleasePlan, credentialFile, password string) error {
	if err := r.signer.Sign(ctx, plan.Sign, plan.Artifact, credentialFile, password); err != nil {
		return domain.NewPhaseError("sign", domain.ExitSignFailed, err)
	}
	return nil
}

func (r *Runner) publish(plan *domain.ReleasePlan) error {
	dest := filepath.Join(plan.PublishDir, filepath.Base(plan.Artifact))
	if err := r.publisher.CopyFile(plan.Artifact, dest); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to publish artifact"), "dest", dest)
	}
	r.logger.Info("published: " + dest)
	return nil
}

func effectiveWorkers(workers int) int {
	if workers <= 0 {
		return DefaultTestWorkers
	}
	return workers
}

// substituteWorkers replaces the worker-count placeholder in test commands.
func substituteWorkers(cmds []domain.Command, workers int) []domain.Command {
	count := strconv.Itoa(workers)
	out := make([]domain.Command, len(cmds))
	for i, cmd := range cmds {
		out[i] = cmd
		if len(cmd.Argv) > 0 {
			argv := make([]string, len(cmd.Argv))
			for j, arg := range cmd.Argv {
				argv[j] = strings.ReplaceAll(arg, workersPlaceholder, count)
			}
			out[i].Argv = argv
		}
		out[i].Script = strings.ReplaceAll(cmd.Script, workersPlaceholder, count)
	}
	return out
}

// flattenEnv renders the plan env map as KEY=VALUE pairs in a stable order.
func flattenEnv(env map[string]string) []string {
	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, k+"="+env[k])
	}
	return out
}
