// Package shell provides the command executor adapter.
package shell

import (
	"context"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"go.trai.ch/zerr"

	"go.trai.ch/ship/internal/core/domain"
	"go.trai.ch/ship/internal/core/ports"
)

// Executor implements ports.Executor. Argv commands run through os/exec,
// script commands through the embedded shell interpreter.
type Executor struct {
	logger ports.Logger
}

// NewExecutor creates a new Executor.
func NewExecutor(logger ports.Logger) *Executor {
	return &Executor{logger: logger}
}

// Execute runs the command and streams its output to stdout and stderr.
// The environment is layered: process environment, then env, then the
// command's own Env map. A value from a later layer wins.
func (e *Executor) Execute(ctx context.Context, cmd domain.Command, env []string, stdout, stderr io.Writer) error {
	if cmd.IsZero() {
		return nil
	}

	cmdEnv := resolveEnvironment(os.Environ(), env, cmd.Env)

	if cmd.Script != "" {
		e.logger.Info("run script: " + firstLine(cmd.Script))
		return e.runScript(ctx, cmd, cmdEnv, stdout, stderr)
	}
	e.logger.Info("run: " + strings.Join(cmd.Argv, " "))
	return e.runArgv(ctx, cmd, cmdEnv, stdout, stderr)
}

func (e *Executor) runArgv(ctx context.Context, cmd domain.Command, cmdEnv []string, stdout, stderr io.Writer) error {
	name := cmd.Argv[0]
	args := cmd.Argv[1:]

	// Resolve the executable against the merged environment's PATH so that
	// env pins (e.g. a toolchain prepended per plan) take effect.
	executable := name
	if !filepath.IsAbs(name) {
		if lp, err := lookPath(name, cmdEnv); err == nil {
			executable = lp
		}
	}

	c := exec.CommandContext(ctx, executable, args...) //nolint:gosec // plan provided command
	if len(c.Args) > 0 {
		c.Args[0] = name
	}
	c.Dir = cmd.Dir
	c.Env = cmdEnv
	c.Stdout = stdout
	c.Stderr = stderr

	if err := c.Run(); err != nil {
		exitCode := -1
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		}
		return zerr.With(zerr.With(zerr.Wrap(err, "command failed"), "command", name), "exit_code", exitCode)
	}
	return nil
}

// resolveEnvironment merges environment variables with the defined priority.
func resolveEnvironment(sysEnv, planEnv []string, cmdEnv map[string]string) []string {
	envMap := make(map[string]string, len(sysEnv)+len(planEnv)+len(cmdEnv))
	order := make([]string, 0, len(sysEnv)+len(planEnv)+len(cmdEnv))

	set := func(k, v string) {
		if _, seen := envMap[k]; !seen {
			order = append(order, k)
		}
		envMap[k] = v
	}

	for _, entry := range sysEnv {
		if k, v, ok := strings.Cut(entry, "="); ok {
			set(k, v)
		}
	}
	for _, entry := range planEnv {
		if k, v, ok := strings.Cut(entry, "="); ok {
			set(k, v)
		}
	}
	for k, v := range cmdEnv {
		set(k, v)
	}

	result := make([]string, 0, len(order))
	for _, k := range order {
		result = append(result, k+"="+envMap[k])
	}
	return result
}

// lookPath searches for an executable in the directories named by the PATH
// entry of env, not the process PATH.
func lookPath(file string, env []string) (string, error) {
	var path string
	for _, e := range env {
		if strings.HasPrefix(e, "PATH=") {
			path = strings.TrimPrefix(e, "PATH=")
		}
	}
	if path == "" {
		return "", exec.ErrNotFound
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			dir = "."
		}
		candidate := filepath.Join(dir, file)
		if err := findExecutable(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", exec.ErrNotFound
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[:i]) + " ..."
	}
	return strings.TrimSpace(s)
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0o111 != 0 {
		return nil
	}
	return os.ErrPermission
}

var _ ports.Executor = (*Executor)(nil)
