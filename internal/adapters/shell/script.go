package shell

import (
	"context"
	"io"
	"strings"

	"go.trai.ch/zerr"
	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"

	"go.trai.ch/ship/internal/core/domain"
)

// runScript interprets the command's Script as a POSIX shell snippet.
// The interpreter runs with -e, so the first failing statement aborts the
// snippet, matching the hard-gate semantics of argv commands.
func (e *Executor) runScript(ctx context.Context, cmd domain.Command, cmdEnv []string, stdout, stderr io.Writer) error {
	file, err := syntax.NewParser().Parse(strings.NewReader(cmd.Script), "script")
	if err != nil {
		return zerr.Wrap(err, "failed to parse script")
	}

	runner, err := interp.New(
		interp.Dir(cmd.Dir),
		interp.Env(expand.ListEnviron(cmdEnv...)),
		interp.StdIO(nil, stdout, stderr),
		interp.Params("-e"),
	)
	if err != nil {
		return zerr.Wrap(err, "failed to initialize shell interpreter")
	}

	if err := runner.Run(ctx, file); err != nil {
		exitCode := -1
		if status, ok := interp.IsExitStatus(err); ok {
			exitCode = int(status)
		}
		return zerr.With(zerr.Wrap(err, "script failed"), "exit_code", exitCode)
	}
	return nil
}
