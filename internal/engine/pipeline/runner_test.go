package pipeline

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"go.trai.ch/ship/internal/adapters/telemetry"
	"go.trai.ch/ship/internal/core/domain"
	"go.trai.ch/ship/internal/core/ports/mocks"
)

type fakePublisher struct {
	copies [][2]string
	err    error
}

func (f *fakePublisher) CopyFile(src, dest string) error {
	if f.err != nil {
		return f.err
	}
	f.copies = append(f.copies, [2]string{src, dest})
	return nil
}

type runnerFixture struct {
	executor   *mocks.MockExecutor
	locator    *mocks.MockToolchainLocator
	elevation  *mocks.MockElevationChecker
	terminator *mocks.MockProcessTerminator
	signer     *mocks.MockSigner
	publisher  *fakePublisher
	runner     *Runner
}

func newRunnerFixture(t *testing.T) *runnerFixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &runnerFixture{
		executor:   mocks.NewMockExecutor(ctrl),
		locator:    mocks.NewMockToolchainLocator(ctrl),
		elevation:  mocks.NewMockElevationChecker(ctrl),
		terminator: mocks.NewMockProcessTerminator(ctrl),
		signer:     mocks.NewMockSigner(ctrl),
		publisher:  &fakePublisher{},
	}

	console := mocks.NewMockConsole(ctrl)
	console.EXPECT().Step(gomock.Any(), gomock.Any()).AnyTimes()
	console.EXPECT().Success(gomock.Any(), gomock.Any()).AnyTimes()
	console.EXPECT().Failure(gomock.Any(), gomock.Any()).AnyTimes()

	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Info(gomock.Any()).AnyTimes()
	logger.EXPECT().Warn(gomock.Any()).AnyTimes()
	logger.EXPECT().Error(gomock.Any()).AnyTimes()

	f.runner = NewRunner(
		f.executor, f.locator, f.elevation, f.terminator, f.signer,
		f.publisher, telemetry.NewNoOp(), console, logger,
	)
	return f
}

func minimalPlan(t *testing.T) *domain.ReleasePlan {
	t.Helper()
	return &domain.ReleasePlan{
		Toolchain: domain.Toolchain{Launcher: "cargo"},
		Artifact:  "target/release/agent.exe",
		PublishDir: t.TempDir(),
		Lint:       []domain.Command{{Argv: []string{"cargo", "clippy"}}},
		Build:      []domain.Command{{Argv: []string{"cargo", "build"}}},
		Test:       []domain.Command{{Argv: []string{"cargo", "test", "--", "--test-threads", "{workers}"}}},
	}
}

func TestRunMissingToolchainExitsSeven(t *testing.T) {
	f := newRunnerFixture(t)
	f.locator.EXPECT().Locate("cargo").Return("", errors.New("not found"))

	err := f.runner.Run(context.Background(), minimalPlan(t), "", "")
	require.Error(t, err)
	assert.Equal(t, domain.ExitToolchainMissing, domain.ExitCodeFor(err))
	assert.Empty(t, f.publisher.copies)
}

func TestRunLintFailureExitsSeventeen(t *testing.T) {
	f := newRunnerFixture(t)
	f.locator.EXPECT().Locate("cargo").Return("/usr/bin/cargo", nil)
	f.terminator.EXPECT().Terminate(gomock.Any(), gomock.Any())
	f.executor.EXPECT().
		Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("clippy warnings"))

	err := f.runner.Run(context.Background(), minimalPlan(t), "", "")
	assert.Equal(t, domain.ExitLintFailed, domain.ExitCodeFor(err))
	assert.Empty(t, f.publisher.copies)
}

func TestRunBuildFailureExitsEighteen(t *testing.T) {
	f := newRunnerFixture(t)
	f.locator.EXPECT().Locate("cargo").Return("/usr/bin/cargo", nil)
	f.terminator.EXPECT().Terminate(gomock.Any(), gomock.Any())

	gomock.InOrder(
		f.executor.EXPECT().
			Execute(gomock.Any(), cmdWithArgv("cargo", "clippy"), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil),
		f.executor.EXPECT().
			Execute(gomock.Any(), cmdWithArgv("cargo", "build"), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("compile error")),
	)

	err := f.runner.Run(context.Background(), minimalPlan(t), "", "")
	assert.Equal(t, domain.ExitBuildFailed, domain.ExitCodeFor(err))
}

func TestRunNotElevatedExitsTwentyOneBeforeTests(t *testing.T) {
	f := newRunnerFixture(t)
	plan := minimalPlan(t)
	plan.RequireElevation = true

	f.locator.EXPECT().Locate("cargo").Return("/usr/bin/cargo", nil)
	f.terminator.EXPECT().Terminate(gomock.Any(), gomock.Any())
	f.elevation.EXPECT().Elevated().Return(false, nil)

	// Lint and build run; the test command must never be reached.
	f.executor.EXPECT().
		Execute(gomock.Any(), cmdWithArgv("cargo", "clippy"), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil)
	f.executor.EXPECT().
		Execute(gomock.Any(), cmdWithArgv("cargo", "build"), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil)

	err := f.runner.Run(context.Background(), plan, "", "")
	assert.Equal(t, domain.ExitNotElevated, domain.ExitCodeFor(err))
}

func TestRunSubstitutesTestWorkers(t *testing.T) {
	f := newRunnerFixture(t)
	plan := minimalPlan(t)
	plan.TestWorkers = 2

	f.locator.EXPECT().Locate("cargo").Return("/usr/bin/cargo", nil)
	f.terminator.EXPECT().Terminate(gomock.Any(), gomock.Any())
	f.executor.EXPECT().
		Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, cmd domain.Command, _ []string, _, _ io.Writer) error {
			if len(cmd.Argv) > 0 && cmd.Argv[1] == "test" {
				assert.Equal(t, "2", cmd.Argv[len(cmd.Argv)-1])
			}
			return nil
		}).
		Times(3)

	require.NoError(t, f.runner.Run(context.Background(), plan, "", ""))
	require.Len(t, f.publisher.copies, 1)
}

func TestRunSingleSigningParameterSkipsSigning(t *testing.T) {
	f := newRunnerFixture(t)

	f.locator.EXPECT().Locate("cargo").Return("/usr/bin/cargo", nil)
	f.terminator.EXPECT().Terminate(gomock.Any(), gomock.Any())
	f.executor.EXPECT().
		Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil).
		Times(3)
	// Signer must never be invoked.

	require.NoError(t, f.runner.Run(context.Background(), minimalPlan(t), "release.pem", ""))
	require.Len(t, f.publisher.copies, 1)
}

func TestRunSigningFailureExitsTwentyWithoutPublishing(t *testing.T) {
	f := newRunnerFixture(t)

	f.locator.EXPECT().Locate("cargo").Return("/usr/bin/cargo", nil)
	f.terminator.EXPECT().Terminate(gomock.Any(), gomock.Any())
	f.executor.EXPECT().
		Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil).
		Times(3)
	f.signer.EXPECT().
		Sign(gomock.Any(), gomock.Any(), "target/release/agent.exe", "release.pem", "hunter2").
		Return(errors.New("hsm offline"))

	err := f.runner.Run(context.Background(), minimalPlan(t), "release.pem", "hunter2")
	assert.Equal(t, domain.ExitSignFailed, domain.ExitCodeFor(err))
	assert.Empty(t, f.publisher.copies)
}

func TestRunSuccessPublishesArtifact(t *testing.T) {
	f := newRunnerFixture(t)
	plan := minimalPlan(t)

	f.locator.EXPECT().Locate("cargo").Return("/usr/bin/cargo", nil)
	f.terminator.EXPECT().Terminate(gomock.Any(), []string{"agent.exe"})
	f.executor.EXPECT().
		Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil).
		Times(3)
	f.signer.EXPECT().
		Sign(gomock.Any(), gomock.Any(), plan.Artifact, "release.pem", "hunter2").
		Return(nil)

	plan.StaleProcesses = []string{"agent.exe"}
	require.NoError(t, f.runner.Run(context.Background(), plan, "release.pem", "hunter2"))
	require.Len(t, f.publisher.copies, 1)
	assert.Equal(t, plan.Artifact, f.publisher.copies[0][0])
}

// cmdWithArgv matches a domain.Command whose argv starts with the given words.
func cmdWithArgv(words ...string) gomock.Matcher {
	return gomock.Cond(func(cmd domain.Command) bool {
		if len(cmd.Argv) < len(words) {
			return false
		}
		for i, w := range words {
			if cmd.Argv[i] != w {
				return false
			}
		}
		return true
	})
}
