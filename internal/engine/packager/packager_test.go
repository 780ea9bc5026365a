package packager

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"go.trai.ch/ship/internal/adapters/cas"
	"go.trai.ch/ship/internal/adapters/fs"
	"go.trai.ch/ship/internal/adapters/telemetry"
	"go.trai.ch/ship/internal/core/domain"
	"go.trai.ch/ship/internal/core/ports/mocks"
)

type fakeTreeOps struct {
	syncs []string
	chmod []string
}

func (f *fakeTreeOps) Sync(src, dest string, _ bool) error {
	f.syncs = append(f.syncs, src+" -> "+dest)
	return nil
}

func (f *fakeTreeOps) ForceExecutable(dir string) error {
	f.chmod = append(f.chmod, dir)
	return nil
}

type packagerFixture struct {
	executor *mocks.MockExecutor
	trees    *fakeTreeOps
	packager *Packager
}

func newPackagerFixture(t *testing.T) *packagerFixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	console := mocks.NewMockConsole(ctrl)
	console.EXPECT().Step(gomock.Any(), gomock.Any()).AnyTimes()
	console.EXPECT().Success(gomock.Any(), gomock.Any()).AnyTimes()
	console.EXPECT().Failure(gomock.Any(), gomock.Any()).AnyTimes()

	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Info(gomock.Any()).AnyTimes()
	logger.EXPECT().Warn(gomock.Any()).AnyTimes()
	logger.EXPECT().Error(gomock.Any()).AnyTimes()

	store, err := cas.NewStore(filepath.Join(t.TempDir(), "state.json"))
	require.NoError(t, err)

	f := &packagerFixture{
		executor: mocks.NewMockExecutor(ctrl),
		trees:    &fakeTreeOps{},
	}
	f.packager = NewPackager(
		f.executor,
		fs.NewHasher(fs.NewWalker()),
		store,
		f.trees,
		fs.NewWalker(),
		telemetry.NewNoOp(),
		console,
		logger,
	)
	return f
}

func TestRunNilPlan(t *testing.T) {
	f := newPackagerFixture(t)
	err := f.packager.Run(context.Background(), nil, nil, false)
	require.ErrorIs(t, err, domain.ErrNoPackagePlan)
}

func TestRunUnknownStage(t *testing.T) {
	f := newPackagerFixture(t)
	plan := &domain.PackagePlan{Stages: []domain.StageSpec{{Name: "build"}}}

	err := f.packager.Run(context.Background(), plan, []string{"nope"}, false)
	require.ErrorIs(t, err, domain.ErrStageNotFound)
}

func TestRunStagesInDependencyOrder(t *testing.T) {
	f := newPackagerFixture(t)
	plan := &domain.PackagePlan{Stages: []domain.StageSpec{
		{Name: "finalize", DependsOn: []string{"stage"}, Commands: []domain.Command{{Argv: []string{"finalize-cmd"}}}},
		{Name: "build", Commands: []domain.Command{{Argv: []string{"build-cmd"}}}},
		{Name: "stage", DependsOn: []string{"build"}, Commands: []domain.Command{{Argv: []string{"stage-cmd"}}}},
	}}

	var order []string
	f.executor.EXPECT().
		Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, cmd domain.Command, _ []string, _, _ io.Writer) error {
			order = append(order, cmd.Argv[0])
			return nil
		}).
		Times(3)

	require.NoError(t, f.packager.Run(context.Background(), plan, nil, false))
	assert.Equal(t, []string{"build-cmd", "stage-cmd", "finalize-cmd"}, order)
}

func TestRunSelectsRequestedStageAndDependencies(t *testing.T) {
	f := newPackagerFixture(t)
	plan := &domain.PackagePlan{Stages: []domain.StageSpec{
		{Name: "build", Commands: []domain.Command{{Argv: []string{"build-cmd"}}}},
		{Name: "stage", DependsOn: []string{"build"}, Commands: []domain.Command{{Argv: []string{"stage-cmd"}}}},
		{Name: "docs", Commands: []domain.Command{{Argv: []string{"docs-cmd"}}}},
	}}

	var order []string
	f.executor.EXPECT().
		Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, cmd domain.Command, _ []string, _, _ io.Writer) error {
			order = append(order, cmd.Argv[0])
			return nil
		}).
		Times(2)

	require.NoError(t, f.packager.Run(context.Background(), plan, []string{"stage"}, false))
	assert.Equal(t, []string{"build-cmd", "stage-cmd"}, order)
}

func TestRunStageCommandUsesPlanRootAndStageEnv(t *testing.T) {
	f := newPackagerFixture(t)
	plan := &domain.PackagePlan{
		Root: "/work/pkg",
		Stages: []domain.StageSpec{{
			Name:     "build",
			Commands: []domain.Command{{Argv: []string{"make", "modules"}}},
			Env:      map[string]string{"NO_TLS_VERIFY": "1"},
		}},
	}

	f.executor.EXPECT().
		Execute(gomock.Any(), gomock.Any(), []string{"NO_TLS_VERIFY=1"}, gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, cmd domain.Command, _ []string, _, _ io.Writer) error {
			assert.Equal(t, "/work/pkg", cmd.Dir)
			return nil
		})

	require.NoError(t, f.packager.Run(context.Background(), plan, nil, false))
}

func TestMirrorStageRepairsBinPermissions(t *testing.T) {
	f := newPackagerFixture(t)
	src := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(src, "mod.py"), []byte("pass"), 0o644))
	dest := filepath.Join(t.TempDir(), "staged")

	plan := &domain.PackagePlan{Stages: []domain.StageSpec{{
		Name:    "stage",
		Mirror:  &domain.MirrorSpec{Source: src, Dest: dest, Delete: true},
		BinDirs: []string{"bin", "local/bin"},
	}}}

	require.NoError(t, f.packager.Run(context.Background(), plan, nil, false))
	assert.Equal(t, []string{src + " -> " + dest}, f.trees.syncs)
	assert.Equal(t, []string{
		filepath.Join(dest, "bin"),
		filepath.Join(dest, "local", "bin"),
	}, f.trees.chmod)
}

func TestMirrorStageSkippedWhenUnchanged(t *testing.T) {
	f := newPackagerFixture(t)
	src := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(src, "mod.py"), []byte("pass"), 0o644))
	dest := t.TempDir() // exists, so outputs count as intact

	plan := &domain.PackagePlan{Stages: []domain.StageSpec{{
		Name:   "stage",
		Mirror: &domain.MirrorSpec{Source: src, Dest: dest},
	}}}

	require.NoError(t, f.packager.Run(context.Background(), plan, nil, false))
	require.Len(t, f.trees.syncs, 1)

	// Unchanged inputs: the stage is skipped entirely.
	require.NoError(t, f.packager.Run(context.Background(), plan, nil, false))
	assert.Len(t, f.trees.syncs, 1)

	// A content change invalidates the recorded hash.
	require.NoError(t, os.WriteFile(filepath.Join(src, "mod.py"), []byte("changed"), 0o644))
	require.NoError(t, f.packager.Run(context.Background(), plan, nil, false))
	assert.Len(t, f.trees.syncs, 2)
}

func TestMirrorStageForceOverridesSkip(t *testing.T) {
	f := newPackagerFixture(t)
	src := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(src, "mod.py"), []byte("pass"), 0o644))

	plan := &domain.PackagePlan{Stages: []domain.StageSpec{{
		Name:   "stage",
		Mirror: &domain.MirrorSpec{Source: src, Dest: t.TempDir()},
	}}}

	require.NoError(t, f.packager.Run(context.Background(), plan, nil, false))
	require.NoError(t, f.packager.Run(context.Background(), plan, nil, true))
	assert.Len(t, f.trees.syncs, 2)
}
