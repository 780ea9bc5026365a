package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"go.trai.ch/ship/internal/core/domain"
	"go.trai.ch/ship/internal/core/ports/mocks"
	"go.trai.ch/ship/internal/engine/packager"
	"go.trai.ch/ship/internal/engine/pipeline"
)

// newApp builds an App whose engines are never reached past their plan
// checks; the interesting paths here are loading and dispatch.
func newApp(loader *mocks.MockConfigLoader) *App {
	runner := pipeline.NewRunner(nil, nil, nil, nil, nil, nil, nil, nil, nil)
	pack := packager.NewPackager(nil, nil, nil, nil, nil, nil, nil, nil)
	return New(loader, runner, pack)
}

func TestReleaseLoadFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	loader := mocks.NewMockConfigLoader(ctrl)
	loader.EXPECT().Load(DefaultConfigPath).Return(nil, errors.New("no such file"))

	err := newApp(loader).Release(context.Background(), "", "")
	require.ErrorContains(t, err, "failed to load plan")
}

func TestReleaseWithoutReleaseSection(t *testing.T) {
	ctrl := gomock.NewController(t)
	loader := mocks.NewMockConfigLoader(ctrl)
	loader.EXPECT().Load(DefaultConfigPath).Return(&domain.Plan{}, nil)

	err := newApp(loader).Release(context.Background(), "", "")
	require.ErrorIs(t, err, domain.ErrNoReleasePlan)
}

func TestPackWithoutPackageSection(t *testing.T) {
	ctrl := gomock.NewController(t)
	loader := mocks.NewMockConfigLoader(ctrl)
	loader.EXPECT().Load(DefaultConfigPath).Return(&domain.Plan{}, nil)

	err := newApp(loader).Pack(context.Background(), nil, false)
	require.ErrorIs(t, err, domain.ErrNoPackagePlan)
}

func TestCleanRemovesBuildState(t *testing.T) {
	t.Chdir(t.TempDir())
	require.NoError(t, os.MkdirAll(".ship", 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(".ship", "state.json"), []byte("{}"), 0o644))

	ctrl := gomock.NewController(t)
	a := newApp(mocks.NewMockConfigLoader(ctrl))

	require.NoError(t, a.Clean(context.Background(), CleanOptions{}))
	require.NoDirExists(t, ".ship")
}

func TestCleanCachesRemovesCompileCacheDirs(t *testing.T) {
	t.Chdir(t.TempDir())
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "pkg", "__cache__"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "pkg", "__cache__", "mod.opt-0.pyc"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "pkg", "mod.py"), []byte("pass"), 0o644))

	ctrl := gomock.NewController(t)
	loader := mocks.NewMockConfigLoader(ctrl)
	loader.EXPECT().Load(DefaultConfigPath).Return(&domain.Plan{
		Package: &domain.PackagePlan{Stages: []domain.StageSpec{{
			Name:    "finalize",
			Compile: &domain.CompileSpec{Root: root, CacheDir: "__cache__"},
		}}},
	}, nil)

	a := newApp(loader)
	require.NoError(t, a.Clean(context.Background(), CleanOptions{Caches: true}))
	require.NoDirExists(t, filepath.Join(root, "pkg", "__cache__"))
	require.FileExists(t, filepath.Join(root, "pkg", "mod.py"))
}

func TestSetConfigPath(t *testing.T) {
	ctrl := gomock.NewController(t)
	loader := mocks.NewMockConfigLoader(ctrl)
	loader.EXPECT().Load("custom.yaml").Return(&domain.Plan{}, nil)

	a := newApp(loader)
	a.SetConfigPath("custom.yaml")
	a.SetConfigPath("") // empty keeps the current path
	require.ErrorIs(t, a.Pack(context.Background(), nil, false), domain.ErrNoPackagePlan)
}
