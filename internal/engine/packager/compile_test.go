package packager

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"go.trai.ch/ship/internal/core/domain"
)

// writeOutputs makes the mock executor behave like a compiler: each call
// creates the {dest} file so later runs can see intact outputs.
func writeOutputs(calls *int, mu *sync.Mutex) func(context.Context, domain.Command, []string, io.Writer, io.Writer) error {
	return func(_ context.Context, cmd domain.Command, _ []string, _, _ io.Writer) error {
		mu.Lock()
		*calls++
		mu.Unlock()
		return os.WriteFile(cmd.Argv[2], []byte("compiled"), 0o644)
	}
}

func compilePlan(root string) *domain.PackagePlan {
	return &domain.PackagePlan{Stages: []domain.StageSpec{{
		Name: "finalize",
		Compile: &domain.CompileSpec{
			Root:     root,
			Pattern:  "*.py",
			Levels:   []int{0, 1, 2},
			CacheDir: "__cache__",
			Command:  []string{"compilec", "{source}", "{dest}", "{level}"},
		},
		Jobs: 2,
	}}}
}

func TestCompileProducesEveryLevelThenSkips(t *testing.T) {
	f := newPackagerFixture(t)
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.py"), []byte("pass"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "pkg"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "pkg", "b.py"), []byte("pass"), 0o644))

	var (
		mu    sync.Mutex
		calls int
	)
	f.executor.EXPECT().
		Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(writeOutputs(&calls, &mu)).
		AnyTimes()

	plan := compilePlan(root)
	require.NoError(t, f.packager.Run(context.Background(), plan, nil, false))
	assert.Equal(t, 6, calls) // 2 files x 3 levels

	assert.FileExists(t, filepath.Join(root, "__cache__", "a.opt-0.pyc"))
	assert.FileExists(t, filepath.Join(root, "__cache__", "a.opt-2.pyc"))
	assert.FileExists(t, filepath.Join(root, "pkg", "__cache__", "b.opt-1.pyc"))

	// Unchanged sources: nothing recompiles, even though cache files now
	// exist under the tree (they never match the source pattern walk).
	require.NoError(t, f.packager.Run(context.Background(), plan, nil, false))
	assert.Equal(t, 6, calls)
}

func TestCompileRecompilesChangedFileOnly(t *testing.T) {
	f := newPackagerFixture(t)
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.py"), []byte("pass"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "b.py"), []byte("pass"), 0o644))

	var (
		mu    sync.Mutex
		calls int
	)
	f.executor.EXPECT().
		Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(writeOutputs(&calls, &mu)).
		AnyTimes()

	plan := compilePlan(root)
	require.NoError(t, f.packager.Run(context.Background(), plan, nil, false))
	require.Equal(t, 6, calls)

	require.NoError(t, os.WriteFile(filepath.Join(root, "a.py"), []byte("changed"), 0o644))
	require.NoError(t, f.packager.Run(context.Background(), plan, nil, false))
	assert.Equal(t, 9, calls) // only a.py, at three levels
}

func TestCompileMissingOutputForcesRecompile(t *testing.T) {
	f := newPackagerFixture(t)
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.py"), []byte("pass"), 0o644))

	var (
		mu    sync.Mutex
		calls int
	)
	f.executor.EXPECT().
		Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(writeOutputs(&calls, &mu)).
		AnyTimes()

	plan := compilePlan(root)
	require.NoError(t, f.packager.Run(context.Background(), plan, nil, false))
	require.Equal(t, 3, calls)

	// Deleting one cache artifact invalidates only that level.
	require.NoError(t, os.Remove(filepath.Join(root, "__cache__", "a.opt-1.pyc")))
	require.NoError(t, f.packager.Run(context.Background(), plan, nil, false))
	assert.Equal(t, 4, calls)
}

func TestCachePath(t *testing.T) {
	got := cachePath(filepath.Join("lib", "mod.py"), "__cache__", 2)
	assert.Equal(t, filepath.Join("lib", "__cache__", "mod.opt-2.pyc"), got)
}

func TestInsideCacheDir(t *testing.T) {
	assert.True(t, insideCacheDir(filepath.Join("lib", "__cache__", "mod.opt-0.pyc"), "__cache__"))
	assert.False(t, insideCacheDir(filepath.Join("lib", "mod.py"), "__cache__"))
	assert.False(t, insideCacheDir(filepath.Join("lib", "mod.py"), ""))
}

func TestExpandTemplate(t *testing.T) {
	got := expandTemplate([]string{"compilec", "-O{level}", "{source}", "{dest}"}, "a.py", "out.pyc", 2)
	assert.Equal(t, []string{"compilec", "-O2", "a.py", "out.pyc"}, got)
}
