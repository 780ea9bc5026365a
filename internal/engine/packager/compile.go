package packager

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"go.trai.ch/zerr"

	"go.trai.ch/ship/internal/core/domain"
	"go.trai.ch/ship/internal/core/ports"
)

// DefaultCompileLevels are the optimization levels produced when the plan
// does not name any.
var DefaultCompileLevels = []int{0, 1, 2}

// compile precompiles every source matching the configured pattern into one
// cache artifact per optimization level. Files whose content hash matches
// the recorded one and whose outputs still exist are skipped, so re-running
// an unchanged tree compiles nothing.
func (p *Packager) compile(ctx context.Context, spec *domain.CompileSpec, jobs int, env []string, force bool, v ports.Vertex) error {
	levels := spec.Levels
	if len(levels) == 0 {
		levels = DefaultCompileLevels
	}

	g, gctx := errgroup.WithContext(ctx)
	if jobs > 0 {
		g.SetLimit(jobs)
	}

	for src := range p.walker.WalkFiles(spec.Root, spec.Pattern) {
		if insideCacheDir(src, spec.CacheDir) {
			continue
		}
		for _, level := range levels {
			g.Go(func() error {
				return p.compileOne(gctx, spec, src, level, env, force, v)
			})
		}
	}

	return g.Wait()
}

func (p *Packager) compileOne(ctx context.Context, spec *domain.CompileSpec, src string, level int, env []string, force bool, v ports.Vertex) error {
	rel, err := filepath.Rel(spec.Root, src)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "source outside compile root"), "path", src)
	}
	key := compileKey(rel, level)

	sum, err := p.hasher.HashFile(src)
	if err != nil {
		return zerr.Wrap(err, "failed to hash source")
	}
	hash := fmt.Sprintf("%016x", sum)

	dest := cachePath(src, spec.CacheDir, level)
	if !force && p.compileUpToDate(key, hash, dest) {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return zerr.Wrap(err, "failed to create cache directory")
	}

	cmd := domain.Command{Argv: expandTemplate(spec.Command, src, dest, level)}
	if err := p.executor.Execute(ctx, cmd, env, v.Stdout(), v.Stderr()); err != nil {
		return zerr.With(zerr.With(zerr.Wrap(err, "compilation failed"), "source", rel), "level", level)
	}

	return p.store.Put(domain.BuildInfo{
		Key:       key,
		InputHash: hash,
		Timestamp: time.Now(),
	})
}

func (p *Packager) compileUpToDate(key, hash, dest string) bool {
	prior, err := p.store.Get(key)
	if err != nil || prior == nil || prior.InputHash != hash {
		return false
	}
	_, err = os.Stat(dest)
	return err == nil
}

func compileKey(rel string, level int) string {
	return "compile:" + filepath.ToSlash(rel) + ":" + strconv.Itoa(level)
}

// cachePath places the compiled artifact next to its source, inside the
// per-directory cache subdirectory: pkg/mod.py at level 1 becomes
// pkg/__cache__/mod.opt-1.pyc for cacheDir "__cache__".
func cachePath(src, cacheDir string, level int) string {
	base := filepath.Base(src)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	name := fmt.Sprintf("%s.opt-%d%sc", stem, level, ext)
	return filepath.Join(filepath.Dir(src), cacheDir, name)
}

func insideCacheDir(path, cacheDir string) bool {
	if cacheDir == "" {
		return false
	}
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if part == cacheDir {
			return true
		}
	}
	return false
}

// expandTemplate substitutes the compile command placeholders.
func expandTemplate(template []string, src, dest string, level int) []string {
	out := make([]string, len(template))
	for i, arg := range template {
		arg = strings.ReplaceAll(arg, "{source}", src)
		arg = strings.ReplaceAll(arg, "{dest}", dest)
		arg = strings.ReplaceAll(arg, "{level}", strconv.Itoa(level))
		out[i] = arg
	}
	return out
}

// flattenEnv renders a stage env map as KEY=VALUE pairs in a stable order.
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
