package fs

import (
	iofs "io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/zerr"
)

// ForceExecutable sets mode 0755 on every file under dir. The upstream build
// tool loses the executable bit when staging, so the bin directories need it
// restored after mirroring.
func (m *Mirror) ForceExecutable(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return zerr.With(zerr.Wrap(err, "failed to stat bin directory"), "path", dir)
	}
	if !info.IsDir() {
		return zerr.With(zerr.New("bin path is not a directory"), "path", dir)
	}

	err = filepath.WalkDir(dir, func(path string, d iofs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		return os.Chmod(path, 0o755) //nolint:gosec // executable bit is the point
	})
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to fix permissions"), "path", dir)
	}
	return nil
}
