package fs

import (
	"io"
	iofs "io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/zerr"
)

// Mirror synchronizes trees: changed files are copied with their
// modification times preserved, which keeps re-runs cheap and lets size and
// mtime act as the change check on the next run.
type Mirror struct{}

// NewMirror creates a new Mirror.
func NewMirror() *Mirror {
	return &Mirror{}
}

// Sync copies every file under src into dest, creating directories as
// needed. A destination file with matching size and modification time is
// left alone. When deleteExtra is set, files and directories under dest
// with no counterpart under src are removed.
func (m *Mirror) Sync(src, dest string, deleteExtra bool) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to stat mirror source"), "path", src)
	}
	if !srcInfo.IsDir() {
		return zerr.With(zerr.New("mirror source is not a directory"), "path", src)
	}

	err = filepath.WalkDir(src, func(path string, d iofs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dest, rel)

		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		return m.syncFile(path, target)
	})
	if err != nil {
		return zerr.Wrap(err, "failed to mirror tree")
	}

	if deleteExtra {
		return m.deleteExtraneous(src, dest)
	}
	return nil
}

func (m *Mirror) syncFile(src, dest string) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return err
	}
	if destInfo, err := os.Stat(dest); err == nil {
		if destInfo.Size() == srcInfo.Size() && destInfo.ModTime().Equal(srcInfo.ModTime()) {
			return nil
		}
	}

	if err := copyFile(src, dest, srcInfo.Mode().Perm()); err != nil {
		return err
	}
	// Preserve the source mtime so the next sync sees the file as current.
	return os.Chtimes(dest, srcInfo.ModTime(), srcInfo.ModTime())
}

func (m *Mirror) deleteExtraneous(src, dest string) error {
	var doomed []string
	err := filepath.WalkDir(dest, func(path string, d iofs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(dest, path)
		if err != nil || rel == "." {
			return err
		}
		if _, err := os.Stat(filepath.Join(src, rel)); os.IsNotExist(err) {
			doomed = append(doomed, path)
			if d.IsDir() {
				return filepath.SkipDir
			}
		}
		return nil
	})
	if err != nil {
		return zerr.Wrap(err, "failed to scan for extraneous files")
	}

	for _, path := range doomed {
		if err := os.RemoveAll(path); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to remove extraneous path"), "path", path)
		}
	}
	return nil
}

// CopyFile copies a single file byte for byte, overwriting dest.
func (m *Mirror) CopyFile(src, dest string) error {
	info, err := os.Stat(src)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to stat copy source"), "path", src)
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return zerr.Wrap(err, "failed to create destination directory")
	}
	return copyFile(src, dest, info.Mode().Perm())
}

func copyFile(src, dest string, perm os.FileMode) error {
	in, err := os.Open(src) //nolint:gosec // path is controlled by caller
	if err != nil {
		return err
	}
	defer in.Close() //nolint:errcheck // best effort close in defer

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm) //nolint:gosec // path is controlled by caller
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
