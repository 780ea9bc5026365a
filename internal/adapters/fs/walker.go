// Package fs provides file system adapters for walking, hashing and
// mirroring trees.
package fs

import (
	iofs "io/fs"
	"iter"
	"path/filepath"
)

// Walker provides file walking functionality.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// WalkFiles yields all files under root whose base name matches pattern,
// in lexical order. An empty pattern matches everything. Version control
// directories are skipped.
func (w *Walker) WalkFiles(root, pattern string) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = filepath.WalkDir(root, func(path string, d iofs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if d.IsDir() {
				if name := d.Name(); name == ".git" || name == ".jj" {
					return filepath.SkipDir
				}
				return nil
			}

			if pattern != "" {
				matched, _ := filepath.Match(pattern, d.Name())
				if !matched {
					return nil
				}
			}

			if !yield(path) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}
