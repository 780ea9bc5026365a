package ports

// Hasher computes content hashes for incremental-skip decisions.
//
//go:generate go run go.uber.org/mock/mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type Hasher interface {
	// HashFile computes the content hash of a single file.
	HashFile(path string) (uint64, error)

	// HashTree computes a single hash over every file under root whose name
	// matches pattern. An empty pattern matches everything. The hash covers
	// relative paths and file contents, so renames invalidate it too.
	HashTree(root, pattern string) (string, error)
}
