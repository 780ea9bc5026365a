package ports

import "go.trai.ch/ship/internal/core/domain"

// BuildInfoStore persists the input hashes of completed work units.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type BuildInfoStore interface {
	// Get retrieves the build info for a given key.
	// Returns nil, nil if not found.
	Get(key string) (*domain.BuildInfo, error)

	// Put stores the build info.
	Put(info domain.BuildInfo) error
}
