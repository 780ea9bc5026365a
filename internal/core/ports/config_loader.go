package ports

import "go.trai.ch/ship/internal/core/domain"

// ConfigLoader loads the plan file.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the plan from the given path.
	Load(path string) (*domain.Plan, error)
}
