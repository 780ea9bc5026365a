package ports

import (
	"context"

	"go.trai.ch/ship/internal/core/domain"
)

// Signer invokes the external signing helper against the release artifact.
//
//go:generate go run go.uber.org/mock/mockgen -source=signer.go -destination=mocks/mock_signer.go -package=mocks
type Signer interface {
	// Sign signs artifact in place using the credential file resolved
	// against the configured credential directory.
	Sign(ctx context.Context, spec domain.SignSpec, artifact, credentialFile, password string) error
}
