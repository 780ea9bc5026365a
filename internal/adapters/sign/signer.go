// Package sign invokes the external signing helper on a built artifact.
package sign

import (
	"context"
	"os"
	"path/filepath"

	"go.trai.ch/zerr"

	"go.trai.ch/ship/internal/core/domain"
	"go.trai.ch/ship/internal/core/ports"
)

// Signer implements ports.Signer by running the configured signing tool
// through the shell executor. The credential file name is resolved against
// the plan's restricted credential directory; the caller never passes a
// full path.
type Signer struct {
	executor ports.Executor
}

// NewSigner creates a new Signer.
func NewSigner(executor ports.Executor) *Signer {
	return &Signer{executor: executor}
}

// Sign mutates artifact in place using the tool from spec. The credential
// file must exist under spec.CredentialDir before the tool is launched so
// a typo fails with a readable error instead of the tool's own noise.
func (s *Signer) Sign(ctx context.Context, spec domain.SignSpec, artifact, credentialFile, password string) error {
	credential := filepath.Join(spec.CredentialDir, credentialFile)
	if _, err := os.Stat(credential); err != nil {
		return zerr.With(
			zerr.Wrap(err, "credential file not readable"),
			"credential", credential,
		)
	}

	cmd := domain.Command{
		Argv: []string{spec.Tool, credential, password, artifact},
	}
	if err := s.executor.Execute(ctx, cmd, nil, nil, nil); err != nil {
		return zerr.With(
			zerr.Wrap(err, "signing tool failed"),
			"artifact", artifact,
		)
	}
	return nil
}

var _ ports.Signer = (*Signer)(nil)
