package sign

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/ship/internal/adapters/shell"
	"go.trai.ch/ship/internal/core/ports"
)

// NodeID is the unique identifier for the signer Graft node.
const NodeID graft.ID = "adapter.sign"

func init() {
	graft.Register(graft.Node[ports.Signer]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{shell.NodeID},
		Run: func(ctx context.Context) (ports.Signer, error) {
			executor, err := graft.Dep[ports.Executor](ctx)
			if err != nil {
				return nil, err
			}
			return NewSigner(executor), nil
		},
	})
}
