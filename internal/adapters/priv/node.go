package priv

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/ship/internal/core/ports"
)

// NodeID is the unique identifier for the elevation checker Graft node.
const NodeID graft.ID = "adapter.priv"

func init() {
	graft.Register(graft.Node[ports.ElevationChecker]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.ElevationChecker, error) {
			return NewChecker(), nil
		},
	})
}
