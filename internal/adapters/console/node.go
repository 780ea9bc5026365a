package console

import (
	"context"
	"io"

	"github.com/grindlemire/graft"
	"go.trai.ch/ship/internal/core/ports"
	"go.trai.ch/ship/internal/tui"
)

// NodeID is the unique identifier for the console Graft node.
const NodeID graft.ID = "adapter.console"

func init() {
	graft.Register(graft.Node[ports.Console]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.Console, error) {
			// The live view owns the terminal when it is enabled.
			if tui.Enabled() {
				return NewWithWriter(io.Discard, true), nil
			}
			return New(), nil
		},
	})
}
