package pipeline

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/ship/internal/adapters/console"
	"go.trai.ch/ship/internal/adapters/fs"
	"go.trai.ch/ship/internal/adapters/logger"
	"go.trai.ch/ship/internal/adapters/priv"
	"go.trai.ch/ship/internal/adapters/proc"
	"go.trai.ch/ship/internal/adapters/shell"
	"go.trai.ch/ship/internal/adapters/sign"
	"go.trai.ch/ship/internal/adapters/telemetry/progrock"
	"go.trai.ch/ship/internal/adapters/toolchain"
	"go.trai.ch/ship/internal/core/ports"
)

// NodeID is the unique identifier for the release pipeline Graft node.
const NodeID graft.ID = "engine.pipeline"

func init() {
	graft.Register(graft.Node[*Runner]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			shell.NodeID,
			toolchain.NodeID,
			priv.NodeID,
			proc.NodeID,
			sign.NodeID,
			fs.MirrorNodeID,
			progrock.NodeID,
			console.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Runner, error) {
			executor, err := graft.Dep[ports.Executor](ctx)
			if err != nil {
				return nil, err
			}
			locator, err := graft.Dep[ports.ToolchainLocator](ctx)
			if err != nil {
				return nil, err
			}
			elevation, err := graft.Dep[ports.ElevationChecker](ctx)
			if err != nil {
				return nil, err
			}
			terminator, err := graft.Dep[ports.ProcessTerminator](ctx)
			if err != nil {
				return nil, err
			}
			signer, err := graft.Dep[ports.Signer](ctx)
			if err != nil {
				return nil, err
			}
			mirror, err := graft.Dep[*fs.Mirror](ctx)
			if err != nil {
				return nil, err
			}
			telemetry, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}
			cons, err := graft.Dep[ports.Console](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewRunner(executor, locator, elevation, terminator, signer, mirror, telemetry, cons, log), nil
		},
	})
}
