package opvault

import (
	"context"

	"github.com/grindlemire/graft"
	"go.husk.sh/husk/internal/adapters/logger"
	"go.husk.sh/husk/internal/core/ports"
)

// NodeID is the unique identifier for the vault client Graft node.
const NodeID graft.ID = "adapter.opvault"

func init() {
	graft.Register(graft.Node[ports.VaultClient]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.VaultClient, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewClient(log), nil
		},
	})
}
