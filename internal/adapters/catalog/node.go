package catalog

import (
	"context"

	"github.com/grindlemire/graft"

	"go.husk.sh/husk/internal/adapters/logger"
	"go.husk.sh/husk/internal/core/ports"
)

const (
	ResolverNodeID  graft.ID = "adapter.catalog.resolver"
	LockStoreNodeID graft.ID = "adapter.catalog.lock_store"
)

func init() {
	graft.Register(graft.Node[ports.CatalogResolver]{
		ID:        ResolverNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.CatalogResolver, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewResolver(log)
		},
	})

	graft.Register(graft.Node[ports.LockStore]{
		ID:        LockStoreNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.LockStore, error) {
			return NewLockStore(), nil
		},
	})
}
