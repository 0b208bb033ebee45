package app

import (
	"context"

	"github.com/grindlemire/graft"

	"go.husk.sh/husk/internal/adapters/catalog"
	"go.husk.sh/husk/internal/adapters/config"
	"go.husk.sh/husk/internal/adapters/fs"
	"go.husk.sh/husk/internal/adapters/logger"
	"go.husk.sh/husk/internal/adapters/opvault"
	"go.husk.sh/husk/internal/adapters/shell"
	"go.husk.sh/husk/internal/adapters/telemetry"
	"go.husk.sh/husk/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"

	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components contains the initialized application components the CLI layer
// needs.
type Components struct {
	App    *App
	Logger ports.Logger
}

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			catalog.ResolverNodeID,
			catalog.LockStoreNodeID,
			fs.HasherNodeID,
			shell.RealizerNodeID,
			shell.ExecutorNodeID,
			shell.InterceptorNodeID,
			opvault.NodeID,
			telemetry.TracerNodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			application, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return &Components{App: application, Logger: log}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	resolver, err := graft.Dep[ports.CatalogResolver](ctx)
	if err != nil {
		return nil, err
	}

	locks, err := graft.Dep[ports.LockStore](ctx)
	if err != nil {
		return nil, err
	}

	hasher, err := graft.Dep[ports.Hasher](ctx)
	if err != nil {
		return nil, err
	}

	realizer, err := graft.Dep[ports.Realizer](ctx)
	if err != nil {
		return nil, err
	}

	executor, err := graft.Dep[ports.Executor](ctx)
	if err != nil {
		return nil, err
	}

	interceptor, err := graft.Dep[ports.Interceptor](ctx)
	if err != nil {
		return nil, err
	}

	vault, err := graft.Dep[ports.VaultClient](ctx)
	if err != nil {
		return nil, err
	}

	tracer, err := graft.Dep[ports.Tracer](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	builder := NewBuilder(resolver, locks, hasher, log)
	return New(loader, builder, realizer, executor, interceptor, vault, tracer, log), nil
}
