package shell

import (
	"context"

	"github.com/grindlemire/graft"
	"go.husk.sh/husk/internal/adapters/logger"
	"go.husk.sh/husk/internal/core/ports"
)

const (
	// ExecutorNodeID is the unique identifier for the executor Graft node.
	ExecutorNodeID graft.ID = "adapter.shell.executor"

	// RealizerNodeID is the unique identifier for the realizer Graft node.
	RealizerNodeID graft.ID = "adapter.shell.realizer"

	// InterceptorNodeID is the unique identifier for the interceptor Graft node.
	InterceptorNodeID graft.ID = "adapter.shell.interceptor"
)

func init() {
	graft.Register(graft.Node[ports.Executor]{
		ID:        ExecutorNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.Executor, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewExecutor(log), nil
		},
	})

	graft.Register(graft.Node[ports.Realizer]{
		ID:        RealizerNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.Realizer, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewRealizer(log), nil
		},
	})

	graft.Register(graft.Node[ports.Interceptor]{
		ID:        InterceptorNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{ExecutorNodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.Interceptor, error) {
			executor, err := graft.Dep[ports.Executor](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewInterceptor(executor, log), nil
		},
	})
}
