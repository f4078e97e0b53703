package shell

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/taskscript/internal/adapters/logger"
	"go.trai.ch/taskscript/internal/core/ports"
)

// NodeID is the unique identifier for the module loader Graft node.
const NodeID graft.ID = "adapter.module_loader"

func init() {
	graft.Register(graft.Node[ports.ModuleLoader]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.ModuleLoader, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewLoader(log), nil
		},
	})
}
