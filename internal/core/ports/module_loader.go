// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/taskscript/internal/core/domain"
)

// ModuleLoader prepares the compiled form of a script so that tasks can be bound to it.
//
//go:generate go run go.uber.org/mock/mockgen -source=module_loader.go -destination=mocks/mock_module_loader.go -package=mocks
type ModuleLoader interface {
	// Load returns the module holding the entry points declared by script.
	//
	// It returns an error if any entry point cannot be prepared for execution.
	Load(ctx context.Context, script *domain.Script) (domain.Module, error)
}
