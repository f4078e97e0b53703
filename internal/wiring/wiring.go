// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/taskscript/internal/adapters/config"
	_ "go.trai.ch/taskscript/internal/adapters/logger"
	_ "go.trai.ch/taskscript/internal/adapters/shell"
	_ "go.trai.ch/taskscript/internal/adapters/telemetry"
	// Register app and engine nodes.
	_ "go.trai.ch/taskscript/internal/app"
	_ "go.trai.ch/taskscript/internal/engine/scheduler"
)
