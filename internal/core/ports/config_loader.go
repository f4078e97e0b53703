package ports

import "go.trai.ch/taskscript/internal/core/domain"

// ConfigLoader defines the interface for loading an analyzed build script.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the task manifest at path and returns the script it describes.
	Load(path string) (*domain.Script, error)
}
