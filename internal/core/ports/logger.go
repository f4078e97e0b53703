package ports

import (
	"io"

	"go.trai.ch/taskscript/internal/core/domain"
)

// Logger defines the interface for logging.
//
//go:generate go run go.uber.org/mock/mockgen -source=logger.go -destination=mocks/mock_logger.go -package=mocks
type Logger interface {
	Debug(msg string)
	Info(msg string)
	Warn(msg string)
	Error(err error)

	// SetLevel changes the minimum severity that is written.
	SetLevel(level domain.LogLevel)
	// SetOutput redirects subsequent log records to w.
	SetOutput(w io.Writer)
}
