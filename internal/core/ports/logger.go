// Package ports defines the core interfaces for the application.
package ports

// Logger defines the interface for logging.
//
//go:generate mockgen -source=logger.go -destination=mocks/mock_logger.go -package=mocks
type Logger interface {
	// Status reports progress as a cargo-style line, e.g. "Compiling core".
	Status(verb, msg string)
	Info(msg string)
	Warn(msg string)
	Error(err error)
}
