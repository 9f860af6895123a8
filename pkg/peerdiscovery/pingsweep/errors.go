package pingsweep

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration is matched by every ConfigError through errors.Is
	ErrConfiguration = errors.New("invalid configuration")
	// ErrSchedulerInvariant is the panic value raised when the scheduler
	// observes more outstanding probes than its concurrency limit.
	ErrSchedulerInvariant = errors.New("scheduler invariant violated: too many outstanding probes")
	// ErrNoExecutor is returned when no execution backend is available
	ErrNoExecutor = errors.New("no probe executor available")
)

// ConfigError represents an invalid or contradictory scan input
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// Is reports ErrConfiguration as the error class
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfiguration
}

func configErrorf(field, format string, args ...any) error {
	return &ConfigError{Field: field, Message: fmt.Sprintf(format, args...)}
}
