package scheduler

import "errors"

var (
	// ErrDispatcherNotRunning is returned when triggering a sweep on a stopped dispatcher
	ErrDispatcherNotRunning = errors.New("dispatcher is not running")

	// ErrInvalidConfig is returned when dispatcher configuration is invalid
	ErrInvalidConfig = errors.New("invalid dispatcher configuration")
)
