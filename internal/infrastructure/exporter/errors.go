package exporter

import "errors"

var (
	// ErrInvalidConfig indicates invalid worker pool configuration
	ErrInvalidConfig = errors.New("invalid export worker configuration")
	// ErrPoolNotRunning indicates an operation on a stopped worker pool
	ErrPoolNotRunning = errors.New("export worker pool is not running")

	// errJobCancelled signals that a progress write observed the job was
	// cancelled by an operator while the worker was running it.
	errJobCancelled = errors.New("export job was cancelled")
)
