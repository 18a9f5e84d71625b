// Package storage provides object storage implementations for export artifacts.
package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/atelier/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// ObjectStore persists export artifacts and hands out download URLs.
// Artifacts are addressed by storage key; jobs record the key and callers
// presign a fresh download URL each time one is requested.
type ObjectStore interface {
	// Upload stores an artifact under the given key
	Upload(ctx context.Context, key string, data []byte, contentType string) error

	// PresignDownload returns a time-limited download URL for an artifact
	PresignDownload(ctx context.Context, key string) (string, time.Time, error)

	// ObjectExists checks whether an artifact is present
	ObjectExists(ctx context.Context, key string) (bool, error)

	// DeleteObject removes an artifact
	DeleteObject(ctx context.Context, key string) error
}

// NewObjectStore creates the store selected by the configured driver
func NewObjectStore(cfg *config.StorageConfig, logger *zap.Logger) (ObjectStore, error) {
	switch cfg.Driver {
	case "s3":
		return NewS3ObjectStore(cfg, WithLogger(logger))
	case "stub":
		return NewStubObjectStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver: %q", cfg.Driver)
	}
}
