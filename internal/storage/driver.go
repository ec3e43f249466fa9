package storage

import (
	"context"
	"fmt"

	"github.com/edutrack/edutrack-backend/internal/config"
)

// New returns the store selected by cfg.StorageDriver. The s3 driver creates
// its bucket when missing.
func New(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.StorageDriver {
	case config.StorageDriverLocal:
		return NewLocalStore(cfg.UploadDir)
	case config.StorageDriverS3:
		s, err := NewObjectStore(cfg.S3)
		if err != nil {
			return nil, err
		}
		if err := s.EnsureBucket(ctx); err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}
