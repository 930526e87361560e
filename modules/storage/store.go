package storage

import (
	"context"
	"fmt"

	"github.com/grafana/federator/pkg/filestore"
	"github.com/grafana/federator/pkg/filestore/azure"
	"github.com/grafana/federator/pkg/filestore/gcs"
	"github.com/grafana/federator/pkg/filestore/local"
	"github.com/grafana/federator/pkg/filestore/s3"
)

// NewProvider builds the producer side file source for the configured
// backend.
func NewProvider(ctx context.Context, cfg Config) (filestore.FileProvider, error) {
	switch cfg.Backend {
	case BackendLocal:
		return local.NewProvider(cfg.Local)
	case BackendS3:
		return s3.NewProvider(cfg.S3)
	case BackendGCS:
		return gcs.NewProvider(ctx, cfg.GCS)
	case BackendAzure:
		return azure.NewProvider(cfg.Azure)
	default:
		return nil, fmt.Errorf("unknown file transfer backend %q", cfg.Backend)
	}
}

// NewReceivedStorage builds the consumer side destination for assembled
// files.
func NewReceivedStorage(ctx context.Context, cfg Config) (filestore.ReceivedFileStorage, error) {
	switch cfg.Backend {
	case BackendLocal:
		return local.NewStorage(cfg.Local)
	case BackendS3:
		return s3.NewStorage(cfg.S3)
	case BackendGCS:
		return gcs.NewStorage(ctx, cfg.GCS)
	case BackendAzure:
		return azure.NewStorage(cfg.Azure)
	default:
		return nil, fmt.Errorf("unknown file transfer backend %q", cfg.Backend)
	}
}
