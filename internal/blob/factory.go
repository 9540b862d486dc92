package blob

import (
	"fmt"

	"github.com/jipsifred/Vorlesungen/internal/config"
	"github.com/jipsifred/Vorlesungen/internal/library"
)

// NewStoreFromConfig creates a BlobStore implementation based on the
// blob config type.
func NewStoreFromConfig(cfg config.BlobConfig) (library.BlobStore, error) {
	switch cfg.Type {
	case "memory":
		return NewMemoryStore(cfg.Name), nil
	case "filesystem":
		if cfg.FSRoot == "" {
			return nil, fmt.Errorf("filesystem blob store requires fs_root to be set")
		}
		return NewFilesystemStore(cfg.FSRoot)
	case "s3":
		if cfg.S3Endpoint == "" || cfg.S3Bucket == "" {
			return nil, fmt.Errorf("s3 blob store requires s3_endpoint and s3_bucket to be set")
		}
		return NewS3Store(S3Options{
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			UseSSL:    cfg.S3UseSSL,
		})
	default:
		return nil, fmt.Errorf("unknown blob store type: %s", cfg.Type)
	}
}
