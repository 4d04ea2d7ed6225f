package content

import (
	"context"
	"fmt"

	"vfs-go/internal/config"
)

// NewStoreFromConfig creates a Store implementation based on the content config type.
// When cfg.Encrypted is set, the store is wrapped with the provided encryptor.
func NewStoreFromConfig(ctx context.Context, cfg config.ContentConfig, enc Encryptor) (Store, error) {
	var (
		store Store
		err   error
	)
	switch cfg.Type {
	case "memory":
		store = NewMemoryStore(cfg.Name)
	case "s3":
		store, err = NewS3Store(ctx, S3StoreConfig{
			Bucket:          cfg.S3Bucket,
			KeyPrefix:       cfg.S3Prefix,
			Region:          cfg.S3Region,
			Endpoint:        cfg.S3Endpoint,
			AccessKeyID:     cfg.S3AccessKey,
			SecretAccessKey: cfg.S3SecretKey,
		})
	case "filesystem":
		if cfg.FSRoot == "" {
			return nil, fmt.Errorf("filesystem content store requires fs_root to be set")
		}
		store, err = NewFileSystemStore(cfg.Name, cfg.FSRoot)
	default:
		return nil, fmt.Errorf("unknown content store type: %s", cfg.Type)
	}
	if err != nil {
		return nil, err
	}

	if cfg.Encrypted {
		if enc == nil {
			return nil, fmt.Errorf("content store %s requires encryption but no encryptor is configured", cfg.Name)
		}
		return NewEncryptedStore(store, enc)
	}
	return store, nil
}
