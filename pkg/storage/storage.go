package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/atelierlabs/storefront/pkg/config"
)

// Well-known keys shared by the cart and session services.
const (
	KeyCart  = "cart"
	KeyToken = "token"
	KeyUser  = "user"
)

// ErrNotFound is returned when a key has no stored value.
var ErrNotFound = errors.New("storage: key not found")

// Store is the durable local key-value contract backing the cart and the
// session. Implementations must treat absent keys as ErrNotFound and must
// make Put visible to a subsequent Get as soon as it returns.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// New builds the store selected by configuration.
func New(ctx context.Context, cfg *config.Config) (Store, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config required")
	}
	switch cfg.Storage.Normalized() {
	case config.StorageBackendFile:
		return NewFileStore(cfg.Storage.Dir)
	case config.StorageBackendSQLite:
		return NewSQLiteStore(cfg.Storage.SQLitePath)
	case config.StorageBackendRedis:
		return NewRedisStore(ctx, cfg.Redis)
	}
	return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
}
