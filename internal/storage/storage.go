// Package storage persists the client's session across restarts.
//
// The admin client keeps exactly two keys: the bearer token and the JSON
// encoded user. Writes and deletes of several keys are atomic so a crash can
// never leave a token without its user.
package storage

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/storefront/storefront-admin/internal/config"
)

// Persisted keys.
const (
	KeyAccessToken = "accessToken"
	KeyUserData    = "userData"
)

// Storage is a small string key/value store.
type Storage interface {
	// Get returns the value for key and whether it exists.
	Get(ctx context.Context, key string) (string, bool, error)
	// GetMany reads keys from one consistent snapshot. Missing keys are absent from the result.
	GetMany(ctx context.Context, keys ...string) (map[string]string, error)
	// SetMany writes all pairs in one transaction.
	SetMany(ctx context.Context, kv map[string]string) error
	// DeleteMany removes all keys in one transaction. Missing keys are ignored.
	DeleteMany(ctx context.Context, keys ...string) error
	Close() error
}

// Open creates the backend selected by cfg.Driver.
func Open(cfg config.StorageConfig, logger *slog.Logger) (Storage, error) {
	var (
		s   Storage
		err error
	)

	switch cfg.Driver {
	case config.DriverBadger:
		s, err = OpenBadger(cfg.Path)
	case config.DriverMemory:
		s, err = OpenMemory()
	case config.DriverSQLite:
		s, err = OpenSQLite(sqlitePath(cfg.Path))
	case config.DriverRedis:
		s, err = OpenRedis(cfg.RedisAddr, cfg.KeyPrefix)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, err
	}

	if logger != nil {
		logger.Info("Session storage opened", "driver", cfg.Driver, "path", cfg.Path)
	}
	return s, nil
}

// sqlitePath treats an extensionless path as a directory holding session.db.
func sqlitePath(path string) string {
	if filepath.Ext(path) == "" {
		path = filepath.Join(path, "session.db")
	}
	// Open reports the real error if the directory cannot be created.
	_ = os.MkdirAll(filepath.Dir(path), 0o700)
	return path
}
