package providers

import (
	"github.com/samber/do/v2"

	"github.com/storefront/storefront-admin/internal/config"
	"github.com/storefront/storefront-admin/internal/logger"
	"github.com/storefront/storefront-admin/internal/storage"
)

// StorageHandle wraps the session storage with shutdown capability.
type StorageHandle struct {
	storage.Storage
}

// Shutdown implements do.Shutdownable.
func (h *StorageHandle) Shutdown() error {
	return h.Close()
}

// ProvideStorage opens the configured session storage backend.
func ProvideStorage(i do.Injector) (*StorageHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	st, err := storage.Open(cfg.Storage, log.Logger)
	if err != nil {
		return nil, err
	}

	return &StorageHandle{Storage: st}, nil
}
