package providers

import (
	"github.com/samber/do/v2"

	"github.com/storefront/storefront-admin/internal/config"
	"github.com/storefront/storefront-admin/internal/logger"
	"github.com/storefront/storefront-admin/internal/resource"
	"github.com/storefront/storefront-admin/internal/session"
)

// ProvideSession provides the session store.
func ProvideSession(i do.Injector) (*session.Store, error) {
	log := do.MustInvoke[*logger.Logger](i)
	st := do.MustInvoke[*StorageHandle](i)
	c := do.MustInvoke[*ClientHandle](i)

	return session.New(st.Storage, c.Client, log.Logger), nil
}

// ProvideCatalog provides the resource stores.
func ProvideCatalog(i do.Injector) (*resource.Catalog, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	c := do.MustInvoke[*ClientHandle](i)

	return resource.NewCatalog(c.Client, resource.CatalogOptions{
		PageSize:      cfg.Catalog.PageSize,
		FetchAllLimit: cfg.Catalog.FetchAllLimit,
		Logger:        log.Logger,
	}), nil
}
