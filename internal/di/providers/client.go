package providers

import (
	"github.com/samber/do/v2"

	"github.com/storefront/storefront-admin/internal/client"
	"github.com/storefront/storefront-admin/internal/config"
	"github.com/storefront/storefront-admin/internal/logger"
	"github.com/storefront/storefront-admin/internal/session"
)

// ClientHandle wraps the REST client with Shutdownable.
type ClientHandle struct {
	*client.Client
}

// Shutdown implements do.Shutdownable.
func (h *ClientHandle) Shutdown() error {
	h.Client.Close()
	return nil
}

// ProvideClient provides the storefront API client. The bearer token is read
// from session storage on every request.
func ProvideClient(i do.Injector) (*ClientHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	st := do.MustInvoke[*StorageHandle](i)

	c, err := client.New(client.Options{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.Timeout,
		Tokens:  session.PersistedToken(st.Storage),
		RPS:     cfg.API.RateLimit,
		Burst:   cfg.API.RateBurst,
		Logger:  log.Logger,
	})
	if err != nil {
		return nil, err
	}

	return &ClientHandle{Client: c}, nil
}
