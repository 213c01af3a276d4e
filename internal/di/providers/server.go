package providers

import (
	"context"
	"errors"
	"net/http"

	"github.com/samber/do/v2"

	"github.com/storefront/storefront-admin/internal/config"
	"github.com/storefront/storefront-admin/internal/console"
	"github.com/storefront/storefront-admin/internal/logger"
	"github.com/storefront/storefront-admin/internal/resource"
	"github.com/storefront/storefront-admin/internal/session"
)

// ConsoleServerHandle wraps the console's http.Server with Shutdownable.
type ConsoleServerHandle struct {
	*http.Server
	errs chan error
}

// Shutdown implements do.Shutdownable.
func (h *ConsoleServerHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return h.Server.Shutdown(ctx)
}

// Err reports a listener failure. It is never closed.
func (h *ConsoleServerHandle) Err() <-chan error {
	return h.errs
}

// ProvideConsoleServer provides the local admin console and starts listening.
func ProvideConsoleServer(i do.Injector) (*ConsoleServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	sess := do.MustInvoke[*session.Store](i)
	catalog := do.MustInvoke[*resource.Catalog](i)
	c := do.MustInvoke[*ClientHandle](i)

	handler := console.NewServer(sess, catalog, c.Client, console.Options{
		AllowedOrigins: cfg.Console.AllowedOrigins,
		Logger:         log.Logger,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Console.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Console.ReadTimeout,
		WriteTimeout: cfg.Console.WriteTimeout,
	}
	h := &ConsoleServerHandle{Server: srv, errs: make(chan error, 1)}

	srvLog := log.WithField("addr", srv.Addr)

	// Start in background
	go func() {
		srvLog.Info("Console server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			srvLog.WithError(err).Error("Console server error")
			h.errs <- err
		}
	}()

	return h, nil
}
