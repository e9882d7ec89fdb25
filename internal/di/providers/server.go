package providers

import (
	"context"
	"errors"
	"net/http"

	"github.com/samber/do/v2"

	"github.com/JeelMungra28/BookValley/internal/api"
	"github.com/JeelMungra28/BookValley/internal/auth"
	"github.com/JeelMungra28/BookValley/internal/config"
	"github.com/JeelMungra28/BookValley/internal/logger"
	"github.com/JeelMungra28/BookValley/internal/service"
)

// HTTPServerHandle wraps http.Server with Shutdownable.
type HTTPServerHandle struct {
	*http.Server
}

// Shutdown implements do.Shutdownable.
func (h *HTTPServerHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return h.Server.Shutdown(ctx)
}

// ProvideHTTPServer provides the HTTP server.
func ProvideHTTPServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	tokenService := do.MustInvoke[*auth.TokenService](i)
	authService := do.MustInvoke[*service.AuthService](i)
	cartService := do.MustInvoke[*service.CartService](i)
	wishlistService := do.MustInvoke[*service.WishlistService](i)
	searchService := do.MustInvoke[*service.SearchService](i)
	catalogService := do.MustInvoke[*service.CatalogService](i)

	handler := api.NewServer(
		cfg,
		storeHandle.Store,
		tokenService,
		authService,
		cartService,
		wishlistService,
		searchService,
		catalogService,
		log.Logger,
	)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start in background
	go func() {
		log.Info("HTTP server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP server error", "error", err)
		}
	}()

	return &HTTPServerHandle{Server: srv}, nil
}
