package providers

import (
	"context"
	"errors"
	"net/http"

	"github.com/samber/do/v2"

	"github.com/desperati0n/ismism/internal/api"
	"github.com/desperati0n/ismism/internal/config"
	"github.com/desperati0n/ismism/internal/logger"
	"github.com/desperati0n/ismism/internal/ratelimit"
	"github.com/desperati0n/ismism/internal/service"
)

// WriteLimiterHandle wraps the per-client write rate limiter.
type WriteLimiterHandle struct {
	*ratelimit.KeyedRateLimiter
}

// Shutdown implements do.Shutdownable.
func (h *WriteLimiterHandle) Shutdown() error {
	h.Stop()
	return nil
}

// ProvideWriteLimiter provides the rate limiter for mutating
// interaction endpoints.
func ProvideWriteLimiter(i do.Injector) (*WriteLimiterHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)

	return &WriteLimiterHandle{
		KeyedRateLimiter: ratelimit.New(cfg.Limits.WriteRPS, cfg.Limits.WriteBurst),
	}, nil
}

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

// ProvideHTTPServer provides the HTTP server and starts listening in
// the background.
func ProvideHTTPServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	catalogService := do.MustInvoke[*service.CatalogService](i)
	interactionService := do.MustInvoke[*service.InteractionService](i)
	limiterHandle := do.MustInvoke[*WriteLimiterHandle](i)

	handler := api.NewServer(catalogService, interactionService, limiterHandle.KeyedRateLimiter, log.Logger)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("HTTP server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("HTTP server failed")
		}
	}()

	return &HTTPServerHandle{Server: server}, nil
}
