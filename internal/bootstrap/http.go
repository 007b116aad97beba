package bootstrap

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	httpx "github.com/socialgrid/socialgrid/internal/http"
)

// NewHTTPServer builds the HTTP server with the full middleware chain
// wrapped around the router.
func NewHTTPServer(services *ServiceContainer) *http.Server {
	handler := buildHTTPHandler(services)

	addr := services.Config.HTTP.Addr
	if addr == "" {
		addr = ":8080"
	}

	return &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
}

// buildHTTPHandler assembles the middleware chain. Recovery sits outermost
// so panics in later middleware are still caught; authentication runs after
// logging so denied requests are still logged.
func buildHTTPHandler(services *ServiceContainer) http.Handler {
	router := httpx.NewRouter(httpx.RouterServices{
		Auth:       services.Auth,
		Users:      services.Users,
		Posts:      services.Posts,
		Statistics: services.Statistics,
		BaseURL:    services.Config.HTTP.BaseURL,
	})

	var handler http.Handler = router
	handler = httpx.Authenticate(httpx.AuthenticateOptions{
		Resolver:      services.Auth,
		AllowPrefixes: httpx.AllowPrefixes,
		Logger:        services.Logger,
	})(handler)
	handler = httpx.Logging(services.Logger)(handler)
	handler = httpx.Recover(services.Logger)(handler)
	return handler
}

// ShutdownHTTPServer drains in-flight requests before closing the listener.
func ShutdownHTTPServer(srv *http.Server, logger *slog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("http server shutdown", "error", err)
		return
	}
	logger.Info("http server stopped")
}
