package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/storeget/pkg/domain/interfaces"
)

// config holds internal HTTP server configuration
type config struct {
	addr        string
	downloadDir string
}

// Option is a functional option for Server configuration
type Option func(*config)

// WithAddr sets the server address
func WithAddr(addr string) Option {
	return func(c *config) {
		c.addr = addr
	}
}

// WithDownloadDir sets the destination directory for API-triggered downloads
func WithDownloadDir(dir string) Option {
	return func(c *config) {
		c.downloadDir = dir
	}
}

// Server represents the HTTP server
type Server struct {
	*http.Server
}

// NewServer creates a new HTTP server
func NewServer(
	ctx context.Context,
	resolveUC interfaces.ResolveUseCase,
	downloadUC interfaces.DownloadUseCase,
	opts ...Option,
) (*Server, error) {
	// Default configuration
	cfg := &config{
		addr:        "localhost:8080",
		downloadDir: "downloads",
	}

	// Apply options
	for _, opt := range opts {
		opt(cfg)
	}

	router := chi.NewRouter()

	// Global middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(LoggingMiddleware(ctx))
	router.Use(middleware.Recoverer)

	// Health check
	router.Get("/health", handleHealth)

	// Resolve/download API
	apiHandler := NewAPIHandler(resolveUC, downloadUC, cfg.downloadDir)
	router.Post("/api/resolve", apiHandler.Resolve)
	router.Post("/api/downloads", apiHandler.Download)

	server := &Server{
		Server: &http.Server{
			Addr:              cfg.addr,
			Handler:           router,
			ReadHeaderTimeout: 15 * time.Second,
		},
	}

	return server, nil
}
