// Package server exposes the site over HTTP with echo.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/onlinelabs/website/internal/apperr"
	"github.com/onlinelabs/website/internal/cache"
	"github.com/onlinelabs/website/internal/composer"
	"github.com/onlinelabs/website/internal/config"
	mw "github.com/onlinelabs/website/internal/middleware"
	"github.com/onlinelabs/website/internal/view"
)

const (
	GracefulShutdownTimeout = 10 * time.Second
	readHeaderTimeout       = 10 * time.Second
)

// Deps are the collaborators the routes call into.
type Deps struct {
	Posts   PostRenderer
	Nodes   NodeRenderer
	Home    HomeLoader
	Authors AuthorLookup
	Contact ContactSubmitter
	View    *view.Engine
	Cache   *cache.Cache
	Site    composer.Site
}

type Server struct {
	Echo *echo.Echo

	cfg  *config.Config
	deps Deps
}

func New(cfg *config.Config, deps Deps) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadHeaderTimeout = readHeaderTimeout

	s := &Server{
		Echo: e,
		cfg:  cfg,
		deps: deps,
	}
	e.HTTPErrorHandler = apperr.GlobalErrorHandler(apperr.WithErrorPage(s.errorPage))

	s.setupMiddlewares()
	s.setupRoutes()
	return s
}

func (s *Server) setupMiddlewares() {
	s.Echo.Pre(middleware.RemoveTrailingSlashWithConfig(middleware.TrailingSlashConfig{
		RedirectCode: http.StatusMovedPermanently,
	}))
	s.Echo.Use(mw.Logger(mw.WithSkipper(func(c echo.Context) bool {
		return c.Path() == "/health" || c.Path() == "/static*"
	})))
	s.Echo.Use(middleware.Recover())
	s.Echo.Use(middleware.Secure())
	s.Echo.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: s.cfg.CorsOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodHead, http.MethodPost},
	}))
	s.Echo.Use(middleware.GzipWithConfig(middleware.GzipConfig{Level: 5}))
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "port", s.cfg.Port)
		if err := s.Echo.Start(":" + s.cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down HTTP server", "timeout", GracefulShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), GracefulShutdownTimeout)
	defer cancel()
	return s.Echo.Shutdown(shutdownCtx)
}

func (s *Server) errorPage(c echo.Context, code int) error {
	body, err := s.deps.View.RenderError(code)
	if err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderCacheControl, "no-store")
	return c.HTMLBlob(code, body)
}
