package apperr

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// PageRenderer writes an HTML error page with the given status code.
type PageRenderer func(c echo.Context, code int) error

type HandlerOpt func(*handlerConfig)

type handlerConfig struct {
	page PageRenderer
}

// WithErrorPage renders HTML for errors on page routes instead of JSON.
func WithErrorPage(render PageRenderer) HandlerOpt {
	return func(cfg *handlerConfig) {
		cfg.page = render
	}
}

// GlobalErrorHandler answers validation errors with 400, echo HTTP errors
// with their own code and everything else with 500. Routes under /api/
// always get JSON.
func GlobalErrorHandler(opts ...HandlerOpt) echo.HTTPErrorHandler {
	var cfg handlerConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var ve *ValidationError
		if errors.As(err, &ve) {
			_ = c.JSON(http.StatusBadRequest, map[string]any{
				"error":  ve.Message,
				"title":  "validation error",
				"fields": ve.Fields,
			})
			return
		}

		code := http.StatusInternalServerError
		msg := "internal server error"
		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
			msg = fmt.Sprintf("%v", he.Message)
		} else {
			slog.Error("Unhandled error", "uri", c.Request().RequestURI, "error", err)
		}

		if cfg.page != nil && wantsHTML(c) {
			if rerr := cfg.page(c, code); rerr != nil {
				slog.Error("Failed to render error page", "code", code, "error", rerr)
				_ = c.String(code, http.StatusText(code))
			}
			return
		}
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, map[string]string{"error": msg})
	}
}

func wantsHTML(c echo.Context) bool {
	path := c.Request().URL.Path
	if strings.HasPrefix(path, "/api/") || path == "/health" {
		return false
	}
	return c.Request().Method == http.MethodGet || c.Request().Method == http.MethodHead
}
