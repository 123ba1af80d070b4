package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func TestLogger(t *testing.T) {
	buf := captureLogs(t)

	e := echo.New()
	e.Use(Logger(WithSkipper(func(c echo.Context) bool {
		return c.Path() == "/health"
	})))
	e.GET("/blog", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })
	e.GET("/kapot", func(c echo.Context) error { return echo.NewHTTPError(http.StatusBadGateway, "relay down") })
	e.GET("/health", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	for _, path := range []string{"/blog", "/kapot", "/health"} {
		e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	out := buf.String()
	if !strings.Contains(out, "msg=REQUEST ") || !strings.Contains(out, "uri=/blog") {
		t.Errorf("missing request record:\n%s", out)
	}
	if !strings.Contains(out, "msg=REQUEST_ERROR") || !strings.Contains(out, "status=502") {
		t.Errorf("missing error record:\n%s", out)
	}
	if strings.Contains(out, "uri=/health") {
		t.Errorf("skipped route was logged:\n%s", out)
	}
}
