package app

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/cinesocial/webclient/internal/session"
	"github.com/cinesocial/webclient/internal/web"
)

// RegisterRoutes sets up all application routes. Public routes are
// registered directly; the JSON API is delegated to the web handler.
func (a *App) RegisterRoutes(h *web.Handler, sessions *session.Manager) {
	e := a.Echo

	// Health check endpoint for Docker health monitoring.
	e.GET("/healthz", func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()

		if err := a.Redis.Ping(ctx).Err(); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{
				"status": "degraded",
				"redis":  err.Error(),
			})
		}
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// JSON API consumed by the SPA.
	web.RegisterRoutes(e, h, sessions)
}
