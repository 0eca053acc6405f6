package web

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/cinesocial/webclient/internal/middleware"
	"github.com/cinesocial/webclient/internal/session"
)

// RegisterRoutes sets up all SPA-facing routes on the given Echo instance.
// Auth endpoints are public; the movie catalog requires a session.
//
// Login and register are rate-limited per IP to slow down brute-force and
// credential stuffing against the upstream service.
func RegisterRoutes(e *echo.Echo, h *Handler, sessions *session.Manager) {
	api := e.Group("/api")

	// Public routes -- no session required.
	api.POST("/auth/login", h.Login, middleware.RateLimit(10, time.Minute))
	api.POST("/auth/register", h.Register, middleware.RateLimit(5, time.Minute))
	api.POST("/auth/logout", h.Logout)
	api.GET("/auth/session", h.Session)

	// Catalog routes -- session required.
	authed := api.Group("/movies", RequireSession(sessions))
	authed.GET("", h.ListMovies)
	authed.GET("/:id", h.MovieDetail)
}
