package web

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cinesocial/webclient/internal/apperror"
	"github.com/cinesocial/webclient/internal/session"
)

// Context keys for session data injected by RequireSession.
const (
	contextKeySession   = "web_session"
	contextKeySessionID = "web_session_id"
)

// RequireSession returns middleware that hydrates session state from the
// durable store and injects it into the request context. Hydration always
// completes before the handler runs, so dependents never observe an
// unknown state. Anonymous requests get 401 JSON.
func RequireSession(sessions *session.Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sid := getSessionID(c)
			if sid == "" {
				return unauthenticated(c)
			}

			sess, err := sessions.Hydrate(c.Request().Context(), sid)
			if err != nil {
				return apperror.NewInternal(err)
			}
			if !sess.Authenticated() {
				// Stale cookie with no backing state -- clear it.
				clearSessionCookie(c)
				return unauthenticated(c)
			}

			c.Set(contextKeySession, sess)
			c.Set(contextKeySessionID, sid)

			return next(c)
		}
	}
}

// unauthenticated answers an anonymous request to a protected endpoint.
func unauthenticated(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, map[string]string{
		"error":   "unauthorized",
		"message": "authentication required",
	})
}

// CurrentSession retrieves the hydrated session from the Echo context.
// Returns the zero (anonymous) session if RequireSession was not applied.
func CurrentSession(c echo.Context) session.Session {
	sess, ok := c.Get(contextKeySession).(session.Session)
	if !ok {
		return session.Session{Status: session.StatusAnonymous}
	}
	return sess
}

// CurrentSessionID retrieves the session ID from the Echo context, falling
// back to the cookie when the middleware was not applied.
func CurrentSessionID(c echo.Context) string {
	if sid, ok := c.Get(contextKeySessionID).(string); ok && sid != "" {
		return sid
	}
	return getSessionID(c)
}
