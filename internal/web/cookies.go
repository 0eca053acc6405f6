package web

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cinesocial/webclient/internal/session"
)

// sessionCookieName is the HTTP cookie holding the browser's session ID.
// The cookie carries the ID only -- credentials live in the durable store.
const sessionCookieName = "cinesocial_session"

// sessionCookieMaxAge matches the durable store's default TTL window.
const sessionCookieMaxAge = 30 * 24 * 60 * 60 // 30 days in seconds

// getSessionID reads the session ID from the cookie, or "" if absent.
func getSessionID(c echo.Context) string {
	cookie, err := c.Cookie(sessionCookieName)
	if err != nil || cookie.Value == "" {
		return ""
	}
	return cookie.Value
}

// ensureSessionID returns the request's session ID, minting a new one and
// setting the cookie when the browser doesn't have one yet.
func ensureSessionID(c echo.Context) string {
	if sid := getSessionID(c); sid != "" {
		return sid
	}
	sid := session.NewSessionID()
	setSessionCookie(c, sid)
	return sid
}

// setSessionCookie sets the session cookie on the response. HttpOnly so JS
// can't read it, Secure behind TLS, SameSite=Lax.
func setSessionCookie(c echo.Context, sid string) {
	req := c.Request()
	c.SetCookie(&http.Cookie{
		Name:     sessionCookieName,
		Value:    sid,
		Path:     "/",
		HttpOnly: true,
		Secure:   req.TLS != nil || req.Header.Get("X-Forwarded-Proto") == "https",
		SameSite: http.SameSiteLaxMode,
		MaxAge:   sessionCookieMaxAge,
	})
}

// clearSessionCookie removes the session cookie by setting MaxAge to -1.
func clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}
