// Package web is the HTTP surface the SPA talks to. Handlers are thin:
// they bind the request, delegate to the gateway and the session manager,
// and hand the result envelope back to the browser. No business logic and
// no rendering live here -- the page layer is a static asset.
package web

// LoginRequest holds the credentials submitted by the login form.
type LoginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// RegisterRequest holds the profile submitted by the registration form.
// Field names mirror the upstream register contract.
type RegisterRequest struct {
	Email           string `json:"email" form:"email"`
	Password        string `json:"password" form:"password"`
	ConfirmPassword string `json:"confirmPassword" form:"confirmPassword"`
	FirstName       string `json:"firstName" form:"firstName"`
	LastName        string `json:"lastName" form:"lastName"`
	UserName        string `json:"userName" form:"userName"`
}

// passwordMismatchMessage is surfaced when the registration passwords
// differ. This is a client-local validation failure: the gateway is never
// invoked for it.
const passwordMismatchMessage = "Passwords don't match"
