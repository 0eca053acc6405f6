package web

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cinesocial/webclient/internal/apperror"
	"github.com/cinesocial/webclient/internal/gateway"
	"github.com/cinesocial/webclient/internal/movies"
	"github.com/cinesocial/webclient/internal/session"
)

// Gateway is the slice of the API client the handlers depend on.
// *gateway.Client satisfies it; tests substitute a stub.
type Gateway interface {
	Login(ctx context.Context, email, password string) gateway.Result[gateway.AuthPayload]
	Register(ctx context.Context, req gateway.RegisterRequest) gateway.Result[gateway.AuthPayload]
	ListMovies(ctx context.Context, p gateway.ListParams) gateway.Result[gateway.MovieList]
}

// Handler handles all SPA-facing endpoints: auth, session hydration, and
// the movie catalog pass-through.
type Handler struct {
	gw       Gateway
	sessions *session.Manager
	loader   *movies.DetailLoader
}

// NewHandler creates a web handler with the given dependencies.
func NewHandler(gw Gateway, sessions *session.Manager, loader *movies.DetailLoader) *Handler {
	return &Handler{gw: gw, sessions: sessions, loader: loader}
}

// Login processes POST /api/auth/login. On upstream success the identity
// and token are pushed into the session store and the session cookie is
// set; the upstream envelope is returned to the SPA either way.
func (h *Handler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewBadRequest("invalid request")
	}

	res := h.gw.Login(c.Request().Context(), req.Email, req.Password)
	if !res.IsSuccess {
		// Business or transport failure -- the envelope already carries the
		// user-visible message.
		return c.JSON(http.StatusOK, res)
	}

	sid := ensureSessionID(c)
	if err := h.sessions.Login(c.Request().Context(), sid, &res.Value.User, res.Value.AccessToken); err != nil {
		return apperror.NewInternal(err)
	}

	return c.JSON(http.StatusOK, res)
}

// Register processes POST /api/auth/register. Password/confirmation
// mismatch is caught locally -- no network call happens for it. A
// successful registration behaves like a login when the upstream payload
// carries an identity and token; otherwise the SPA routes to the login
// page itself.
func (h *Handler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewBadRequest("invalid request")
	}

	if req.Password != req.ConfirmPassword {
		return c.JSON(http.StatusOK, gateway.Result[gateway.AuthPayload]{
			IsSuccess:    false,
			ErrorMessage: passwordMismatchMessage,
		})
	}

	res := h.gw.Register(c.Request().Context(), gateway.RegisterRequest{
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		UserName:        req.UserName,
	})
	if !res.IsSuccess {
		return c.JSON(http.StatusOK, res)
	}

	// Auto-login only when the upstream payload actually carries a usable
	// identity; some deployments answer success without one.
	if res.Value != nil && res.Value.AccessToken != "" && res.Value.User.ID != "" {
		sid := ensureSessionID(c)
		if err := h.sessions.Register(c.Request().Context(), sid, &res.Value.User, res.Value.AccessToken); err != nil {
			return apperror.NewInternal(err)
		}
	}

	return c.JSON(http.StatusOK, res)
}

// Logout processes POST /api/auth/logout: clears the durable session keys
// and the cookie. The remote service is not notified.
func (h *Handler) Logout(c echo.Context) error {
	if sid := getSessionID(c); sid != "" {
		if err := h.sessions.Logout(c.Request().Context(), sid); err != nil {
			return apperror.NewInternal(err)
		}
		h.loader.Forget(sid)
	}
	clearSessionCookie(c)

	return c.JSON(http.StatusOK, map[string]bool{"isSuccess": true})
}

// Session processes GET /api/auth/session -- the SPA's boot/hydration
// call. It returns the current authentication state (status plus user
// record, token excluded) without requiring auth.
func (h *Handler) Session(c echo.Context) error {
	sid := getSessionID(c)
	if sid == "" {
		return c.JSON(http.StatusOK, session.Session{Status: session.StatusAnonymous})
	}

	sess, err := h.sessions.Hydrate(c.Request().Context(), sid)
	if err != nil {
		return apperror.NewInternal(err)
	}
	return c.JSON(http.StatusOK, sess)
}

// ListMovies processes GET /api/movies: forwards the paging, search and
// filter parameters upstream and passes the envelope through.
func (h *Handler) ListMovies(c echo.Context) error {
	var params gateway.ListParams
	if err := echo.QueryParamsBinder(c).
		Int("page", &params.Page).
		Int("pageSize", &params.PageSize).
		String("search", &params.Search).
		Strings("genreIds", &params.GenreIDs).
		String("sortBy", &params.SortBy).
		BindError(); err != nil {
		return apperror.NewBadRequest("invalid query parameters")
	}

	res := h.gw.ListMovies(c.Request().Context(), params)
	return c.JSON(http.StatusOK, res)
}

// MovieDetail processes GET /api/movies/:id through the detail loader. A
// response superseded by a newer navigation yields 204 -- there is nothing
// current to show for it.
func (h *Handler) MovieDetail(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return apperror.NewBadRequest("movie id is required")
	}

	res, err := h.loader.Load(c.Request().Context(), CurrentSessionID(c), id)
	if errors.Is(err, movies.ErrSuperseded) {
		return c.NoContent(http.StatusNoContent)
	}
	if err != nil {
		return apperror.NewInternal(err)
	}

	return c.JSON(http.StatusOK, res)
}
