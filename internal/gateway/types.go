// Package gateway is the typed request/response boundary to the remote
// CineSocial API. It is the only package permitted to issue outbound HTTP
// calls to the movie service. Every operation returns the uniform Result
// envelope; transport faults never escape this package -- they are
// synthesized into a failure envelope with a generic message.
package gateway

import "time"

// Result is the response envelope every CineSocial endpoint answers with.
// Exactly one of Value / ErrorMessage is populated: Value on success,
// ErrorMessage on a business failure reported by the server. When the
// transport itself fails, the gateway fills ErrorMessage with a generic
// message of its own.
type Result[T any] struct {
	IsSuccess    bool   `json:"isSuccess"`
	Value        *T     `json:"value"`
	Message      string `json:"message,omitempty"`
	ErrorMessage string `json:"errorMessage,omitempty"`
}

// User is the identity record the auth endpoints return. It is persisted
// verbatim in the session store and handed back to the SPA on hydration.
type User struct {
	ID              string  `json:"id"`
	Email           string  `json:"email"`
	UserName        string  `json:"userName"`
	FirstName       string  `json:"firstName"`
	LastName        string  `json:"lastName"`
	FullName        string  `json:"fullName"`
	ProfileImageURL *string `json:"profileImageUrl"`
	EmailConfirmed  bool    `json:"emailConfirmed"`
}

// AuthPayload is the success value of the login and register endpoints.
//
// RefreshToken is carried and round-tripped verbatim but no flow consumes
// it: the upstream contract has no refresh endpoint. Do not invent refresh
// semantics here.
type AuthPayload struct {
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken"`
	ExpiresAt    time.Time `json:"expiresAt"`
	User         User      `json:"user"`
}

// RegisterRequest is the body of the register endpoint. All six fields are
// required by the upstream service.
type RegisterRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	UserName        string `json:"userName"`
}

// loginRequest is the body of the login endpoint.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// MovieSummary is one entry of the paged movie listing.
type MovieSummary struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	PosterURL *string `json:"posterUrl"`
	Overview  string  `json:"overview"`
}

// Genre is a movie genre reference. Order within a detail record is
// server-determined and preserved.
type Genre struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// MovieDetail is the full record of a single movie.
type MovieDetail struct {
	MovieSummary
	ReleaseDate time.Time `json:"releaseDate"`
	Genres      []Genre   `json:"genres"`
}

// MovieList is the success value of the listing endpoint. Items keep the
// server's ordering; the client never re-sorts.
type MovieList struct {
	Items      []MovieSummary `json:"items"`
	TotalCount int            `json:"totalCount"`
	Page       int            `json:"page"`
	PageSize   int            `json:"pageSize"`
}

// ListParams are the query parameters of the listing endpoint. Page and
// PageSize are always sent (defaulted when zero); the rest only when set.
type ListParams struct {
	Page     int
	PageSize int
	Search   string
	GenreIDs []string
	SortBy   string
}
