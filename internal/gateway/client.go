package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// transportErrMessage is the generic user-visible message substituted for
// any transport-level fault. Raw transport errors are logged, never shown.
const transportErrMessage = "The movie service could not be reached. Please try again."

// maxResponseBytes caps how much of an upstream response body is read.
// CineSocial payloads are small; anything larger is not a valid envelope.
const maxResponseBytes = 4 << 20 // 4 MB

// defaultPageSize is used when the caller doesn't specify a page size,
// matching what the SPA requests on first load.
const defaultPageSize = 20

// envelopeStatuses are the HTTP statuses the upstream service answers with
// a well-formed envelope. Any other status is a transport failure.
var envelopeStatuses = map[int]bool{
	http.StatusOK:                  true,
	http.StatusBadRequest:          true,
	http.StatusNotFound:            true,
	http.StatusInternalServerError: true,
}

// Client calls the remote CineSocial API. Each operation is a single
// request -- no retry, no caching -- so every result reflects server state
// at call time. Construct one per process and share it; it is safe for
// concurrent use.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

// NewClient creates a gateway client for the given upstream base URL.
// A nil httpClient falls back to http.DefaultClient.
func NewClient(baseURL string, httpClient *http.Client, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		logger:     logger,
	}
}

// Login authenticates against the upstream auth endpoint. Credential
// failures come back as a business-failure envelope, passed through
// unchanged.
func (c *Client) Login(ctx context.Context, email, password string) Result[AuthPayload] {
	return postJSON[AuthPayload](ctx, c, "/api/Auth/login", loginRequest{
		Email:    email,
		Password: password,
	})
}

// Register creates a new account upstream. The full profile is sent; the
// success value is identical in shape to Login's.
func (c *Client) Register(ctx context.Context, req RegisterRequest) Result[AuthPayload] {
	return postJSON[AuthPayload](ctx, c, "/api/Auth/register", req)
}

// ListMovies fetches one page of the movie catalog. Page and PageSize are
// always sent; Search, GenreIDs and SortBy only when provided.
func (c *Client) ListMovies(ctx context.Context, p ListParams) Result[MovieList] {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = defaultPageSize
	}

	q := url.Values{}
	q.Set("page", strconv.Itoa(p.Page))
	q.Set("pageSize", strconv.Itoa(p.PageSize))
	if p.Search != "" {
		q.Set("search", p.Search)
	}
	for _, id := range p.GenreIDs {
		q.Add("genreIds", id)
	}
	if p.SortBy != "" {
		q.Set("sortBy", p.SortBy)
	}

	return getJSON[MovieList](ctx, c, "/api/Movies", q)
}

// GetMovieByID fetches the detail record of a single movie. A missing
// record is a normal outcome: the server answers 404 with a failure
// envelope, which is passed through like any other business failure.
func (c *Client) GetMovieByID(ctx context.Context, id string) Result[MovieDetail] {
	return getJSON[MovieDetail](ctx, c, "/api/Movies/"+url.PathEscape(id), nil)
}

// --- Request plumbing ---

// getJSON issues a GET and decodes the envelope.
func getJSON[T any](ctx context.Context, c *Client, path string, query url.Values) Result[T] {
	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return transportFailure[T](c, "building request", path, err)
	}
	req.Header.Set("Accept", "application/json")

	return do[T](c, req)
}

// postJSON issues a POST with a JSON body and decodes the envelope.
func postJSON[T any](ctx context.Context, c *Client, path string, body any) Result[T] {
	payload, err := json.Marshal(body)
	if err != nil {
		return transportFailure[T](c, "encoding request body", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return transportFailure[T](c, "building request", path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	return do[T](c, req)
}

// do executes the request and classifies the outcome. A response counts as
// "a server answer" only when the status is one the upstream contract pairs
// with an envelope AND the body decodes into a well-formed envelope; the
// decode fails closed -- any shape mismatch is treated as a transport
// failure rather than trusting the JSON.
func do[T any](c *Client, req *http.Request) Result[T] {
	path := req.URL.Path

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return transportFailure[T](c, "calling movie service", path, err)
	}
	defer resp.Body.Close()

	if !envelopeStatuses[resp.StatusCode] {
		c.logger.Error("unexpected status from movie service",
			slog.Int("status", resp.StatusCode),
			slog.String("path", path),
		)
		return failure[T](transportErrMessage)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return transportFailure[T](c, "reading response body", path, err)
	}

	var result Result[T]
	if err := json.Unmarshal(body, &result); err != nil {
		return transportFailure[T](c, "decoding response envelope", path, err)
	}

	// Shape check: a success envelope without a value, or a failure
	// envelope without an error message, is not a well-formed answer.
	if result.IsSuccess && result.Value == nil {
		c.logger.Error("malformed success envelope from movie service",
			slog.String("path", path),
		)
		return failure[T](transportErrMessage)
	}
	if !result.IsSuccess && result.ErrorMessage == "" {
		c.logger.Error("malformed failure envelope from movie service",
			slog.Int("status", resp.StatusCode),
			slog.String("path", path),
		)
		return failure[T](transportErrMessage)
	}

	return result
}

// transportFailure logs the underlying fault and synthesizes the generic
// failure envelope shown to callers.
func transportFailure[T any](c *Client, op, path string, err error) Result[T] {
	c.logger.Error("gateway transport failure",
		slog.String("op", op),
		slog.String("path", path),
		slog.Any("error", err),
	)
	return failure[T](transportErrMessage)
}

// failure builds a failure envelope with the given message.
func failure[T any](message string) Result[T] {
	return Result[T]{IsSuccess: false, ErrorMessage: message}
}
