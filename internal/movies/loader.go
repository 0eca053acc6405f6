// Package movies holds the browse-side view logic on top of the gateway.
// Its one non-trivial job is the detail loader: in-flight detail fetches
// cannot be cancelled, so when a user navigates from one movie to another
// before the first response arrives, the stale response must be discarded
// instead of overwriting the newer one.
package movies

import (
	"context"
	"errors"
	"sync"

	"github.com/cinesocial/webclient/internal/gateway"
)

// ErrSuperseded is returned when a newer detail request for the same view
// was issued while this one was in flight. The result carries nothing to
// apply; callers drop it.
var ErrSuperseded = errors.New("movies: detail request superseded by a newer one")

// Fetcher is the slice of the gateway the loader needs.
type Fetcher interface {
	GetMovieByID(ctx context.Context, id string) gateway.Result[gateway.MovieDetail]
}

// DetailLoader guards detail fetches against out-of-order completion. Each
// view (keyed by session ID) tracks a generation counter; a response is
// applied only if no newer request for that view was issued since. The
// fetch itself runs without holding the lock -- concurrent in-flight
// requests for different views are independent.
type DetailLoader struct {
	fetch Fetcher

	mu  sync.Mutex
	seq map[string]uint64
}

// NewDetailLoader creates a loader over the given fetcher.
func NewDetailLoader(fetch Fetcher) *DetailLoader {
	return &DetailLoader{
		fetch: fetch,
		seq:   make(map[string]uint64),
	}
}

// Load fetches the detail record for movieID on behalf of viewKey. If a
// newer Load for the same viewKey starts before this one's response is
// applied, the stale result is discarded and ErrSuperseded is returned.
func (l *DetailLoader) Load(ctx context.Context, viewKey, movieID string) (gateway.Result[gateway.MovieDetail], error) {
	l.mu.Lock()
	l.seq[viewKey]++
	issued := l.seq[viewKey]
	l.mu.Unlock()

	res := l.fetch.GetMovieByID(ctx, movieID)

	l.mu.Lock()
	current := l.seq[viewKey]
	l.mu.Unlock()

	if current != issued {
		return gateway.Result[gateway.MovieDetail]{}, ErrSuperseded
	}
	return res, nil
}

// Forget drops the tracking state for a view. Called when the session ends
// so the map does not grow unbounded.
func (l *DetailLoader) Forget(viewKey string) {
	l.mu.Lock()
	delete(l.seq, viewKey)
	l.mu.Unlock()
}
