package catalog

import (
	"context"
	"errors"
	"fmt"

	applog "themeapp/internal/log"
)

// Source yields the product listing. *Client satisfies it.
type Source interface {
	FetchProducts(ctx context.Context) ([]Product, error)
}

// Fetcher runs the single outstanding request of a Loading state.
type Fetcher struct {
	source Source
}

// NewFetcher returns a Fetcher reading from source.
func NewFetcher(source Source) *Fetcher {
	return &Fetcher{source: source}
}

// Start moves a fresh lifecycle to Loading, or a failed one when retry is set.
func Start(retry bool) State {
	var s State = Idle{}
	var e Event = Mounted{}
	if retry {
		s, e = Failed{}, Retried{}
	}
	next, _ := Next(s, e)
	return next
}

// Load resolves a Loading state with one request. When ctx is done before the
// result is applied the outcome is discarded and ok is false: the caller's
// rendering target is gone and must not be updated.
func (f *Fetcher) Load(ctx context.Context, s State) (State, bool, error) {
	if _, loading := s.(Loading); !loading {
		return s, false, fmt.Errorf("%w: load requires loading, got %s", ErrInvalidTransition, phaseOf(s))
	}
	if f == nil || f.source == nil {
		return s, false, errors.New("catalog: fetcher has no source")
	}

	products, err := f.source.FetchProducts(ctx)
	if ctx.Err() != nil {
		applog.Debug(ctx, "discarding catalog result after teardown", "error", ctx.Err())
		return s, false, nil
	}

	var e Event = Succeeded{Products: products}
	if err != nil {
		applog.Error(ctx, "error fetching products", "error", err)
		e = Errored{Err: err}
	}
	next, err := Next(s, e)
	return next, true, err
}
