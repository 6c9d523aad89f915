package pagination

import (
	"context"
	"iter"

	"github.com/Sternrassler/vod-catalog-client/pkg/filter"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/samber/mo"
)

// DefaultPageSize is the number of items requested per page.
const DefaultPageSize = 20

// Cursor is the offset state of one engine.
type Cursor struct {
	Start     int
	PageSize  int
	Total     mo.Option[int]
	Exhausted bool
}

// Request is what a Fetcher receives for one page.
type Request struct {
	Start    int
	PageSize int
	Filters  filter.List
}

// Page is one fetched page. Total is the count the service reports for the
// whole query and may exceed what it is actually willing to return.
type Page[T any] struct {
	Items []T
	Total int
}

// Fetcher fetches a single page. Implementations carry their own network
// context and must not keep per-request state.
type Fetcher[T any] interface {
	Fetch(ctx context.Context, req Request) (Page[T], error)
}

// FetchFunc adapts a function to the Fetcher interface.
type FetchFunc[T any] func(ctx context.Context, req Request) (Page[T], error)

// Fetch calls f.
func (f FetchFunc[T]) Fetch(ctx context.Context, req Request) (Page[T], error) {
	return f(ctx, req)
}

// Option configures an Engine.
type Option func(*config)

type config struct {
	pageSize int
	logger   zerolog.Logger
}

// WithPageSize sets the page size. Values <= 0 are ignored.
func WithPageSize(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.pageSize = n
		}
	}
}

// WithLogger sets the logger used for page events.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// Engine walks a paginated source one page at a time.
// An Engine is owned by a single consumer and is not safe for concurrent use.
type Engine[T any] struct {
	name    string
	fetcher Fetcher[T]
	filters filter.List
	cursor  Cursor
	logger  zerolog.Logger
}

// New creates an engine. name labels logs and metrics (e.g. "browse", "search:series").
// filters are sent with every request.
func New[T any](name string, fetcher Fetcher[T], filters filter.List, opts ...Option) *Engine[T] {
	cfg := config{
		pageSize: DefaultPageSize,
		logger:   log.With().Str("component", "pagination").Logger(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Engine[T]{
		name:    name,
		fetcher: fetcher,
		filters: filters,
		cursor: Cursor{
			PageSize: cfg.pageSize,
			Total:    mo.None[int](),
		},
		logger: cfg.logger.With().Str("engine", name).Logger(),
	}
}

// Name returns the engine label.
func (e *Engine[T]) Name() string {
	return e.name
}

// Cursor returns a copy of the current cursor.
func (e *Engine[T]) Cursor() Cursor {
	return e.cursor
}

// CurrentTotal returns the last total reported by the source, or None before
// the first successful fetch.
func (e *Engine[T]) CurrentTotal() mo.Option[int] {
	return e.cursor.Total
}

// Exhausted reports whether the engine has nothing left to fetch.
func (e *Engine[T]) Exhausted() bool {
	return e.cursor.Exhausted
}

// NextPage fetches the next page. Once exhausted it returns an empty slice
// without touching the network. On error the cursor is left unchanged so the
// caller may call NextPage again to retry the same offset.
func (e *Engine[T]) NextPage(ctx context.Context) ([]T, error) {
	if e.cursor.Exhausted {
		return []T{}, nil
	}

	page, err := e.fetcher.Fetch(ctx, Request{
		Start:    e.cursor.Start,
		PageSize: e.cursor.PageSize,
		Filters:  e.filters,
	})
	if err != nil {
		fetchErrors.WithLabelValues(e.name).Inc()
		e.logger.Warn().
			Err(err).
			Int("start", e.cursor.Start).
			Msg("Page fetch failed")
		return nil, err
	}

	items := page.Items
	if items == nil {
		items = []T{}
	}

	e.cursor.Total = mo.Some(page.Total)
	if len(items) == 0 || e.cursor.Start+len(items) >= page.Total {
		e.cursor.Exhausted = true
		enginesExhausted.WithLabelValues(e.name).Inc()
	}
	e.cursor.Start += len(items)

	pagesFetched.WithLabelValues(e.name).Inc()
	pageItems.WithLabelValues(e.name).Observe(float64(len(items)))

	e.logger.Debug().
		Int("start", e.cursor.Start-len(items)).
		Int("items", len(items)).
		Int("total", page.Total).
		Bool("exhausted", e.cursor.Exhausted).
		Msg("Page fetched")

	return items, nil
}

// CollectAll fetches every remaining page and concatenates the items.
// The result never exceeds the last reported total; each page's total
// replaces the previous one, so a total that grows while pages are fetched is
// followed. If a fetch fails, the items collected so far are returned
// together with the error.
func (e *Engine[T]) CollectAll(ctx context.Context) ([]T, error) {
	all := []T{}
	offset := e.cursor.Start

	// Every non-final page carries at least one item, so the cursor reaches
	// the last reported total in a bounded number of pages.
	for !e.cursor.Exhausted {
		items, err := e.NextPage(ctx)
		if err != nil {
			return all, err
		}
		all = append(all, items...)
	}

	if total, ok := e.cursor.Total.Get(); ok {
		remaining := max(total-offset, 0)
		if len(all) > remaining {
			e.logger.Warn().
				Int("items", len(all)).
				Int("total", total).
				Msg("Source delivered more items than its reported total")
			all = all[:remaining]
		}
	}

	return all, nil
}

// All returns a lazy sequence over the remaining items. Pages are fetched on
// demand; iteration stops after the first error, which is yielded with a zero item.
func (e *Engine[T]) All(ctx context.Context) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for !e.cursor.Exhausted {
			items, err := e.NextPage(ctx)
			if err != nil {
				var zero T
				yield(zero, err)
				return
			}
			for _, item := range items {
				if !yield(item, nil) {
					return
				}
			}
		}
	}
}
