// Package catalog builds paginated browse and search handles on top of the
// catalog transport.
//
// Browse returns one engine over the browse endpoint. Query returns four
// engines over the search endpoint, one per facet, sharing the search text and
// the client but nothing else: each engine keeps its own cursor.
package catalog

import (
	"context"
	"strconv"

	"github.com/Sternrassler/vod-catalog-client/pkg/client"
	"github.com/Sternrassler/vod-catalog-client/pkg/facet"
	"github.com/Sternrassler/vod-catalog-client/pkg/filter"
	"github.com/Sternrassler/vod-catalog-client/pkg/media"
	"github.com/Sternrassler/vod-catalog-client/pkg/pagination"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Catalog endpoints.
const (
	BrowseEndpoint     = "/content/v2/discover/browse"
	SearchEndpoint     = "/content/v2/discover/search"
	SeasonListEndpoint = "/content/v1/season_list"
)

// Items field names of the bulk envelopes.
const (
	browseItemsField = "data"
	seasonItemsField = "items"
)

// Catalog is the entry point for browse and search. It holds no per-query
// state and is safe for concurrent use.
type Catalog struct {
	client *client.Client
	logger zerolog.Logger
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithLogger sets the logger passed to every engine.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Catalog) {
		c.logger = logger
	}
}

// New creates a catalog over the given client.
func New(c *client.Client, opts ...Option) *Catalog {
	cat := &Catalog{
		client: c,
		logger: log.With().Str("component", "catalog").Logger(),
	}
	for _, opt := range opts {
		opt(cat)
	}
	return cat
}

func (c *Catalog) engineOptions(extra []pagination.Option) []pagination.Option {
	return append([]pagination.Option{pagination.WithLogger(c.logger)}, extra...)
}

// Browse returns a lazy handle over the catalog filtered by opts.
// Nothing is fetched until the first NextPage call.
func (c *Catalog) Browse(opts filter.BrowseOptions, engineOpts ...pagination.Option) *pagination.Engine[media.MediaCollection] {
	return pagination.New[media.MediaCollection](
		"browse",
		browseFetcher{client: c.client},
		filter.Compile(opts),
		c.engineOptions(engineOpts)...,
	)
}

// SimulcastSeasons returns every simulcast season, localized to locale.
func (c *Catalog) SimulcastSeasons(ctx context.Context, locale filter.Locale) ([]media.SimulcastSeason, error) {
	params := filter.List{{Key: "locale", Value: string(locale)}}

	body, err := c.client.GetBody(ctx, SeasonListEndpoint, params)
	if err != nil {
		return nil, err
	}

	bulk, err := facet.DecodeBulk[media.SimulcastSeason](body, seasonItemsField)
	if err != nil {
		return nil, &client.DecodeError{Endpoint: SeasonListEndpoint, Err: err}
	}
	return bulk.Items, nil
}

// browseFetcher sends the compiled filters followed by the page window.
type browseFetcher struct {
	client *client.Client
}

func (f browseFetcher) Fetch(ctx context.Context, req pagination.Request) (pagination.Page[media.MediaCollection], error) {
	params := req.Filters.Concat(filter.List{
		{Key: "n", Value: strconv.Itoa(req.PageSize)},
		{Key: "start", Value: strconv.Itoa(req.Start)},
	})

	body, err := f.client.GetBody(ctx, BrowseEndpoint, params)
	if err != nil {
		return pagination.Page[media.MediaCollection]{}, err
	}

	bulk, err := facet.DecodeBulk[media.MediaCollection](body, browseItemsField)
	if err != nil {
		return pagination.Page[media.MediaCollection]{}, &client.DecodeError{Endpoint: BrowseEndpoint, Err: err}
	}

	return pagination.Page[media.MediaCollection]{Items: bulk.Items, Total: bulk.Total}, nil
}
