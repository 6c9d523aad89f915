package catalog

import (
	"context"
	"strconv"

	"github.com/Sternrassler/vod-catalog-client/pkg/client"
	"github.com/Sternrassler/vod-catalog-client/pkg/facet"
	"github.com/Sternrassler/vod-catalog-client/pkg/filter"
	"github.com/Sternrassler/vod-catalog-client/pkg/media"
	"github.com/Sternrassler/vod-catalog-client/pkg/pagination"
	"golang.org/x/sync/errgroup"
)

// SearchQuery is the free-text input of one search. It is shared read-only
// by the four facet engines.
type SearchQuery struct {
	Text string
}

// Params returns the query parameters identifying the search.
func (q SearchQuery) Params() filter.List {
	return filter.List{{Key: "q", Value: q.Text}}
}

// QueryResults holds one independent engine per search facet.
type QueryResults struct {
	Query        SearchQuery
	TopResults   *pagination.Engine[media.MediaCollection]
	Series       *pagination.Engine[media.Series]
	MovieListing *pagination.Engine[media.MovieListing]
	Episode      *pagination.Engine[media.Episode]
}

// Query searches the catalog for text. Each facet is paged separately;
// advancing one engine never moves another.
func (c *Catalog) Query(text string, engineOpts ...pagination.Option) *QueryResults {
	query := SearchQuery{Text: text}
	opts := c.engineOptions(engineOpts)

	return &QueryResults{
		Query:        query,
		TopResults:   newFacetEngine[media.MediaCollection](c.client, query, facet.TopResults, opts),
		Series:       newFacetEngine[media.Series](c.client, query, facet.Series, opts),
		MovieListing: newFacetEngine[media.MovieListing](c.client, query, facet.MovieListing, opts),
		Episode:      newFacetEngine[media.Episode](c.client, query, facet.Episode, opts),
	}
}

func newFacetEngine[T any](c *client.Client, query SearchQuery, discriminant string, opts []pagination.Option) *pagination.Engine[T] {
	f := facetFetcher[T]{client: c, query: query, discriminant: discriminant}
	return pagination.New[T]("search:"+discriminant, f, nil, opts...)
}

// facetFetcher requests one facet of the search endpoint and extracts it
// from the multi-facet envelope.
type facetFetcher[T any] struct {
	client       *client.Client
	query        SearchQuery
	discriminant string
}

func (f facetFetcher[T]) Fetch(ctx context.Context, req pagination.Request) (pagination.Page[T], error) {
	params := f.query.Params().Concat(req.Filters).Concat(filter.List{
		{Key: "type", Value: f.discriminant},
		{Key: "limit", Value: strconv.Itoa(req.PageSize)},
		{Key: "start", Value: strconv.Itoa(req.Start)},
	})
	params = f.client.Session().ApplyLocaleQuery(params)

	var env facet.MultiFacet
	if err := f.client.GetJSON(ctx, SearchEndpoint, params, &env); err != nil {
		return pagination.Page[T]{}, err
	}

	items, total, err := facet.Extract[T](env, f.discriminant)
	if err != nil {
		return pagination.Page[T]{}, &client.DecodeError{Endpoint: SearchEndpoint, Err: err}
	}

	return pagination.Page[T]{Items: items, Total: total}, nil
}

// Preview is the first page of every facet.
type Preview struct {
	TopResults   []media.MediaCollection
	Series       []media.Series
	MovieListing []media.MovieListing
	Episode      []media.Episode
}

// Preview fetches the next page of all four facets concurrently, one
// goroutine per engine. The engines must not be used elsewhere until it returns.
// If any fetch fails the first error is returned and the other fetches are cancelled.
func (r *QueryResults) Preview(ctx context.Context) (*Preview, error) {
	var p Preview
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		p.TopResults, err = r.TopResults.NextPage(ctx)
		return err
	})
	g.Go(func() (err error) {
		p.Series, err = r.Series.NextPage(ctx)
		return err
	})
	g.Go(func() (err error) {
		p.MovieListing, err = r.MovieListing.NextPage(ctx)
		return err
	})
	g.Go(func() (err error) {
		p.Episode, err = r.Episode.NextPage(ctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &p, nil
}
