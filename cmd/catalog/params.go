package main

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/Sternrassler/vod-catalog-client/pkg/catalog"
	"github.com/Sternrassler/vod-catalog-client/pkg/facet"
	"github.com/Sternrassler/vod-catalog-client/pkg/filter"
	"github.com/Sternrassler/vod-catalog-client/pkg/pagination"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

// browseParams is the untyped form of the browse filters, as read from
// command line flags or an HTTP query.
type browseParams struct {
	Categories []string
	Dubbed     mo.Option[bool]
	Subbed     mo.Option[bool]
	Season     string
	Sort       string
	MediaType  string
	Audio      string
}

// options validates the parameters against the closed enums.
func (p browseParams) options() (filter.BrowseOptions, error) {
	opts := filter.DefaultBrowseOptions()
	opts.IsDubbed = p.Dubbed
	opts.IsSubbed = p.Subbed

	for _, raw := range p.Categories {
		c, err := filter.ParseCategory(raw)
		if err != nil {
			return opts, err
		}
		opts.Categories = append(opts.Categories, c)
	}
	if p.Season != "" {
		opts.SimulcastSeason = mo.Some(p.Season)
	}
	if p.Sort != "" {
		s, err := filter.ParseSortType(p.Sort)
		if err != nil {
			return opts, err
		}
		opts.Sort = mo.Some(s)
	}
	if p.MediaType != "" {
		m, err := filter.ParseMediaType(p.MediaType)
		if err != nil {
			return opts, err
		}
		opts.MediaType = mo.Some(m)
	}
	if p.Audio != "" {
		l, err := filter.ParseLocale(p.Audio)
		if err != nil {
			return opts, err
		}
		opts.PreferredAudioLanguage = mo.Some(l)
	}
	return opts, nil
}

// browseParamsFromQuery reads browse filters from an HTTP query.
func browseParamsFromQuery(q url.Values) (browseParams, error) {
	p := browseParams{
		Categories: q[filter.KeyCategories],
		Season:     q.Get(filter.KeySimulcastSeason),
		Sort:       q.Get(filter.KeySort),
		MediaType:  q.Get(filter.KeyMediaType),
		Audio:      q.Get(filter.KeyPreferredAudioLanguage),
	}

	var err error
	if p.Dubbed, err = optionalBool(q, filter.KeyIsDubbed); err != nil {
		return p, err
	}
	if p.Subbed, err = optionalBool(q, filter.KeyIsSubbed); err != nil {
		return p, err
	}
	return p, nil
}

func optionalBool(q url.Values, key string) (mo.Option[bool], error) {
	if !q.Has(key) {
		return mo.None[bool](), nil
	}
	b, err := strconv.ParseBool(q.Get(key))
	if err != nil {
		return mo.None[bool](), fmt.Errorf("%w: %s %q", filter.ErrUnknownValue, key, q.Get(key))
	}
	return mo.Some(b), nil
}

// searchFacets lists the facet names accepted by the search command and endpoint.
var searchFacets = []string{facet.TopResults, facet.Series, facet.MovieListing, facet.Episode}

func validFacet(name string) bool {
	return lo.Contains(searchFacets, name)
}

// take drains at most limit items from an engine. limit <= 0 collects everything.
func take[T any](ctx context.Context, e *pagination.Engine[T], limit int) ([]T, error) {
	if limit <= 0 {
		return e.CollectAll(ctx)
	}

	items := make([]T, 0, min(limit, e.Cursor().PageSize))
	for item, err := range e.All(ctx) {
		if err != nil {
			return items, err
		}
		items = append(items, item)
		if len(items) >= limit {
			break
		}
	}
	return items, nil
}

// facetItems drains one facet of a search into a JSON-encodable slice.
func facetItems(ctx context.Context, results *catalog.QueryResults, name string, limit int) (any, error) {
	switch name {
	case facet.TopResults:
		return take(ctx, results.TopResults, limit)
	case facet.Series:
		return take(ctx, results.Series, limit)
	case facet.MovieListing:
		return take(ctx, results.MovieListing, limit)
	case facet.Episode:
		return take(ctx, results.Episode, limit)
	default:
		return nil, fmt.Errorf("%w: facet %q", filter.ErrUnknownValue, name)
	}
}
