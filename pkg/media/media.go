// Package media defines the catalog records returned by browse and search.
package media

import (
	"encoding/json"
	"fmt"

	"github.com/Sternrassler/vod-catalog-client/pkg/filter"
	"github.com/samber/mo"
)

// SeriesMetadata holds series specific fields.
type SeriesMetadata struct {
	EpisodeCount    int             `json:"episode_count"`
	SeasonCount     int             `json:"season_count"`
	IsDubbed        bool            `json:"is_dubbed"`
	IsSubbed        bool            `json:"is_subbed"`
	IsSimulcast     bool            `json:"is_simulcast"`
	AudioLocales    []filter.Locale `json:"audio_locales"`
	SubtitleLocales []filter.Locale `json:"subtitle_locales"`
}

// Series is a multi-episode show.
type Series struct {
	ID          string         `json:"id"`
	Type        string         `json:"type"`
	Title       string         `json:"title"`
	SlugTitle   string         `json:"slug_title"`
	Description string         `json:"description"`
	Metadata    SeriesMetadata `json:"series_metadata"`
}

// MovieListingMetadata holds movie listing specific fields.
type MovieListingMetadata struct {
	DurationMS       int  `json:"duration_ms"`
	IsDubbed         bool `json:"is_dubbed"`
	IsSubbed         bool `json:"is_subbed"`
	MovieReleaseYear int  `json:"movie_release_year"`
}

// MovieListing groups one or more movies.
type MovieListing struct {
	ID          string               `json:"id"`
	Type        string               `json:"type"`
	Title       string               `json:"title"`
	SlugTitle   string               `json:"slug_title"`
	Description string               `json:"description"`
	Metadata    MovieListingMetadata `json:"movie_listing_metadata"`
}

// EpisodeMetadata holds episode specific fields.
type EpisodeMetadata struct {
	SeriesID        string          `json:"series_id"`
	SeriesTitle     string          `json:"series_title"`
	SeasonID        string          `json:"season_id"`
	SeasonNumber    int             `json:"season_number"`
	Episode         string          `json:"episode"`
	EpisodeNumber   int             `json:"episode_number"`
	DurationMS      int             `json:"duration_ms"`
	AudioLocale     filter.Locale   `json:"audio_locale"`
	SubtitleLocales []filter.Locale `json:"subtitle_locales"`
	IsDubbed        bool            `json:"is_dubbed"`
	IsSubbed        bool            `json:"is_subbed"`
}

// Episode is a single playable episode.
type Episode struct {
	ID          string          `json:"id"`
	Type        string          `json:"type"`
	Title       string          `json:"title"`
	SlugTitle   string          `json:"slug_title"`
	Description string          `json:"description"`
	Metadata    EpisodeMetadata `json:"episode_metadata"`
}

// SimulcastSeasonLocalization is the human readable name of a season.
type SimulcastSeasonLocalization struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// SimulcastSeason identifies an airing season, usable as BrowseOptions.SimulcastSeason.
type SimulcastSeason struct {
	ID           string                      `json:"id"`
	Localization SimulcastSeasonLocalization `json:"localization"`
}

// MediaCollection is either a Series or a MovieListing, selected by the "type" field.
type MediaCollection struct {
	Type         filter.MediaType
	series       *Series
	movieListing *MovieListing
}

// NewSeriesCollection wraps a series.
func NewSeriesCollection(s Series) MediaCollection {
	return MediaCollection{Type: filter.MediaTypeSeries, series: &s}
}

// NewMovieListingCollection wraps a movie listing.
func NewMovieListingCollection(m MovieListing) MediaCollection {
	return MediaCollection{Type: filter.MediaTypeMovieListing, movieListing: &m}
}

// AsSeries returns the series if this collection is one.
func (c MediaCollection) AsSeries() mo.Option[*Series] {
	if c.series == nil {
		return mo.None[*Series]()
	}
	return mo.Some(c.series)
}

// AsMovieListing returns the movie listing if this collection is one.
func (c MediaCollection) AsMovieListing() mo.Option[*MovieListing] {
	if c.movieListing == nil {
		return mo.None[*MovieListing]()
	}
	return mo.Some(c.movieListing)
}

// ID returns the id of the wrapped record.
func (c MediaCollection) ID() string {
	switch {
	case c.series != nil:
		return c.series.ID
	case c.movieListing != nil:
		return c.movieListing.ID
	default:
		return ""
	}
}

// Title returns the title of the wrapped record.
func (c MediaCollection) Title() string {
	switch {
	case c.series != nil:
		return c.series.Title
	case c.movieListing != nil:
		return c.movieListing.Title
	default:
		return ""
	}
}

// UnmarshalJSON decodes by the "type" discriminant. Unknown types are an error.
func (c *MediaCollection) UnmarshalJSON(data []byte) error {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return err
	}

	mediaType, err := filter.ParseMediaType(head.Type)
	if err != nil {
		return fmt.Errorf("media collection: %w", err)
	}

	switch mediaType {
	case filter.MediaTypeSeries:
		var s Series
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = NewSeriesCollection(s)
	case filter.MediaTypeMovieListing:
		var m MovieListing
		if err := json.Unmarshal(data, &m); err != nil {
			return err
		}
		*c = NewMovieListingCollection(m)
	}
	return nil
}

// MarshalJSON encodes the wrapped record.
func (c MediaCollection) MarshalJSON() ([]byte, error) {
	switch {
	case c.series != nil:
		return json.Marshal(c.series)
	case c.movieListing != nil:
		return json.Marshal(c.movieListing)
	default:
		return []byte("null"), nil
	}
}
