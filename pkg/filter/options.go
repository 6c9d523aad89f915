package filter

import (
	"strconv"

	"github.com/samber/mo"
)

// Wire keys of the browse filters.
const (
	KeyCategories             = "categories"
	KeyIsDubbed               = "is_dubbed"
	KeyIsSubbed               = "is_subbed"
	KeySimulcastSeason        = "season_tag"
	KeySort                   = "sort"
	KeyMediaType              = "type"
	KeyPreferredAudioLanguage = "preferred_audio_language"
)

// BrowseOptions is the complete set of catalog browse filters.
//
// Defaults:
//
//	Categories              empty     -> no entry
//	IsDubbed                None      -> no entry
//	IsSubbed                None      -> no entry
//	SimulcastSeason         None      -> no entry
//	Sort                    None      -> "newly_added" (always sent)
//	MediaType               None      -> no entry
//	PreferredAudioLanguage  None      -> no entry
//
// Sort is the only field that is sent when unset. Dropping it changes which
// results the service returns.
type BrowseOptions struct {
	Categories             []Category
	IsDubbed               mo.Option[bool]
	IsSubbed               mo.Option[bool]
	SimulcastSeason        mo.Option[string]
	Sort                   mo.Option[SortType]
	MediaType              mo.Option[MediaType]
	PreferredAudioLanguage mo.Option[Locale]
}

// DefaultBrowseOptions returns options with every field unset.
func DefaultBrowseOptions() BrowseOptions {
	return BrowseOptions{
		IsDubbed:               mo.None[bool](),
		IsSubbed:               mo.None[bool](),
		SimulcastSeason:        mo.None[string](),
		Sort:                   mo.None[SortType](),
		MediaType:              mo.None[MediaType](),
		PreferredAudioLanguage: mo.None[Locale](),
	}
}

// Compile turns the options into a filter list. The output order is fixed:
// categories, is_dubbed, is_subbed, season_tag, sort, type, preferred_audio_language.
func Compile(opts BrowseOptions) List {
	list := make(List, 0, len(opts.Categories)+6)

	for _, c := range opts.Categories {
		list = append(list, Entry{Key: KeyCategories, Value: string(c)})
	}
	if v, ok := opts.IsDubbed.Get(); ok {
		list = append(list, Entry{Key: KeyIsDubbed, Value: strconv.FormatBool(v)})
	}
	if v, ok := opts.IsSubbed.Get(); ok {
		list = append(list, Entry{Key: KeyIsSubbed, Value: strconv.FormatBool(v)})
	}
	if v, ok := opts.SimulcastSeason.Get(); ok {
		list = append(list, Entry{Key: KeySimulcastSeason, Value: v})
	}
	list = append(list, Entry{Key: KeySort, Value: string(opts.Sort.OrElse(DefaultSort))})
	if v, ok := opts.MediaType.Get(); ok {
		list = append(list, Entry{Key: KeyMediaType, Value: string(v)})
	}
	if v, ok := opts.PreferredAudioLanguage.Get(); ok {
		list = append(list, Entry{Key: KeyPreferredAudioLanguage, Value: string(v)})
	}

	return list
}
