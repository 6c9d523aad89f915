package filter

import (
	"errors"
	"fmt"

	"github.com/samber/lo"
)

// ErrUnknownValue is returned when a wire string does not map to a known enum value.
var ErrUnknownValue = errors.New("unknown enum value")

// SortType controls the order of browse results.
type SortType string

const (
	SortPopularity   SortType = "popularity"
	SortNewlyAdded   SortType = "newly_added"
	SortAlphabetical SortType = "alphabetical"
)

// DefaultSort is sent when BrowseOptions.Sort is unset.
const DefaultSort = SortNewlyAdded

// SortTypes lists every known sort order.
var SortTypes = []SortType{SortPopularity, SortNewlyAdded, SortAlphabetical}

// MediaType restricts browse results to one kind of collection.
type MediaType string

const (
	MediaTypeSeries       MediaType = "series"
	MediaTypeMovieListing MediaType = "movie_listing"
)

// MediaTypes lists every known media type.
var MediaTypes = []MediaType{MediaTypeSeries, MediaTypeMovieListing}

// Category is a catalog genre.
type Category string

const (
	CategoryAction       Category = "action"
	CategoryAdventure    Category = "adventure"
	CategoryComedy       Category = "comedy"
	CategoryDrama        Category = "drama"
	CategoryFantasy      Category = "fantasy"
	CategoryMusic        Category = "music"
	CategoryRomance      Category = "romance"
	CategorySciFi        Category = "sci-fi"
	CategorySeinen       Category = "seinen"
	CategoryShojo        Category = "shojo"
	CategoryShonen       Category = "shonen"
	CategorySliceOfLife  Category = "slice-of-life"
	CategorySports       Category = "sports"
	CategorySupernatural Category = "supernatural"
	CategoryThriller     Category = "thriller"
)

// Categories lists every known category.
var Categories = []Category{
	CategoryAction, CategoryAdventure, CategoryComedy, CategoryDrama, CategoryFantasy,
	CategoryMusic, CategoryRomance, CategorySciFi, CategorySeinen, CategoryShojo,
	CategoryShonen, CategorySliceOfLife, CategorySports, CategorySupernatural, CategoryThriller,
}

// Locale is a language tag as used by the catalog service.
type Locale string

const (
	LocaleArME  Locale = "ar-ME"
	LocaleArSA  Locale = "ar-SA"
	LocaleDeDE  Locale = "de-DE"
	LocaleEnIN  Locale = "en-IN"
	LocaleEnUS  Locale = "en-US"
	LocaleEs419 Locale = "es-419"
	LocaleEsES  Locale = "es-ES"
	LocaleEsLA  Locale = "es-LA"
	LocaleFrFR  Locale = "fr-FR"
	LocaleHiIN  Locale = "hi-IN"
	LocaleItIT  Locale = "it-IT"
	LocaleJaJP  Locale = "ja-JP"
	LocaleKoKR  Locale = "ko-KR"
	LocaleMsMY  Locale = "ms-MY"
	LocalePtBR  Locale = "pt-BR"
	LocalePtPT  Locale = "pt-PT"
	LocaleRuRU  Locale = "ru-RU"
	LocaleTaIN  Locale = "ta-IN"
	LocaleTeIN  Locale = "te-IN"
	LocaleThTH  Locale = "th-TH"
	LocaleTrTR  Locale = "tr-TR"
	LocaleViVN  Locale = "vi-VN"
	LocaleZhCN  Locale = "zh-CN"
	LocaleZhHK  Locale = "zh-HK"
	LocaleZhTW  Locale = "zh-TW"
)

// Locales lists every known locale.
var Locales = []Locale{
	LocaleArME, LocaleArSA, LocaleDeDE, LocaleEnIN, LocaleEnUS, LocaleEs419, LocaleEsES,
	LocaleEsLA, LocaleFrFR, LocaleHiIN, LocaleItIT, LocaleJaJP, LocaleKoKR, LocaleMsMY,
	LocalePtBR, LocalePtPT, LocaleRuRU, LocaleTaIN, LocaleTeIN, LocaleThTH, LocaleTrTR,
	LocaleViVN, LocaleZhCN, LocaleZhHK, LocaleZhTW,
}

func parseEnum[E ~string](kind, s string, known []E) (E, error) {
	v, ok := lo.Find(known, func(k E) bool { return string(k) == s })
	if !ok {
		var zero E
		return zero, fmt.Errorf("%w: %s %q", ErrUnknownValue, kind, s)
	}
	return v, nil
}

// ParseSortType maps a wire string to a SortType.
func ParseSortType(s string) (SortType, error) { return parseEnum("sort type", s, SortTypes) }

// ParseMediaType maps a wire string to a MediaType.
func ParseMediaType(s string) (MediaType, error) { return parseEnum("media type", s, MediaTypes) }

// ParseCategory maps a wire string to a Category.
func ParseCategory(s string) (Category, error) { return parseEnum("category", s, Categories) }

// ParseLocale maps a wire string to a Locale.
func ParseLocale(s string) (Locale, error) { return parseEnum("locale", s, Locales) }

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *SortType) UnmarshalText(b []byte) error {
	v, err := ParseSortType(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *MediaType) UnmarshalText(b []byte) error {
	v, err := ParseMediaType(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Category) UnmarshalText(b []byte) error {
	v, err := ParseCategory(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Locale) UnmarshalText(b []byte) error {
	v, err := ParseLocale(string(b))
	if err != nil {
		return err
	}
	*l = v
	return nil
}
