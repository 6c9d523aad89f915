package filter

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParseEnums(t *testing.T) {
	tests := []struct {
		name    string
		parse   func(string) (string, error)
		input   string
		want    string
		wantErr bool
	}{
		{"sort popularity", wrap(ParseSortType), "popularity", "popularity", false},
		{"sort unknown", wrap(ParseSortType), "random", "", true},
		{"media type movie", wrap(ParseMediaType), "movie_listing", "movie_listing", false},
		{"media type episode rejected", wrap(ParseMediaType), "episode", "", true},
		{"category slice of life", wrap(ParseCategory), "slice-of-life", "slice-of-life", false},
		{"category case sensitive", wrap(ParseCategory), "Action", "", true},
		{"locale es-419", wrap(ParseLocale), "es-419", "es-419", false},
		{"locale unknown", wrap(ParseLocale), "xx-XX", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.parse(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownValue) {
					t.Errorf("error = %v, want ErrUnknownValue", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func wrap[E ~string](fn func(string) (E, error)) func(string) (string, error) {
	return func(s string) (string, error) {
		v, err := fn(s)
		return string(v), err
	}
}

func TestUnmarshalText_JSON(t *testing.T) {
	var v struct {
		Sort   SortType `json:"sort"`
		Locale Locale   `json:"locale"`
	}
	if err := json.Unmarshal([]byte(`{"sort":"alphabetical","locale":"de-DE"}`), &v); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if v.Sort != SortAlphabetical || v.Locale != LocaleDeDE {
		t.Errorf("got %+v", v)
	}

	err := json.Unmarshal([]byte(`{"sort":"trending"}`), &v)
	if !errors.Is(err, ErrUnknownValue) {
		t.Errorf("Unmarshal unknown sort error = %v, want ErrUnknownValue", err)
	}
}
