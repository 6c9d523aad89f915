package facet

import (
	"encoding/json"
	"fmt"

	"github.com/samber/lo"
)

// Search facet discriminants.
const (
	TopResults   = "top_results"
	Series       = "series"
	MovieListing = "movie_listing"
	Episode      = "episode"
)

// Extract returns the items and total of the facet tagged discriminant.
// An absent facet is a normal outcome and yields an empty slice and 0.
// The first matching entry wins if the service repeats a tag.
func Extract[T any](env MultiFacet, discriminant string) ([]T, int, error) {
	entry, ok := lo.Find(env.Entries, func(e Entry) bool {
		return e.Type == discriminant
	})
	if !ok {
		return []T{}, 0, nil
	}

	items := []T{}
	if len(entry.Items) > 0 && string(entry.Items) != "null" {
		if err := json.Unmarshal(entry.Items, &items); err != nil {
			return nil, 0, fmt.Errorf("decode %q facet items: %w", discriminant, err)
		}
	}

	return items, entry.Total, nil
}
