// Package facet decodes the catalog's bulk and multi-facet response envelopes
// and extracts a single facet's items from a search response.
package facet

import (
	"encoding/json"
	"fmt"
)

// Bulk is a flat item list plus the total reported by the service.
type Bulk[T any] struct {
	Total int
	Items []T
}

// DecodeBulk decodes {"total": n, "<itemsField>": [...]}. The name of the
// items field differs per endpoint ("data" for browse, "items" for season lists).
// A missing items field decodes as an empty list.
func DecodeBulk[T any](body []byte, itemsField string) (Bulk[T], error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return Bulk[T]{}, fmt.Errorf("decode bulk envelope: %w", err)
	}

	bulk := Bulk[T]{Items: []T{}}
	if total, ok := raw["total"]; ok {
		if err := json.Unmarshal(total, &bulk.Total); err != nil {
			return Bulk[T]{}, fmt.Errorf("decode bulk total: %w", err)
		}
	}
	if items, ok := raw[itemsField]; ok && string(items) != "null" {
		if err := json.Unmarshal(items, &bulk.Items); err != nil {
			return Bulk[T]{}, fmt.Errorf("decode bulk %q: %w", itemsField, err)
		}
	}

	return bulk, nil
}

// Entry is one facet of a multi-facet envelope. Items stay raw until the
// caller asks for a concrete record type.
type Entry struct {
	Type  string          `json:"type"`
	Items json.RawMessage `json:"items"`
	Total int             `json:"total"`
}

// MultiFacet is the search response: several independently counted item lists,
// each tagged by a discriminant. Not every discriminant is guaranteed to be present.
type MultiFacet struct {
	Entries []Entry `json:"data"`
	Total   int     `json:"total"`
}

// Discriminants returns the facet tags present in the envelope, in order.
func (m MultiFacet) Discriminants() []string {
	tags := make([]string, len(m.Entries))
	for i, e := range m.Entries {
		tags[i] = e.Type
	}
	return tags
}
