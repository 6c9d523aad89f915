// Package filter compiles typed browse options into the ordered key/value
// query parameters sent to the catalog endpoints.
package filter

import (
	"net/url"
	"strings"
)

// Entry is a single query parameter.
type Entry struct {
	Key   string
	Value string
}

// List is an ordered list of query parameters. Order is preserved on the wire
// and duplicate keys are allowed (one "categories" entry per category).
type List []Entry

// Append returns a new list with the given entry added at the end.
// The receiver is never modified, so a List can be shared between engines.
func (l List) Append(key, value string) List {
	out := make(List, len(l), len(l)+1)
	copy(out, l)
	return append(out, Entry{Key: key, Value: value})
}

// Concat returns a new list holding l followed by other.
func (l List) Concat(other List) List {
	out := make(List, 0, len(l)+len(other))
	out = append(out, l...)
	return append(out, other...)
}

// Values returns every value stored under key, in list order.
func (l List) Values(key string) []string {
	var values []string
	for _, e := range l {
		if e.Key == key {
			values = append(values, e.Value)
		}
	}
	return values
}

// Encode renders the list as a URL query string in list order.
// url.Values is not used because its Encode sorts by key.
func (l List) Encode() string {
	var b strings.Builder
	for i, e := range l {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(e.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(e.Value))
	}
	return b.String()
}
