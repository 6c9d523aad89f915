package facet

import (
	"encoding/json"
	"testing"
)

type record struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

const searchBody = `{
	"total": 3,
	"data": [
		{"type": "top_results", "total": 2, "items": [{"id": "G1", "title": "Classroom"}, {"id": "G2", "title": "Class"}]},
		{"type": "movie_listing", "total": 1, "items": [{"id": "M1", "title": "Classroom Movie"}]}
	]
}`

func decodeSearch(t *testing.T, body string) MultiFacet {
	t.Helper()
	var env MultiFacet
	if err := json.Unmarshal([]byte(body), &env); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	return env
}

func TestExtract(t *testing.T) {
	env := decodeSearch(t, searchBody)

	tests := []struct {
		name         string
		discriminant string
		wantIDs      []string
		wantTotal    int
	}{
		{"top results", TopResults, []string{"G1", "G2"}, 2},
		{"movie listing", MovieListing, []string{"M1"}, 1},
		{"absent series", Series, nil, 0},
		{"absent episode", Episode, nil, 0},
		{"unknown discriminant", "music_video", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, total, err := Extract[record](env, tt.discriminant)
			if err != nil {
				t.Fatalf("Extract() error = %v", err)
			}
			if items == nil {
				t.Fatal("Extract() returned nil slice, want empty")
			}
			if total != tt.wantTotal {
				t.Errorf("total = %d, want %d", total, tt.wantTotal)
			}
			if len(items) != len(tt.wantIDs) {
				t.Fatalf("len(items) = %d, want %d", len(items), len(tt.wantIDs))
			}
			for i, id := range tt.wantIDs {
				if items[i].ID != id {
					t.Errorf("items[%d].ID = %q, want %q", i, items[i].ID, id)
				}
			}
		})
	}
}

func TestExtract_EmptyEnvelope(t *testing.T) {
	items, total, err := Extract[record](MultiFacet{}, Series)
	if err != nil || total != 0 || len(items) != 0 {
		t.Errorf("Extract(empty) = (%v, %d, %v), want ([], 0, nil)", items, total, err)
	}
}

func TestExtract_FirstMatchWins(t *testing.T) {
	env := decodeSearch(t, `{"data": [
		{"type": "series", "total": 1, "items": [{"id": "first"}]},
		{"type": "series", "total": 9, "items": [{"id": "second"}]}
	]}`)

	items, total, err := Extract[record](env, Series)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if total != 1 || items[0].ID != "first" {
		t.Errorf("Extract() = (%v, %d), want first entry", items, total)
	}
}

func TestExtract_DecodeError(t *testing.T) {
	env := decodeSearch(t, `{"data": [{"type": "series", "total": 1, "items": [{"id": 42}]}]}`)

	if _, _, err := Extract[record](env, Series); err == nil {
		t.Error("Extract() should fail when items do not match the record type")
	}
}

func TestMultiFacet_Discriminants(t *testing.T) {
	env := decodeSearch(t, searchBody)
	got := env.Discriminants()
	if len(got) != 2 || got[0] != TopResults || got[1] != MovieListing {
		t.Errorf("Discriminants() = %v", got)
	}
}
