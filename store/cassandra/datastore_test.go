package cassandra

import (
	"testing"

	feeddetector "github.com/webos-goodies/feed-detector"
)

func TestEncodeDecodeGroupsRoundTrips(t *testing.T) {
	groups := []*feeddetector.EntryGroup{
		{
			Score:    12.5,
			CBGScore: 10,
			Entries: []*feeddetector.Entry{
				{URL: "http://x/1", Title: "one", Score: 2},
				{URL: "http://x/2", Title: "two", Score: 2},
			},
		},
	}

	encoded, err := encodeGroups(groups)
	if err != nil {
		t.Fatalf("encodeGroups: %v", err)
	}

	decoded, err := decodeGroups(encoded)
	if err != nil {
		t.Fatalf("decodeGroups: %v", err)
	}
	if len(decoded) != 1 {
		t.Fatalf("expected 1 group, got %d", len(decoded))
	}
	g := decoded[0]
	if g.Score != 12.5 || g.CBGScore != 10 {
		t.Errorf("expected score/cbg_score to round-trip, got %v/%v", g.Score, g.CBGScore)
	}
	if len(g.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(g.Entries))
	}
	if !g.URLSet["http://x/1"] || !g.URLSet["http://x/2"] {
		t.Errorf("expected URLSet to be rebuilt from decoded entries, got %v", g.URLSet)
	}
}

func TestDecodeGroupsRejectsInvalidJSON(t *testing.T) {
	if _, err := decodeGroups("not json"); err == nil {
		t.Fatalf("expected an error decoding invalid JSON")
	}
}
