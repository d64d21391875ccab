package resulthandler

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	feeddetector "github.com/webos-goodies/feed-detector"
)

func TestHandleResultWritesOneJSONLinePerCall(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(&buf)

	group := &feeddetector.EntryGroup{
		Score:    12.5,
		CBGScore: 10,
		Entries: []*feeddetector.Entry{
			{URL: "http://x/1", Title: "one"},
			{URL: "http://x/2", Title: "two"},
		},
	}

	h.HandleResult("http://x/", []*feeddetector.EntryGroup{group}, nil)
	h.HandleResult("http://y/", nil, errors.New("boom"))

	scanner := bufio.NewScanner(&buf)
	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if len(lines) != 2 {
		t.Fatalf("expected 2 JSON lines, got %d", len(lines))
	}

	var first struct {
		URL    string `json:"url"`
		Groups []struct {
			Score   float64 `json:"score"`
			Entries []struct {
				URL   string `json:"url"`
				Title string `json:"title"`
			} `json:"entries"`
		} `json:"groups"`
	}
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatalf("unmarshal first line: %v", err)
	}
	if first.URL != "http://x/" {
		t.Errorf("expected url http://x/, got %q", first.URL)
	}
	if len(first.Groups) != 1 || len(first.Groups[0].Entries) != 2 {
		t.Fatalf("expected 1 group with 2 entries, got %+v", first)
	}

	var second struct {
		URL   string `json:"url"`
		Error string `json:"error"`
	}
	if err := json.Unmarshal([]byte(lines[1]), &second); err != nil {
		t.Fatalf("unmarshal second line: %v", err)
	}
	if second.Error != "boom" {
		t.Errorf("expected error field \"boom\", got %q", second.Error)
	}
}
