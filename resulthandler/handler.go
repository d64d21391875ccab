// Package resulthandler provides a basic feeddetector.ResultHandler
// implementation that writes one JSON line per detection to a writer.
package resulthandler

import (
	"encoding/json"
	"io"
	"sync"

	"github.com/alecthomas/log4go"

	feeddetector "github.com/webos-goodies/feed-detector"
)

// record is the JSON shape written for each HandleResult call.
type record struct {
	URL    string        `json:"url"`
	Error  string        `json:"error,omitempty"`
	Groups []groupRecord `json:"groups,omitempty"`
}

type groupRecord struct {
	Score    float64       `json:"score"`
	CBGScore float64       `json:"cbg_score"`
	Entries  []entryRecord `json:"entries"`
}

type entryRecord struct {
	URL   string `json:"url"`
	Title string `json:"title"`
}

// Handler writes each result as a JSON line to W. It is safe for concurrent
// use by multiple goroutines, matching how internal/batch.Runner invokes a
// ResultHandler.
type Handler struct {
	W io.Writer

	mu  sync.Mutex
	enc *json.Encoder
}

// NewHandler returns a Handler that writes to w.
func NewHandler(w io.Writer) *Handler {
	return &Handler{W: w, enc: json.NewEncoder(w)}
}

// HandleResult implements feeddetector.ResultHandler.
func (h *Handler) HandleResult(url string, groups []*feeddetector.EntryGroup, err error) {
	rec := record{URL: url}
	if err != nil {
		rec.Error = err.Error()
		log4go.Debug("detection failed for %v: %v", url, err)
	}
	for _, g := range groups {
		gr := groupRecord{Score: g.Score, CBGScore: g.CBGScore}
		for _, e := range g.Entries {
			gr.Entries = append(gr.Entries, entryRecord{URL: e.URL, Title: e.Title})
		}
		rec.Groups = append(rec.Groups, gr)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if encErr := h.enc.Encode(rec); encErr != nil {
		log4go.Error("resulthandler: failed to write record for %v: %v", url, encErr)
	}
}
