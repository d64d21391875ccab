package console

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/alecthomas/log4go"

	feeddetector "github.com/webos-goodies/feed-detector"
	"github.com/webos-goodies/feed-detector/internal/fetch"
)

func (c *Console) home(w http.ResponseWriter, req *http.Request) {
	data := map[string]interface{}{}
	if c.store != nil {
		recent, err := c.store.RecentDetections(50)
		if err != nil {
			log4go.Error("console: RecentDetections failed: %v", err)
		} else {
			data["Recent"] = recent
		}
	}
	c.render.HTML(w, http.StatusOK, "home", data)
}

func (c *Console) analyze(w http.ResponseWriter, req *http.Request) {
	if err := req.ParseForm(); err != nil {
		c.render.HTML(w, http.StatusBadRequest, "error", map[string]interface{}{"Message": err.Error()})
		return
	}
	url := req.FormValue("url")
	if url == "" {
		c.render.HTML(w, http.StatusBadRequest, "error", map[string]interface{}{"Message": "url is required"})
		return
	}

	groups, detectedAt, err := c.runDetection(req.Context(), url)
	if err != nil {
		c.render.HTML(w, http.StatusBadGateway, "error", map[string]interface{}{"Message": err.Error()})
		return
	}

	c.render.HTML(w, http.StatusOK, "result", map[string]interface{}{
		"URL":        url,
		"Groups":     groups,
		"DetectedAt": detectedAt,
	})
}

type restAnalyzeRequest struct {
	URL string `json:"url"`
}

type restAnalyzeResponse struct {
	URL    string                     `json:"url"`
	Error  string                     `json:"error,omitempty"`
	Groups []*feeddetector.EntryGroup `json:"groups,omitempty"`
}

func (c *Console) restAnalyze(w http.ResponseWriter, req *http.Request) {
	var in restAnalyzeRequest
	if err := json.NewDecoder(req.Body).Decode(&in); err != nil {
		c.render.JSON(w, http.StatusBadRequest, restAnalyzeResponse{Error: err.Error()})
		return
	}
	if in.URL == "" {
		c.render.JSON(w, http.StatusBadRequest, restAnalyzeResponse{Error: "url is required"})
		return
	}

	groups, _, err := c.runDetection(req.Context(), in.URL)
	if err != nil {
		c.render.JSON(w, http.StatusBadGateway, restAnalyzeResponse{URL: in.URL, Error: err.Error()})
		return
	}
	c.render.JSON(w, http.StatusOK, restAnalyzeResponse{URL: in.URL, Groups: groups})
}

func (c *Console) runDetection(ctx context.Context, url string) ([]*feeddetector.EntryGroup, int64, error) {
	res, err := fetch.Fetch(ctx, nil, url)
	if err != nil {
		return nil, 0, err
	}
	groups := feeddetector.Detect(res.Doc, feeddetector.Options{})

	detectedAt := time.Now().Unix()
	if c.store != nil {
		if err := c.store.PutDetection(url, detectedAt, groups); err != nil {
			log4go.Error("console: PutDetection failed for %v: %v", url, err)
		}
	}
	return groups, detectedAt, nil
}
