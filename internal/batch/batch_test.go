package batch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	feeddetector "github.com/webos-goodies/feed-detector"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(`<html><body>` +
			`<ul>` +
			`<li><a href="/a1">first headline here</a></li>` +
			`<li><a href="/a2">second headline here</a></li>` +
			`<li><a href="/a3">third headline here</a></li>` +
			`<li><a href="/a4">fourth headline here</a></li>` +
			`<li><a href="/a5">fifth headline here</a></li>` +
			`</ul></body></html>`))
	}))
}

func TestRunnerRunHandlesEveryURL(t *testing.T) {
	srv := newTestServer(t)
	defer srv.Close()

	feeddetector.Config.Batch.NumSimultaneousFetchers = 2
	feeddetector.Config.Batch.ResultCacheSize = 10
	feeddetector.Config.FetchTimeout = "5s"
	feeddetector.Config.UserAgent = "feeddetect-test"

	runner, err := NewRunner()
	if err != nil {
		t.Fatalf("NewRunner: %v", err)
	}
	runner.Client = srv.Client()

	urls := []string{srv.URL + "/1", srv.URL + "/2", srv.URL + "/3"}

	var mu sync.Mutex
	seen := map[string]Outcome{}
	runner.Run(context.Background(), urls, func(o Outcome) {
		mu.Lock()
		seen[o.URL] = o
		mu.Unlock()
	})

	if len(seen) != len(urls) {
		t.Fatalf("expected %d outcomes, got %d", len(urls), len(seen))
	}
	for _, u := range urls {
		o, ok := seen[u]
		if !ok {
			t.Fatalf("missing outcome for %v", u)
		}
		if o.Err != nil {
			t.Errorf("%v: unexpected error: %v", u, o.Err)
		}
		if len(o.Groups) == 0 {
			t.Errorf("%v: expected at least one detected group", u)
		}
	}
}

func TestRunnerHandlesRepeatedURL(t *testing.T) {
	srv := newTestServer(t)
	defer srv.Close()

	feeddetector.Config.Batch.NumSimultaneousFetchers = 2
	feeddetector.Config.Batch.ResultCacheSize = 10
	feeddetector.Config.FetchTimeout = "5s"
	feeddetector.Config.UserAgent = "feeddetect-test"

	runner, err := NewRunner()
	if err != nil {
		t.Fatalf("NewRunner: %v", err)
	}
	runner.Client = srv.Client()

	url := srv.URL + "/same"
	var mu sync.Mutex
	var outcomes []Outcome
	runner.Run(context.Background(), []string{url, url}, func(o Outcome) {
		mu.Lock()
		outcomes = append(outcomes, o)
		mu.Unlock()
	})

	if len(outcomes) != 2 {
		t.Fatalf("expected 2 outcomes, got %d", len(outcomes))
	}
}
