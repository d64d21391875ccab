// Package batch runs detection over many urls concurrently, bounding the
// number of simultaneous fetches and caching results per url so that a url
// already handled in this run isn't fetched and detected again.
package batch

import (
	"context"
	"net/http"
	"sync"

	lru "github.com/hashicorp/golang-lru"

	feeddetector "github.com/webos-goodies/feed-detector"
	"github.com/webos-goodies/feed-detector/internal/fetch"
	"github.com/webos-goodies/feed-detector/semaphore"
)

// Outcome is the per-url result delivered to a ResultHandler.
type Outcome struct {
	URL    string
	Groups []*feeddetector.EntryGroup
	Err    error
}

// Runner fetches and detects a batch of urls with bounded concurrency,
// caching results by url so that a url repeated after its first result is
// stored skips the network round trip.
type Runner struct {
	Client  *http.Client
	Options feeddetector.Options

	sem   *semaphore.Semaphore
	cache *lru.Cache
}

// NewRunner builds a Runner whose concurrency is bounded by
// Config.Batch.NumSimultaneousFetchers and whose per-url result cache is
// sized by Config.Batch.ResultCacheSize. The new Runner's semaphore starts
// seeded with that many permits.
func NewRunner() (*Runner, error) {
	cache, err := lru.New(feeddetector.Config.Batch.ResultCacheSize)
	if err != nil {
		return nil, err
	}
	limit := feeddetector.Config.Batch.NumSimultaneousFetchers
	if limit < 1 {
		limit = 1
	}
	sem := semaphore.New()
	sem.Add(limit)
	r := &Runner{
		Client: http.DefaultClient,
		sem:    sem,
		cache:  cache,
	}
	return r, nil
}

// Run fetches and detects every url in urls, invoking handle once per url.
// At most Config.Batch.NumSimultaneousFetchers fetches are in flight at
// once; handle may be called concurrently from multiple goroutines. Run
// does not return until every url has been handled.
func (r *Runner) Run(ctx context.Context, urls []string, handle func(Outcome)) {
	var wg sync.WaitGroup
	for _, u := range urls {
		u := u
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.sem.Wait() // blocks until a permit is available
			r.sem.Done() // consume it
			defer r.sem.Add(1) // return it when this fetch finishes
			handle(r.runOne(ctx, u))
		}()
	}
	wg.Wait()
}

func (r *Runner) runOne(ctx context.Context, rawURL string) Outcome {
	host, err := fetch.Host(rawURL)
	if err == nil && host != "" {
		if cached, ok := r.cache.Get(cacheKey(host, rawURL)); ok {
			return cached.(Outcome)
		}
	}

	out := r.detect(ctx, rawURL)

	if host != "" {
		r.cache.Add(cacheKey(host, rawURL), out)
	}
	return out
}

func (r *Runner) detect(ctx context.Context, rawURL string) Outcome {
	res, err := fetch.Fetch(ctx, r.Client, rawURL)
	if err != nil {
		return Outcome{URL: rawURL, Err: err}
	}
	groups := feeddetector.Detect(res.Doc, r.Options)
	return Outcome{URL: rawURL, Groups: groups}
}

func cacheKey(host, rawURL string) string {
	return host + "\x00" + rawURL
}
