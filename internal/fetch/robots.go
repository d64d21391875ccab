package fetch

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sync"

	"github.com/alecthomas/log4go"
	"github.com/temoto/robotstxt"

	feeddetector "github.com/webos-goodies/feed-detector"
)

// defaultGroup permits everything; it's returned whenever a host's
// robots.txt can't be fetched or parsed.
var defaultGroup = mustDefaultGroup()

func mustDefaultGroup() *robotstxt.Group {
	data, err := robotstxt.FromBytes([]byte("User-agent: *\n"))
	if err != nil {
		panic(err)
	}
	return data.FindGroup(feeddetector.Config.UserAgent)
}

var (
	robotsMu    sync.Mutex
	robotsCache = map[string]*robotstxt.Group{}
)

// allowedByRobots reports whether target may be fetched under the robots.txt
// published by target's host. A failure to fetch or parse robots.txt is not
// itself an error worth stopping for: it's reported back so the caller can
// log it, and the default (permissive) group is applied instead.
func allowedByRobots(ctx context.Context, client *http.Client, target *url.URL) (bool, error) {
	grp, fetchErr := fetchRobotsGroup(ctx, client, target.Host)
	return grp.Test(target.Path), fetchErr
}

func fetchRobotsGroup(ctx context.Context, client *http.Client, host string) (*robotstxt.Group, error) {
	robotsMu.Lock()
	if grp, ok := robotsCache[host]; ok {
		robotsMu.Unlock()
		return grp, nil
	}
	robotsMu.Unlock()

	grp, err := getRobots(ctx, client, host)

	robotsMu.Lock()
	robotsCache[host] = grp
	robotsMu.Unlock()

	return grp, err
}

// getRobots fetches and parses $host/robots.txt, falling back to
// defaultGroup on any failure.
func getRobots(ctx context.Context, client *http.Client, host string) (*robotstxt.Group, error) {
	u := url.URL{Scheme: "http", Host: host, Path: "/robots.txt"}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return defaultGroup, fmt.Errorf("robots: building request for %v: %v", host, err)
	}
	req.Header.Set("User-Agent", feeddetector.Config.UserAgent)

	resp, err := client.Do(req)
	if err != nil {
		return defaultGroup, fmt.Errorf("robots: fetching %v: %v", u.String(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log4go.Debug("robots: %v returned %v, assuming no robots.txt", u.String(), resp.StatusCode)
		return defaultGroup, nil
	}

	robots, err := robotstxt.FromResponse(resp)
	if err != nil {
		return defaultGroup, fmt.Errorf("robots: parsing %v: %v", u.String(), err)
	}

	return robots.FindGroup(feeddetector.Config.UserAgent), nil
}
