package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/temoto/robotstxt"

	feeddetector "github.com/webos-goodies/feed-detector"
)

func resetRobotsCache() {
	robotsMu.Lock()
	robotsCache = map[string]*robotstxt.Group{}
	robotsMu.Unlock()
}

func TestAllowedByRobotsHonorsDisallow(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			w.Write([]byte("User-agent: *\nDisallow: /private/\n"))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	host := srv.Listener.Addr().String()
	resetRobotsCache()
	defer resetRobotsCache()

	client := srv.Client()
	allowed, err := allowedByRobots(context.Background(), client, mustParseURLWithHost(t, host, "/private/secret"))
	if err != nil {
		t.Fatalf("allowedByRobots: %v", err)
	}
	if allowed {
		t.Errorf("expected /private/secret to be disallowed")
	}

	allowed, err = allowedByRobots(context.Background(), client, mustParseURLWithHost(t, host, "/public/page"))
	if err != nil {
		t.Fatalf("allowedByRobots: %v", err)
	}
	if !allowed {
		t.Errorf("expected /public/page to be allowed")
	}
}

func TestAllowedByRobotsFallsBackToPermissiveOnFetchFailure(t *testing.T) {
	resetRobotsCache()
	defer resetRobotsCache()

	// No server is listening on this address, so the robots.txt fetch fails
	// and the default permissive group should apply.
	allowed, err := allowedByRobots(context.Background(), http.DefaultClient,
		mustParseURLWithHost(t, "127.0.0.1:1", "/anything"))
	if err == nil {
		t.Fatalf("expected a non-nil error reporting the fetch failure")
	}
	if !allowed {
		t.Errorf("expected the permissive default group to allow the path despite the fetch failure")
	}
}

func mustParseURLWithHost(t *testing.T, host, path string) *url.URL {
	t.Helper()
	u, err := url.Parse("http://" + host + path)
	if err != nil {
		t.Fatalf("url.Parse: %v", err)
	}
	return u
}

func init() {
	feeddetector.Config.UserAgent = "feeddetect-test"
}
