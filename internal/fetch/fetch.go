// Package fetch retrieves a single HTML document over HTTP and prepares it
// for detection: decoding its declared or sniffed character encoding,
// resolving relative links against the response URL, and, optionally,
// pruning chrome outside the page's main article body.
package fetch

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"net/url"
	"time"

	"github.com/alecthomas/log4go"

	feeddetector "github.com/webos-goodies/feed-detector"
	"github.com/webos-goodies/feed-detector/htmldom"
)

// Result carries everything a caller needs from a single fetch: the decoded
// document, the final (post-redirect) URL it was fetched from, and the raw
// HTTP status.
type Result struct {
	URL        *url.URL
	StatusCode int
	Doc        *htmldom.Document
}

// Fetch retrieves rawURL, decodes its body as HTML, and resolves every
// anchor's href against the final response URL. The caller's ctx bounds the
// whole request; Config.FetchTimeout (feeddetector.Config) is used only
// when ctx carries no deadline of its own.
func Fetch(ctx context.Context, client *http.Client, rawURL string) (*Result, error) {
	if client == nil {
		client = http.DefaultClient
	}
	if _, ok := ctx.Deadline(); !ok {
		timeout, err := time.ParseDuration(feeddetector.Config.FetchTimeout)
		if err != nil {
			timeout = 15 * time.Second
		}
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch: bad url %q: %v", rawURL, err)
	}
	req.Header.Set("User-Agent", feeddetector.Config.UserAgent)

	allowed, err := allowedByRobots(ctx, client, req.URL)
	if err != nil {
		log4go.Debug("fetch: could not fetch robots.txt for %v, proceeding: %v", rawURL, err)
	} else if !allowed {
		return nil, fmt.Errorf("fetch: %v excluded by robots.txt", rawURL)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %v", err)
	}
	defer resp.Body.Close()

	log4go.Fine("fetched %v -> %v", rawURL, resp.StatusCode)

	var body io.Reader = resp.Body
	if max := feeddetector.Config.MaxBodyBytes; max > 0 {
		body = io.LimitReader(resp.Body, max)
	}
	data, err := ioutil.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("fetch: reading body of %v: %v", rawURL, err)
	}

	doc, err := Decode(data, resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, fmt.Errorf("fetch: decoding %v: %v", rawURL, err)
	}

	MakeLinksAbsolute(doc.Root(), resp.Request.URL)

	if feeddetector.Config.StripArticleBody {
		StripArticleBody(doc.Root())
	}

	return &Result{URL: resp.Request.URL, StatusCode: resp.StatusCode, Doc: doc}, nil
}

// Decode parses raw HTML bytes into a Document. The character encoding is
// taken from a BOM if present, else from the charset parameter of
// contentType (typically a Content-Type response header), else from a
// <meta> charset declaration (see htmldom.Parse).
func Decode(data []byte, contentType string) (*htmldom.Document, error) {
	return htmldom.Parse(bytes.NewReader(data), contentType)
}
