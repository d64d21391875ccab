package feeddetector_test

import (
	"strings"
	"testing"

	feeddetector "github.com/webos-goodies/feed-detector"
	"github.com/webos-goodies/feed-detector/htmldom"
)

func firstAnchor(t *testing.T, html string) feeddetector.Element {
	t.Helper()
	doc, err := htmldom.ParseFragment(html)
	if err != nil {
		t.Fatalf("ParseFragment: %v", err)
	}
	anchors := doc.Root().Descendants("a")
	if len(anchors) == 0 {
		t.Fatalf("no <a> found in fragment")
	}
	return anchors[0]
}

func TestDetectFindsRepeatingList(t *testing.T) {
	html := `<html><body><ul class="articles">` +
		`<li><a href="http://example.com/a1">First article headline</a></li>` +
		`<li><a href="http://example.com/a2">Second article headline</a></li>` +
		`<li><a href="http://example.com/a3">Third article headline</a></li>` +
		`<li><a href="http://example.com/a4">Fourth article headline</a></li>` +
		`<li><a href="http://example.com/a5">Fifth article headline</a></li>` +
		`</ul></body></html>`

	doc, err := htmldom.ParseFragment(html)
	if err != nil {
		t.Fatalf("ParseFragment: %v", err)
	}

	groups := feeddetector.Detect(doc, feeddetector.Options{})
	if len(groups) == 0 {
		t.Fatalf("expected at least one group, got none")
	}

	best := groups[0]
	if len(best.Entries) != 5 {
		t.Errorf("expected 5 entries in the top group, got %d", len(best.Entries))
	}
	if best.Score <= 0 {
		t.Errorf("expected a positive score for a clean repeating list, got %v", best.Score)
	}
}

func TestDetectSkipOptimizationReturnsRawCandidates(t *testing.T) {
	html := `<html><body><ul>` +
		`<li><a href="http://example.com/a1">one headline</a></li>` +
		`<li><a href="http://example.com/a2">two headline</a></li>` +
		`</ul></body></html>`
	doc, err := htmldom.ParseFragment(html)
	if err != nil {
		t.Fatalf("ParseFragment: %v", err)
	}

	groups := feeddetector.Detect(doc, feeddetector.Options{SkipOptimization: true})
	if len(groups) == 0 {
		t.Fatalf("expected raw candidates, got none")
	}
	// SkipOptimization bypasses removeSmallGroups, so a 2-entry group (below
	// the minimum of 4) must still appear.
	found := false
	for _, g := range groups {
		if len(g.Entries) == 2 {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a 2-entry group to survive with SkipOptimization set")
	}
}

func TestDenyListRejectsKnownTrackingLinks(t *testing.T) {
	html := `<html><body><ul>` +
		`<li><a href="http://www.facebook.com/sharer/sharer.php?u=x">Share</a></li>` +
		`<li><a href="http://example.com/article">A real headline here</a></li>` +
		`</ul></body></html>`
	doc, err := htmldom.ParseFragment(html)
	if err != nil {
		t.Fatalf("ParseFragment: %v", err)
	}

	groups := feeddetector.Detect(doc, feeddetector.Options{SkipOptimization: true})
	var shareEntry *feeddetector.Entry
	for _, g := range groups {
		for _, e := range g.Entries {
			if strings.Contains(e.URL, "facebook.com/sharer") {
				shareEntry = e
			}
		}
	}
	if shareEntry == nil {
		t.Fatalf("expected the facebook share anchor to still produce an entry")
	}
	if shareEntry.Score >= 0 {
		t.Errorf("expected the deny-listed url to score negatively, got %v", shareEntry.Score)
	}
}
