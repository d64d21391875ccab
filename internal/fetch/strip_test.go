package fetch

import (
	"strings"
	"testing"

	"github.com/webos-goodies/feed-detector/htmldom"
)

func TestStripArticleBodyNeutralizesOutsideContent(t *testing.T) {
	html := `<html><body>` +
		`<div class="sidebar widget"><a href="/x" class="promo">ad</a></div>` +
		`<article class="post-content"><p>` +
		strings.Repeat("Lorem ipsum dolor sit amet, consectetur adipiscing elit, ", 20) +
		`</p></article>` +
		`</body></html>`

	doc, err := htmldom.ParseFragment(html)
	if err != nil {
		t.Fatalf("ParseFragment: %v", err)
	}
	root := doc.Root()
	StripArticleBody(root)

	sidebar := root.Descendants("div")[0]
	if _, ok := sidebar.Attr("class"); ok {
		t.Errorf("expected the sidebar's class to be neutralized")
	}

	article := root.Descendants("article")[0]
	if v, ok := article.Attr("class"); !ok || v != "post-content" {
		t.Errorf("expected the winning candidate's class to survive untouched, got %q (ok=%v)", v, ok)
	}
}

func TestStripArticleBodyNoopWhenNoCandidateScoresPositive(t *testing.T) {
	html := `<html><body><div class="footer">short</div></body></html>`
	doc, err := htmldom.ParseFragment(html)
	if err != nil {
		t.Fatalf("ParseFragment: %v", err)
	}
	root := doc.Root()
	StripArticleBody(root)

	div := root.Descendants("div")[0]
	if _, ok := div.Attr("class"); !ok {
		t.Errorf("expected StripArticleBody to leave the tree untouched when no candidate scores positive")
	}
}
