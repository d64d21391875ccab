package htmldom_test

import (
	"strings"
	"testing"

	"github.com/webos-goodies/feed-detector/htmldom"
)

func TestParseFragmentFindsRootAndChildren(t *testing.T) {
	doc, err := htmldom.ParseFragment(`<html><body><div id="a"><p>hello</p></div></body></html>`)
	if err != nil {
		t.Fatalf("ParseFragment: %v", err)
	}
	root := doc.Root()
	if root.Tag() != "html" {
		t.Fatalf("expected root tag html, got %q", root.Tag())
	}

	divs := root.Descendants("div")
	if len(divs) != 1 {
		t.Fatalf("expected 1 div, got %d", len(divs))
	}
	if v, ok := divs[0].Attr("id"); !ok || v != "a" {
		t.Errorf("expected div id=a, got %q (ok=%v)", v, ok)
	}
}

func TestElementSetAndRemoveAttr(t *testing.T) {
	doc, err := htmldom.ParseFragment(`<html><body><span>x</span></body></html>`)
	if err != nil {
		t.Fatalf("ParseFragment: %v", err)
	}
	span := doc.Root().Descendants("span")[0]

	span.SetAttr("data-x", "1")
	if v, ok := span.Attr("data-x"); !ok || v != "1" {
		t.Fatalf("expected data-x=1 after SetAttr, got %q (ok=%v)", v, ok)
	}

	span.SetAttr("data-x", "2")
	if v, _ := span.Attr("data-x"); v != "2" {
		t.Fatalf("expected SetAttr to overwrite an existing attribute, got %q", v)
	}

	span.RemoveAttr("data-x")
	if _, ok := span.Attr("data-x"); ok {
		t.Fatalf("expected data-x to be removed")
	}
}

func TestElementAncestorsAreNearestFirst(t *testing.T) {
	doc, err := htmldom.ParseFragment(`<html><body><div class="outer"><ul><li><a href="x">y</a></li></ul></div></body></html>`)
	if err != nil {
		t.Fatalf("ParseFragment: %v", err)
	}
	a := doc.Root().Descendants("a")[0]
	ancestors := a.Ancestors()

	var tags []string
	for _, el := range ancestors {
		tags = append(tags, el.Tag())
	}
	want := []string{"li", "ul", "div", "body", "html"}
	if strings.Join(tags, ",") != strings.Join(want, ",") {
		t.Errorf("expected ancestor chain %v, got %v", want, tags)
	}
}

func TestElementTextJoinsDescendantText(t *testing.T) {
	doc, err := htmldom.ParseFragment(`<html><body><p>hello <b>world</b>  !</p></body></html>`)
	if err != nil {
		t.Fatalf("ParseFragment: %v", err)
	}
	p := doc.Root().Descendants("p")[0]
	if got := p.Text(); got != "hello world !" {
		t.Errorf("expected collapsed text %q, got %q", "hello world !", got)
	}
}

func TestParseDetectsDeclaredCharset(t *testing.T) {
	body := `<html><head><meta charset="utf-8"></head><body><p>café</p></body></html>`
	doc, err := htmldom.Parse(strings.NewReader(body), "text/html")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if doc.Root().Tag() != "html" {
		t.Fatalf("expected root tag html, got %q", doc.Root().Tag())
	}
	if got := doc.Root().Descendants("p")[0].Text(); got != "café" {
		t.Errorf("expected text decoded as the declared utf-8, got %q", got)
	}
}
