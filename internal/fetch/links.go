package fetch

import (
	"net/url"

	"github.com/PuerkitoBio/purell"

	feeddetector "github.com/webos-goodies/feed-detector"
)

// linkAttrs are the attributes that carry a resolvable URL, keyed by the
// tag that carries them.
var linkAttrs = map[string]string{
	"a":    "href",
	"area": "href",
	"img":  "src",
}

// MakeLinksAbsolute resolves every href/src found under root against base,
// and normalizes the result with purell's safe rules plus fragment removal. Hrefs
// that fail to parse are left untouched, mirroring lxml's
// handle_failures='discard' (document.py).
func MakeLinksAbsolute(root feeddetector.Element, base *url.URL) {
	for tag, attr := range linkAttrs {
		for _, el := range root.Descendants(tag) {
			raw, ok := el.Attr(attr)
			if !ok || raw == "" {
				continue
			}
			resolved, err := resolve(base, raw)
			if err != nil {
				continue
			}
			el.SetAttr(attr, resolved)
		}
	}
}

func resolve(base *url.URL, ref string) (string, error) {
	u, err := url.Parse(ref)
	if err != nil {
		return "", err
	}
	abs := base.ResolveReference(u)
	return purell.NormalizeURLString(abs.String(),
		purell.FlagsSafe|purell.FlagRemoveFragment)
}

// Host returns the host name of rawURL, without any port. It is not reduced
// to the registrable domain (eTLD+1). It is a thin convenience used by
// internal/batch as part of its result cache key.
func Host(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	return u.Hostname(), nil
}
