package feeddetector

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Base scores assigned when an Entry is constructed (§4.4). A group's score
// starts as the sum of its entries' scores and is then adjusted in floating
// point by the group scorer (score.go).
const (
	scoreLink     = 2  // normal link
	scoreImg      = 1  // title came from an <img> alt/title
	scoreDenyURL  = -6 // url matched the deny list, or wasn't http(s)
	scoreNoTitle  = -2 // no usable title could be found
	scoreLabel    = -1 // title is short or looks like a raw URL
	scoreShort    = 0  // title is borderline short

	scoreDupURL   = -4 // duplicate url, distinct title
	scoreDupTitle = -1 // duplicate title, distinct url
	scoreDupKey   = -6 // duplicate (title, url) pair
)

const maxPathBranch = 32

var (
	linkMatch  = regexp.MustCompile(`(?i)^\s*https?://`)
	labelMatch = regexp.MustCompile(`^[-+?&=%:/~#\w]+\.[-+?&=%:/.~#\w]+$`)
	shrinkSub  = regexp.MustCompile(`[\x00-\x2f\x3a-\x40\x5b-\x60\x7b-\x7f]+`)
)

// Entry is the per-anchor record built by the entry builder (C4). See §3.
type Entry struct {
	Score       int
	CBGID       int
	Element     Element
	URL         string
	Title       string
	Paths       [][]string
	Fullpath    string
	ScoreReason string // diagnostic only; never influences Score or grouping

	uid string
}

// looksLikeLink reports whether href begins (after optional leading
// whitespace) with http:// or https://, case-insensitively. This is the
// cheap prefilter applied before an Entry is even constructed; the deny
// list (§6) is checked separately once the Entry exists.
func looksLikeLink(href string) bool {
	return linkMatch.MatchString(href)
}

// buildEntry constructs the Entry for an anchor that has already passed
// looksLikeLink. cbgID is the anchor's context id (§4.3); wrapper is the
// enclosing <li> if the CBG walk registered one for this anchor, or nil.
func buildEntry(anchor Element, cbgID int, wrapper Element, uid string) *Entry {
	e := &Entry{
		Score:   scoreLink,
		CBGID:   cbgID,
		Element: anchor,
		uid:     uid,
	}

	href, _ := anchor.Attr("href")
	e.URL = strings.TrimSpace(href)
	e.Fullpath = buildFullpath(anchor)
	e.Paths = buildCandidatePaths(anchor)

	title := strings.TrimSpace(anchor.Text())
	if title == "" {
		if t, ok := anchor.Attr("title"); ok {
			title = strings.TrimSpace(t)
		}
	}
	if wrapper != nil {
		wrapperTitle := strings.TrimSpace(wrapper.Text())
		if len(title) < len(wrapperTitle) {
			title = wrapperTitle
		}
	}
	if title == "" {
		best := ""
		for _, img := range anchor.Descendants("img") {
			alt, _ := img.Attr("alt")
			cand := strings.TrimSpace(alt)
			if cand == "" {
				if t, ok := img.Attr("title"); ok {
					cand = strings.TrimSpace(t)
				}
			}
			if len(cand) > len(best) {
				best = cand
				e.Score = scoreImg
			}
		}
		title = best
	}
	e.Title = title

	switch {
	case !isValidURL(e.URL):
		e.Score = scoreDenyURL
		e.ScoreReason = "deny_url"
	case e.Title == "":
		e.Score = scoreNoTitle
		e.ScoreReason = "no_title"
	default:
		shrunk := shrinkTitle(e.Title)
		switch {
		case len([]rune(shrunk)) <= 6 || labelMatch.MatchString(e.Title):
			e.Score = scoreLabel
			e.ScoreReason = "label"
		case len([]rune(shrunk)) <= 8:
			e.Score = scoreShort
			e.ScoreReason = "short"
		default:
			e.ScoreReason = "base"
		}
	}

	return e
}

// shrinkTitle NFKD-normalizes title and strips runs of ASCII punctuation and
// control characters, per §4.4 step 5.
func shrinkTitle(title string) string {
	return shrinkSub.ReplaceAllString(norm.NFKD.String(title), "")
}

// buildFullpath returns the canonical ancestor chain used for intra-group
// uniformity scoring (§3, §4.6): every ancestor's tag plus sorted, joined
// class tokens, root-to-parent, followed by the anchor's own tag (its
// classes are never included — they may indicate click behavior rather than
// structural role).
func buildFullpath(anchor Element) string {
	ancestors := anchor.Ancestors() // nearest-first
	segments := make([]string, 0, len(ancestors)+1)
	for i := len(ancestors) - 1; i >= 0; i-- {
		a := ancestors[i]
		if cls := sortedClassTokens(a); len(cls) > 0 {
			segments = append(segments, a.Tag()+"."+strings.Join(cls, "."))
		} else {
			segments = append(segments, a.Tag())
		}
	}
	segments = append(segments, anchor.Tag())
	return strings.Join(segments, ">")
}

func sortedClassTokens(el Element) []string {
	tokens := classTokens(el)
	sortStrings(tokens)
	return tokens
}

func classTokens(el Element) []string {
	v, ok := el.Attr("class")
	if !ok {
		return nil
	}
	return strings.Fields(v)
}

// sortStrings is a tiny insertion sort to avoid pulling in "sort" for a
// handful of class tokens per ancestor; kept here because it is only ever
// called on short slices built fresh by classTokens.
func sortStrings(s []string) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}

// buildCandidatePaths walks from anchor to the root, producing the ordered
// set of candidate selector tuples described in §4.5. The returned tuples
// are root-to-anchor ordered, normal (class/tag) paths first, then any
// id-bearing paths.
func buildCandidatePaths(anchor Element) [][]string {
	var normal, idBearing [][]string
	walkCandidatePaths(anchor, &normal, &idBearing)
	out := make([][]string, 0, len(normal)+len(idBearing))
	out = append(out, normal...)
	out = append(out, idBearing...)
	return out
}

func walkCandidatePaths(el Element, normal, idBearing *[][]string) {
	tag := el.Tag()

	var paths [][]string
	var ids [][]string

	if tag == "html" || tag == "body" {
		paths = [][]string{{tag}}
	} else {
		var tagID string
		if len(*normal) > 0 {
			if v, ok := el.Attr("id"); ok {
				tagID = strings.TrimSpace(v)
			}
		}
		if tagID != "" && tag != "a" {
			xsel := tag + "#" + tagID
			if len(*normal) > 0 {
				ids = make([][]string, len(*normal))
				for i, suffix := range *normal {
					ids[i] = concatTuple([]string{xsel}, suffix)
				}
			} else {
				ids = [][]string{{xsel}}
			}
		}

		classes := classTokens(el)
		if len(classes) > 2 {
			classes = classes[:2]
		}
		for _, c := range classes {
			paths = append(paths, []string{tag + "." + c})
		}

		if tag == "td" || tag == "th" {
			if idx, ok := el.Attr(IndexAttr); ok && idx != "" {
				paths = [][]string{{tag + ":nth-child(" + idx + ")"}}
			} else {
				paths = append(paths, []string{tag})
			}
		} else {
			paths = append(paths, []string{tag})
		}
	}

	if len(*normal)+len(*idBearing) > maxPathBranch {
		paths = paths[len(paths)-1:]
		ids = nil
	}

	if len(*normal) > 0 {
		combined := make([][]string, 0, len(paths)*len(*normal))
		for _, prefix := range paths {
			for _, suffix := range *normal {
				combined = append(combined, concatTuple(prefix, suffix))
			}
		}
		*normal = combined
	} else {
		*normal = paths
	}

	if len(*idBearing) > 0 {
		fallback := paths[len(paths)-1]
		extended := make([][]string, len(*idBearing))
		for i, suffix := range *idBearing {
			extended[i] = concatTuple(fallback, suffix)
		}
		*idBearing = extended
	}
	if ids != nil {
		*idBearing = append(*idBearing, ids...)
	}

	if parent, ok := el.Parent(); ok {
		walkCandidatePaths(parent, normal, idBearing)
	}
}

func concatTuple(a, b []string) []string {
	out := make([]string, 0, len(a)+len(b))
	out = append(out, a...)
	out = append(out, b...)
	return out
}
