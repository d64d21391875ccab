package fetch

import (
	"regexp"
	"strings"

	feeddetector "github.com/webos-goodies/feed-detector"
)

var (
	negativeClass = regexp.MustCompile(`(?i)combx|comment|com-|contact|foot|footer|footnote|masthead|media|meta|outbrain|promo|related|scroll|shoutbox|sidebar|sponsor|shopping|tags|tool|widget`)
	positiveClass = regexp.MustCompile(`(?i)article|body|content|entry|hentry|main|page|pagination|post|text|blog|story`)
)

var candidateTags = map[string]bool{
	"div": true, "section": true, "article": true, "td": true, "main": true,
}

// StripArticleBody picks root's best-guess main content region and removes
// the class and id attributes of every div, section, article, td and main
// element outside that region's subtree (the region's own ancestors
// included). Other elements outside the region, such as ul, li and a, keep
// their attributes, and everything inside the region is left as it is. It
// never removes elements outright, since the detector relies on the
// document's original structural shape (§4), and it does not touch the
// detector's scratch attributes.
//
// This is a heuristic simplification of readability-style extraction
// (scoring by tag, class/id weight and link density), not a full port: it
// picks the single highest scoring candidate container and leaves content
// outside it structurally present but selector-inert.
func StripArticleBody(root feeddetector.Element) {
	best, bestScore := (feeddetector.Element)(nil), negInf
	for tag := range candidateTags {
		for _, el := range root.Descendants(tag) {
			s := scoreCandidate(el)
			if s > bestScore {
				best, bestScore = el, s
			}
		}
	}
	if best == nil || bestScore <= 0 {
		return
	}

	// Elements are re-wrapped on every Descendants call, so identity can't
	// be tracked by comparing Element values across calls; mark the winner
	// with a scratch attribute instead and look it up by that.
	best.SetAttr(bestMarkerAttr, "1")
	defer best.RemoveAttr(bestMarkerAttr)

	for tag := range candidateTags {
		for _, el := range root.Descendants(tag) {
			if _, ok := el.Attr(bestMarkerAttr); ok {
				continue
			}
			if isDescendantOfMarked(el) {
				continue
			}
			neutralizeSelectors(el)
		}
	}
}

const bestMarkerAttr = "_fd_fetch_best_"

const negInf = -1 << 30

func scoreCandidate(el feeddetector.Element) int {
	score := classWeight(el)

	switch el.Tag() {
	case "div", "main", "article", "section":
		score += 5
	case "td":
		score -= 3
	}

	text := el.Text()
	commas := strings.Count(text, ",") + strings.Count(text, "、")/2
	score += commas

	textLen := len([]rune(strings.TrimSpace(text)))
	linkLen := 0
	for _, a := range el.Descendants("a") {
		linkLen += len([]rune(strings.TrimSpace(a.Text())))
	}
	if textLen > 0 && float64(linkLen)/float64(textLen) > 0.5 {
		score -= 10
	}

	return score
}

func classWeight(el feeddetector.Element) int {
	weight := 0
	cls, _ := el.Attr("class")
	id, _ := el.Attr("id")
	feature := cls + " " + id
	if feature == " " {
		return 0
	}
	if negativeClass.MatchString(feature) {
		weight -= 25
	}
	if positiveClass.MatchString(feature) {
		weight += 25
	}
	return weight
}

func isDescendantOfMarked(el feeddetector.Element) bool {
	for _, a := range el.Ancestors() {
		if _, ok := a.Attr(bestMarkerAttr); ok {
			return true
		}
	}
	return false
}

// neutralizeSelectors clears the class and id attributes the detector's path
// enumeration keys off of, so el contributes only its bare tag to selectors,
// without removing el or its children from the tree.
func neutralizeSelectors(el feeddetector.Element) {
	el.RemoveAttr("id")
	el.RemoveAttr("class")
}
