package feeddetector

import (
	"strconv"
	"strings"
)

// groupTags are the container tags that start a fresh CBG scope (§4.3).
var groupTags = map[string]bool{
	"ul": true, "ol": true, "dl": true, "table": true,
	"footer": true, "header": true, "main": true, "nav": true,
}

func isHeaderTag(tag string) bool {
	switch tag {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		return true
	}
	return false
}

// cbgWalker is the CBG walker (C3, §4.3). It assigns every element a scratch
// UID and every anchor a context id (cbgID), and records which anchors have
// a single enclosing <li> wrapper.
type cbgWalker struct {
	elID     int
	prevID   int
	hdrID    int
	curID    int
	cbgMap   map[string]int
	wrappers map[string]Element

	aCount int
	lastA  string
}

func newCBGWalker() *cbgWalker {
	w := &cbgWalker{
		cbgMap:   map[string]int{},
		wrappers: map[string]Element{},
	}
	w.hdrID = w.newID()
	w.curID = w.newID()
	return w
}

func (w *cbgWalker) newID() int {
	w.prevID++
	return w.prevID
}

func (w *cbgWalker) walk(root Element) {
	w.contextBasedGrouping(root)
}

func (w *cbgWalker) contextBasedGrouping(parent Element) {
	for _, el := range parent.Children() {
		w.elID++
		el.SetAttr(UIDAttr, strconv.Itoa(w.elID))

		switch tag := el.Tag(); {
		case tag == "a":
			w.cbgAnchor(el)
		case tag == "li":
			w.cbgWrapper(el)
		case isHeaderTag(tag):
			w.cbgHeader(el)
		case groupTags[tag]:
			w.cbgGrouping(el)
		default:
			w.contextBasedGrouping(el)
		}
	}
}

func (w *cbgWalker) cbgAnchor(el Element) {
	uid, _ := el.Attr(UIDAttr)
	w.cbgMap[uid] = w.curID
	w.aCount++
	w.lastA = uid
	w.contextBasedGrouping(el)
}

func (w *cbgWalker) cbgWrapper(el Element) {
	outer := w.aCount
	w.aCount = 0
	w.lastA = ""
	w.contextBasedGrouping(el)
	if w.aCount == 1 && w.lastA != "" {
		w.wrappers[w.lastA] = el
	}
	w.aCount += outer
	w.lastA = ""
}

func (w *cbgWalker) cbgHeader(el Element) {
	w.curID = w.hdrID
	w.contextBasedGrouping(el)
	w.curID = w.newID()
}

func (w *cbgWalker) cbgGrouping(el Element) {
	w.curID = w.newID()
	w.contextBasedGrouping(el)
	w.curID = w.newID()
}

// removeDuplicateIDs strips the id attribute from every element whose id
// has already been seen earlier in document order (§3 invariant 5). It runs
// once, before the CBG walk, so that id-bearing selector segments (§4.5)
// never reference an ambiguous id.
func removeDuplicateIDs(root Element) {
	seen := map[string]bool{}
	var walk func(Element)
	walk = func(el Element) {
		if v, ok := el.Attr("id"); ok {
			id := strings.TrimSpace(v)
			if id != "" {
				if seen[id] {
					el.RemoveAttr("id")
				} else {
					seen[id] = true
				}
			}
		}
		for _, c := range el.Children() {
			walk(c)
		}
	}
	walk(root)
}
