package feeddetector

import (
	"sort"
	"strings"
)

// Path is a candidate CSS-like selector, identified by its segment tuple
// (§3). Entries are added in insertion order and deduplicated by the
// anchor's scratch UID.
type Path struct {
	Segments []string
	Key      string
	Entries  []*Entry

	uids map[string]bool
}

func newPath(segments []string) *Path {
	return &Path{
		Segments: append([]string(nil), segments...),
		Key:      strings.Join(segments, ">"),
		uids:     map[string]bool{},
	}
}

func (p *Path) addEntry(e *Entry) {
	if p.uids[e.uid] {
		return
	}
	p.uids[e.uid] = true
	p.Entries = append(p.Entries, e)
}

// fingerprintKey returns a canonical string identifying the Path's entry set
// (§3's fingerprint), used to merge Paths whose entries are identical into
// one EntryGroup.
func (p *Path) fingerprintKey() string {
	uids := make([]string, 0, len(p.uids))
	for u := range p.uids {
		uids = append(uids, u)
	}
	sort.Strings(uids)
	return strings.Join(uids, ",")
}

// pathAggregator is the path aggregator (C5, §4.5). For every candidate
// selector tuple produced by an Entry, it emits one Path per prefix of
// length 3..len(tuple), deduplicating by the prefix's join key.
type pathAggregator struct {
	byKey   map[string]*Path
	ordered []*Path
}

func newPathAggregator() *pathAggregator {
	return &pathAggregator{byKey: map[string]*Path{}}
}

func (a *pathAggregator) add(segments []string, e *Entry) {
	for i := 3; i <= len(segments); i++ {
		prefix := segments[:i]
		key := strings.Join(prefix, ">")
		p := a.byKey[key]
		if p == nil {
			p = newPath(prefix)
			a.byKey[key] = p
			a.ordered = append(a.ordered, p)
		}
		p.addEntry(e)
	}
}

// buildPaths drives the CBG walker and entry builder to produce every Path
// with at least one Entry (§4.5, invariant 2), in the order their keys were
// first created.
func buildPaths(root Element) []*Path {
	removeDuplicateIDs(root)

	walker := newCBGWalker()
	walker.walk(root)
	defaultCBGID := walker.newID()

	agg := newPathAggregator()
	for _, anchor := range root.Descendants("a") {
		href, _ := anchor.Attr("href")
		if !looksLikeLink(href) {
			continue
		}
		uid, _ := anchor.Attr(UIDAttr)
		cbgID, ok := walker.cbgMap[uid]
		if !ok {
			cbgID = defaultCBGID
		}
		wrapper := walker.wrappers[uid]

		entry := buildEntry(anchor, cbgID, wrapper, uid)
		for _, segments := range entry.Paths {
			agg.add(segments, entry)
		}
	}
	return agg.ordered
}

// EntryGroup is one group of anchors sharing a Path fingerprint (§3, §4.6).
type EntryGroup struct {
	Entries  []*Entry
	Paths    []*Path
	URLSet   map[string]bool
	Score    float64
	CBGScore float64
}

func (g *EntryGroup) addPath(p *Path) {
	g.Paths = append(g.Paths, p)
}
