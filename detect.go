// Package feeddetector discovers repeating link-list regions — feed-like
// blocks of anchors such as article listings, related-link rails, and
// pagination-adjacent navigation — inside an already-parsed HTML document.
//
// Detect is the package's single entry point. Callers provide a Document
// built by an adapter (see the htmldom subpackage for one built on
// golang.org/x/net/html) and receive a ranked slice of EntryGroups, each one
// a candidate feed region.
package feeddetector

// Detect runs the full detection pipeline (§2) over doc: it annotates every
// element with its sibling index and aligns repeating class sets (C2), walks
// the tree to assign context ids and single-anchor <li> wrappers (C3),
// builds one Entry per http(s) anchor together with its candidate selector
// tuples (C4), aggregates those tuples into Paths (C5), scores every
// resulting EntryGroup (C6), and finally ranks and culls the candidates
// (C7). The returned slice is ordered best candidate first.
func Detect(doc Document, opts Options) []*EntryGroup {
	root := doc.Root()
	annotateIndices(root)
	paths := buildPaths(root)
	return optimize(paths, opts)
}
