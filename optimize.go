package feeddetector

import "sort"

// negInf is the sentinel score and cbg_score assigned to a culled group
// (§4.7 step 2): low enough to sort last, to never win a later occlusion
// comparison, and to drop out of the positive-score filter in step 4.
const negInf = -65536.0

const minGroupEntries = 4

// Options controls a single Detect call (§4.8).
type Options struct {
	// SkipOptimization returns every candidate group sorted by sortGroups
	// but unculled and untruncated, bypassing removeSmallGroups,
	// occlusionCulling and the positive-score selection.
	// Intended for diagnostics and tests that need to inspect raw
	// candidates rather than the final ranked result.
	SkipOptimization bool
}

// buildGroups merges paths that share an identical entry set into one
// EntryGroup (a Path fingerprint may be produced by more than one selector
// tuple), then scores each surviving group.
func buildGroups(paths []*Path) []*EntryGroup {
	byFingerprint := map[string]*EntryGroup{}
	var ordered []*EntryGroup

	for _, p := range paths {
		fp := p.fingerprintKey()
		if fp == "" {
			continue
		}
		if g, ok := byFingerprint[fp]; ok {
			g.addPath(p)
			continue
		}
		g := newEntryGroup(p)
		byFingerprint[fp] = g
		ordered = append(ordered, g)
	}
	return ordered
}

// removeSmallGroups drops every group with 4 or fewer entries (§4.7 step 1):
// a repeating feed region needs at least a handful of items before its
// structure can be trusted over coincidence.
func removeSmallGroups(groups []*EntryGroup) []*EntryGroup {
	out := groups[:0]
	for _, g := range groups {
		if len(g.Entries) > minGroupEntries {
			out = append(out, g)
		}
	}
	return out
}

// occlusionCulling finds every pair of groups whose url sets are in a
// subset/superset relationship and culls the one with the lower cbg_score by
// driving both Score and CBGScore to negInf, so that one region is not
// reported twice at different levels of the same selector (§4.7 step 2). On
// an exact tie, b is culled.
func occlusionCulling(groups []*EntryGroup) {
	for i, a := range groups {
		if a.CBGScore == negInf {
			continue
		}
		for j := i + 1; j < len(groups); j++ {
			b := groups[j]
			if b.CBGScore == negInf {
				continue
			}
			if !urlSetsOverlapSubset(a.URLSet, b.URLSet) {
				continue
			}
			if a.CBGScore < b.CBGScore {
				a.Score, a.CBGScore = negInf, negInf
				break
			}
			b.Score, b.CBGScore = negInf, negInf
		}
	}
}

// urlSetsOverlapSubset reports whether a is a subset of b or b is a subset
// of a.
func urlSetsOverlapSubset(a, b map[string]bool) bool {
	if len(a) <= len(b) {
		return isSubset(a, b)
	}
	return isSubset(b, a)
}

func isSubset(small, big map[string]bool) bool {
	for u := range small {
		if !big[u] {
			return false
		}
	}
	return true
}

// sortGroups orders groups by (Score, CBGScore) descending, matching the
// original detector's primary/secondary sort (§4.7 step 3).
func sortGroups(groups []*EntryGroup) {
	sort.SliceStable(groups, func(i, j int) bool {
		a, b := groups[i], groups[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		return a.CBGScore > b.CBGScore
	})
}

// optimize runs the optimizer (C7, §4.7) over every candidate group and
// returns the final ranked result: up to the top 8 groups with a positive
// score if at least 4 such groups exist, otherwise the top 4 of every group
// that passed the size filter, culled groups included (they sort last).
func optimize(paths []*Path, opts Options) []*EntryGroup {
	groups := buildGroups(paths)
	if opts.SkipOptimization {
		sortGroups(groups)
		return groups
	}

	groups = removeSmallGroups(groups)
	occlusionCulling(groups)
	sortGroups(groups)

	positives := 0
	for _, g := range groups {
		if g.Score > 0 {
			positives++
		}
	}

	if positives >= 4 {
		out := make([]*EntryGroup, 0, 8)
		for _, g := range groups {
			if g.Score <= 0 {
				continue
			}
			out = append(out, g)
			if len(out) == 8 {
				break
			}
		}
		return out
	}

	if len(groups) > 4 {
		return groups[:4]
	}
	return groups
}
