package feeddetector

// newEntryGroup builds the EntryGroup for a Path whose entry set has not
// been seen under any other Path (fingerprint dedup happens in optimize.go),
// and scores it per §4.6.
func newEntryGroup(p *Path) *EntryGroup {
	g := &EntryGroup{
		Entries: append([]*Entry(nil), p.Entries...),
		URLSet:  map[string]bool{},
	}
	g.addPath(p)

	var sum int
	for _, e := range g.Entries {
		sum += e.Score
		if e.URL != "" {
			g.URLSet[e.URL] = true
		}
	}
	g.Score = float64(sum)

	scoreDuplication(g)
	scoreFullpathUniformity(g)
	g.CBGScore = scoreCBGDispersion(g)

	return g
}

// scoreDuplication penalizes repeated (title, url) pairs, then repeated
// urls, then repeated titles, walking entries in order and penalizing only
// occurrences after the first seen of each key (§4.6 step 2).
func scoreDuplication(g *EntryGroup) {
	seenKey := map[string]bool{}
	seenURL := map[string]bool{}
	seenTitle := map[string]bool{}

	for _, e := range g.Entries {
		key := e.Title + "\x00" + e.URL
		switch {
		case seenKey[key]:
			g.Score += scoreDupKey
		case seenURL[e.URL]:
			g.Score += scoreDupURL
		case seenTitle[e.Title]:
			g.Score += scoreDupTitle
		}
		seenKey[key] = true
		seenURL[e.URL] = true
		seenTitle[e.Title] = true
	}
}

// scoreFullpathUniformity divides the score when more than one distinct
// fullpath recurs across the entry set, since a single repeating ancestor
// chain is the strongest signal that a Path's entries really are one
// repeating structure (§4.6 step 3).
func scoreFullpathUniformity(g *EntryGroup) {
	counts := map[string]int{}
	for _, e := range g.Entries {
		counts[e.Fullpath]++
	}
	recurring := 0
	max := 0
	for _, c := range counts {
		if c > 1 {
			recurring++
		}
		if c > max {
			max = c
		}
	}
	if recurring <= 1 {
		return
	}
	g.Score /= float64(max) * 0.9
}

// scoreCBGDispersion dampens groups whose entries are scattered across many
// distinct CBG contexts: a feed region usually lives inside one context, so
// dispersion across k contexts multiplies the score by scale^(k-1), where
// scale is 0.6 for a positive score (it shrinks toward zero) and 1.5 for a
// zero or negative score (it grows more negative rather than shrinking
// toward zero) (§4.6 step 4).
func scoreCBGDispersion(g *EntryGroup) float64 {
	distinct := map[int]bool{}
	for _, e := range g.Entries {
		distinct[e.CBGID] = true
	}
	k := len(distinct)
	if k <= 1 {
		return g.Score
	}

	scale := 0.6
	if g.Score <= 0 {
		scale = 1.5
	}

	cbgScore := g.Score
	for i := 1; i < k; i++ {
		cbgScore *= scale
	}
	return cbgScore
}
