package feeddetector

import "strconv"

// annotateIndices is the index annotator (C2, §4.2). It runs once, before
// the CBG walk, and stamps every element with its 1-based sibling position,
// marks tables containing a spanned cell, and aligns the class attributes of
// list items / table rows so that a repeating row or item shares one
// selector regardless of per-row "alt" styling.
func annotateIndices(root Element) {
	assignIndices(root)
}

func assignIndices(parent Element) {
	for i, el := range parent.Children() {
		el.SetAttr(IndexAttr, strconv.Itoa(i+1))
		assignIndices(el)
	}

	switch parent.Tag() {
	case "td", "th":
		if hasSpanAttr(parent) {
			markSpannedTable(parent)
		}
	case "ul", "ol":
		alignClasses(parent, "li")
	case "tbody", "thead":
		alignClasses(parent, "tr")
	case "table":
		alignClasses(parent, "tr")
		if v, ok := parent.Attr(TableAttr); ok && v == "spanned" {
			for _, td := range parent.Descendants("td") {
				td.RemoveAttr(IndexAttr)
			}
			for _, th := range parent.Descendants("th") {
				th.RemoveAttr(IndexAttr)
			}
		}
	}
}

func hasSpanAttr(el Element) bool {
	if v, ok := el.Attr("colspan"); ok && v != "" {
		return true
	}
	if v, ok := el.Attr("rowspan"); ok && v != "" {
		return true
	}
	return false
}

func markSpannedTable(cell Element) {
	for _, a := range cell.Ancestors() {
		if a.Tag() == "table" {
			a.SetAttr(TableAttr, "spanned")
			return
		}
	}
}

// alignClasses overwrites the class attribute of every direct child of
// parent whose tag is targetTag with the intersection of all such children's
// class tokens, collapsing per-row "alt" styling into one canonical class
// set. An empty intersection clears the class value.
func alignClasses(parent Element, targetTag string) {
	var children []Element
	for _, c := range parent.Children() {
		if c.Tag() == targetTag {
			children = append(children, c)
		}
	}
	if len(children) == 0 {
		return
	}

	shared := classSet(children[0])
	for _, c := range children[1:] {
		shared = intersectClassSets(shared, classSet(c))
	}

	tokens := make([]string, 0, len(shared))
	for tok := range shared {
		if tok != "" {
			tokens = append(tokens, tok)
		}
	}
	sortStrings(tokens)
	joined := joinSpace(tokens)

	for _, c := range children {
		c.SetAttr("class", joined)
	}
}

func classSet(el Element) map[string]bool {
	set := map[string]bool{}
	for _, tok := range classTokens(el) {
		set[tok] = true
	}
	return set
}

func intersectClassSets(a, b map[string]bool) map[string]bool {
	out := map[string]bool{}
	for tok := range a {
		if b[tok] {
			out[tok] = true
		}
	}
	return out
}

func joinSpace(tokens []string) string {
	out := ""
	for i, t := range tokens {
		if i > 0 {
			out += " "
		}
		out += t
	}
	return out
}
