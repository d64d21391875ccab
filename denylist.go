package feeddetector

import "regexp"

// denyPattern matches the hosts/paths of well-known ad, share, and redirect
// endpoints (§6). It is applied to the substring of a url following the
// http(s):// prefix matched by linkMatch, mirroring the original detector's
// is_valid_url(url) = LINK_MATCH(url) and not DENY_MATCH(url, end-of-match).
const denyPattern = `(?i)` +
	`www\.facebook\.com/sharer/sharer\.php` + `|` +
	`twitter\.com/intent/tweet` + `|` +
	`twitter\.com/share` + `|` +
	`adclick\.g\.doubleclick\.net/` + `|` +
	`googleads\.g\.doubleclick\.net/` + `|` +
	`paid\.outbrain\.com/network/redir` + `|` +
	`a\.popin\.cc/popin_redirect/` + `|` +
	`click\.linksynergy\.com/` + `|` +
	`[^w][^.]+\.i-mobile\.co\.jp/` + `|` +
	`[^.]+\.[^.]+\.impact-ad\.jp/` + `|` +
	`nkis\.nikkei\.com/pub_click/` + `|` +
	`rd\.ane\.yahoo\.co\.jp/` + `|` +
	`dsp\.logly\.co\.jp/click\?ad=` + `|` +
	`ac\.ebis\.ne\.jp/` + `|` +
	`af\.moshimo\.com/` + `|` +
	`tr\.adgocoo\.com/` + `|` +
	`s-adserver\.cxad\.cxense\.com/` + `|` +
	`tg\.socdm\.com/rd` + `|` +
	`adserver\.adtechjp\.com/` + `|` +
	`2ch-c\.net/`

var denyMatch = regexp.MustCompile(denyPattern)

// isValidURL reports whether s is an http(s) url (per looksLikeLink) that
// does not match the deny list. Callers that need a broader or narrower
// deny list should configure Config.ExtraDenyPattern, or post-filter the
// detector's output — the compiled deny list itself is not replaceable at
// runtime, matching §6's "part of the core's public contract".
func isValidURL(s string) bool {
	loc := linkMatch.FindStringIndex(s)
	if loc == nil {
		return false
	}
	rest := s[loc[1]:]
	if matchesAtStart(denyMatch, rest) {
		return false
	}
	if extraDenyMatch != nil && matchesAtStart(extraDenyMatch, rest) {
		return false
	}
	return true
}

// matchesAtStart reports whether re matches rest beginning at index 0,
// mirroring Python's re.match (anchored at the start, not anywhere in the
// string) rather than Go's MatchString (anchored nowhere, like re.search).
func matchesAtStart(re *regexp.Regexp, rest string) bool {
	loc := re.FindStringIndex(rest)
	return loc != nil && loc[0] == 0
}
