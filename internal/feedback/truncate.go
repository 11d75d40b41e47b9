package feedback

import "unicode/utf8"

// ellipsis marks a value that was clipped to fit a storage ceiling.
const ellipsis = "..."

// Truncate clips s so its stored form never exceeds ceiling bytes.
// Oversized values are cut to at most ceiling-3 bytes on a rune boundary
// and the ellipsis marker appended, so an all-ASCII result is exactly the
// ceiling and a multibyte result never splits a UTF-8 sequence. Ceilings
// too small to fit the marker clip without one. Returns the (possibly
// clipped) string and whether truncation occurred.
func Truncate(s string, ceiling int) (string, bool) {
	if len(s) <= ceiling {
		return s, false
	}
	if ceiling <= len(ellipsis) {
		return cutAtRuneBoundary(s, ceiling), true
	}
	return cutAtRuneBoundary(s, ceiling-len(ellipsis)) + ellipsis, true
}

// cutAtRuneBoundary returns the longest prefix of s that is at most n
// bytes and does not end inside a multibyte rune.
func cutAtRuneBoundary(s string, n int) string {
	if n <= 0 {
		return ""
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
