package utils

import "strings"

// Slugify lowercases s and collapses every run of non-alphanumeric
// characters into a single hyphen, trimming leading/trailing hyphens.
// Returns "" when nothing survives; callers decide the fallback.
func Slugify(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevHyphen := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prevHyphen = false
		default:
			if !prevHyphen && b.Len() > 0 {
				b.WriteByte('-')
				prevHyphen = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// SlugOr slugifies s and falls back to gen() when the result is empty.
func SlugOr(s string, gen func() string) string {
	if out := Slugify(s); out != "" {
		return out
	}
	return gen()
}
