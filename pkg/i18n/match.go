package i18n

import (
	"cmp"
	"slices"
	"strconv"
	"strings"
)

// Headers beyond this length are truncated before parsing.
const maxHeaderLength = 4096

type acceptedLang struct {
	tag string
	q   float64
}

// ParseAcceptLanguage picks the best match for an Accept-Language header
// from the available languages. Tags are considered in descending quality
// order; a tag matches an available language exactly or by shared base
// ("en-US" matches "en" and vice versa). With no match, an empty header, or
// only wildcards, the first available language wins.
func ParseAcceptLanguage(header string, available []string) string {
	if len(available) == 0 {
		return ""
	}
	for _, want := range parseAccepted(header) {
		for _, have := range available {
			if langMatches(want.tag, have) {
				return have
			}
		}
	}
	return available[0]
}

// parseAccepted splits the header into tags sorted by quality, highest
// first. Wildcards and malformed quality values are dropped or defaulted.
func parseAccepted(header string) []acceptedLang {
	if len(header) > maxHeaderLength {
		header = header[:maxHeaderLength]
	}

	var accepted []acceptedLang
	for part := range strings.SplitSeq(header, ",") {
		tag, attr, _ := strings.Cut(strings.TrimSpace(part), ";")
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" || tag == "*" {
			continue
		}

		q := 1.0
		if attr = strings.TrimSpace(attr); strings.HasPrefix(attr, "q=") {
			if v, err := strconv.ParseFloat(attr[2:], 64); err == nil && v >= 0 && v <= 1 {
				q = v
			}
		}
		accepted = append(accepted, acceptedLang{tag: tag, q: q})
	}

	slices.SortStableFunc(accepted, func(a, b acceptedLang) int {
		return cmp.Compare(b.q, a.q)
	})
	return accepted
}

func langMatches(requested, available string) bool {
	available = strings.ToLower(available)
	return requested == available || baseLang(requested) == baseLang(available)
}
