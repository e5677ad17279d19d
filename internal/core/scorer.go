// Package core implements the workspace intelligence engine: fuzzy entity
// resolution, context assembly, memory retrieval, timeline extraction, and
// briefing synthesis over a markdown workspace.
package core

import (
	"strings"
)

// Match score tiers, highest first. Scoring stops at the first rule that
// fires, so a prefix match never also counts as word overlap.
const (
	scoreExact           = 100.0
	scoreSlugEqual       = 90.0
	scoreCandidatePrefix = 70.0
	scoreReferencePrefix = 60.0
	scoreAllWords        = 50.0
	scorePerOverlapWord  = 10.0
)

// Score rates how well candidate matches reference on a 0..100 scale.
// Both sides are normalized first; an empty side scores zero.
func Score(reference, candidate string) float64 {
	ref := normalize(reference)
	cand := normalize(candidate)
	if ref == "" || cand == "" {
		return 0
	}
	if ref == cand {
		return scoreExact
	}
	if Slugify(reference) == Slugify(candidate) {
		return scoreSlugEqual
	}
	if strings.HasPrefix(cand, ref) {
		return scoreCandidatePrefix
	}
	if strings.HasPrefix(ref, cand) {
		return scoreReferencePrefix
	}

	refWords := strings.Fields(ref)
	candWords := strings.Fields(cand)
	overlap := 0
	for _, rw := range refWords {
		for _, cw := range candWords {
			if strings.Contains(cw, rw) || strings.Contains(rw, cw) {
				overlap++
				break
			}
		}
	}
	if overlap == len(refWords) {
		return scoreAllWords
	}
	return float64(overlap) * scorePerOverlapWord
}

// normalize lowercases, removes everything outside [a-z0-9] and
// whitespace, collapses runs of whitespace, and trims.
func normalize(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '\t', r == '\n', r == '\r':
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// Slugify converts a display name into its hyphen-joined file form:
// "Jane Smith" -> "jane-smith". Runs of non-alphanumerics collapse into
// a single hyphen, so existing slugs pass through unchanged.
func Slugify(s string) string {
	var b strings.Builder
	pendingHyphen := false
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
		} else {
			pendingHyphen = true
		}
	}
	return b.String()
}
