package sync

import "photo-sync/feature/photos/match"

// Dedupe key prefixes. The guid form is preferred; the url form covers
// fallback matches without per-photo attribution.
const (
	dedupeKeyGUIDPrefix = "guid:"
	dedupeKeyURLPrefix  = "url:"
)

// DedupeKey derives the stable identity key for a resolved match.
//
// The guid form survives URL churn (signed query parameters, CDN moves), so
// re-syncing the same photo always lands on the same row. The url form uses
// the same canonicalization as rendition collapsing, so identifier-less
// matches of the same image still dedupe against each other.
func DedupeKey(m match.Match, policy match.Policy) string {
	if m.Normalized != "" {
		return dedupeKeyGUIDPrefix + m.Normalized
	}
	return dedupeKeyURLPrefix + policy.CanonicalURL(m.Candidate.URL)
}
