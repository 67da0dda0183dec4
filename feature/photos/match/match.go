package match

import (
	"sort"
	"strings"

	"photo-sync/core/source"
)

// ScoredCandidate is a candidate annotated with its quality score and its
// original response position.
type ScoredCandidate struct {
	URL         string
	Score       int
	SourceKey   string
	SourceIndex int
}

// Match pairs a photo with its winning candidate. Fallback matches carry a
// zero Photo and an empty Normalized identifier.
type Match struct {
	Photo      source.Photo
	Normalized string
	Candidate  ScoredCandidate
}

// Attributed reports whether the match is tied to a specific photo.
func (m Match) Attributed() bool {
	return m.Normalized != ""
}

// MatchPhotos resolves the best image URL per distinct photo identifier.
//
// Photos are de-duplicated by normalized identifier first (first occurrence
// wins). A photo that matches no usable candidate yields no Match; when no
// photo matches at all, a global top-N fallback across every candidate is
// returned without per-photo attribution.
func (p Policy) MatchPhotos(photos []source.Photo, candidates []source.AssetCandidate) []Match {
	var matches []Match

	seen := make(map[string]struct{})
	for _, photo := range photos {
		norm := NormalizeID(photo.GUID)
		if norm == "" {
			continue
		}
		if _, dup := seen[norm]; dup {
			continue
		}
		seen[norm] = struct{}{}

		pool := p.candidatePool(photo, norm, candidates)
		scored := p.filterAndScore(pool)
		if best, ok := pickBest(p.collapse(scored)); ok {
			matches = append(matches, Match{Photo: photo, Normalized: norm, Candidate: best})
		}
	}

	if len(matches) > 0 || len(seen) == 0 {
		return matches
	}

	// Nothing matched per-photo; select the globally best candidates so the
	// run still yields something usable.
	return p.fallback(candidates)
}

// candidatePool locates the photo's candidates. The four classes are tried
// in precedence order and the first class with any hit supplies the whole
// pool; the class itself never influences ranking.
func (p Policy) candidatePool(photo source.Photo, norm string, candidates []source.AssetCandidate) []source.AssetCandidate {
	checksums := make(map[string]struct{}, len(photo.Checksums))
	for _, c := range photo.Checksums {
		checksums[NormalizeID(c)] = struct{}{}
	}

	classes := []func(source.AssetCandidate) bool{
		// 1. lookup key equals a known derivative checksum
		func(c source.AssetCandidate) bool {
			_, ok := checksums[NormalizeID(c.Key)]
			return ok
		},
		// 2. lookup key equals the photo identifier
		func(c source.AssetCandidate) bool {
			return NormalizeID(c.Key) == norm
		},
		// 3. lookup key contains the photo identifier
		func(c source.AssetCandidate) bool {
			return strings.Contains(NormalizeID(c.Key), norm)
		},
		// 4. constructed path/URL contains the photo identifier
		func(c source.AssetCandidate) bool {
			return strings.Contains(NormalizeID(c.Path), norm) ||
				strings.Contains(NormalizeID(c.ResolvedURL()), norm)
		},
	}

	for _, matchesClass := range classes {
		var pool []source.AssetCandidate
		for _, c := range candidates {
			if matchesClass(c) {
				pool = append(pool, c)
			}
		}
		if len(pool) > 0 {
			return pool
		}
	}
	return nil
}

// filterAndScore keeps candidates that resolve to a usable still-image URL
// and annotates them with their score.
func (p Policy) filterAndScore(pool []source.AssetCandidate) []ScoredCandidate {
	var scored []ScoredCandidate
	for _, c := range pool {
		url := c.ResolvedURL()
		if url == "" || !p.IsStillImage(url) {
			continue
		}
		scored = append(scored, ScoredCandidate{
			URL:         url,
			Score:       p.Score(url),
			SourceKey:   c.Key,
			SourceIndex: c.Index,
		})
	}
	return scored
}

// collapse keeps only the best-scoring candidate per canonical URL form, so
// renditions of the same image never compete in the final selection.
func (p Policy) collapse(scored []ScoredCandidate) []ScoredCandidate {
	best := make(map[string]ScoredCandidate)
	var order []string

	for _, c := range scored {
		key := p.CanonicalURL(c.URL)
		current, ok := best[key]
		if !ok {
			best[key] = c
			order = append(order, key)
			continue
		}
		if c.Score > current.Score || (c.Score == current.Score && c.SourceIndex < current.SourceIndex) {
			best[key] = c
		}
	}

	collapsed := make([]ScoredCandidate, 0, len(best))
	for _, key := range order {
		collapsed = append(collapsed, best[key])
	}
	return collapsed
}

// pickBest selects the highest score, ties broken by earliest response
// position.
func pickBest(scored []ScoredCandidate) (ScoredCandidate, bool) {
	if len(scored) == 0 {
		return ScoredCandidate{}, false
	}

	best := scored[0]
	for _, c := range scored[1:] {
		if c.Score > best.Score || (c.Score == best.Score && c.SourceIndex < best.SourceIndex) {
			best = c
		}
	}
	return best, true
}

// fallback ranks every available candidate and returns the top FallbackLimit
// of them, deduplicated by canonical form.
func (p Policy) fallback(candidates []source.AssetCandidate) []Match {
	collapsed := p.collapse(p.filterAndScore(candidates))

	sort.SliceStable(collapsed, func(i, j int) bool {
		if collapsed[i].Score != collapsed[j].Score {
			return collapsed[i].Score > collapsed[j].Score
		}
		return collapsed[i].SourceIndex < collapsed[j].SourceIndex
	})

	limit := p.FallbackLimit
	if limit <= 0 || limit > len(collapsed) {
		limit = len(collapsed)
	}

	matches := make([]Match, 0, limit)
	for _, c := range collapsed[:limit] {
		matches = append(matches, Match{Candidate: c})
	}
	return matches
}
