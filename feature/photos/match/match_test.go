package match

import (
	"fmt"
	"testing"

	"photo-sync/core/source"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCandidatePoolPrecedence(t *testing.T) {
	p := DefaultPolicy()
	photo := source.Photo{GUID: "AbC-123", Checksums: []string{"chk999"}}

	tests := []struct {
		name       string
		candidates []source.AssetCandidate
		wantKeys   []string
	}{
		{
			name: "Checksum match wins over guid match",
			candidates: []source.AssetCandidate{
				{Key: "abc123", URL: "https://cdn/guid.jpg", Index: 0},
				{Key: "CHK999", URL: "https://cdn/checksum.jpg", Index: 1},
			},
			wantKeys: []string{"CHK999"},
		},
		{
			name: "Guid equality beats containment",
			candidates: []source.AssetCandidate{
				{Key: "xx-abc123-yy", URL: "https://cdn/contains.jpg", Index: 0},
				{Key: "ABC-123", URL: "https://cdn/equals.jpg", Index: 1},
			},
			wantKeys: []string{"ABC-123"},
		},
		{
			name: "Key containment",
			candidates: []source.AssetCandidate{
				{Key: "prefix_abc123_suffix", URL: "https://cdn/x.jpg", Index: 0},
				{Key: "unrelated", URL: "https://cdn/y.jpg", Index: 1},
			},
			wantKeys: []string{"prefix_abc123_suffix"},
		},
		{
			name: "URL containment as last resort",
			candidates: []source.AssetCandidate{
				{Key: "k1", URL: "https://cdn/albums/abc-123/full.jpg", Index: 0},
				{Key: "k2", URL: "https://cdn/other.jpg", Index: 1},
			},
			wantKeys: []string{"k1"},
		},
		{
			name: "No class satisfied",
			candidates: []source.AssetCandidate{
				{Key: "zzz", URL: "https://cdn/other.jpg", Index: 0},
			},
			wantKeys: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool := p.candidatePool(photo, NormalizeID(photo.GUID), tt.candidates)
			var keys []string
			for _, c := range pool {
				keys = append(keys, c.Key)
			}
			assert.Equal(t, tt.wantKeys, keys)
		})
	}
}

func TestMatchPhotosSelectsBestRendition(t *testing.T) {
	p := DefaultPolicy()
	photos := []source.Photo{{GUID: "g1", Checksums: []string{"chkA", "chkB"}}}
	candidates := []source.AssetCandidate{
		{Key: "chkA", URL: "https://cdn/albums/photo_thumb.jpg", Index: 0},
		{Key: "chkB", URL: "https://cdn/albums/photo_original.jpg", Index: 1},
	}

	matches := p.MatchPhotos(photos, candidates)
	require.Len(t, matches, 1)
	assert.True(t, matches[0].Attributed())
	assert.Equal(t, "g1", matches[0].Photo.GUID)
	assert.Equal(t, "https://cdn/albums/photo_original.jpg", matches[0].Candidate.URL)
	assert.Equal(t, "chkB", matches[0].Candidate.SourceKey)
}

func TestMatchPhotosDedupesByNormalizedGUID(t *testing.T) {
	p := DefaultPolicy()
	photos := []source.Photo{
		{GUID: "AbC-123", Checksums: []string{"chk1"}},
		{GUID: "abc.123", Checksums: []string{"chk2"}}, // same photo, different punctuation
	}
	candidates := []source.AssetCandidate{
		{Key: "chk1", URL: "https://cdn/a.jpg", Index: 0},
		{Key: "chk2", URL: "https://cdn/b.jpg", Index: 1},
	}

	matches := p.MatchPhotos(photos, candidates)
	require.Len(t, matches, 1)
	assert.Equal(t, "AbC-123", matches[0].Photo.GUID)
}

func TestMatchPhotosDropsUnmatchedSilently(t *testing.T) {
	p := DefaultPolicy()
	photos := []source.Photo{
		{GUID: "g1", Checksums: []string{"chk1"}},
		{GUID: "g2", Checksums: []string{"chk2"}},
	}
	candidates := []source.AssetCandidate{
		{Key: "chk1", URL: "https://cdn/a.jpg", Index: 0},
		// chk2 resolves to a video, so g2 yields nothing
		{Key: "chk2", URL: "https://cdn/b.mp4", Index: 1},
	}

	matches := p.MatchPhotos(photos, candidates)
	require.Len(t, matches, 1)
	assert.Equal(t, "g1", matches[0].Photo.GUID)
}

func TestMatchPhotosStableTieBreak(t *testing.T) {
	p := DefaultPolicy()
	photos := []source.Photo{{GUID: "g1", Checksums: []string{"chk1", "chk2"}}}
	// Same score (identical length, keywords, dimensions) but different
	// canonical forms; the earlier response position must win.
	candidates := []source.AssetCandidate{
		{Key: "chk2", URL: "https://cdn/bbb/photo.jpg", Index: 5},
		{Key: "chk1", URL: "https://cdn/aaa/photo.jpg", Index: 2},
	}

	matches := p.MatchPhotos(photos, candidates)
	require.Len(t, matches, 1)
	assert.Equal(t, 2, matches[0].Candidate.SourceIndex)
}

func TestMatchPhotosGlobalFallback(t *testing.T) {
	p := DefaultPolicy()
	p.FallbackLimit = 3

	photos := []source.Photo{{GUID: "unmatchable", Checksums: []string{"nope"}}}
	var candidates []source.AssetCandidate
	for i := 0; i < 10; i++ {
		candidates = append(candidates, source.AssetCandidate{
			Key:   fmt.Sprintf("key%d", i),
			URL:   fmt.Sprintf("https://cdn/gallery/img%02d_%04dx%04d.jpg", i, 100*(i+1), 100*(i+1)),
			Index: i,
		})
	}

	matches := p.MatchPhotos(photos, candidates)
	require.Len(t, matches, 3)

	for _, m := range matches {
		assert.False(t, m.Attributed())
		assert.Empty(t, m.Photo.GUID)
	}

	// Ranked by score: the largest dimensions first.
	assert.Equal(t, 9, matches[0].Candidate.SourceIndex)
	assert.Equal(t, 8, matches[1].Candidate.SourceIndex)
	assert.Equal(t, 7, matches[2].Candidate.SourceIndex)
}

func TestMatchPhotosNoFallbackWhenNothingUsable(t *testing.T) {
	p := DefaultPolicy()
	photos := []source.Photo{{GUID: "g1"}}
	candidates := []source.AssetCandidate{
		{Key: "k", URL: "https://cdn/clip.mp4", Index: 0},
	}

	assert.Empty(t, p.MatchPhotos(photos, candidates))
}

func TestCollapseKeepsBestPerCanonicalForm(t *testing.T) {
	p := DefaultPolicy()
	scored := p.filterAndScore([]source.AssetCandidate{
		{Key: "a", URL: "https://cdn/x/photo_thumb.jpg", Index: 0},
		{Key: "b", URL: "https://cdn/x/photo_2048x1536.jpg", Index: 1},
		{Key: "c", URL: "https://cdn/y/other.jpg", Index: 2},
	})

	collapsed := p.collapse(scored)
	require.Len(t, collapsed, 2)

	urls := []string{collapsed[0].URL, collapsed[1].URL}
	assert.Contains(t, urls, "https://cdn/x/photo_2048x1536.jpg")
	assert.Contains(t, urls, "https://cdn/y/other.jpg")
}
