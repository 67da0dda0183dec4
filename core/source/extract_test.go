package source_test

import (
	"testing"
	"time"

	"photo-sync/core/source"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractPhotos(t *testing.T) {
	photoArray := `[
		{"photoGuid": "AbC-123", "caption": "Day one", "dateCreated": "2024-05-01T10:00:00Z",
		 "derivatives": {
			"342": {"checksum": "chk342", "width": "342", "height": "228"},
			"2048": {"checksum": "chk2048", "width": 2048, "height": 1365}
		 }},
		{"guid": "DeF-456"}
	]`

	tests := []struct {
		name string
		body string
	}{
		{"Top level", `{"photos": ` + photoArray + `}`},
		{"Body wrapper", `{"body": {"photos": ` + photoArray + `}}`},
		{"Results wrapper", `{"results": {"photos": ` + photoArray + `}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			photos := source.ExtractPhotos([]byte(tt.body))
			require.Len(t, photos, 2)

			first := photos[0]
			assert.Equal(t, "AbC-123", first.GUID)
			assert.Equal(t, "Day one", first.Caption)
			assert.Equal(t, time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC), first.TakenAt)
			assert.ElementsMatch(t, []string{"chk342", "chk2048"}, first.Checksums)
			assert.Equal(t, 2048, first.Width)
			assert.Equal(t, 1365, first.Height)

			// Fallback guid field, no caption, no timestamp
			second := photos[1]
			assert.Equal(t, "DeF-456", second.GUID)
			assert.Empty(t, second.Caption)
			assert.True(t, second.TakenAt.IsZero())
		})
	}

	t.Run("No photos anywhere", func(t *testing.T) {
		photos := source.ExtractPhotos([]byte(`{"something": "else"}`))
		assert.NotNil(t, photos)
		assert.Empty(t, photos)
	})

	t.Run("Epoch millisecond timestamps", func(t *testing.T) {
		body := `{"photos": [{"photoGuid": "g", "dateCreated": 1714557600000}]}`
		photos := source.ExtractPhotos([]byte(body))
		require.Len(t, photos, 1)
		assert.Equal(t, 2024, photos[0].TakenAt.Year())
	})
}

func TestExtractAssetCandidates(t *testing.T) {
	body := `{"items": {
		"chkA": {"url_location": "cvws.example-cdn.com", "url_path": "/a/full.jpeg"},
		"chkB": {"url": "https://cdn.example.com/b/thumb.jpg"}
	}}`

	candidates := source.ExtractAssetCandidates([]byte(body), 10)
	require.Len(t, candidates, 2)

	byKey := map[string]source.AssetCandidate{}
	for _, c := range candidates {
		byKey[c.Key] = c
	}

	assert.Equal(t, "https://cvws.example-cdn.com/a/full.jpeg", byKey["chkA"].ResolvedURL())
	assert.Equal(t, "https://cdn.example.com/b/thumb.jpg", byKey["chkB"].ResolvedURL())

	// Indices continue from the offset so chunked responses stay ordered.
	assert.ElementsMatch(t, []int{10, 11}, []int{candidates[0].Index, candidates[1].Index})

	t.Run("Nested wrapper", func(t *testing.T) {
		nested := `{"body": {"items": {"k": {"url": "https://cdn/x.png"}}}}`
		got := source.ExtractAssetCandidates([]byte(nested), 0)
		require.Len(t, got, 1)
		assert.Equal(t, "https://cdn/x.png", got[0].ResolvedURL())
	})

	t.Run("Empty", func(t *testing.T) {
		assert.Empty(t, source.ExtractAssetCandidates([]byte(`{}`), 0))
	})
}

func TestAssetCandidateResolvedURL(t *testing.T) {
	assert.Equal(t, "", source.AssetCandidate{Key: "k"}.ResolvedURL())
	assert.Equal(t, "", source.AssetCandidate{Location: "host.only"}.ResolvedURL())
}
