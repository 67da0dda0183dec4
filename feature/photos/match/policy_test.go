package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreOrderings(t *testing.T) {
	p := DefaultPolicy()

	t.Run("Original beats thumb at identical dimensions", func(t *testing.T) {
		original := p.Score("https://cdn/x/original_1200x900.jpg")
		thumb := p.Score("https://cdn/x/thumb_1200x900.jpg")
		assert.Greater(t, original, thumb)
	})

	t.Run("Dimension bonus", func(t *testing.T) {
		big := p.Score("https://cdn/x/photo_4032x3024.jpg")
		small := p.Score("https://cdn/x/photo_0640x0480.jpg")
		assert.Greater(t, big, small)
	})

	t.Run("Penalty outweighs bonus on mixed URLs", func(t *testing.T) {
		mixed := p.Score("https://cdn/x/large_thumb.jpg")
		plain := p.Score("https://cdn/x/large_thumg.jpg") // same length, no low-res keyword
		assert.Less(t, mixed, plain)
	})

	t.Run("Longer URLs score higher all else equal", func(t *testing.T) {
		long := p.Score("https://cdn.region-7.example.com/bucket/a/b/c/photo.jpg")
		short := p.Score("https://cdn/photo.jpg")
		assert.Greater(t, long, short)
	})
}

func TestIsStillImage(t *testing.T) {
	p := DefaultPolicy()

	tests := []struct {
		name string
		url  string
		want bool
	}{
		{"Plain jpeg", "https://cdn/a/photo.jpg", true},
		{"Uppercase extension", "https://cdn/a/PHOTO.JPEG", true},
		{"Query suffix", "https://cdn/a/photo.png?sig=abc&exp=1", true},
		{"Fragment suffix", "https://cdn/a/photo.webp#frag", true},
		{"Video", "https://cdn/a/clip.mp4", false},
		{"Video with image-looking query", "https://cdn/a/clip.mov?name=photo.jpg", false},
		{"No extension", "https://cdn/a/photo", false},
		{"Unknown extension", "https://cdn/a/doc.pdf", false},
		{"Heic", "https://cdn/a/img.heic", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.IsStillImage(tt.url))
		})
	}
}

func TestVideoRejectionShadowsWhitelist(t *testing.T) {
	// Even with a misconfigured whitelist containing a video extension, the
	// video list is consulted first.
	p := DefaultPolicy()
	p.ImageExtensions = append(p.ImageExtensions, "mov")
	assert.False(t, p.IsStillImage("https://cdn/a/clip.mov"))
}
