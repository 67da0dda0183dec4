package match

import (
	"path"
	"regexp"
	"strconv"
	"strings"
)

// Policy holds the matching and scoring parameters.
// Defaults come from DefaultPolicy; tests and callers may override any field.
type Policy struct {
	// LengthWeight scores URL verbosity; CDN-qualified originals tend to be
	// longer than proxy thumbnails.
	LengthWeight int
	// HighResBonus is added once when the URL suggests an original/high-res
	// variant.
	HighResBonus int
	// LowResPenalty is subtracted once when the URL suggests a reduced-size
	// variant. It outweighs HighResBonus so "thumb" wins over "large" when a
	// URL carries both.
	LowResPenalty int
	// DimensionDivisor scales the width*height bonus when the URL carries a
	// WxH token.
	DimensionDivisor int

	// HighResKeywords mark high-resolution/original variants.
	HighResKeywords []string
	// LowResKeywords mark reduced-size variants; they are also the size
	// descriptors stripped during canonicalization.
	LowResKeywords []string

	// ImageExtensions is the still-image whitelist.
	ImageExtensions []string
	// VideoExtensions are rejected outright, before the image whitelist is
	// consulted.
	VideoExtensions []string

	// FallbackLimit caps the global candidate selection used when no photo
	// identifier matched anything.
	FallbackLimit int
}

// DefaultPolicy returns the standard matching policy.
func DefaultPolicy() Policy {
	return Policy{
		LengthWeight:     1,
		HighResBonus:     500,
		LowResPenalty:    800,
		DimensionDivisor: 1000,
		HighResKeywords:  []string{"original", "full", "large", "master", "max", "high"},
		LowResKeywords:   []string{"thumbnail", "thumb", "small", "preview", "low", "mobile", "tiny"},
		ImageExtensions:  []string{"jpg", "jpeg", "png", "gif", "webp", "heic", "heif", "bmp"},
		VideoExtensions:  []string{"mp4", "mov", "m4v", "avi", "mkv", "webm", "3gp"},
		FallbackLimit:    24,
	}
}

var dimensionsPattern = regexp.MustCompile(`(\d{2,5})x(\d{2,5})`)

// Score rates a URL's likely image quality; higher wins.
func (p Policy) Score(url string) int {
	score := len(url) * p.LengthWeight
	lower := strings.ToLower(url)

	for _, kw := range p.HighResKeywords {
		if strings.Contains(lower, kw) {
			score += p.HighResBonus
			break
		}
	}
	for _, kw := range p.LowResKeywords {
		if strings.Contains(lower, kw) {
			score -= p.LowResPenalty
			break
		}
	}

	if m := dimensionsPattern.FindStringSubmatch(url); m != nil {
		w, _ := strconv.Atoi(m[1])
		h, _ := strconv.Atoi(m[2])
		if p.DimensionDivisor > 0 {
			score += (w * h) / p.DimensionDivisor
		}
	}

	return score
}

// IsStillImage reports whether the URL's extension is on the still-image
// whitelist. Video extensions are rejected first so they can never shadow an
// image-like whitelist entry. Trailing query/fragment parts are ignored.
func (p Policy) IsStillImage(url string) bool {
	lower := strings.ToLower(url)
	if i := strings.IndexAny(lower, "?#"); i >= 0 {
		lower = lower[:i]
	}

	ext := strings.TrimPrefix(path.Ext(lower), ".")
	if ext == "" {
		return false
	}

	for _, v := range p.VideoExtensions {
		if ext == v {
			return false
		}
	}
	for _, img := range p.ImageExtensions {
		if ext == img {
			return true
		}
	}
	return false
}
