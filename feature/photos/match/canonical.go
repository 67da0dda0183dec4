package match

import (
	"regexp"
	"strings"
)

var (
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)
	dimensionsToken = regexp.MustCompile(`^\d{2,5}x\d{2,5}$`)
)

// NormalizeID lower-cases an identifier and strips every non-alphanumeric
// character. Two identifiers with the same normalized form are treated as the
// same photo.
func NormalizeID(s string) string {
	return nonAlphanumeric.ReplaceAllString(strings.ToLower(s), "")
}

// CanonicalURL reduces a URL to a form that identifies "same image, different
// rendition": the query/fragment is cut, WxH dimension tokens are dropped,
// and size-descriptor tokens and path segments (thumb, small, preview, ...)
// are removed. The result is a grouping key, not a fetchable URL.
func (p Policy) CanonicalURL(raw string) string {
	s := raw
	if i := strings.IndexAny(s, "?#"); i >= 0 {
		s = s[:i]
	}

	// Keep the scheme://host prefix verbatim; only the path carries
	// rendition decorations.
	prefix := ""
	rest := s
	if i := strings.Index(s, "://"); i >= 0 {
		j := strings.Index(s[i+3:], "/")
		if j < 0 {
			return s
		}
		prefix = s[:i+3+j]
		rest = s[i+3+j:]
	}

	var segments []string
	for _, seg := range strings.Split(rest, "/") {
		if seg == "" {
			continue
		}
		if p.isSizeDescriptor(seg) {
			continue
		}
		if cleaned := p.canonicalSegment(seg); cleaned != "" {
			segments = append(segments, cleaned)
		}
	}

	return prefix + "/" + strings.Join(segments, "/")
}

// canonicalSegment strips dimension and size-descriptor tokens within one
// path segment, preserving the extension.
func (p Policy) canonicalSegment(seg string) string {
	ext := ""
	if i := strings.LastIndex(seg, "."); i >= 0 {
		ext = seg[i:]
		seg = seg[:i]
	}

	tokens := strings.FieldsFunc(seg, func(r rune) bool {
		return r == '_' || r == '-' || r == '.'
	})

	var kept []string
	for _, tok := range tokens {
		if dimensionsToken.MatchString(strings.ToLower(tok)) {
			continue
		}
		if p.isSizeDescriptor(tok) {
			continue
		}
		kept = append(kept, tok)
	}

	return strings.Join(kept, "_") + ext
}

func (p Policy) isSizeDescriptor(tok string) bool {
	lower := strings.ToLower(tok)
	for _, kw := range p.LowResKeywords {
		if lower == kw {
			return true
		}
	}
	return false
}
