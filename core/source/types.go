package source

import "time"

// Photo is one raw photo record from the album stream listing.
// It is immutable for the duration of a sync run.
type Photo struct {
	// GUID is the photo identifier assigned by the remote service.
	GUID string
	// Caption is the free-form caption, empty when the photo has none.
	Caption string
	// TakenAt is the creation timestamp; the zero value means unknown.
	TakenAt time.Time
	// Checksums are the derivative checksums known for this photo.
	// Asset lookup responses key items by these values.
	Checksums []string
	// Width and Height are the dimensions of the largest known derivative,
	// zero when the listing does not carry them.
	Width  int
	Height int
}

// AssetCandidate is one (key, item) pair from the asset-lookup response.
// The item carries either a direct URL or a (location, path) pair.
type AssetCandidate struct {
	// Key is the opaque lookup key, usually a derivative checksum.
	Key string
	// URL is the direct asset URL when the response carries one.
	URL string
	// Location and Path build the URL when no direct one is present.
	Location string
	Path     string
	// Index is the candidate's position in the response, used for
	// deterministic tie-breaking downstream.
	Index int
}

// ResolvedURL returns the usable URL for the candidate, or "" when the
// response carried neither a direct URL nor a (location, path) pair.
func (c AssetCandidate) ResolvedURL() string {
	if c.URL != "" {
		return c.URL
	}
	if c.Location != "" && c.Path != "" {
		return "https://" + c.Location + c.Path
	}
	return ""
}
