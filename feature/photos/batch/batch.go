// Package batch partitions a photo stream into caption-delimited groups.
//
// A captioned photo opens a new batch; captionless photos join the batch
// opened before them. The batch key is a hash of the sorted normalized member
// identifiers, so the same membership always yields the same key no matter
// how the stream happened to be ordered.
package batch

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"
	"time"

	"photo-sync/core/source"
	"photo-sync/feature/photos/match"
)

// Bounds for the derived title and excerpt.
const (
	MaxTitleLength   = 120
	MaxExcerptLength = 280
)

// DefaultDetailText fills DetailText when a caption has no body beyond its
// first line.
const DefaultDetailText = "New photos from the shared album."

// Batch is a contiguous run of photos sharing one caption context.
type Batch struct {
	// Key is the stable, order-independent membership hash.
	Key string
	// Title is the first non-blank caption line, bounded.
	Title string
	// Excerpt is the remaining caption lines joined, bounded.
	Excerpt string
	// DetailText is the caption body beyond the first line, or
	// DefaultDetailText when the caption has none.
	DetailText string
	// CreatedAt is the first member's timestamp, or the time of grouping
	// when the member has none.
	CreatedAt time.Time
	// GUIDs are the normalized member identifiers, sorted.
	GUIDs []string
	// Photos are the members in stream order.
	Photos []source.Photo
}

// Contains reports whether the normalized identifier is a member.
func (b Batch) Contains(normalizedGUID string) bool {
	for _, g := range b.GUIDs {
		if g == normalizedGUID {
			return true
		}
	}
	return false
}

// Group partitions photos into chronologically ordered batches.
//
// Photos are sorted ascending by timestamp first, with unknown timestamps
// treated as earliest. A captioned photo closes the open batch and starts a
// new one; a captionless photo joins the open batch, or is dropped when no
// batch is open yet (it cannot be attributed to any caption).
func Group(photos []source.Photo) []Batch {
	sorted := make([]source.Photo, len(photos))
	copy(sorted, photos)
	sort.SliceStable(sorted, func(i, j int) bool {
		ti, tj := sorted[i].TakenAt, sorted[j].TakenAt
		if ti.IsZero() != tj.IsZero() {
			return ti.IsZero()
		}
		return ti.Before(tj)
	})

	var batches []Batch
	var open *Batch

	flush := func() {
		if open != nil && len(open.Photos) > 0 {
			batches = append(batches, seal(*open))
		}
		open = nil
	}

	for _, p := range sorted {
		if strings.TrimSpace(p.Caption) != "" {
			flush()
			open = &Batch{
				Title:      deriveTitle(p.Caption),
				Excerpt:    deriveExcerpt(p.Caption),
				DetailText: deriveDetailText(p.Caption),
				CreatedAt:  p.TakenAt,
			}
		}
		if open == nil {
			// Leading captionless photo, nothing to attach it to.
			continue
		}
		open.Photos = append(open.Photos, p)
	}
	flush()

	return batches
}

// seal finalizes a batch: membership hash and timestamp fallback.
func seal(b Batch) Batch {
	for _, p := range b.Photos {
		if norm := match.NormalizeID(p.GUID); norm != "" {
			b.GUIDs = append(b.GUIDs, norm)
		}
	}
	sort.Strings(b.GUIDs)

	sum := sha256.Sum256([]byte(strings.Join(b.GUIDs, "|")))
	b.Key = hex.EncodeToString(sum[:])[:16]

	if b.CreatedAt.IsZero() {
		if t := b.Photos[0].TakenAt; !t.IsZero() {
			b.CreatedAt = t
		} else {
			b.CreatedAt = time.Now().UTC()
		}
	}
	return b
}

// Describe derives the title, excerpt, and detail text from a raw caption,
// the same way Group does when it opens a batch.
func Describe(caption string) (title, excerpt, detail string) {
	return deriveTitle(caption), deriveExcerpt(caption), deriveDetailText(caption)
}

func captionLines(caption string) []string {
	var lines []string
	for _, line := range strings.Split(strings.ReplaceAll(caption, "\r\n", "\n"), "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}

func deriveTitle(caption string) string {
	lines := captionLines(caption)
	if len(lines) == 0 {
		return ""
	}
	return truncate(lines[0], MaxTitleLength)
}

func deriveExcerpt(caption string) string {
	lines := captionLines(caption)
	if len(lines) < 2 {
		return ""
	}
	return truncate(strings.Join(lines[1:], " "), MaxExcerptLength)
}

func deriveDetailText(caption string) string {
	lines := captionLines(caption)
	if len(lines) < 2 {
		return DefaultDetailText
	}
	return strings.Join(lines[1:], "\n")
}

// truncate bounds s to max runes, ellipsis included.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
