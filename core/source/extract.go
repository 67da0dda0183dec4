package source

import (
	"time"

	"photo-sync/core/utils"

	"github.com/tidwall/gjson"
)

// Probe paths for the two payload shapes, evaluated in order. The remote
// service has shipped the arrays top-level, under a generic body wrapper,
// and under a results wrapper.
var (
	photoProbePaths = []string{"photos", "body.photos", "results.photos"}
	assetProbePaths = []string{"items", "body.items", "results.items"}
)

// ExtractPhotos normalizes a raw stream payload into an ordered photo slice.
// It returns an empty slice, never an error, when no probe path yields an
// array: that is a valid zero-photos outcome.
func ExtractPhotos(body []byte) []Photo {
	for _, path := range photoProbePaths {
		result := gjson.GetBytes(body, path)
		if !result.IsArray() {
			continue
		}
		arr := result.Array()
		if len(arr) == 0 {
			continue
		}

		photos := make([]Photo, 0, len(arr))
		for _, raw := range arr {
			photos = append(photos, parsePhoto(raw))
		}
		return photos
	}
	return []Photo{}
}

func parsePhoto(raw gjson.Result) Photo {
	p := Photo{
		GUID:    raw.Get("photoGuid").String(),
		Caption: raw.Get("caption").String(),
	}
	if p.GUID == "" {
		p.GUID = raw.Get("guid").String()
	}

	p.TakenAt = parseTimestamp(raw.Get("dateCreated"))
	if p.TakenAt.IsZero() {
		p.TakenAt = parseTimestamp(raw.Get("batchDateCreated"))
	}

	// Derivatives come as a map keyed by variant name; each value carries a
	// checksum and, loosely typed, the variant dimensions.
	raw.Get("derivatives").ForEach(func(_, item gjson.Result) bool {
		checksum := utils.ToString(item.Get("checksum").Value())
		if checksum != "" {
			p.Checksums = append(p.Checksums, checksum)
		}

		// Dimensions arrive as numbers or numeric strings depending on the
		// payload vintage.
		w := utils.ToInt(item.Get("width").Value())
		h := utils.ToInt(item.Get("height").Value())
		if w*h > p.Width*p.Height {
			p.Width = w
			p.Height = h
		}
		return true
	})

	return p
}

// parseTimestamp accepts RFC3339 strings or unix epoch numbers (seconds or
// milliseconds). Anything else is treated as unknown.
func parseTimestamp(v gjson.Result) time.Time {
	if !v.Exists() {
		return time.Time{}
	}
	if v.Type == gjson.String {
		if t, err := time.Parse(time.RFC3339, v.String()); err == nil {
			return t
		}
		return time.Time{}
	}
	if v.Type == gjson.Number {
		n := v.Int()
		if n <= 0 {
			return time.Time{}
		}
		if n > 1_000_000_000_000 { // milliseconds
			return time.UnixMilli(n).UTC()
		}
		return time.Unix(n, 0).UTC()
	}
	return time.Time{}
}

// ExtractAssetCandidates normalizes an asset-lookup payload into candidates.
// startIndex offsets the response positions so chunked lookups keep globally
// unique, stable indices.
func ExtractAssetCandidates(body []byte, startIndex int) []AssetCandidate {
	for _, path := range assetProbePaths {
		result := gjson.GetBytes(body, path)
		if !result.IsObject() {
			continue
		}

		var candidates []AssetCandidate
		index := startIndex
		result.ForEach(func(key, item gjson.Result) bool {
			candidates = append(candidates, AssetCandidate{
				Key:      key.String(),
				URL:      item.Get("url").String(),
				Location: utils.ToString(item.Get("url_location").Value()),
				Path:     utils.ToString(item.Get("url_path").Value()),
				Index:    index,
			})
			index++
			return true
		})
		if len(candidates) > 0 {
			return candidates
		}
	}
	return nil
}
