// Package photos exposes the shared-album sync pipeline over HTTP.
//
// Structure:
//   - models/: persisted records (albums, photos, posts)
//   - match/: candidate matching and URL canonicalization
//   - batch/: caption-delimited photo grouping
//   - sync/: the reconciliation pipeline
//
// The package root wires these into the feature loader: a service around the
// sync engine, and a handler registering the album routes.
package photos
