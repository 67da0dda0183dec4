// Package source talks to the remote shared-album service.
//
// It covers three concerns of the sync pipeline's ingest side:
//
//   - Token resolution: turning a pasted share link (or bare token) into the
//     request base URL for the album's API endpoints.
//   - Fetching: the Client interface wraps the two remote endpoints, the photo
//     stream listing and the asset URL lookup. The lookup is chunked because
//     the upstream rejects oversized identifier lists.
//   - Extraction: the remote payloads are loosely shaped and vary between
//     wrapper envelopes. Extraction probes an ordered list of plausible JSON
//     paths and takes the first non-empty hit.
//
// The package owns the raw ingest types (Photo, AssetCandidate); everything
// derived from them lives in the photos feature.
package source
