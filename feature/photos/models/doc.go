// Package models defines the persisted records of the photo sync feature.
//
// Three tables are owned by this service:
//
//   - albums: one row per shared-album token, carrying the last sync status.
//   - album_photos: the reconciled photo rows, keyed by (album, dedupe key).
//     Rows are created or refreshed by sync runs and never deleted by them.
//   - posts: draft posts synthesized from the most recent photo batch,
//     keyed by the batch's stable hash so re-synthesis overwrites in place.
package models
