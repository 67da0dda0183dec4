// Package sync runs the album reconciliation pipeline.
//
// One run is a single sequential pass: resolve the album token, fetch and
// extract the photo stream, resolve asset URLs, group photos into
// caption-delimited batches, derive dedupe keys, and reconcile the resolved
// rows against the database with an idempotent upsert. Optionally the most
// recent batch is synthesized into a draft post, and imported images are
// mirrored into object storage.
//
// Runs are not coordinated: callers must serialize runs per album token.
// There is no mid-run cancellation beyond context propagation; a run either
// completes or aborts with previously committed state untouched.
//
// Every abort after the album record is known writes a truncated failure
// message to the album's status columns before surfacing the error.
package sync
