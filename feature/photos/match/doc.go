// Package match selects the best available image URL for each photo.
//
// The asset-lookup response keys candidates by derivative checksum, so a
// photo's candidates are located heuristically: by checksum equality first,
// then by identifier equality, then by identifier containment in the lookup
// key or the constructed URL. The first class with any hit supplies the
// candidate pool; within the pool a quality score decides.
//
// Scoring and filtering thresholds are policy, not truth: the remote service
// documents none of this. They live in the Policy struct as named,
// overridable parameters instead of inlined magic numbers.
//
// Candidates that are the same image at different renditions collapse onto a
// canonical URL form (query, dimension tokens, and size descriptors
// stripped), keeping only the best-scoring rendition. Ties always break on
// the candidate's original response position, keeping runs deterministic.
package match
