package sync

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"photo-sync/core/source"
	"photo-sync/core/storage"
	"photo-sync/feature/photos/batch"
	"photo-sync/feature/photos/match"
	"photo-sync/feature/photos/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrNoUsableImages is returned when the upstream returned asset candidates
// but none survived matching and still-image filtering.
var ErrNoUsableImages = errors.New("no usable images")

// Options toggle per-run behavior.
type Options struct {
	// BaseURL overrides the synthesized album base URL for this run.
	BaseURL string
	// SynthesizePost drafts a post from the most recent batch after a
	// successful reconcile.
	SynthesizePost bool
	// Mirror copies imported images into object storage.
	Mirror bool
}

// Report summarizes one completed run.
type Report struct {
	Token   string `json:"token"`
	AlbumID string `json:"album_id"`

	PhotosFound int `json:"photos_found"`
	Candidates  int `json:"candidates"`
	Matched     int `json:"matched"`
	Batches     int `json:"batches"`

	Imported int `json:"imported"`
	Updated  int `json:"updated"`
	Mirrored int `json:"mirrored"`

	PostID string `json:"post_id,omitempty"`
}

// Engine orchestrates album sync runs.
type Engine struct {
	db     *gorm.DB
	client source.Client
	source source.Config
	policy match.Policy
	cfg    Config
	log    *zap.Logger

	store    storage.Client
	storeCfg storage.Config
}

// NewEngine creates a sync engine. The engine is safe to reuse across runs
// for different albums; runs for the same album must be serialized by the
// caller.
func NewEngine(db *gorm.DB, client source.Client, sourceCfg source.Config, cfg Config, log *zap.Logger) *Engine {
	policy := match.DefaultPolicy()
	if cfg.FallbackLimit > 0 {
		policy.FallbackLimit = cfg.FallbackLimit
	}

	return &Engine{
		db:     db,
		client: client,
		source: sourceCfg,
		policy: policy,
		cfg:    cfg,
		log:    log,
	}
}

// WithMirror enables the archive mirror for runs requesting it.
func (e *Engine) WithMirror(store storage.Client, cfg storage.Config) *Engine {
	e.store = store
	e.storeCfg = cfg
	return e
}

// Run executes one sync pass for the album referenced by input, which may be
// a pasted share link, a raw URL, or a bare token.
//
// An unresolvable token is an input error and touches no state. Any failure
// after the album record is known writes a failed status to the album before
// the error is returned. An album that is genuinely empty upstream is a
// successful zero-photo run, not an error.
func (e *Engine) Run(ctx context.Context, input string, opts Options) (*Report, error) {
	token, err := source.ResolveToken(input)
	if err != nil {
		return nil, err
	}

	log := e.log.With(zap.String("token", token))

	album, err := ensureAlbum(ctx, e.db, token)
	if err != nil {
		return nil, err
	}
	report := &Report{Token: token, AlbumID: album.ID}

	baseURL, err := e.source.AlbumBaseURL(token, opts.BaseURL)
	if err != nil {
		return nil, e.fail(ctx, album, err)
	}

	body, err := e.client.FetchStream(ctx, baseURL)
	if err != nil {
		return nil, e.fail(ctx, album, err)
	}

	photos := source.ExtractPhotos(body)
	report.PhotosFound = len(photos)
	if len(photos) == 0 {
		log.Info("album stream is empty, nothing to reconcile")
		return report, e.succeed(ctx, album)
	}

	batches := batch.Group(photos)
	report.Batches = len(batches)

	guids := uniqueGUIDs(photos)
	if len(guids) == 0 {
		log.Info("no photo identifiers in stream, nothing to reconcile")
		return report, e.succeed(ctx, album)
	}

	candidates, err := e.client.FetchAssetURLs(ctx, baseURL, guids)
	if err != nil {
		return nil, e.fail(ctx, album, err)
	}
	report.Candidates = len(candidates)

	matches := e.policy.MatchPhotos(photos, candidates)
	if len(matches) == 0 {
		return nil, e.fail(ctx, album, ErrNoUsableImages)
	}
	report.Matched = len(matches)

	rows := e.buildRows(album, matches, batches)

	imported, updated, err := reconcile(ctx, e.db, album.ID, rows, e.cfg.MaxPhotos)
	if err != nil {
		return nil, e.fail(ctx, album, err)
	}
	report.Imported = imported
	report.Updated = updated

	if err := e.succeed(ctx, album); err != nil {
		return nil, err
	}

	log.Info("album reconciled",
		zap.Int("photos", report.PhotosFound),
		zap.Int("imported", imported),
		zap.Int("updated", updated),
		zap.Int("batches", report.Batches))

	// Mirror and post synthesis run after the reconcile is committed; their
	// failures never invalidate a successful run.
	if opts.Mirror && e.store != nil && e.storeCfg.Enabled {
		report.Mirrored = e.mirrorImages(ctx, album, rows, log)
	}

	if opts.SynthesizePost && len(batches) > 0 {
		post, err := e.synthesizePost(ctx, album, batches, rows)
		if err != nil {
			log.Warn("post synthesis failed", zap.Error(err))
		} else if post != nil {
			report.PostID = post.ID
		}
	}

	return report, nil
}

// fail records the failure on the album record and passes the error through.
func (e *Engine) fail(ctx context.Context, album *models.Album, cause error) error {
	album.SetSyncError(cause.Error())
	if err := writeStatus(ctx, e.db, album); err != nil {
		e.log.Error("failed to record sync failure",
			zap.String("album_id", album.ID), zap.Error(err))
	}
	return cause
}

// succeed records the successful run on the album record.
func (e *Engine) succeed(ctx context.Context, album *models.Album) error {
	album.SetSyncOK()
	if err := writeStatus(ctx, e.db, album); err != nil {
		return fmt.Errorf("failed to record sync status: %w", err)
	}
	return nil
}

// buildRows converts matches into persistable photo rows.
func (e *Engine) buildRows(album *models.Album, matches []match.Match, batches []batch.Batch) []models.AlbumPhoto {
	rows := make([]models.AlbumPhoto, 0, len(matches))

	for _, m := range matches {
		row := models.AlbumPhoto{
			AlbumID:        album.ID,
			DedupeKey:      DedupeKey(m, e.policy),
			SourceAssetKey: m.Candidate.SourceKey,
			ImageURL:       m.Candidate.URL,
			AltText:        altText(m),
		}

		if m.Attributed() {
			guid := m.Photo.GUID
			row.SourcePhotoGUID = &guid
			row.SourceCaption = m.Photo.Caption
			if !m.Photo.TakenAt.IsZero() {
				t := m.Photo.TakenAt
				row.SourceTakenAt = &t
			}
			for _, b := range batches {
				if b.Contains(m.Normalized) {
					row.SourceBatchKey = b.Key
					break
				}
			}
		}

		row.Metadata = encodeMetadata(m)
		rows = append(rows, row)
	}
	return rows
}

// altText derives display text from the photo caption, falling back to a
// generic description for fallback rows.
func altText(m match.Match) string {
	caption := strings.TrimSpace(m.Photo.Caption)
	if caption == "" {
		return "Photo from shared album"
	}
	if idx := strings.IndexAny(caption, "\r\n"); idx >= 0 {
		caption = strings.TrimSpace(caption[:idx])
	}
	return caption
}

// encodeMetadata packs loosely typed source details into a JSON blob.
func encodeMetadata(m match.Match) string {
	meta := map[string]any{
		"score":        m.Candidate.Score,
		"source_index": m.Candidate.SourceIndex,
	}
	if m.Photo.Width > 0 {
		meta["width"] = m.Photo.Width
	}
	if m.Photo.Height > 0 {
		meta["height"] = m.Photo.Height
	}
	data, err := json.Marshal(meta)
	if err != nil {
		return "{}"
	}
	return string(data)
}

// uniqueGUIDs collects the distinct photo identifiers in stream order. The
// original values are sent upstream; normalization is only used to detect
// duplicates.
func uniqueGUIDs(photos []source.Photo) []string {
	seen := make(map[string]struct{}, len(photos))
	var guids []string
	for _, p := range photos {
		norm := match.NormalizeID(p.GUID)
		if norm == "" {
			continue
		}
		if _, dup := seen[norm]; dup {
			continue
		}
		seen[norm] = struct{}{}
		guids = append(guids, p.GUID)
	}
	return guids
}

// latestBatch picks the batch with the newest CreatedAt.
func latestBatch(batches []batch.Batch) batch.Batch {
	latest := batches[0]
	for _, b := range batches[1:] {
		if b.CreatedAt.After(latest.CreatedAt) {
			latest = b
		}
	}
	return latest
}
