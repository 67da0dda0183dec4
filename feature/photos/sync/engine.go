package sync

import (
	"context"
	"fmt"
	"sort"

	"photo-sync/feature/photos/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// photoUpdateColumns are the columns refreshed when an upsert hits an
// existing (album_id, dedupe_key) row.
var photoUpdateColumns = []string{
	"source_photo_guid",
	"source_asset_key",
	"source_batch_key",
	"source_caption",
	"source_taken_at",
	"image_url",
	"alt_text",
	"metadata",
	"updated_at",
}

// reconcile diffs the candidate rows against the stored set and upserts them.
//
// Rows are bounded to maxPhotos, most recent first. The upsert overwrites
// same-key rows in place, never duplicates them, which makes the operation
// idempotent: a second run with identical input reports zero imports.
func reconcile(ctx context.Context, db *gorm.DB, albumID string, rows []models.AlbumPhoto, maxPhotos int) (imported, updated int, err error) {
	if len(rows) == 0 {
		return 0, 0, nil
	}

	// Most recent first; unknown timestamps sink to the end.
	sort.SliceStable(rows, func(i, j int) bool {
		ti, tj := rows[i].SourceTakenAt, rows[j].SourceTakenAt
		if (ti == nil) != (tj == nil) {
			return tj == nil
		}
		if ti == nil {
			return false
		}
		return ti.After(*tj)
	})
	if maxPhotos > 0 && len(rows) > maxPhotos {
		rows = rows[:maxPhotos]
	}

	keys := make([]string, 0, len(rows))
	for _, row := range rows {
		keys = append(keys, row.DedupeKey)
	}

	var existingKeys []string
	err = db.WithContext(ctx).
		Model(&models.AlbumPhoto{}).
		Where("album_id = ? AND dedupe_key IN ?", albumID, keys).
		Pluck("dedupe_key", &existingKeys).Error
	if err != nil {
		return 0, 0, fmt.Errorf("failed to check existing photos: %w", err)
	}

	existing := make(map[string]struct{}, len(existingKeys))
	for _, k := range existingKeys {
		existing[k] = struct{}{}
	}

	err = db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "album_id"},
				{Name: "dedupe_key"},
			},
			DoUpdates: clause.AssignmentColumns(photoUpdateColumns),
		}).
		Create(&rows).Error
	if err != nil {
		return 0, 0, fmt.Errorf("failed to upsert photos: %w", err)
	}

	for _, k := range keys {
		if _, ok := existing[k]; ok {
			updated++
		} else {
			imported++
		}
	}
	return imported, updated, nil
}

// ensureAlbum finds or creates the album record for a token.
func ensureAlbum(ctx context.Context, db *gorm.DB, token string) (*models.Album, error) {
	var album models.Album
	err := db.WithContext(ctx).Where("token = ?", token).First(&album).Error
	if err == nil {
		return &album, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("failed to look up album: %w", err)
	}

	album = *models.NewAlbum(token)
	if err := db.WithContext(ctx).Create(&album).Error; err != nil {
		return nil, fmt.Errorf("failed to create album: %w", err)
	}
	return &album, nil
}

// writeStatus persists the album's sync status columns.
func writeStatus(ctx context.Context, db *gorm.DB, album *models.Album) error {
	return db.WithContext(ctx).Model(album).
		Select("last_synced_at", "last_sync_status", "last_sync_error").
		Updates(album).Error
}
