package sync

import (
	"context"
	"fmt"
	"html"
	"sort"
	"strings"

	"photo-sync/feature/photos/batch"
	"photo-sync/feature/photos/models"

	"github.com/google/uuid"
	"gorm.io/gorm/clause"
)

// postUpdateColumns are refreshed when a batch is re-synthesized.
var postUpdateColumns = []string{
	"title",
	"excerpt",
	"body",
	"cover_image_url",
	"updated_at",
}

// synthesizePost drafts a post from the most recent batch and upserts it by
// batch key. A batch with no persisted photo rows yields no post; the
// Published flag is never touched so a manually published post stays
// published across re-runs.
func (e *Engine) synthesizePost(ctx context.Context, album *models.Album, batches []batch.Batch, rows []models.AlbumPhoto) (*models.Post, error) {
	b := latestBatch(batches)

	var members []models.AlbumPhoto
	for _, row := range rows {
		if row.SourceBatchKey == b.Key {
			members = append(members, row)
		}
	}
	if len(members) == 0 {
		return nil, nil
	}

	// The reconcile step reorders rows most-recent-first for the run cap;
	// a post follows the batch's member order, oldest first.
	sortByTakenAt(members)

	return e.synthesizePostForBatch(ctx, album, b, members)
}

// sortByTakenAt orders rows ascending by source timestamp, unknown
// timestamps first, matching how batches order their members.
func sortByTakenAt(rows []models.AlbumPhoto) {
	sort.SliceStable(rows, func(i, j int) bool {
		ti, tj := rows[i].SourceTakenAt, rows[j].SourceTakenAt
		if (ti == nil) != (tj == nil) {
			return ti == nil
		}
		if ti == nil {
			return false
		}
		return ti.Before(*tj)
	})
}

func (e *Engine) synthesizePostForBatch(ctx context.Context, album *models.Album, b batch.Batch, members []models.AlbumPhoto) (*models.Post, error) {
	if len(members) == 0 {
		return nil, nil
	}

	title := b.Title
	if title == "" {
		title = "Shared album update"
	}

	post := models.Post{
		ID:            uuid.New().String(),
		AlbumID:       album.ID,
		BatchKey:      b.Key,
		Title:         title,
		Excerpt:       b.Excerpt,
		Body:          renderBody(b, members[1:]),
		CoverImageURL: members[0].ImageURL,
	}

	err := e.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "batch_key"}},
			DoUpdates: clause.AssignmentColumns(postUpdateColumns),
		}).
		Create(&post).Error
	if err != nil {
		return nil, fmt.Errorf("failed to upsert post: %w", err)
	}

	// On a conflict the stored row keeps its original id; reload so callers
	// see the persisted record.
	var stored models.Post
	if err := e.db.WithContext(ctx).Where("batch_key = ?", b.Key).First(&stored).Error; err != nil {
		return nil, fmt.Errorf("failed to reload post: %w", err)
	}
	return &stored, nil
}

// ResynthesizePost rebuilds the draft post for an album's most recent stored
// batch without contacting the remote service. The batch context is
// reconstructed from the persisted rows: the newest batch key wins, and the
// caption is taken from the batch's captioned member.
func (e *Engine) ResynthesizePost(ctx context.Context, token string) (*models.Post, error) {
	var album models.Album
	if err := e.db.WithContext(ctx).Where("token = ?", token).First(&album).Error; err != nil {
		return nil, fmt.Errorf("failed to look up album: %w", err)
	}

	var batchKey string
	err := e.db.WithContext(ctx).
		Model(&models.AlbumPhoto{}).
		Where("album_id = ? AND source_batch_key <> ''", album.ID).
		Order("source_taken_at DESC").
		Limit(1).
		Pluck("source_batch_key", &batchKey).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find latest batch: %w", err)
	}
	if batchKey == "" {
		return nil, fmt.Errorf("album has no batched photos")
	}

	var members []models.AlbumPhoto
	err = e.db.WithContext(ctx).
		Where("album_id = ? AND source_batch_key = ?", album.ID, batchKey).
		Order("source_taken_at ASC").
		Find(&members).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load batch photos: %w", err)
	}

	caption := ""
	for _, m := range members {
		if strings.TrimSpace(m.SourceCaption) != "" {
			caption = m.SourceCaption
			break
		}
	}

	b := batch.Batch{Key: batchKey}
	b.Title, b.Excerpt, b.DetailText = batch.Describe(caption)

	return e.synthesizePostForBatch(ctx, &album, b, members)
}

// renderBody builds the post body: detail text first, then one figure per
// photo in batch order. The cover photo is carried separately on the post
// and is not repeated here.
func renderBody(b batch.Batch, members []models.AlbumPhoto) string {
	var sb strings.Builder

	for _, line := range strings.Split(b.DetailText, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			fmt.Fprintf(&sb, "<p>%s</p>\n", html.EscapeString(line))
		}
	}

	for _, m := range members {
		sb.WriteString("<figure>\n")
		fmt.Fprintf(&sb, "  <img src=%q alt=%q />\n", m.ImageURL, m.AltText)
		sb.WriteString("</figure>\n")
	}
	return sb.String()
}
