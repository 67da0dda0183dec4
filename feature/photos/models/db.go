package models

import (
	"time"

	"github.com/google/uuid"
)

// Sync status values stored on the album record.
const (
	SyncStatusOK     = "ok"
	SyncStatusFailed = "failed"
)

// MaxSyncErrorLength bounds the stored failure message.
const MaxSyncErrorLength = 500

// Album represents one shared album tracked by the service.
type Album struct {
	ID    string `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	Token string `gorm:"column:token;type:varchar(64);uniqueIndex" json:"token"`
	Name  string `gorm:"column:name;type:varchar(255)" json:"name"`

	LastSyncedAt   *time.Time `gorm:"column:last_synced_at" json:"last_synced_at,omitempty"`
	LastSyncStatus string     `gorm:"column:last_sync_status;type:varchar(16)" json:"last_sync_status"`
	LastSyncError  string     `gorm:"column:last_sync_error;type:varchar(512)" json:"last_sync_error"`

	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// TableName overrides the table name.
func (Album) TableName() string {
	return "albums"
}

// NewAlbum creates an album record for a token.
func NewAlbum(token string) *Album {
	return &Album{
		ID:    uuid.New().String(),
		Token: token,
	}
}

// SetSyncError records a failed run, truncating the message to the column bound.
func (a *Album) SetSyncError(msg string) {
	if len(msg) > MaxSyncErrorLength {
		msg = msg[:MaxSyncErrorLength]
	}
	now := time.Now().UTC()
	a.LastSyncedAt = &now
	a.LastSyncStatus = SyncStatusFailed
	a.LastSyncError = msg
}

// SetSyncOK records a successful run.
func (a *Album) SetSyncOK() {
	now := time.Now().UTC()
	a.LastSyncedAt = &now
	a.LastSyncStatus = SyncStatusOK
	a.LastSyncError = ""
}

// AlbumPhoto is one reconciled photo row.
// (album_id, dedupe_key) identifies the real-world photo across runs; a sync
// run upserts on that pair and never duplicates it.
type AlbumPhoto struct {
	ID        uint   `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	AlbumID   string `gorm:"column:album_id;type:varchar(36);uniqueIndex:idx_album_dedupe" json:"album_id"`
	DedupeKey string `gorm:"column:dedupe_key;type:varchar(191);uniqueIndex:idx_album_dedupe" json:"dedupe_key"`

	// SourcePhotoGUID is null for fallback rows resolved without
	// per-identifier attribution.
	SourcePhotoGUID *string    `gorm:"column:source_photo_guid;type:varchar(64)" json:"source_photo_guid,omitempty"`
	SourceAssetKey  string     `gorm:"column:source_asset_key;type:varchar(128)" json:"source_asset_key"`
	SourceBatchKey  string     `gorm:"column:source_batch_key;type:varchar(64);index" json:"source_batch_key"`
	SourceCaption   string     `gorm:"column:source_caption;type:text" json:"source_caption"`
	SourceTakenAt   *time.Time `gorm:"column:source_taken_at" json:"source_taken_at,omitempty"`

	ImageURL string `gorm:"column:image_url;type:text" json:"image_url"`
	AltText  string `gorm:"column:alt_text;type:varchar(255)" json:"alt_text"`
	// Metadata is a JSON object with loosely typed source details
	// (dimensions, match score, response position).
	Metadata string `gorm:"column:metadata;type:text" json:"metadata"`

	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// TableName overrides the table name.
func (AlbumPhoto) TableName() string {
	return "album_photos"
}

// Post is a draft post synthesized from one photo batch.
type Post struct {
	ID       string `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	AlbumID  string `gorm:"column:album_id;type:varchar(36);index" json:"album_id"`
	BatchKey string `gorm:"column:batch_key;type:varchar(64);uniqueIndex" json:"batch_key"`

	Title         string `gorm:"column:title;type:varchar(255)" json:"title"`
	Excerpt       string `gorm:"column:excerpt;type:varchar(512)" json:"excerpt"`
	Body          string `gorm:"column:body;type:mediumtext" json:"body"`
	CoverImageURL string `gorm:"column:cover_image_url;type:text" json:"cover_image_url"`
	Published     bool   `gorm:"column:published" json:"published"`

	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// TableName overrides the table name.
func (Post) TableName() string {
	return "posts"
}
