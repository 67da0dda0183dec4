package photos

import (
	"context"
	"fmt"

	"photo-sync/feature/photos/models"
	"photo-sync/feature/photos/sync"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DefaultPhotoPageSize bounds the photos returned with an album view.
const DefaultPhotoPageSize = 50

// AlbumView is an album with its most recent photos.
type AlbumView struct {
	Album      models.Album        `json:"album"`
	PhotoCount int64               `json:"photo_count"`
	Photos     []models.AlbumPhoto `json:"photos"`
}

// Service handles album operations.
type Service struct {
	engine *sync.Engine
	db     *gorm.DB
	logger *zap.Logger
}

// NewService creates a new album service.
func NewService(engine *sync.Engine, db *gorm.DB, logger *zap.Logger) *Service {
	return &Service{
		engine: engine,
		db:     db,
		logger: logger,
	}
}

// Sync runs one reconciliation pass for the album referenced by input.
func (s *Service) Sync(ctx context.Context, input string, opts sync.Options) (*sync.Report, error) {
	return s.engine.Run(ctx, input, opts)
}

// GetAlbum returns the album for a token together with its most recent
// photos. limit <= 0 falls back to DefaultPhotoPageSize.
func (s *Service) GetAlbum(ctx context.Context, token string, limit int) (*AlbumView, error) {
	var album models.Album
	if err := s.db.WithContext(ctx).Where("token = ?", token).First(&album).Error; err != nil {
		return nil, err
	}

	view := &AlbumView{Album: album}

	err := s.db.WithContext(ctx).
		Model(&models.AlbumPhoto{}).
		Where("album_id = ?", album.ID).
		Count(&view.PhotoCount).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count album photos: %w", err)
	}

	if limit <= 0 {
		limit = DefaultPhotoPageSize
	}
	err = s.db.WithContext(ctx).
		Where("album_id = ?", album.ID).
		Order("source_taken_at DESC").
		Limit(limit).
		Find(&view.Photos).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load album photos: %w", err)
	}

	return view, nil
}

// GetPosts returns the album's synthesized posts, newest first.
func (s *Service) GetPosts(ctx context.Context, token string) ([]models.Post, error) {
	var album models.Album
	if err := s.db.WithContext(ctx).Where("token = ?", token).First(&album).Error; err != nil {
		return nil, err
	}

	var posts []models.Post
	err := s.db.WithContext(ctx).
		Where("album_id = ?", album.ID).
		Order("created_at DESC").
		Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load posts: %w", err)
	}
	return posts, nil
}
