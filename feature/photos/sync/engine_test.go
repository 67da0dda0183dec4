package sync

import (
	"context"
	"testing"
	"time"

	"photo-sync/core/database"
	"photo-sync/feature/photos/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func TestReconcileUpsertSQL(t *testing.T) {
	db, mock := newMockDB(t)

	taken := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	rows := []models.AlbumPhoto{
		{
			AlbumID:       "album-1",
			DedupeKey:     "guid:aa11",
			ImageURL:      "https://cdn.example.test/aa11/original.jpeg",
			SourceTakenAt: &taken,
		},
	}

	// Existence check first, then a single multi-row upsert.
	mock.ExpectQuery("SELECT `dedupe_key` FROM `album_photos` WHERE album_id = \\? AND dedupe_key IN \\(\\?\\)").
		WithArgs("album-1", "guid:aa11").
		WillReturnRows(sqlmock.NewRows([]string{"dedupe_key"}))

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `album_photos` .* ON DUPLICATE KEY UPDATE").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	imported, updated, err := reconcile(context.Background(), db, "album-1", rows, 100)
	require.NoError(t, err)
	assert.Equal(t, 1, imported)
	assert.Zero(t, updated)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReconcileCountsExistingAsUpdated(t *testing.T) {
	db, mock := newMockDB(t)

	rows := []models.AlbumPhoto{
		{AlbumID: "album-1", DedupeKey: "guid:aa11"},
		{AlbumID: "album-1", DedupeKey: "guid:bb22"},
	}

	mock.ExpectQuery("SELECT `dedupe_key` FROM `album_photos`").
		WillReturnRows(sqlmock.NewRows([]string{"dedupe_key"}).AddRow("guid:aa11"))

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `album_photos` .* ON DUPLICATE KEY UPDATE").
		WillReturnResult(sqlmock.NewResult(2, 2))
	mock.ExpectCommit()

	imported, updated, err := reconcile(context.Background(), db, "album-1", rows, 100)
	require.NoError(t, err)
	assert.Equal(t, 1, imported)
	assert.Equal(t, 1, updated)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReconcileEmptyIsNoOp(t *testing.T) {
	db, mock := newMockDB(t)

	imported, updated, err := reconcile(context.Background(), db, "album-1", nil, 100)
	require.NoError(t, err)
	assert.Zero(t, imported)
	assert.Zero(t, updated)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReconcileCapOrdering(t *testing.T) {
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db, &models.AlbumPhoto{}))

	old := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	recent := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	rows := []models.AlbumPhoto{
		{AlbumID: "album-1", DedupeKey: "guid:old", SourceTakenAt: &old},
		{AlbumID: "album-1", DedupeKey: "guid:unknown"},
		{AlbumID: "album-1", DedupeKey: "guid:recent", SourceTakenAt: &recent},
	}

	imported, updated, err := reconcile(context.Background(), db, "album-1", rows, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, imported)
	assert.Zero(t, updated)

	var keys []string
	require.NoError(t, db.Model(&models.AlbumPhoto{}).Order("dedupe_key").Pluck("dedupe_key", &keys).Error)
	assert.Equal(t, []string{"guid:old", "guid:recent"}, keys)
}
