package cmd

import (
	"context"
	"fmt"

	"photo-sync/core/config"
	"photo-sync/core/database"
	"photo-sync/core/logger"
	"photo-sync/core/source"
	"photo-sync/core/storage"
	"photo-sync/feature/photos/models"
	albumsync "photo-sync/feature/photos/sync"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for the sync command
	syncBaseURL string
	syncPost    bool
	syncMirror  bool
)

// syncCmd runs one reconciliation pass for a single album.
var syncCmd = &cobra.Command{
	Use:   "sync <link-or-token>",
	Short: "Sync one shared album into the database",
	Long: `Sync fetches a shared album's photo stream, resolves the best image
rendition per photo, and reconciles the result into the database.

The argument may be a pasted share link, a raw URL, or a bare album token.

Examples:
  # Sync by pasted share link
  sync "https://www.icloud.com/sharedalbum/#B0abcDEF123"

  # Sync by bare token and draft a post from the newest batch
  sync B0abcDEF123 --post

  # Sync and mirror images into the archive bucket
  sync B0abcDEF123 --mirror`,
	Args: cobra.ExactArgs(1),
	RunE: runSync,
}

func init() {
	syncCmd.Flags().StringVar(&syncBaseURL, "base-url", "", "Override the album API base URL")
	syncCmd.Flags().BoolVar(&syncPost, "post", false, "Draft a post from the most recent photo batch")
	syncCmd.Flags().BoolVar(&syncMirror, "mirror", false, "Mirror imported images into the archive bucket")

	RootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	// Connect to database
	db, err := database.Connect(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.Migrate(db, &models.Album{}, &models.AlbumPhoto{}, &models.Post{}); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	engine := albumsync.NewEngine(db, source.NewClient(cfg.Source), cfg.Source, cfg.Pipeline, l)

	if syncMirror {
		if !cfg.Storage.Enabled {
			return fmt.Errorf("--mirror requires the storage section to be enabled")
		}
		store, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return fmt.Errorf("failed to connect to storage: %w", err)
		}
		engine.WithMirror(store, cfg.Storage)
	}

	report, err := engine.Run(ctx, args[0], albumsync.Options{
		BaseURL:        syncBaseURL,
		SynthesizePost: syncPost,
		Mirror:         syncMirror,
	})
	if err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}

	l.Info("Sync complete",
		zap.String("token", report.Token),
		zap.Int("photos_found", report.PhotosFound),
		zap.Int("imported", report.Imported),
		zap.Int("updated", report.Updated),
		zap.Int("batches", report.Batches),
		zap.Int("mirrored", report.Mirrored),
	)
	if report.PostID != "" {
		l.Info("Post drafted", zap.String("post_id", report.PostID))
	}

	return nil
}
