package cmd

import (
	"context"
	"fmt"

	"photo-sync/core/config"
	"photo-sync/core/database"
	"photo-sync/core/logger"
	"photo-sync/core/source"
	"photo-sync/feature/photos/models"
	albumsync "photo-sync/feature/photos/sync"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// postCmd redrafts the post for an album's latest stored batch.
var postCmd = &cobra.Command{
	Use:   "post <token>",
	Short: "Redraft the post for an album's latest photo batch",
	Long: `Post rebuilds the draft post for the most recent photo batch already
stored for an album. It never contacts the remote service; run sync first to
bring the album up to date.`,
	Args: cobra.ExactArgs(1),
	RunE: runPost,
}

func init() {
	RootCmd.AddCommand(postCmd)
}

func runPost(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.Migrate(db, &models.Album{}, &models.AlbumPhoto{}, &models.Post{}); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	// The engine's remote client is never used by re-synthesis.
	engine := albumsync.NewEngine(db, source.NewClient(cfg.Source), cfg.Source, cfg.Pipeline, l)

	post, err := engine.ResynthesizePost(ctx, args[0])
	if err != nil {
		return fmt.Errorf("post synthesis failed: %w", err)
	}

	l.Info("Post drafted",
		zap.String("post_id", post.ID),
		zap.String("batch_key", post.BatchKey),
		zap.String("title", post.Title),
	)
	return nil
}
