package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"photo-sync/core/config"
	"photo-sync/core/database"
	"photo-sync/core/loader"
	"photo-sync/core/logger"
	"photo-sync/core/middleware/auth"
	"photo-sync/core/middleware/rayid"
	"photo-sync/core/source"
	"photo-sync/core/storage"
	"photo-sync/feature/photos"
	"photo-sync/feature/photos/models"
	syncfeature "photo-sync/feature/photos/sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "photo-sync/docs/swagger"
)

// @title Photo Sync API
// @version 1.0
// @description API for syncing shared photo albums.
// @host localhost:8080
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the photo sync server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Connect to Database
		db, err := database.Connect(cfg.Database)
		if err != nil {
			logg.Fatal("Failed to connect to database", zap.Error(err))
		}
		if err := database.Migrate(db, &models.Album{}, &models.AlbumPhoto{}, &models.Post{}); err != nil {
			logg.Fatal("Failed to migrate schema", zap.Error(err))
		}

		// Report schema drift without failing startup; AutoMigrate adds
		// columns but never removes or retypes them.
		if missing, err := database.MissingColumns(db, models.AlbumPhoto{}.TableName(),
			[]string{"album_id", "dedupe_key", "image_url"}); err != nil {
			logg.Warn("Schema inspection failed", zap.Error(err))
		} else if len(missing) > 0 {
			logg.Warn("Schema is missing columns", zap.Strings("columns", missing))
		}

		// 4. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
		})

		// 5. Initialize Source Client
		client := source.NewClient(cfg.Source)

		// 6. Initialize Sync Engine (Optional archive mirror)
		engine := syncfeature.NewEngine(db, client, cfg.Source, cfg.Pipeline, logg)
		if cfg.Storage.Enabled {
			store, err := storage.NewClient(cfg.Storage)
			if err != nil {
				logg.Fatal("Failed to create storage client", zap.Error(err))
			}
			engine.WithMirror(store, cfg.Storage)
			logg.Info("Archive mirror enabled", zap.String("bucket", cfg.Storage.Bucket))
		}

		// 7. Initialize Feature Loader
		mgr := loader.NewManager()
		mgr.Register(photos.NewFeature(engine, db, logg))

		// Middleware Registration
		// 1. RayID (Must be first to trace everything)
		app.Use(rayid.New())

		// 2. Logging Middleware (Custom to use Zap + RayID)
		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// 2.5 Swagger Documentation (Public)
		app.Get("/swagger/*", swagger.HandlerDefault)

		// 3. Auth (Protect API)
		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		// 8. Load Features
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}
		logg.Info("Features loaded", zap.Strings("features", mgr.Names()))

		// 9. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 10. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
