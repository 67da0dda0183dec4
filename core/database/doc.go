// Package database handles database connections and schema inspection.
//
// It provides a wrapper around GORM to configure MySQL (production) or SQLite
// (tests, small deployments) connections based on the application's configuration.
//
// # Connect
//
// The Connect function establishes a connection to the database, applies pool
// settings, and verifies the connection with a bounded ping.
//
// # Schema
//
// Migrate applies the GORM auto-migration for the photo sync models. The
// inspector helpers retrieve raw column definitions so the start command can
// report schema drift after migration.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	err = database.Migrate(db, &models.Album{}, &models.AlbumPhoto{})
package database
