// Package config provides configuration management for the photo sync service.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP server settings (port, API key)
//   - Source: remote shared-album service (host, base URL, chunk size)
//   - Database: MySQL/SQLite connection details
//   - Storage: S3/MinIO credentials for the archive mirror
//   - Log: Logging level and format
//   - Pipeline: sync run limits (max photos, fallback cap)
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
