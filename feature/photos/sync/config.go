package sync

// Config holds the pipeline's run limits.
type Config struct {
	// MaxPhotos caps the rows considered per run, most recent first.
	MaxPhotos int `mapstructure:"max_photos" default:"1000"`
	// FallbackLimit caps the global candidate selection used when no photo
	// identifier matches any asset.
	FallbackLimit int `mapstructure:"fallback_limit" default:"24"`
}
