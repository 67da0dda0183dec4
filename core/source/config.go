package source

// Config holds configuration for the shared-album source.
type Config struct {
	// BaseURL overrides the synthesized album base URL when set.
	BaseURL string `mapstructure:"base_url" default:""`
	// Host is the shared-album service host used when synthesizing the base URL.
	Host string `mapstructure:"host" default:"p01-sharedstreams.icloud.com"`
	// ChunkSize bounds the number of identifiers per asset-lookup request.
	ChunkSize int `mapstructure:"chunk_size" default:"150"`
	// TimeoutSeconds is the per-request timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// RetryMax caps transport-level retries for transient connection failures.
	RetryMax int `mapstructure:"retry_max" default:"2"`
}
