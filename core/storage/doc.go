// Package storage provides an abstraction layer for the archive mirror's
// object storage.
//
// It wraps the MinIO Go client to provide a narrow interface for the
// operations the mirror needs: verifying or creating the target bucket,
// uploading image copies, and checking whether a copy already exists.
// This abstraction supports both AWS S3 and self-hosted MinIO instances.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it
// easier to mock storage interactions for unit testing (as seen in
// core/storage/mocks).
//
// # Usage
//
//	client, err := storage.NewClient(config)
//	exists, err := client.BucketExists(ctx, "photo-archive")
package storage
