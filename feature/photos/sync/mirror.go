package sync

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"

	"photo-sync/feature/photos/models"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// mirrorImages copies each row's image into the archive bucket. Objects
// already present are skipped, so re-runs only transfer new photos. Mirror
// failures are logged per object and never fail the run.
func (e *Engine) mirrorImages(ctx context.Context, album *models.Album, rows []models.AlbumPhoto, log *zap.Logger) int {
	bucket := e.storeCfg.Bucket

	exists, err := e.store.BucketExists(ctx, bucket)
	if err != nil {
		log.Warn("failed to check archive bucket", zap.Error(err))
		return 0
	}
	if !exists {
		if err := e.store.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: e.storeCfg.Region}); err != nil {
			log.Warn("failed to create archive bucket", zap.Error(err))
			return 0
		}
	}

	httpClient := retryablehttp.NewClient()
	httpClient.RetryMax = 2
	httpClient.Logger = nil

	mirrored := 0
	for _, row := range rows {
		objectName := mirrorObjectName(album.Token, row)

		if _, err := e.store.StatObject(ctx, bucket, objectName, minio.StatObjectOptions{}); err == nil {
			continue
		}

		if err := e.mirrorOne(ctx, httpClient, bucket, objectName, row.ImageURL); err != nil {
			log.Warn("failed to mirror image",
				zap.String("object", objectName), zap.Error(err))
			continue
		}
		mirrored++
	}

	if mirrored > 0 {
		log.Info("images mirrored to archive",
			zap.String("bucket", bucket), zap.Int("count", mirrored))
	}
	return mirrored
}

func (e *Engine) mirrorOne(ctx context.Context, client *retryablehttp.Client, bucket, objectName, imageURL string) error {
	req, err := retryablehttp.NewRequestWithContext(ctx, "GET", imageURL, nil)
	if err != nil {
		return err
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("image download returned status %d", resp.StatusCode)
	}

	// Buffer the body; minio needs the exact size for a single-part upload.
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err = e.store.PutObject(ctx, bucket, objectName, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	return err
}

// mirrorObjectName derives a stable object key from the row's dedupe key, so
// the same photo always maps to the same object.
func mirrorObjectName(token string, row models.AlbumPhoto) string {
	sum := sha256.Sum256([]byte(row.DedupeKey))
	name := hex.EncodeToString(sum[:])[:20]

	ext := ".jpg"
	if u, err := url.Parse(row.ImageURL); err == nil {
		if e := strings.ToLower(path.Ext(u.Path)); e != "" && len(e) <= 5 {
			ext = e
		}
	}
	return fmt.Sprintf("albums/%s/%s%s", token, name, ext)
}
