package helpers

import (
	"context"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"google.golang.org/api/option"
)

const coverCacheControl = "public, max-age=86400"

// NewGCSClient opens a storage client from a service account file, or from application
// default credentials when credsPath is empty.
func NewGCSClient(ctx context.Context, credsPath string) (*storage.Client, error) {
	var opts []option.ClientOption
	if credsPath != "" {
		opts = append(opts, option.WithCredentialsFile(credsPath))
	}
	return storage.NewClient(ctx, opts...)
}

// CoverObjectPath returns covers/<book id>/<random>.<ext>. A new name per upload keeps
// cached copies of the old cover from being served.
func CoverObjectPath(bookID int64, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return path.Join("covers", strconv.FormatInt(bookID, 10), uuid.NewString()+ext)
}

// UploadObject writes r to bucket/objectPath in a single request and returns the public URL.
func UploadObject(ctx context.Context, client *storage.Client, bucket, objectPath, contentType string, r io.Reader) (string, error) {
	w := client.Bucket(bucket).Object(objectPath).NewWriter(ctx)
	w.ContentType = contentType
	w.CacheControl = coverCacheControl
	w.ChunkSize = 0

	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("write %s: %w", objectPath, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", objectPath, err)
	}
	return PublicURL(bucket, objectPath), nil
}

func PublicURL(bucket, objectPath string) string {
	return "https://storage.googleapis.com/" + bucket + "/" + strings.TrimPrefix(objectPath, "/")
}
