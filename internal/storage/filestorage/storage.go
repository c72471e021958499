package filestorage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"portfolio/internal/storage"
)

// Object is a blob to store under Bucket/Key.
type Object struct {
	Bucket      string
	Key         string
	Body        io.Reader
	Size        int64
	ContentType string
}

// FileStorage stores uploaded blobs and maps them to public URLs.
type FileStorage interface {
	Save(ctx context.Context, obj Object) (int64, error)
	Delete(ctx context.Context, bucket, key string) error
	PublicURL(bucket, key string) string
	// KeyFromURL recovers the key of a blob from its public URL. It reports
	// false for URLs this storage did not produce, such as bundled assets.
	KeyFromURL(bucket, url string) (string, bool)
}

// LocalFileStorage keeps blobs on disk under baseDir/<bucket>/<key>.
type LocalFileStorage struct {
	baseDir string // e.g. "./uploads"
	baseURL string // e.g. "http://localhost:8080/uploads"
}

func NewLocalFileStorage(baseDir, baseURL string) (*LocalFileStorage, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, err
	}

	return &LocalFileStorage{
		baseDir: baseDir,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

func (s *LocalFileStorage) Save(ctx context.Context, obj Object) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	filePath, err := s.path(obj.Bucket, obj.Key)
	if err != nil {
		return 0, err
	}

	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return 0, fmt.Errorf("failed to create directories: %w", err)
	}

	dst, err := os.Create(filePath)
	if err != nil {
		return 0, fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	done := make(chan struct{})
	var size int64
	var copyErr error

	go func() {
		size, copyErr = io.Copy(dst, obj.Body)
		close(done)
	}()

	select {
	case <-done:
		if copyErr != nil {
			_ = os.Remove(filePath)
			return 0, fmt.Errorf("failed to copy file: %w", copyErr)
		}
	case <-ctx.Done():
		<-done
		_ = os.Remove(filePath)
		return 0, ctx.Err()
	}

	return size, nil
}

func (s *LocalFileStorage) Delete(ctx context.Context, bucket, key string) error {
	filePath, err := s.path(bucket, key)
	if err != nil {
		return err
	}

	if err := os.Remove(filePath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return storage.ErrFileNotFound
		}
		return err
	}
	return nil
}

func (s *LocalFileStorage) PublicURL(bucket, key string) string {
	return s.baseURL + "/" + bucket + "/" + key
}

func (s *LocalFileStorage) KeyFromURL(bucket, url string) (string, bool) {
	return keyFromURL(s.baseURL, bucket, url)
}

func (s *LocalFileStorage) BaseDir() string {
	return s.baseDir
}

// path resolves bucket/key under baseDir, refusing keys that escape it.
func (s *LocalFileStorage) path(bucket, key string) (string, error) {
	rel := filepath.Clean(filepath.Join(bucket, key))
	if bucket == "" || key == "" || rel == "." || strings.HasPrefix(rel, "..") || filepath.IsAbs(rel) {
		return "", fmt.Errorf("invalid object key %q", key)
	}
	return filepath.Join(s.baseDir, rel), nil
}

func keyFromURL(base, bucket, url string) (string, bool) {
	prefix := base + "/" + bucket + "/"
	if !strings.HasPrefix(url, prefix) {
		return "", false
	}
	key := strings.TrimPrefix(url, prefix)
	if key == "" {
		return "", false
	}
	return key, true
}
