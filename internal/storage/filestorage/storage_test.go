package filestorage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"portfolio/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupFileStorage(t *testing.T) (*LocalFileStorage, string) {
	t.Helper()

	dir := t.TempDir()
	fs, err := NewLocalFileStorage(dir, "http://test.local/uploads/")
	require.NoError(t, err)

	return fs, dir
}

func TestLocalFileStorage_Save(t *testing.T) {
	fs, dir := setupFileStorage(t)
	ctx := context.Background()

	t.Run("successful save", func(t *testing.T) {
		size, err := fs.Save(ctx, Object{
			Bucket: "portfolio-images",
			Key:    "stories/1700000000000-abc.jpg",
			Body:   strings.NewReader("test content"),
		})
		require.NoError(t, err)
		assert.Equal(t, int64(12), size)

		data, err := os.ReadFile(filepath.Join(dir, "portfolio-images", "stories", "1700000000000-abc.jpg"))
		require.NoError(t, err)
		assert.Equal(t, "test content", string(data))
	})

	t.Run("cancelled context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		_, err := fs.Save(cctx, Object{Bucket: "b", Key: "k.jpg", Body: strings.NewReader("x")})
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("key escaping base dir", func(t *testing.T) {
		_, err := fs.Save(ctx, Object{Bucket: "b", Key: "../../etc/passwd", Body: strings.NewReader("x")})
		assert.Error(t, err)
	})
}

func TestLocalFileStorage_Delete(t *testing.T) {
	fs, _ := setupFileStorage(t)
	ctx := context.Background()

	_, err := fs.Save(ctx, Object{Bucket: "b", Key: "menus/a.png", Body: strings.NewReader("png")})
	require.NoError(t, err)

	require.NoError(t, fs.Delete(ctx, "b", "menus/a.png"))
	assert.ErrorIs(t, fs.Delete(ctx, "b", "menus/a.png"), storage.ErrFileNotFound)
}

func TestLocalFileStorage_URLs(t *testing.T) {
	fs, _ := setupFileStorage(t)

	url := fs.PublicURL("portfolio-videos", "reels/1.mp4")
	assert.Equal(t, "http://test.local/uploads/portfolio-videos/reels/1.mp4", url)

	key, ok := fs.KeyFromURL("portfolio-videos", url)
	require.True(t, ok)
	assert.Equal(t, "reels/1.mp4", key)

	_, ok = fs.KeyFromURL("portfolio-images", url)
	assert.False(t, ok)

	_, ok = fs.KeyFromURL("portfolio-videos", "/assets/reels/1.mp4")
	assert.False(t, ok)
}
