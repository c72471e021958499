package services_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"portfolio/internal/domain/models"
	"portfolio/internal/storage"
	"portfolio/internal/transport/http/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const uploadsBase = "http://test.local/uploads/"

func blobPath(dir, url string) string {
	return filepath.Join(dir, filepath.FromSlash(strings.TrimPrefix(url, uploadsBase)))
}

func TestUpload_AppendsToSection(t *testing.T) {
	svc, _, dir := newMemoryService(t)
	ctx := context.Background()

	first, err := svc.Upload(ctx, dto.MediaUploadInput{
		Section: models.SectionStories,
		File:    createTestFile(t, "Story.JPG", "image/jpeg", "jpeg-bytes"),
	})
	require.NoError(t, err)
	assert.Equal(t, 0, first.DisplayOrder)
	assert.Equal(t, "Story.JPG", first.FileName)
	assert.Equal(t, models.MediaKindImage, first.Kind)
	require.NotNil(t, first.FileSize)
	assert.Equal(t, int64(10), *first.FileSize)
	assert.True(t, strings.HasPrefix(first.URL, uploadsBase+"portfolio-images/stories/"))
	assert.True(t, strings.HasSuffix(first.URL, ".jpg"))

	data, err := os.ReadFile(blobPath(dir, first.URL))
	require.NoError(t, err)
	assert.Equal(t, "jpeg-bytes", string(data))

	second, err := svc.Upload(ctx, dto.MediaUploadInput{
		Section: models.SectionStories,
		File:    createTestFile(t, "next.png", "image/png", "png"),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, second.DisplayOrder)

	order := 42
	third, err := svc.Upload(ctx, dto.MediaUploadInput{
		Section:      models.SectionStories,
		File:         createTestFile(t, "pinned.png", "image/png", "png"),
		DisplayOrder: &order,
	})
	require.NoError(t, err)
	assert.Equal(t, 42, third.DisplayOrder)
}

func TestUpload_VideoBucket(t *testing.T) {
	svc, _, _ := newMemoryService(t)

	item, err := svc.Upload(context.Background(), dto.MediaUploadInput{
		Section: models.SectionReels,
		File:    createTestFile(t, "clip.mp4", "video/mp4", "mp4"),
	})
	require.NoError(t, err)
	assert.Contains(t, item.URL, "/portfolio-videos/reels/")
}

func TestUpload_RejectsBeforeAnyStoreCall(t *testing.T) {
	repo := new(MockMediaRepository)
	svc, _ := newService(t, repo)
	ctx := context.Background()

	tests := []struct {
		name    string
		input   dto.MediaUploadInput
		wantErr error
	}{
		{
			name:    "wrong mime type",
			input:   dto.MediaUploadInput{Section: models.SectionReels, File: createTestFile(t, "a.jpg", "image/jpeg", "x")},
			wantErr: models.ErrInvalidFileType,
		},
		{
			name:    "empty file",
			input:   dto.MediaUploadInput{Section: models.SectionPosts, File: createTestFile(t, "a.jpg", "image/jpeg", "")},
			wantErr: models.ErrEmptyFile,
		},
		{
			name:    "unknown section",
			input:   dto.MediaUploadInput{Section: "blog", File: createTestFile(t, "a.jpg", "image/jpeg", "x")},
			wantErr: models.ErrUnknownSection,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Upload(ctx, tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	_, err := svc.Upload(ctx, dto.MediaUploadInput{Section: models.SectionPosts})
	assert.True(t, models.IsValidationError(err))

	repo.AssertNotCalled(t, "MaxDisplayOrder", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "CreateMedia", mock.Anything, mock.Anything)
}

func TestUpload_StoreFailureRemovesBlob(t *testing.T) {
	repo := new(MockMediaRepository)
	svc, dir := newService(t, repo)
	ctx := context.Background()

	repo.On("MaxDisplayOrder", ctx, models.SectionPosts).Return(-1, nil)
	repo.On("CreateMedia", ctx, mock.Anything).Return(models.MediaItem{}, errors.New("insert failed"))

	_, err := svc.Upload(ctx, dto.MediaUploadInput{
		Section: models.SectionPosts,
		File:    createTestFile(t, "a.png", "image/png", "png"),
	})
	require.Error(t, err)

	entries, err := os.ReadDir(filepath.Join(dir, "portfolio-images", "posts"))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestUploadPair(t *testing.T) {
	svc, _, _ := newMemoryService(t)
	ctx := context.Background()

	pair, err := svc.UploadPair(ctx, dto.PairUploadInput{
		Section: models.SectionEditing,
		Title:   "golden hour",
		Before:  createTestFile(t, "raw.JPG", "image/jpeg", "raw"),
		After:   createTestFile(t, "graded.jpg", "image/jpeg", "graded"),
	})
	require.NoError(t, err)
	require.NotNil(t, pair.Before)
	require.NotNil(t, pair.After)
	assert.Equal(t, "golden hour - before.jpg", pair.Before.FileName)
	assert.Equal(t, "golden hour - after.jpg", pair.After.FileName)
	assert.Equal(t, 0, pair.Before.DisplayOrder)
	assert.Equal(t, 1, pair.After.DisplayOrder)
	assert.Equal(t, "Golden Hour", pair.Title)

	pairs, err := svc.Pairs(ctx, models.SectionEditing)
	require.NoError(t, err)
	require.Len(t, pairs, 1)
	assert.Equal(t, "Golden Hour", pairs[0].Title)
	assert.Equal(t, pair.Before.ID, pairs[0].Before.ID)
	assert.False(t, pairs[0].IsFallback)
}

func TestUploadPair_OneSideFails(t *testing.T) {
	repo := new(MockMediaRepository)
	svc, _ := newService(t, repo)
	ctx := context.Background()

	repo.On("MaxDisplayOrder", ctx, models.SectionEditing).Return(4, nil)
	repo.On("CreateMedia", ctx, mock.MatchedBy(func(it models.MediaItem) bool {
		return it.PairRole == models.PairRoleBefore && it.DisplayOrder == 5
	})).Return(models.MediaItem{ID: "b"}, nil)
	repo.On("CreateMedia", ctx, mock.MatchedBy(func(it models.MediaItem) bool {
		return it.PairRole == models.PairRoleAfter && it.DisplayOrder == 6
	})).Return(models.MediaItem{}, errors.New("insert failed"))

	_, err := svc.UploadPair(ctx, dto.PairUploadInput{
		Section: models.SectionEditing,
		Title:   "Sunset",
		Before:  createTestFile(t, "a.jpg", "image/jpeg", "a"),
		After:   createTestFile(t, "b.jpg", "image/jpeg", "b"),
	})
	require.Error(t, err)

	var batch *models.BatchError
	require.ErrorAs(t, err, &batch)
	assert.Equal(t, 1, batch.Succeeded)
	assert.Equal(t, 2, batch.Total)
	repo.AssertExpectations(t)
}

func TestUploadPair_WrongSection(t *testing.T) {
	svc, _, _ := newMemoryService(t)

	_, err := svc.UploadPair(context.Background(), dto.PairUploadInput{
		Section: models.SectionMenus,
		Title:   "x",
		Before:  createTestFile(t, "a.jpg", "image/jpeg", "a"),
		After:   createTestFile(t, "b.jpg", "image/jpeg", "b"),
	})
	assert.ErrorIs(t, err, models.ErrWrongGrouping)
}

func TestReplace(t *testing.T) {
	svc, _, dir := newMemoryService(t)
	ctx := context.Background()

	orig, err := svc.Upload(ctx, dto.MediaUploadInput{
		Section: models.SectionPosts,
		File:    createTestFile(t, "old.png", "image/png", "old"),
	})
	require.NoError(t, err)

	updated, err := svc.Replace(ctx, orig.ID, createTestFile(t, "new.png", "image/png", "newer"))
	require.NoError(t, err)
	assert.Equal(t, orig.DisplayOrder, updated.DisplayOrder)
	assert.Equal(t, "new.png", updated.FileName)
	assert.NotEqual(t, orig.URL, updated.URL)

	_, err = os.Stat(blobPath(dir, orig.URL))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(blobPath(dir, updated.URL))
	assert.NoError(t, err)

	_, err = svc.Replace(ctx, orig.ID, createTestFile(t, "v.mp4", "video/mp4", "v"))
	assert.ErrorIs(t, err, models.ErrInvalidFileType)

	_, err = svc.Replace(ctx, "hardcoded-1", createTestFile(t, "n.png", "image/png", "n"))
	assert.ErrorIs(t, err, models.ErrFallbackItem)
}

func TestDelete(t *testing.T) {
	svc, store, dir := newMemoryService(t)
	ctx := context.Background()

	item, err := svc.Upload(ctx, dto.MediaUploadInput{
		Section: models.SectionPinterest,
		File:    createTestFile(t, "pin.jpg", "image/jpeg", "pin"),
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, item.ID))

	_, err = store.GetMediaByID(ctx, item.ID)
	assert.ErrorIs(t, err, storage.ErrMediaNotFound)
	_, err = os.Stat(blobPath(dir, item.URL))
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, svc.Delete(ctx, item.ID))
	assert.ErrorIs(t, svc.Delete(ctx, "hardcoded-0"), models.ErrFallbackItem)
}

func TestDelete_CatalogURLKeepsAsset(t *testing.T) {
	svc, store, _ := newMemoryService(t)
	ctx := context.Background()

	_, err := svc.Migrate(ctx, models.SectionPosts)
	require.NoError(t, err)

	items, err := svc.Resolve(ctx, models.SectionPosts, "")
	require.NoError(t, err)
	require.NotEmpty(t, items)

	require.NoError(t, svc.Delete(ctx, items[0].ID))

	urls, err := store.ListMediaURLs(ctx, models.SectionPosts)
	require.NoError(t, err)
	assert.Len(t, urls, len(items)-1)
}

func TestDeleteByURL(t *testing.T) {
	svc, store, dir := newMemoryService(t)
	ctx := context.Background()

	portrait, err := svc.Upload(ctx, dto.MediaUploadInput{
		Section: models.SectionAbout,
		File:    createTestFile(t, "portrait.jpg", "image/jpeg", "me"),
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteByURL(ctx, models.SectionAbout, "https://elsewhere.test/me.jpg"))
	require.NoError(t, svc.DeleteByURL(ctx, models.SectionAbout, ""))
	_, err = store.GetMediaByID(ctx, portrait.ID)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteByURL(ctx, models.SectionAbout, portrait.URL))
	_, err = store.GetMediaByID(ctx, portrait.ID)
	assert.ErrorIs(t, err, storage.ErrMediaNotFound)
	_, err = os.Stat(blobPath(dir, portrait.URL))
	assert.True(t, os.IsNotExist(err))
}

func TestDeleteMany(t *testing.T) {
	svc, _, _ := newMemoryService(t)
	ctx := context.Background()

	a, err := svc.Upload(ctx, dto.MediaUploadInput{Section: models.SectionPosts, File: createTestFile(t, "a.png", "image/png", "a")})
	require.NoError(t, err)
	b, err := svc.Upload(ctx, dto.MediaUploadInput{Section: models.SectionPosts, File: createTestFile(t, "b.png", "image/png", "b")})
	require.NoError(t, err)

	res, err := svc.DeleteMany(ctx, []string{a.ID, b.ID, "6f1c1b7e-0000-4000-8000-000000000000"})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Requested)
	assert.Equal(t, 3, res.Deleted)

	res, err = svc.DeleteMany(ctx, []string{"hardcoded-0"})
	require.Error(t, err)
	assert.Equal(t, 0, res.Deleted)
	assert.ErrorIs(t, err, models.ErrFallbackItem)
}
