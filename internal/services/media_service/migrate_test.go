package services_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"portfolio/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMigrate_Idempotent(t *testing.T) {
	svc, _, _ := newMemoryService(t)
	ctx := context.Background()

	before, err := svc.Carousels(ctx, models.SectionMenus)
	require.NoError(t, err)

	migrated, err := svc.Migrate(ctx, models.SectionMenus)
	require.NoError(t, err)
	assert.True(t, migrated)

	items, err := svc.Resolve(ctx, models.SectionMenus, "")
	require.NoError(t, err)
	require.Len(t, items, 11)
	for _, it := range items {
		assert.False(t, it.IsFallback)
	}

	after, err := svc.Carousels(ctx, models.SectionMenus)
	require.NoError(t, err)
	require.Len(t, after, len(before))
	for i := range before {
		assert.Equal(t, before[i].Title, after[i].Title)
		assert.Equal(t, before[i].Description, after[i].Description)
		assert.Len(t, after[i].Items, len(before[i].Items))
	}

	migrated, err = svc.Migrate(ctx, models.SectionMenus)
	require.NoError(t, err)
	assert.False(t, migrated)

	items, err = svc.Resolve(ctx, models.SectionMenus, "")
	require.NoError(t, err)
	assert.Len(t, items, 11)
}

func TestMigrate_SkipsExistingURLsIgnoringCase(t *testing.T) {
	svc, store, _ := newMemoryService(t)
	ctx := context.Background()

	existing := storedItem(models.SectionReels, 0)
	existing.Kind = models.MediaKindVideo
	existing.URL = strings.ToUpper("/assets/reels/1.mp4")
	_, err := store.CreateMedia(ctx, existing)
	require.NoError(t, err)

	migrated, err := svc.Migrate(ctx, models.SectionReels)
	require.NoError(t, err)
	assert.True(t, migrated)

	urls, err := store.ListMediaURLs(ctx, models.SectionReels)
	require.NoError(t, err)
	assert.Len(t, urls, 3)
}

func TestMigrate_EditingKeepsPairs(t *testing.T) {
	svc, _, _ := newMemoryService(t)
	ctx := context.Background()

	_, err := svc.Migrate(ctx, models.SectionEditing)
	require.NoError(t, err)

	pairs, err := svc.Pairs(ctx, models.SectionEditing)
	require.NoError(t, err)
	require.Len(t, pairs, 2)
	assert.False(t, pairs[0].IsFallback)
	assert.NotNil(t, pairs[1].Before)
	assert.NotNil(t, pairs[1].After)
}

func TestMigrate_ChunkFailureStopsRun(t *testing.T) {
	repo := new(MockMediaRepository)
	svc, _ := newService(t, repo)
	ctx := context.Background()

	repo.On("ListMediaURLs", ctx, models.SectionMenus).Return([]string{}, nil)
	repo.On("CreateMediaBatch", ctx, mock.MatchedBy(func(items []models.MediaItem) bool {
		return len(items) == 10 && items[0].DisplayOrder == 0
	})).Return(nil).Once()
	repo.On("CreateMediaBatch", ctx, mock.MatchedBy(func(items []models.MediaItem) bool {
		return len(items) == 1 && items[0].DisplayOrder == 10
	})).Return(errors.New("insert failed")).Once()

	migrated, err := svc.Migrate(ctx, models.SectionMenus)
	require.Error(t, err)
	assert.True(t, migrated)

	var batch *models.BatchError
	require.ErrorAs(t, err, &batch)
	assert.Equal(t, 10, batch.Succeeded)
	assert.Equal(t, 11, batch.Total)
	repo.AssertExpectations(t)
}

func TestMigrate_ReadFailureIsReported(t *testing.T) {
	repo := new(MockMediaRepository)
	svc, _ := newService(t, repo)
	ctx := context.Background()

	repo.On("ListMediaURLs", ctx, models.SectionPosts).Return(nil, errors.New("down"))

	migrated, err := svc.Migrate(ctx, models.SectionPosts)
	assert.Error(t, err)
	assert.False(t, migrated)
	repo.AssertNotCalled(t, "CreateMediaBatch", mock.Anything, mock.Anything)
}

func TestMigrateAll(t *testing.T) {
	svc, _, _ := newMemoryService(t)

	res, err := svc.MigrateAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, res, 9)
	for section, migrated := range res {
		assert.True(t, migrated, section)
	}
}
