package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"portfolio/internal/domain/models"
	"portfolio/internal/storage"
	"portfolio/internal/storage/postgresql"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping postgres container test in short mode")
	}

	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:15-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "testdb",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	pgContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	host, err := pgContainer.Host(ctx)
	require.NoError(t, err)
	port, err := pgContainer.MappedPort(ctx, "5432")
	require.NoError(t, err)

	dsn := fmt.Sprintf("postgres://test:test@%s:%s/testdb?sslmode=disable", host, port.Port())

	st, err := postgresql.New(ctx, dsn)
	require.NoError(t, err)
	require.NoError(t, st.ApplySchema(ctx))

	t.Cleanup(func() {
		st.Stop()
		_ = pgContainer.Terminate(ctx)
	})

	return st.Pool()
}

func TestPostgresRepositories(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewRepository(pool)
	ctx := context.Background()

	t.Run("media ordering and max order", func(t *testing.T) {
		maxOrder, err := repo.Media.MaxDisplayOrder(ctx, models.SectionPosts)
		require.NoError(t, err)
		assert.Equal(t, -1, maxOrder)

		b, err := repo.Media.CreateMedia(ctx, models.MediaItem{
			Section: models.SectionPosts, FileName: "b.png", URL: "/b.png", Kind: models.MediaKindImage, DisplayOrder: 1,
		})
		require.NoError(t, err)
		a, err := repo.Media.CreateMedia(ctx, models.MediaItem{
			Section: models.SectionPosts, FileName: "a.png", URL: "/a.png", Kind: models.MediaKindImage, DisplayOrder: 0,
		})
		require.NoError(t, err)

		items, err := repo.Media.ListMedia(ctx, MediaFilter{Section: models.SectionPosts, Kind: models.MediaKindImage})
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, a.ID, items[0].ID)
		assert.Equal(t, b.ID, items[1].ID)

		require.NoError(t, repo.Media.UpdateDisplayOrder(ctx, a.ID, 5))
		items, err = repo.Media.ListMedia(ctx, MediaFilter{Section: models.SectionPosts})
		require.NoError(t, err)
		assert.Equal(t, b.ID, items[0].ID)

		maxOrder, err = repo.Media.MaxDisplayOrder(ctx, models.SectionPosts)
		require.NoError(t, err)
		assert.Equal(t, 5, maxOrder)

		got, err := repo.Media.GetMediaByIDs(ctx, []string{a.ID, "not-a-uuid", uuid.NewString()})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "/a.png", got[0].URL)

		require.NoError(t, repo.Media.DeleteMedia(ctx, a.ID))
		_, err = repo.Media.GetMediaByID(ctx, a.ID)
		assert.ErrorIs(t, err, storage.ErrMediaNotFound)
		assert.ErrorIs(t, repo.Media.DeleteMedia(ctx, a.ID), storage.ErrMediaNotFound)
	})

	t.Run("media batch insert keeps group key and role", func(t *testing.T) {
		err := repo.Media.CreateMediaBatch(ctx, []models.MediaItem{
			{Section: models.SectionEditing, FileName: "x - before", URL: "/x-b.jpg", Kind: models.MediaKindImage, GroupKey: "x", PairRole: models.PairRoleBefore},
			{Section: models.SectionEditing, FileName: "x - after", URL: "/x-a.jpg", Kind: models.MediaKindImage, GroupKey: "x", PairRole: models.PairRoleAfter, DisplayOrder: 1},
		})
		require.NoError(t, err)

		urls, err := repo.Media.ListMediaURLs(ctx, models.SectionEditing)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"/x-b.jpg", "/x-a.jpg"}, urls)

		items, err := repo.Media.ListMedia(ctx, MediaFilter{Section: models.SectionEditing})
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, models.PairRoleBefore, items[0].PairRole)
		assert.Equal(t, "x", items[1].GroupKey)
	})

	t.Run("content upsert", func(t *testing.T) {
		_, err := repo.Content.GetContent(ctx, models.SectionAbout)
		assert.ErrorIs(t, err, storage.ErrContentNotFound)

		rec := models.ContentRecord{
			Section: models.SectionAbout,
			Variant: models.ContentAbout,
			About:   &models.AboutContent{Title: "Hello"},
		}
		_, err = repo.Content.UpsertContent(ctx, rec)
		require.NoError(t, err)

		rec.About.Title = "Hello again"
		saved, err := repo.Content.UpsertContent(ctx, rec)
		require.NoError(t, err)
		assert.Equal(t, "Hello again", saved.About.Title)

		all, err := repo.Content.ListContent(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})

	t.Run("contact inbox", func(t *testing.T) {
		first, err := repo.Contact.CreateMessage(ctx, models.ContactMessage{Name: "A", Email: "a@test.io", Message: "hi"})
		require.NoError(t, err)
		time.Sleep(10 * time.Millisecond)
		second, err := repo.Contact.CreateMessage(ctx, models.ContactMessage{Name: "B", Email: "b@test.io", Message: "yo"})
		require.NoError(t, err)

		msgs, err := repo.Contact.ListMessages(ctx)
		require.NoError(t, err)
		require.Len(t, msgs, 2)
		assert.Equal(t, second.ID, msgs[0].ID)

		require.NoError(t, repo.Contact.MarkRead(ctx, first.ID))
		n, err := repo.Contact.CountUnread(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, n)

		require.NoError(t, repo.Contact.DeleteMessage(ctx, second.ID))
		assert.ErrorIs(t, repo.Contact.DeleteMessage(ctx, second.ID), storage.ErrMessageNotFound)
	})

	t.Run("admins", func(t *testing.T) {
		id, err := repo.Admin.SaveAdmin(ctx, models.Admin{Email: "Owner@Site.io", PasswordHash: []byte("hash")})
		require.NoError(t, err)

		_, err = repo.Admin.SaveAdmin(ctx, models.Admin{Email: "owner@site.io", PasswordHash: []byte("hash")})
		assert.ErrorIs(t, err, storage.ErrAdminExists)

		admin, err := repo.Admin.AdminByEmail(ctx, "OWNER@site.io")
		require.NoError(t, err)
		assert.Equal(t, id, admin.ID)

		_, err = repo.Admin.AdminByEmail(ctx, "missing@site.io")
		assert.ErrorIs(t, err, storage.ErrAdminNotFound)
	})
}
