package repository

import (
	"context"
	"time"

	"portfolio/internal/domain/models"

	"github.com/google/uuid"
)

// MediaFilter selects media rows. An empty Kind matches both kinds.
type MediaFilter struct {
	Section string
	Kind    models.MediaKind
}

type MediaRepository interface {
	CreateMedia(ctx context.Context, item models.MediaItem) (models.MediaItem, error)
	// CreateMediaBatch inserts all items or none.
	CreateMediaBatch(ctx context.Context, items []models.MediaItem) error
	GetMediaByID(ctx context.Context, id string) (models.MediaItem, error)
	// GetMediaByIDs returns the rows that exist among ids, in no particular order.
	GetMediaByIDs(ctx context.Context, ids []string) ([]models.MediaItem, error)
	// ListMedia returns matching rows ordered by display_order, then
	// created_at, then id.
	ListMedia(ctx context.Context, filter MediaFilter) ([]models.MediaItem, error)
	ListMediaURLs(ctx context.Context, section string) ([]string, error)
	// MaxDisplayOrder returns -1 when the section has no rows.
	MaxDisplayOrder(ctx context.Context, section string) (int, error)
	UpdateDisplayOrder(ctx context.Context, id string, order int) error
	UpdateMediaFile(ctx context.Context, item models.MediaItem) error
	DeleteMedia(ctx context.Context, id string) error
}

type ContentRepository interface {
	GetContent(ctx context.Context, section string) (models.ContentRecord, error)
	UpsertContent(ctx context.Context, rec models.ContentRecord) (models.ContentRecord, error)
	ListContent(ctx context.Context) ([]models.ContentRecord, error)
}

type ContactRepository interface {
	CreateMessage(ctx context.Context, msg models.ContactMessage) (models.ContactMessage, error)
	// ListMessages returns messages newest first.
	ListMessages(ctx context.Context) ([]models.ContactMessage, error)
	CountUnread(ctx context.Context) (int, error)
	MarkRead(ctx context.Context, id string) error
	DeleteMessage(ctx context.Context, id string) error
}

type AdminRepository interface {
	SaveAdmin(ctx context.Context, admin models.Admin) (uuid.UUID, error)
	AdminByEmail(ctx context.Context, email string) (models.Admin, error)
}

type TokenRepository interface {
	SaveRefreshToken(ctx context.Context, adminID, token string, exp time.Duration) error
	GetRefreshToken(ctx context.Context, adminID, token string) (bool, error)
	DeleteRefreshToken(ctx context.Context, adminID, token string) error
	DeleteAllAdminTokens(ctx context.Context, adminID string) error
}
