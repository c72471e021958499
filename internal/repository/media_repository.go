package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"portfolio/internal/domain/models"
	"portfolio/internal/storage"
	"portfolio/internal/storage/postgresql"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/lib/pq"
)

var mediaColumns = []string{
	"id",
	"section_name",
	"file_name",
	"file_url",
	"file_type",
	"file_size",
	"display_order",
	"group_key",
	"pair_role",
	"created_at",
}

type MediaRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewMediaRepository(db *pgxpool.Pool) *MediaRepo {
	return &MediaRepo{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *MediaRepo) CreateMedia(ctx context.Context, item models.MediaItem) (models.MediaItem, error) {
	const op = "repository.media_repository.CreateMedia"

	query, args, err := r.insert([]models.MediaItem{item}).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return models.MediaItem{}, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var id uuid.UUID
	if err := r.db.QueryRow(ctx, query, args...).Scan(&id, &item.CreatedAt); err != nil {
		return models.MediaItem{}, fmt.Errorf("%s: %w", op, err)
	}
	item.ID = id.String()

	return item, nil
}

func (r *MediaRepo) CreateMediaBatch(ctx context.Context, items []models.MediaItem) error {
	const op = "repository.media_repository.CreateMediaBatch"

	if len(items) == 0 {
		return nil
	}

	query, args, err := r.insert(items).ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (r *MediaRepo) insert(items []models.MediaItem) sq.InsertBuilder {
	b := r.sb.Insert(postgresql.MediaTable).Columns(mediaColumns...)

	now := time.Now().UTC()
	for _, item := range items {
		id := uuid.New()
		if parsed, err := uuid.Parse(item.ID); err == nil {
			id = parsed
		}
		created := item.CreatedAt
		if created.IsZero() {
			created = now
		}

		b = b.Values(
			id,
			item.Section,
			item.FileName,
			item.URL,
			string(item.Kind),
			item.FileSize,
			item.DisplayOrder,
			item.GroupKey,
			string(item.PairRole),
			created,
		)
	}

	return b
}

func (r *MediaRepo) GetMediaByID(ctx context.Context, id string) (models.MediaItem, error) {
	const op = "repository.media_repository.GetMediaByID"

	uid, err := uuid.Parse(id)
	if err != nil {
		return models.MediaItem{}, fmt.Errorf("%s: %w", op, storage.ErrMediaNotFound)
	}

	query, args, err := r.sb.Select(mediaColumns...).
		From(postgresql.MediaTable).
		Where(sq.Eq{"id": uid}).
		ToSql()
	if err != nil {
		return models.MediaItem{}, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	item, err := scanMedia(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.MediaItem{}, fmt.Errorf("%s: %w", op, storage.ErrMediaNotFound)
		}
		return models.MediaItem{}, fmt.Errorf("%s: %w", op, err)
	}

	return item, nil
}

func (r *MediaRepo) GetMediaByIDs(ctx context.Context, ids []string) ([]models.MediaItem, error) {
	const op = "repository.media_repository.GetMediaByIDs"

	valid := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, err := uuid.Parse(id); err == nil {
			valid = append(valid, id)
		}
	}
	if len(valid) == 0 {
		return nil, nil
	}

	query, args, err := r.sb.Select(mediaColumns...).
		From(postgresql.MediaTable).
		Where(sq.Expr("id::text = ANY(?)", pq.Array(valid))).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	return r.query(ctx, op, query, args)
}

func (r *MediaRepo) ListMedia(ctx context.Context, filter MediaFilter) ([]models.MediaItem, error) {
	const op = "repository.media_repository.ListMedia"

	b := r.sb.Select(mediaColumns...).
		From(postgresql.MediaTable).
		Where(sq.Eq{"section_name": filter.Section})
	if filter.Kind != "" {
		b = b.Where(sq.Eq{"file_type": string(filter.Kind)})
	}

	query, args, err := b.OrderBy("display_order", "created_at", "id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	return r.query(ctx, op, query, args)
}

func (r *MediaRepo) query(ctx context.Context, op, query string, args []interface{}) ([]models.MediaItem, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}
	defer rows.Close()

	var items []models.MediaItem
	for rows.Next() {
		item, err := scanMedia(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to scan row: %w", op, err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows error: %w", op, err)
	}

	return items, nil
}

func (r *MediaRepo) ListMediaURLs(ctx context.Context, section string) ([]string, error) {
	const op = "repository.media_repository.ListMediaURLs"

	query, args, err := r.sb.Select("file_url").
		From(postgresql.MediaTable).
		Where(sq.Eq{"section_name": section}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var urls []string
	for rows.Next() {
		var u string
		if err := rows.Scan(&u); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		urls = append(urls, u)
	}

	return urls, rows.Err()
}

func (r *MediaRepo) MaxDisplayOrder(ctx context.Context, section string) (int, error) {
	const op = "repository.media_repository.MaxDisplayOrder"

	query, args, err := r.sb.Select("COALESCE(MAX(display_order), -1)").
		From(postgresql.MediaTable).
		Where(sq.Eq{"section_name": section}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var maxOrder int
	if err := r.db.QueryRow(ctx, query, args...).Scan(&maxOrder); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return maxOrder, nil
}

func (r *MediaRepo) UpdateDisplayOrder(ctx context.Context, id string, order int) error {
	const op = "repository.media_repository.UpdateDisplayOrder"

	return r.update(ctx, op, id, r.sb.Update(postgresql.MediaTable).Set("display_order", order))
}

func (r *MediaRepo) UpdateMediaFile(ctx context.Context, item models.MediaItem) error {
	const op = "repository.media_repository.UpdateMediaFile"

	b := r.sb.Update(postgresql.MediaTable).
		Set("file_name", item.FileName).
		Set("file_url", item.URL).
		Set("file_size", item.FileSize)

	return r.update(ctx, op, item.ID, b)
}

func (r *MediaRepo) update(ctx context.Context, op, id string, b sq.UpdateBuilder) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, storage.ErrMediaNotFound)
	}

	query, args, err := b.Where(sq.Eq{"id": uid}).ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrMediaNotFound)
	}

	return nil
}

func (r *MediaRepo) DeleteMedia(ctx context.Context, id string) error {
	const op = "repository.media_repository.DeleteMedia"

	uid, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, storage.ErrMediaNotFound)
	}

	query, args, err := r.sb.Delete(postgresql.MediaTable).Where(sq.Eq{"id": uid}).ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrMediaNotFound)
	}

	return nil
}

func scanMedia(row pgx.Row) (models.MediaItem, error) {
	var (
		item       models.MediaItem
		id         uuid.UUID
		kind, role string
	)

	err := row.Scan(
		&id,
		&item.Section,
		&item.FileName,
		&item.URL,
		&kind,
		&item.FileSize,
		&item.DisplayOrder,
		&item.GroupKey,
		&role,
		&item.CreatedAt,
	)
	if err != nil {
		return models.MediaItem{}, err
	}

	item.ID = id.String()
	item.Kind = models.MediaKind(kind)
	item.PairRole = models.PairRole(role)

	return item, nil
}
