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
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

type ContentRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewContentRepository(db *pgxpool.Pool) *ContentRepo {
	return &ContentRepo{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *ContentRepo) GetContent(ctx context.Context, section string) (models.ContentRecord, error) {
	const op = "repository.content_repository.GetContent"

	query, args, err := r.sb.Select("section_name", "content", "updated_at").
		From(postgresql.ContentTable).
		Where(sq.Eq{"section_name": section}).
		ToSql()
	if err != nil {
		return models.ContentRecord{}, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	rec, err := scanContent(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.ContentRecord{}, fmt.Errorf("%s: %w", op, storage.ErrContentNotFound)
		}
		return models.ContentRecord{}, fmt.Errorf("%s: %w", op, err)
	}

	return rec, nil
}

// UpsertContent inserts the record or replaces the content of its section.
func (r *ContentRepo) UpsertContent(ctx context.Context, rec models.ContentRecord) (models.ContentRecord, error) {
	const op = "repository.content_repository.UpsertContent"

	payload, err := rec.MarshalPayload()
	if err != nil {
		return models.ContentRecord{}, fmt.Errorf("%s: %w", op, err)
	}

	query, args, err := r.sb.Insert(postgresql.ContentTable).
		Columns("section_name", "content", "updated_at").
		Values(rec.Section, string(payload), time.Now().UTC()).
		Suffix("ON CONFLICT (section_name) DO UPDATE SET content = EXCLUDED.content, updated_at = EXCLUDED.updated_at RETURNING section_name, content, updated_at").
		ToSql()
	if err != nil {
		return models.ContentRecord{}, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	saved, err := scanContent(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return models.ContentRecord{}, fmt.Errorf("%s: %w", op, err)
	}

	return saved, nil
}

func (r *ContentRepo) ListContent(ctx context.Context) ([]models.ContentRecord, error) {
	const op = "repository.content_repository.ListContent"

	query, args, err := r.sb.Select("section_name", "content", "updated_at").
		From(postgresql.ContentTable).
		OrderBy("section_name").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var out []models.ContentRecord
	for rows.Next() {
		rec, err := scanContent(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		out = append(out, rec)
	}

	return out, rows.Err()
}

func scanContent(row pgx.Row) (models.ContentRecord, error) {
	var (
		section string
		raw     []byte
		updated time.Time
	)
	if err := row.Scan(&section, &raw, &updated); err != nil {
		return models.ContentRecord{}, err
	}

	rec, err := models.DecodeContent(section, raw)
	if err != nil {
		return models.ContentRecord{}, err
	}
	rec.UpdatedAt = updated

	return rec, nil
}
