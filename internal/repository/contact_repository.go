package repository

import (
	"context"
	"fmt"
	"time"

	"portfolio/internal/domain/models"
	"portfolio/internal/storage"
	"portfolio/internal/storage/postgresql"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4/pgxpool"
)

type ContactRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewContactRepository(db *pgxpool.Pool) *ContactRepo {
	return &ContactRepo{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *ContactRepo) CreateMessage(ctx context.Context, msg models.ContactMessage) (models.ContactMessage, error) {
	const op = "repository.contact_repository.CreateMessage"

	id := uuid.New()
	created := time.Now().UTC()

	query, args, err := r.sb.Insert(postgresql.MessageTable).
		Columns("id", "name", "email", "message", "is_read", "created_at").
		Values(id, msg.Name, msg.Email, msg.Message, false, created).
		ToSql()
	if err != nil {
		return models.ContactMessage{}, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return models.ContactMessage{}, fmt.Errorf("%s: %w", op, err)
	}

	msg.ID = id.String()
	msg.Read = false
	msg.CreatedAt = created

	return msg, nil
}

func (r *ContactRepo) ListMessages(ctx context.Context) ([]models.ContactMessage, error) {
	const op = "repository.contact_repository.ListMessages"

	query, args, err := r.sb.Select("id", "name", "email", "message", "is_read", "created_at").
		From(postgresql.MessageTable).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var out []models.ContactMessage
	for rows.Next() {
		var (
			m  models.ContactMessage
			id uuid.UUID
		)
		if err := rows.Scan(&id, &m.Name, &m.Email, &m.Message, &m.Read, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: failed to scan row: %w", op, err)
		}
		m.ID = id.String()
		out = append(out, m)
	}

	return out, rows.Err()
}

func (r *ContactRepo) CountUnread(ctx context.Context) (int, error) {
	const op = "repository.contact_repository.CountUnread"

	query, args, err := r.sb.Select("COUNT(*)").
		From(postgresql.MessageTable).
		Where(sq.Eq{"is_read": false}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var n int
	if err := r.db.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return n, nil
}

func (r *ContactRepo) MarkRead(ctx context.Context, id string) error {
	const op = "repository.contact_repository.MarkRead"

	uid, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, storage.ErrMessageNotFound)
	}

	query, args, err := r.sb.Update(postgresql.MessageTable).
		Set("is_read", true).
		Where(sq.Eq{"id": uid}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrMessageNotFound)
	}

	return nil
}

func (r *ContactRepo) DeleteMessage(ctx context.Context, id string) error {
	const op = "repository.contact_repository.DeleteMessage"

	uid, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, storage.ErrMessageNotFound)
	}

	query, args, err := r.sb.Delete(postgresql.MessageTable).Where(sq.Eq{"id": uid}).ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrMessageNotFound)
	}

	return nil
}
