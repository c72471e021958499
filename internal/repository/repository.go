package repository

import (
	"errors"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4/pgxpool"
)

// Repository bundles the postgres backed repositories over one pool.
type Repository struct {
	Media   MediaRepository
	Content ContentRepository
	Contact ContactRepository
	Admin   AdminRepository
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{
		Media:   NewMediaRepository(db),
		Content: NewContentRepository(db),
		Contact: NewContactRepository(db),
		Admin:   NewAdminRepository(db),
	}
}

const pgUniqueViolation = "23505"

func isPgCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}
