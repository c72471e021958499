package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"portfolio/internal/domain/models"
	"portfolio/internal/lib/logger/sl"
	sessions "portfolio/internal/services/session_service"
	"portfolio/internal/storage"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

// Auth signs admins in and out of the console. Every token pair is bound to
// a tracked session; a token whose session went idle is refused.
type Auth struct {
	log           *slog.Logger
	adminSaver    AdminSaver
	adminProvider AdminProvider
	tokens        TokenIssuer
	sessions      SessionTracker
}

//go:generate go run github.com/vektra/mockery/v2@v2.53.3 --all
type AdminSaver interface {
	SaveAdmin(ctx context.Context, admin models.Admin) (uuid.UUID, error)
}

type AdminProvider interface {
	AdminByEmail(ctx context.Context, email string) (models.Admin, error)
}

type TokenIssuer interface {
	GenerateTokens(ctx context.Context, admin models.Admin, sessionID string) (*models.TokenPair, error)
	Parse(token string) (*models.TokenMeta, error)
	RefreshTokens(ctx context.Context, refreshToken string) (*models.TokenPair, error)
	Revoke(ctx context.Context, adminID string) error
}

type SessionTracker interface {
	Start(adminID string) sessions.State
	Touch(sessionID string) error
	End(sessionID string)
}

func New(log *slog.Logger, adminSaver AdminSaver, adminProvider AdminProvider, tokens TokenIssuer, tracker SessionTracker) *Auth {
	return &Auth{
		log:           log,
		adminSaver:    adminSaver,
		adminProvider: adminProvider,
		tokens:        tokens,
		sessions:      tracker,
	}
}

func (a *Auth) Login(ctx context.Context, email, password string) (*models.TokenPair, error) {
	const op = "auth.Login"

	log := a.log.With(
		slog.String("op", op),
		slog.String("email", email),
	)

	log.Info("attempting to login admin")

	admin, err := a.adminProvider.AdminByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrAdminNotFound) {
			log.Warn("admin not found", sl.Err(err))

			return nil, fmt.Errorf("%s: %w", op, models.ErrInvalidCredentials)
		}
		log.Error("failed to get admin", sl.Err(err))

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := bcrypt.CompareHashAndPassword(admin.PasswordHash, []byte(password)); err != nil {
		log.Info("invalid credentials", sl.Err(err))

		return nil, fmt.Errorf("%s: %w", op, models.ErrInvalidCredentials)
	}

	session := a.sessions.Start(admin.ID.String())

	pair, err := a.tokens.GenerateTokens(ctx, admin, session.ID)
	if err != nil {
		a.sessions.End(session.ID)
		log.Error("failed to generate tokens", sl.Err(err))

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("admin logged in successfully", slog.String("session_id", session.ID))

	return pair, nil
}

// Refresh rotates a refresh token. The session it belongs to must still be
// active, and refreshing counts as activity.
func (a *Auth) Refresh(ctx context.Context, refreshToken string) (*models.TokenPair, error) {
	const op = "auth.Refresh"

	meta, err := a.tokens.Parse(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if meta.Type != models.TokenTypeRefresh {
		return nil, fmt.Errorf("%s: %w", op, models.ErrInvalidToken)
	}

	log := a.log.With(
		slog.String("op", op),
		slog.String("admin_id", meta.AdminID),
		slog.String("session_id", meta.SessionID),
	)

	if err := a.sessions.Touch(meta.SessionID); err != nil {
		log.Info("refresh refused", sl.Err(err))

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	pair, err := a.tokens.RefreshTokens(ctx, refreshToken)
	if err != nil {
		log.Warn("failed to refresh tokens", sl.Err(err))

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return pair, nil
}

// Logout ends the session and drops the admin's refresh tokens.
func (a *Auth) Logout(ctx context.Context, meta *models.TokenMeta) error {
	const op = "auth.Logout"

	a.sessions.End(meta.SessionID)

	if err := a.tokens.Revoke(ctx, meta.AdminID); err != nil {
		a.log.Error("failed to revoke tokens", slog.String("op", op), sl.Err(err))

		return fmt.Errorf("%s: %w", op, err)
	}

	a.log.Info("admin logged out", slog.String("op", op), slog.String("admin_id", meta.AdminID))

	return nil
}

func (a *Auth) RegisterAdmin(ctx context.Context, email, pass string) (uuid.UUID, error) {
	const op = "auth.RegisterAdmin"

	email = strings.ToLower(strings.TrimSpace(email))

	log := a.log.With(
		slog.String("op", op),
		slog.String("email", email),
	)

	var errs []string
	if !models.ValidEmail(email) {
		errs = append(errs, "email is invalid")
	}
	if len(pass) < minPasswordLength {
		errs = append(errs, fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}
	if len(pass) > 72 {
		errs = append(errs, "password must be 72 bytes or less")
	}
	if len(errs) > 0 {
		return uuid.Nil, fmt.Errorf("%s: %w", op, &models.ValidationError{Errors: errs})
	}

	log.Info("register admin")

	passHash, err := bcrypt.GenerateFromPassword([]byte(pass), bcrypt.DefaultCost)
	if err != nil {
		log.Error("failed to generate password hash", sl.Err(err))

		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	id, err := a.adminSaver.SaveAdmin(ctx, models.Admin{
		Email:        email,
		PasswordHash: passHash,
	})
	if err != nil {
		if errors.Is(err, storage.ErrAdminExists) {
			log.Warn("admin already exists", sl.Err(err))

			return uuid.Nil, fmt.Errorf("%s: %w", op, storage.ErrAdminExists)
		}

		log.Error("failed to save admin", sl.Err(err))

		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("admin registered", slog.String("id", id.String()))

	return id, nil
}

// EnsureAdmin registers the seed admin unless that email already exists.
func (a *Auth) EnsureAdmin(ctx context.Context, email, pass string) (bool, error) {
	_, err := a.RegisterAdmin(ctx, email, pass)
	if errors.Is(err, storage.ErrAdminExists) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
