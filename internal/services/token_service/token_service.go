package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"portfolio/internal/domain/models"
	"portfolio/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidTokenClaims = fmt.Errorf("%w: invalid token claims", models.ErrInvalidToken)
	ErrTokenExpired       = fmt.Errorf("%w: token expired", models.ErrInvalidToken)
	ErrTokenNotInStorage  = fmt.Errorf("%w: token not found in storage", models.ErrInvalidToken)
	ErrWrongTokenType     = fmt.Errorf("%w: wrong token type", models.ErrInvalidToken)
)

const (
	AccessTokenExpire  = 15 * time.Minute
	RefreshTokenExpire = 7 * 24 * time.Hour
)

type Config struct {
	Secret     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// TokenService issues HS256 access/refresh pairs bound to an admin session.
// Refresh tokens are kept in the token repository until used or revoked.
type TokenService struct {
	repo       repository.TokenRepository
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

func NewTokenService(repo repository.TokenRepository, cfg Config) *TokenService {
	if cfg.AccessTTL <= 0 {
		cfg.AccessTTL = AccessTokenExpire
	}
	if cfg.RefreshTTL <= 0 {
		cfg.RefreshTTL = RefreshTokenExpire
	}

	return &TokenService{
		repo:       repo,
		secret:     []byte(cfg.Secret),
		accessTTL:  cfg.AccessTTL,
		refreshTTL: cfg.RefreshTTL,
		now:        time.Now,
	}
}

func (s *TokenService) GenerateTokens(ctx context.Context, admin models.Admin, sessionID string) (*models.TokenPair, error) {
	const op = "token_service.GenerateTokens"

	accessToken, err := s.newToken(admin, sessionID, models.TokenTypeAccess, s.accessTTL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	refreshToken, err := s.newToken(admin, sessionID, models.TokenTypeRefresh, s.refreshTTL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.repo.SaveRefreshToken(ctx, admin.ID.String(), refreshToken, s.refreshTTL); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &models.TokenPair{
		AdminID:      admin.ID,
		SessionID:    sessionID,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Parse verifies a token's signature and expiry and returns its metadata.
func (s *TokenService) Parse(tokenString string) (*models.TokenMeta, error) {
	token, err := jwt.Parse(tokenString, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidTokenClaims
	}

	return s.MetaFromClaims(claims)
}

// MetaFromClaims reads the claims of an already verified token.
func (s *TokenService) MetaFromClaims(claims jwt.MapClaims) (*models.TokenMeta, error) {
	adminID, _ := claims["uid"].(string)
	sessionID, _ := claims["sid"].(string)
	typ, _ := claims["typ"].(string)
	if adminID == "" || sessionID == "" || typ == "" {
		return nil, ErrInvalidTokenClaims
	}
	if _, err := uuid.Parse(adminID); err != nil {
		return nil, ErrInvalidTokenClaims
	}

	email, _ := claims["email"].(string)

	return &models.TokenMeta{
		AdminID:   adminID,
		Email:     email,
		SessionID: sessionID,
		Type:      typ,
		IssuedAt:  numericClaim(claims["iat"]),
		ExpiresAt: numericClaim(claims["exp"]),
	}, nil
}

// RefreshTokens exchanges a stored refresh token for a new pair in the same
// session. The used token is removed.
func (s *TokenService) RefreshTokens(ctx context.Context, refreshToken string) (*models.TokenPair, error) {
	const op = "token_service.RefreshTokens"

	meta, err := s.Parse(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if meta.Type != models.TokenTypeRefresh {
		return nil, fmt.Errorf("%s: %w", op, ErrWrongTokenType)
	}

	exists, err := s.repo.GetRefreshToken(ctx, meta.AdminID, refreshToken)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !exists {
		return nil, fmt.Errorf("%s: %w", op, ErrTokenNotInStorage)
	}

	if err := s.repo.DeleteRefreshToken(ctx, meta.AdminID, refreshToken); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	admin := models.Admin{
		ID:    uuid.MustParse(meta.AdminID),
		Email: meta.Email,
	}

	return s.GenerateTokens(ctx, admin, meta.SessionID)
}

// Revoke drops every refresh token of an admin.
func (s *TokenService) Revoke(ctx context.Context, adminID string) error {
	const op = "token_service.Revoke"

	if err := s.repo.DeleteAllAdminTokens(ctx, adminID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *TokenService) newToken(admin models.Admin, sessionID, typ string, duration time.Duration) (string, error) {
	now := s.now()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"uid":   admin.ID.String(),
		"email": admin.Email,
		"sid":   sessionID,
		"typ":   typ,
		"jti":   uuid.NewString(),
		"iat":   now.Unix(),
		"exp":   now.Add(duration).Unix(),
	})

	return token.SignedString(s.secret)
}

func numericClaim(v any) int64 {
	switch n := v.(type) {
	case float64:
		return int64(n)
	case int64:
		return n
	case int:
		return int64(n)
	default:
		return 0
	}
}
