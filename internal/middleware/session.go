package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"portfolio/internal/domain/models"
	"portfolio/internal/lib/logger/sl"
	"portfolio/internal/transport/http/dto/response"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const (
	// ContextTokenKey is where echo-jwt stores the parsed token.
	ContextTokenKey = "user"
	// ContextAdminKey holds the *models.TokenMeta of an authenticated request.
	ContextAdminKey = "admin"
)

// TokenParser turns verified access token claims into metadata.
type TokenParser interface {
	MetaFromClaims(claims jwt.MapClaims) (*models.TokenMeta, error)
}

// SessionToucher extends a live admin session.
type SessionToucher interface {
	Touch(sessionID string) error
}

// AdminSession runs after echo-jwt. It accepts only access tokens whose
// session is still active, and extends that session.
func AdminSession(log *slog.Logger, tokens TokenParser, sessions SessionToucher) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get(ContextTokenKey).(*jwt.Token)
			if !ok {
				return c.JSON(http.StatusUnauthorized, response.ErrorResponseWithDetails("unauthorized", "missing token"))
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				return c.JSON(http.StatusUnauthorized, response.ErrorResponseWithDetails("unauthorized", "invalid claims"))
			}

			meta, err := tokens.MetaFromClaims(claims)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, response.ErrorResponseWithDetails("unauthorized", err.Error()))
			}
			if meta.Type != models.TokenTypeAccess {
				return c.JSON(http.StatusUnauthorized, response.ErrorResponseWithDetails("unauthorized", "access token required"))
			}

			if err := sessions.Touch(meta.SessionID); err != nil {
				log.Info("admin session rejected",
					slog.String("admin_id", meta.AdminID),
					sl.Err(err),
				)
				msg := "session expired"
				if !errors.Is(err, models.ErrSessionExpired) {
					msg = "session not found"
				}
				return c.JSON(http.StatusUnauthorized, response.ErrorResponseWithDetails("unauthorized", msg))
			}

			c.Set(ContextAdminKey, meta)
			return next(c)
		}
	}
}
