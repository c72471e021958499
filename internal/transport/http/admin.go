package http

import (
	"log/slog"
	"net/http"

	"portfolio/internal/domain/models"
	"portfolio/internal/lib/logger/sl"
	"portfolio/internal/middleware"
	"portfolio/internal/transport/http/dto/request"
	"portfolio/internal/transport/http/dto/response"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
)

const (
	sessionName    = "admin_session"
	sessionRefresh = "refresh_token"
	sessionIDKey   = "session_id"
	sessionMaxAge  = 7 * 24 * 60 * 60
)

// Login godoc
// @Summary Admin login
// @Description Returns an access/refresh pair and starts an admin session. The refresh token is also kept in an http-only cookie.
// @Tags admin
// @Accept json
// @Produce json
// @Param request body request.LoginRequest true "Credentials"
// @Success 200 {object} response.Response{data=models.TokenPair}
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Router /api/v1/admin/login [post]
func (r *Routers) Login(c echo.Context) error {
	const op = "http.routers.Login"

	log := r.log.With(slog.String("op", op))

	var req request.LoginRequest
	if ok, err := bind(c, &req); !ok {
		log.Warn("invalid format request", slog.String("email", req.Email))
		return err
	}

	pair, err := r.AuthService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return r.fail(c, log, err)
	}

	r.storeSession(c, log, pair)

	return c.JSON(http.StatusOK, response.SuccessResponse(pair))
}

// Refresh godoc
// @Summary Rotate tokens
// @Description Takes the refresh token from the body, or from the session cookie when the body has none.
// @Tags admin
// @Accept json
// @Produce json
// @Param request body request.RefreshRequest false "Refresh token"
// @Success 200 {object} response.Response{data=models.TokenPair}
// @Failure 401 {object} response.ErrorResponse
// @Router /api/v1/admin/refresh [post]
func (r *Routers) Refresh(c echo.Context) error {
	const op = "http.routers.Refresh"

	log := r.log.With(slog.String("op", op))

	var req request.RefreshRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	token := req.RefreshToken
	if token == "" {
		if sess, err := session.Get(sessionName, c); err == nil {
			token, _ = sess.Values[sessionRefresh].(string)
		}
	}
	if token == "" {
		return c.JSON(http.StatusUnauthorized, response.ErrorResponseWithDetails("unauthorized", "refresh token required"))
	}

	pair, err := r.AuthService.Refresh(c.Request().Context(), token)
	if err != nil {
		log.Info("refresh refused", sl.Err(err))
		return r.fail(c, log, err)
	}

	r.storeSession(c, log, pair)

	return c.JSON(http.StatusOK, response.SuccessResponse(pair))
}

// Logout godoc
// @Summary Admin logout
// @Description Ends the session and revokes the refresh tokens of the admin.
// @Tags admin
// @Produce json
// @Success 200 {object} response.Response
// @Failure 401 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/admin/logout [post]
func (r *Routers) Logout(c echo.Context) error {
	const op = "http.routers.Logout"

	log := r.log.With(slog.String("op", op))

	meta, ok := c.Get(middleware.ContextAdminKey).(*models.TokenMeta)
	if !ok {
		return c.JSON(http.StatusUnauthorized, response.ErrorResponseWithDetails("unauthorized", "no admin session"))
	}

	if err := r.AuthService.Logout(c.Request().Context(), meta); err != nil {
		return r.fail(c, log, err)
	}

	if sess, err := session.Get(sessionName, c); err == nil {
		sess.Options = &sessions.Options{Path: "/", MaxAge: -1, HttpOnly: true}
		if err := sess.Save(c.Request(), c.Response()); err != nil {
			log.Warn("failed to clear session cookie", sl.Err(err))
		}
	}

	return c.JSON(http.StatusOK, response.MessageResponse("logged out"))
}

// storeSession keeps the refresh token in the cookie session. Requests
// without the session middleware simply skip it.
func (r *Routers) storeSession(c echo.Context, log *slog.Logger, pair *models.TokenPair) {
	sess, err := session.Get(sessionName, c)
	if err != nil {
		log.Debug("cookie session unavailable", sl.Err(err))
		return
	}

	sess.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   sessionMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	}
	sess.Values[sessionRefresh] = pair.RefreshToken
	sess.Values[sessionIDKey] = pair.SessionID

	if err := sess.Save(c.Request(), c.Response()); err != nil {
		log.Warn("failed to save session cookie", sl.Err(err))
	}
}
