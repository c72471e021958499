package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"

	"portfolio/internal/domain/models"
	"portfolio/internal/lib/logger/sl"
	"portfolio/internal/storage"
	"portfolio/internal/transport/http/dto"
	"portfolio/internal/transport/http/dto/response"

	"github.com/labstack/echo/v4"

	_ "portfolio/docs"
)

type MediaService interface {
	Resolve(ctx context.Context, section string, kind models.MediaKind) ([]models.MediaItem, error)
	Carousels(ctx context.Context, section string) ([]models.CarouselGroup, error)
	Pairs(ctx context.Context, section string) ([]models.BeforeAfterPair, error)
	Upload(ctx context.Context, input dto.MediaUploadInput) (models.MediaItem, error)
	UploadPair(ctx context.Context, input dto.PairUploadInput) (models.BeforeAfterPair, error)
	Replace(ctx context.Context, id string, file *multipart.FileHeader) (models.MediaItem, error)
	Delete(ctx context.Context, id string) error
	DeleteMany(ctx context.Context, ids []string) (dto.DeleteManyResult, error)
	Reorder(ctx context.Context, updates []models.OrderUpdate) (int, error)
	Move(ctx context.Context, section string, groups [][]string) (int, error)
	Migrate(ctx context.Context, section string) (bool, error)
	MigrateAll(ctx context.Context) (map[string]bool, error)
}

type ContentService interface {
	Get(ctx context.Context, section string) (models.ContentRecord, error)
	Save(ctx context.Context, section string, raw json.RawMessage) (models.ContentRecord, error)
	All(ctx context.Context) (map[string]models.ContentRecord, error)
	Migrate(ctx context.Context, section string) (bool, error)
	UploadImage(ctx context.Context, section string, file *multipart.FileHeader) (models.ContentRecord, error)
}

type ContactService interface {
	Submit(ctx context.Context, name, email, message string) (models.ContactMessage, error)
	List(ctx context.Context) ([]models.ContactMessage, error)
	UnreadCount(ctx context.Context) (int, error)
	MarkRead(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type AuthService interface {
	Login(ctx context.Context, email, password string) (*models.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*models.TokenPair, error)
	Logout(ctx context.Context, meta *models.TokenMeta) error
}

// HealthChecker is a dependency reported by /health.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

type Routers struct {
	log            *slog.Logger
	MediaService   MediaService
	ContentService ContentService
	ContactService ContactService
	AuthService    AuthService
	checks         map[string]HealthChecker
}

func NewRouter(log *slog.Logger, mediaService MediaService, contentService ContentService, contactService ContactService, authService AuthService) *Routers {
	return &Routers{
		log:            log,
		MediaService:   mediaService,
		ContentService: contentService,
		ContactService: contactService,
		AuthService:    authService,
		checks:         make(map[string]HealthChecker),
	}
}

// WithHealthCheck registers a dependency probed by Health.
func (r *Routers) WithHealthCheck(name string, hc HealthChecker) *Routers {
	r.checks[name] = hc
	return r
}

// Health godoc
// @Summary Service health
// @Description Probes every registered dependency.
// @Tags ops
// @Produce json
// @Success 200 {object} response.Response
// @Failure 503 {object} response.ErrorResponse
// @Router /health [get]
func (r *Routers) Health(c echo.Context) error {
	ctx := c.Request().Context()

	for name, hc := range r.checks {
		if err := hc.HealthCheck(ctx); err != nil {
			r.log.Warn("health check failed", slog.String("dependency", name), sl.Err(err))
			return c.JSON(http.StatusServiceUnavailable, response.ErrorResponseWithDetails("unhealthy", name+": "+err.Error()))
		}
	}

	return c.JSON(http.StatusOK, response.MessageResponse("ok"))
}

// fail maps a service error onto the error envelope.
func (r *Routers) fail(c echo.Context, log *slog.Logger, err error) error {
	var (
		ve    *models.ValidationError
		batch *models.BatchError
	)

	switch {
	case errors.As(err, &ve):
		return c.JSON(http.StatusBadRequest, response.ValidationErrorResponse(ve.Errors))
	case errors.As(err, &batch):
		log.Error("batch partially failed", slog.Int("succeeded", batch.Succeeded), slog.Int("total", batch.Total), sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.BatchErrorResponse{
			ErrorResponse: response.ErrorResponseWithDetails("batch_failed", batch.Err.Error()),
			Succeeded:     batch.Succeeded,
			Total:         batch.Total,
		})
	case errors.Is(err, models.ErrUnknownSection):
		resp := response.ErrUnknownSection
		resp.Details = c.Param("section")
		return c.JSON(http.StatusNotFound, resp)
	case errors.Is(err, models.ErrInvalidFileType):
		return c.JSON(http.StatusUnsupportedMediaType, response.ErrorResponseWithDetails("unsupported_media_type", err.Error()))
	case errors.Is(err, storage.ErrFileTooLarge):
		return c.JSON(http.StatusRequestEntityTooLarge, response.ErrorResponseWithDetails("file_too_large", storage.ErrFileTooLarge.Error()))
	case errors.Is(err, models.ErrEmptyFile), errors.Is(err, models.ErrWrongGrouping):
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
	case errors.Is(err, models.ErrFallbackItem):
		return c.JSON(http.StatusConflict, response.ErrorResponseWithDetails("fallback_item", models.ErrFallbackItem.Error()))
	case errors.Is(err, storage.ErrMediaNotFound):
		return c.JSON(http.StatusNotFound, response.ErrorResponseWithDetails("not_found", storage.ErrMediaNotFound.Error()))
	case errors.Is(err, models.ErrInvalidCredentials):
		return c.JSON(http.StatusUnauthorized, response.ErrAuthenticationFailed)
	case errors.Is(err, models.ErrInvalidToken),
		errors.Is(err, models.ErrSessionExpired),
		errors.Is(err, models.ErrSessionNotFound):
		return c.JSON(http.StatusUnauthorized, response.ErrorResponseWithDetails("unauthorized", err.Error()))
	default:
		log.Error("request failed", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}
}

// bind decodes and validates a JSON body, answering 400 itself on failure.
func bind(c echo.Context, req any) (bool, error) {
	if err := c.Bind(req); err != nil {
		return false, c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}
	if err := c.Validate(req); err != nil {
		resp := response.ErrInvalidRequestFormat
		resp.Details = err.Error()
		return false, c.JSON(http.StatusBadRequest, resp)
	}
	return true, nil
}
