package http

import (
	"log/slog"
	"net/http"

	"portfolio/internal/lib/logger/sl"
	"portfolio/internal/transport/http/dto"
	"portfolio/internal/transport/http/dto/response"

	"github.com/labstack/echo/v4"
)

// ListContent godoc
// @Summary Content of every section
// @Tags content
// @Produce json
// @Success 200 {object} response.Response{data=map[string]models.ContentRecord}
// @Router /api/v1/content [get]
func (r *Routers) ListContent(c echo.Context) error {
	const op = "http.routers.ListContent"

	all, err := r.ContentService.All(c.Request().Context())
	if err != nil {
		return r.fail(c, r.log.With(slog.String("op", op)), err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(all))
}

// GetContent godoc
// @Summary Content of a section
// @Description Falls back to the default content, flagged is_fallback, when nothing is stored.
// @Tags content
// @Produce json
// @Param section path string true "Section name"
// @Success 200 {object} response.Response{data=models.ContentRecord}
// @Failure 404 {object} response.ErrorResponse
// @Router /api/v1/content/{section} [get]
func (r *Routers) GetContent(c echo.Context) error {
	const op = "http.routers.GetContent"

	rec, err := r.ContentService.Get(c.Request().Context(), c.Param("section"))
	if err != nil {
		return r.fail(c, r.log.With(slog.String("op", op)), err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(rec))
}

// SaveContent godoc
// @Summary Save the content of a section
// @Description The payload must match the section variant (about, contact or generic).
// @Tags admin-content
// @Accept json
// @Produce json
// @Param section path string true "Section name"
// @Param request body dto.ContentSaveRequest true "Content payload"
// @Success 200 {object} response.Response{data=models.ContentRecord}
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/admin/content/{section} [put]
func (r *Routers) SaveContent(c echo.Context) error {
	const op = "http.routers.SaveContent"

	log := r.log.With(
		slog.String("op", op),
		slog.String("section", c.Param("section")),
	)

	var req dto.ContentSaveRequest
	if ok, err := bind(c, &req); !ok {
		return err
	}

	rec, err := r.ContentService.Save(c.Request().Context(), c.Param("section"), req.Content)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(rec))
}

// MigrateContent godoc
// @Summary Persist the default content of a section
// @Tags admin-content
// @Produce json
// @Param section path string true "Section name"
// @Success 200 {object} response.Response{data=dto.MigrateResult}
// @Failure 404 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/admin/content/{section}/migrate [post]
func (r *Routers) MigrateContent(c echo.Context) error {
	const op = "http.routers.MigrateContent"

	section := c.Param("section")

	migrated, err := r.ContentService.Migrate(c.Request().Context(), section)
	if err != nil {
		return r.fail(c, r.log.With(slog.String("op", op)), err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(dto.MigrateResult{Section: section, Migrated: migrated}))
}

// UploadContentImage godoc
// @Summary Upload the image of a section's content
// @Description Stores the file as the section's media and points the content image at it.
// @Tags admin-content
// @Accept multipart/form-data
// @Produce json
// @Param section path string true "Section name"
// @Param file formData file true "Image"
// @Success 200 {object} response.Response{data=models.ContentRecord}
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 413 {object} response.ErrorResponse
// @Failure 415 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/admin/content/{section}/image [post]
func (r *Routers) UploadContentImage(c echo.Context) error {
	const op = "http.routers.UploadContentImage"

	log := r.log.With(
		slog.String("op", op),
		slog.String("section", c.Param("section")),
	)

	file, err := c.FormFile("file")
	if err != nil {
		log.Warn("empty file in request", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", "file is required"))
	}

	rec, err := r.ContentService.UploadImage(c.Request().Context(), c.Param("section"), file)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(rec))
}
