package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"portfolio/internal/domain/models"
	"portfolio/internal/lib/logger/sl"
	"portfolio/internal/transport/http/dto"
	"portfolio/internal/transport/http/dto/response"

	"github.com/labstack/echo/v4"
)

// ListSections godoc
// @Summary List site sections
// @Tags sections
// @Produce json
// @Success 200 {object} response.Response{data=[]models.Section}
// @Router /api/v1/sections [get]
func (r *Routers) ListSections(c echo.Context) error {
	return c.JSON(http.StatusOK, response.SuccessResponse(models.Sections()))
}

// SectionMedia godoc
// @Summary Media of a section
// @Description Stored items in display order, or catalog items flagged is_fallback when the section has none.
// @Tags sections
// @Produce json
// @Param section path string true "Section name"
// @Param kind query string false "Media type" Enums(image, video)
// @Success 200 {object} response.Response{data=dto.SectionMediaResponse}
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /api/v1/sections/{section}/media [get]
func (r *Routers) SectionMedia(c echo.Context) error {
	const op = "http.routers.SectionMedia"

	log := r.log.With(slog.String("op", op))

	section := c.Param("section")
	kind := models.MediaKind(c.QueryParam("kind"))

	items, err := r.MediaService.Resolve(c.Request().Context(), section, kind)
	if err != nil {
		return r.fail(c, log, err)
	}

	if kind == "" {
		if sec, ok := models.LookupSection(section); ok {
			kind = sec.Kind
		}
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(dto.SectionMediaResponse{
		Section:    section,
		Kind:       kind,
		IsFallback: len(items) > 0 && items[0].IsFallback,
		Items:      items,
	}))
}

// SectionCarousels godoc
// @Summary Carousels of a section
// @Tags sections
// @Produce json
// @Param section path string true "Section name"
// @Success 200 {object} response.Response{data=[]models.CarouselGroup}
// @Failure 404 {object} response.ErrorResponse
// @Router /api/v1/sections/{section}/carousels [get]
func (r *Routers) SectionCarousels(c echo.Context) error {
	const op = "http.routers.SectionCarousels"

	groups, err := r.MediaService.Carousels(c.Request().Context(), c.Param("section"))
	if err != nil {
		return r.fail(c, r.log.With(slog.String("op", op)), err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(groups))
}

// SectionPairs godoc
// @Summary Before/after pairs of a section
// @Tags sections
// @Produce json
// @Param section path string true "Section name"
// @Success 200 {object} response.Response{data=[]models.BeforeAfterPair}
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /api/v1/sections/{section}/pairs [get]
func (r *Routers) SectionPairs(c echo.Context) error {
	const op = "http.routers.SectionPairs"

	pairs, err := r.MediaService.Pairs(c.Request().Context(), c.Param("section"))
	if err != nil {
		return r.fail(c, r.log.With(slog.String("op", op)), err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(pairs))
}

// UploadMedia godoc
// @Summary Upload a media file
// @Description Appends the file to the section unless display_order is given.
// @Tags admin-media
// @Accept multipart/form-data
// @Produce json
// @Param section path string true "Section name"
// @Param file formData file true "Image or video"
// @Param display_order formData integer false "Display order"
// @Param group_key formData string false "Carousel the item belongs to"
// @Success 201 {object} response.Response{data=models.MediaItem}
// @Failure 400 {object} response.ErrorResponse
// @Failure 413 {object} response.ErrorResponse
// @Failure 415 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/admin/media/{section} [post]
func (r *Routers) UploadMedia(c echo.Context) error {
	const op = "http.routers.UploadMedia"

	log := r.log.With(
		slog.String("op", op),
		slog.String("section", c.Param("section")),
	)

	file, err := c.FormFile("file")
	if err != nil {
		log.Warn("empty file in request", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", "file is required"))
	}

	input := dto.MediaUploadInput{
		Section:  c.Param("section"),
		File:     file,
		GroupKey: c.FormValue("group_key"),
	}
	if raw := c.FormValue("display_order"); raw != "" {
		order, err := strconv.Atoi(raw)
		if err != nil || order < 0 {
			return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", "display_order must be a non-negative integer"))
		}
		input.DisplayOrder = &order
	}

	log.Debug("got file for upload",
		slog.String("filename", file.Filename),
		slog.Int64("size", file.Size),
		slog.String("mime_type", file.Header.Get("Content-Type")),
	)

	item, err := r.MediaService.Upload(c.Request().Context(), input)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusCreated, response.SuccessResponse(item))
}

// UploadPair godoc
// @Summary Upload a before/after pair
// @Tags admin-media
// @Accept multipart/form-data
// @Produce json
// @Param section path string true "Section name"
// @Param title formData string true "Pair title"
// @Param before formData file true "Before image"
// @Param after formData file true "After image"
// @Success 201 {object} response.Response{data=models.BeforeAfterPair}
// @Failure 400 {object} response.ErrorResponse
// @Failure 415 {object} response.ErrorResponse
// @Failure 500 {object} response.BatchErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/admin/media/{section}/pairs [post]
func (r *Routers) UploadPair(c echo.Context) error {
	const op = "http.routers.UploadPair"

	log := r.log.With(slog.String("op", op))

	before, err := c.FormFile("before")
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", "before file is required"))
	}
	after, err := c.FormFile("after")
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", "after file is required"))
	}

	pair, err := r.MediaService.UploadPair(c.Request().Context(), dto.PairUploadInput{
		Section: c.Param("section"),
		Title:   c.FormValue("title"),
		Before:  before,
		After:   after,
	})
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusCreated, response.SuccessResponse(pair))
}

// ReplaceMedia godoc
// @Summary Replace the file of a stored item
// @Tags admin-media
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Media id"
// @Param file formData file true "New file"
// @Success 200 {object} response.Response{data=models.MediaItem}
// @Failure 404 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse
// @Failure 415 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/admin/media/item/{id} [put]
func (r *Routers) ReplaceMedia(c echo.Context) error {
	const op = "http.routers.ReplaceMedia"

	log := r.log.With(slog.String("op", op), slog.String("id", c.Param("id")))

	file, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", "file is required"))
	}

	item, err := r.MediaService.Replace(c.Request().Context(), c.Param("id"), file)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(item))
}

// DeleteMedia godoc
// @Summary Delete a stored item
// @Description Deleting an item that does not exist succeeds.
// @Tags admin-media
// @Produce json
// @Param id path string true "Media id"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/admin/media/item/{id} [delete]
func (r *Routers) DeleteMedia(c echo.Context) error {
	const op = "http.routers.DeleteMedia"

	if err := r.MediaService.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return r.fail(c, r.log.With(slog.String("op", op)), err)
	}

	return c.JSON(http.StatusOK, response.MessageResponse("deleted"))
}

// DeleteManyMedia godoc
// @Summary Delete several stored items
// @Tags admin-media
// @Accept json
// @Produce json
// @Param request body dto.DeleteManyRequest true "Ids"
// @Success 200 {object} response.Response{data=dto.DeleteManyResult}
// @Failure 400 {object} response.ErrorResponse
// @Failure 500 {object} response.BatchErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/admin/media/delete [post]
func (r *Routers) DeleteManyMedia(c echo.Context) error {
	const op = "http.routers.DeleteManyMedia"

	var req dto.DeleteManyRequest
	if ok, err := bind(c, &req); !ok {
		return err
	}

	res, err := r.MediaService.DeleteMany(c.Request().Context(), req.IDs)
	if err != nil {
		return r.fail(c, r.log.With(slog.String("op", op)), err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(res))
}

// ReorderMedia godoc
// @Summary Set display orders
// @Description Fallback ids are skipped. Updates are applied one by one and a partial failure reports the applied count.
// @Tags admin-media
// @Accept json
// @Produce json
// @Param section path string true "Section name"
// @Param request body dto.ReorderRequest true "Order updates"
// @Success 200 {object} response.Response{data=object{applied=int}}
// @Failure 400 {object} response.ErrorResponse
// @Failure 500 {object} response.BatchErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/admin/media/{section}/order [put]
func (r *Routers) ReorderMedia(c echo.Context) error {
	const op = "http.routers.ReorderMedia"

	var req dto.ReorderRequest
	if ok, err := bind(c, &req); !ok {
		return err
	}

	applied, err := r.MediaService.Reorder(c.Request().Context(), req.Updates)
	if err != nil {
		return r.fail(c, r.log.With(slog.String("op", op)), err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(map[string]int{"applied": applied}))
}

// MoveMedia godoc
// @Summary Rewrite the display sequence of a section
// @Description One id list per carousel for carousel sections, a single list otherwise.
// @Tags admin-media
// @Accept json
// @Produce json
// @Param section path string true "Section name"
// @Param request body dto.MoveRequest true "Id sequence"
// @Success 200 {object} response.Response{data=object{applied=int}}
// @Failure 400 {object} response.ErrorResponse
// @Failure 500 {object} response.BatchErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/admin/media/{section}/sequence [put]
func (r *Routers) MoveMedia(c echo.Context) error {
	const op = "http.routers.MoveMedia"

	var req dto.MoveRequest
	if ok, err := bind(c, &req); !ok {
		return err
	}

	applied, err := r.MediaService.Move(c.Request().Context(), c.Param("section"), req.Groups)
	if err != nil {
		return r.fail(c, r.log.With(slog.String("op", op)), err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(map[string]int{"applied": applied}))
}

// MigrateMedia godoc
// @Summary Persist the catalog items of a section
// @Description Does nothing when the section already holds every catalog URL.
// @Tags admin-media
// @Produce json
// @Param section path string true "Section name"
// @Success 200 {object} response.Response{data=dto.MigrateResult}
// @Failure 404 {object} response.ErrorResponse
// @Failure 500 {object} response.BatchErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/admin/media/{section}/migrate [post]
func (r *Routers) MigrateMedia(c echo.Context) error {
	const op = "http.routers.MigrateMedia"

	section := c.Param("section")

	migrated, err := r.MediaService.Migrate(c.Request().Context(), section)
	if err != nil {
		return r.fail(c, r.log.With(slog.String("op", op)), err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(dto.MigrateResult{Section: section, Migrated: migrated}))
}

// MigrateAllMedia godoc
// @Summary Persist the catalog items of every section
// @Tags admin-media
// @Produce json
// @Success 200 {object} response.Response{data=map[string]bool}
// @Failure 500 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/admin/media/migrate [post]
func (r *Routers) MigrateAllMedia(c echo.Context) error {
	const op = "http.routers.MigrateAllMedia"

	res, err := r.MediaService.MigrateAll(c.Request().Context())
	if err != nil {
		return r.fail(c, r.log.With(slog.String("op", op)), err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(res))
}
