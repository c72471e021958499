package http

import (
	"log/slog"
	"net/http"

	"portfolio/internal/transport/http/dto"
	"portfolio/internal/transport/http/dto/response"

	"github.com/labstack/echo/v4"
)

// SubmitContact godoc
// @Summary Leave a message
// @Tags contact
// @Accept json
// @Produce json
// @Param request body dto.ContactSubmitRequest true "Message"
// @Success 201 {object} response.Response{data=models.ContactMessage}
// @Failure 400 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /api/v1/contact [post]
func (r *Routers) SubmitContact(c echo.Context) error {
	const op = "http.routers.SubmitContact"

	log := r.log.With(slog.String("op", op))

	var req dto.ContactSubmitRequest
	if ok, err := bind(c, &req); !ok {
		log.Warn("invalid contact request", slog.String("remote_ip", c.RealIP()))
		return err
	}

	msg, err := r.ContactService.Submit(c.Request().Context(), req.Name, req.Email, req.Message)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusCreated, response.SuccessResponse(msg))
}

// ListMessages godoc
// @Summary Inbox, newest first
// @Tags admin-messages
// @Produce json
// @Success 200 {object} response.Response{data=[]models.ContactMessage}
// @Security ApiKeyAuth
// @Router /api/v1/admin/messages [get]
func (r *Routers) ListMessages(c echo.Context) error {
	const op = "http.routers.ListMessages"

	msgs, err := r.ContactService.List(c.Request().Context())
	if err != nil {
		return r.fail(c, r.log.With(slog.String("op", op)), err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(msgs))
}

// UnreadMessages godoc
// @Summary Number of unread messages
// @Tags admin-messages
// @Produce json
// @Success 200 {object} response.Response{data=dto.UnreadCountResponse}
// @Security ApiKeyAuth
// @Router /api/v1/admin/messages/unread [get]
func (r *Routers) UnreadMessages(c echo.Context) error {
	const op = "http.routers.UnreadMessages"

	n, err := r.ContactService.UnreadCount(c.Request().Context())
	if err != nil {
		return r.fail(c, r.log.With(slog.String("op", op)), err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(dto.UnreadCountResponse{Unread: n}))
}

// MarkMessageRead godoc
// @Summary Mark a message as read
// @Tags admin-messages
// @Produce json
// @Param id path string true "Message id"
// @Success 200 {object} response.Response
// @Security ApiKeyAuth
// @Router /api/v1/admin/messages/{id}/read [patch]
func (r *Routers) MarkMessageRead(c echo.Context) error {
	const op = "http.routers.MarkMessageRead"

	if err := r.ContactService.MarkRead(c.Request().Context(), c.Param("id")); err != nil {
		return r.fail(c, r.log.With(slog.String("op", op)), err)
	}

	return c.JSON(http.StatusOK, response.MessageResponse("marked as read"))
}

// DeleteMessage godoc
// @Summary Delete a message
// @Tags admin-messages
// @Produce json
// @Param id path string true "Message id"
// @Success 200 {object} response.Response
// @Security ApiKeyAuth
// @Router /api/v1/admin/messages/{id} [delete]
func (r *Routers) DeleteMessage(c echo.Context) error {
	const op = "http.routers.DeleteMessage"

	if err := r.ContactService.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return r.fail(c, r.log.With(slog.String("op", op)), err)
	}

	return c.JSON(http.StatusOK, response.MessageResponse("deleted"))
}
