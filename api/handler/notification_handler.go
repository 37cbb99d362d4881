package handler

import (
	"errors"
	"net/http"

	"mindlift/api/middleware"
	"mindlift/internal/dto"
	"mindlift/internal/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type NotificationHandler struct {
	Service *service.NotificationService
}

func NewNotificationHandler(svc *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{Service: svc}
}

func (h *NotificationHandler) List(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, errors.New("unauthorized"))
	}

	limit, offset := parseLimitOffset(c)
	notifications, err := h.Service.ListForUser(c.Request().Context(), userID, limit, offset)
	if err != nil {
		return writeServiceError(c, err)
	}
	unread, err := h.Service.UnreadCount(c.Request().Context(), userID)
	if err != nil {
		return writeServiceError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"notifications": dto.NotificationResponsesFromEntities(notifications),
		"unread_count":  unread,
	})
}

func (h *NotificationHandler) MarkRead(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, errors.New("unauthorized"))
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return writeError(c, http.StatusBadRequest, errors.New("invalid notification id"))
	}

	if err := h.Service.MarkRead(c.Request().Context(), id, userID); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *NotificationHandler) MarkAllRead(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, errors.New("unauthorized"))
	}
	if err := h.Service.MarkAllRead(c.Request().Context(), userID); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
