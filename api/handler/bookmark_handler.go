package handler

import (
	"errors"
	"net/http"

	"mindlift/api/middleware"
	"mindlift/internal/dto"
	"mindlift/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type BookmarkHandler struct {
	Service  *service.BookmarkService
	Videos   *service.VideoService
	Validate *validator.Validate
}

func NewBookmarkHandler(svc *service.BookmarkService, videos *service.VideoService, validate *validator.Validate) *BookmarkHandler {
	return &BookmarkHandler{Service: svc, Videos: videos, Validate: validate}
}

func (h *BookmarkHandler) List(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, errors.New("unauthorized"))
	}

	bookmarks, err := h.Service.List(c.Request().Context(), userID)
	if err != nil {
		return writeServiceError(c, err)
	}

	responses := make([]dto.BookmarkResponse, 0, len(bookmarks))
	for i := range bookmarks {
		playback := h.Videos.PlaybackURL(c.Request().Context(), &bookmarks[i].Video)
		responses = append(responses, dto.BookmarkResponse{
			VideoID:   bookmarks[i].VideoID.String(),
			Video:     dto.VideoResponseFromEntity(&bookmarks[i].Video, playback),
			CreatedAt: bookmarks[i].CreatedAt,
		})
	}
	return c.JSON(http.StatusOK, responses)
}

func (h *BookmarkHandler) Create(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, errors.New("unauthorized"))
	}

	var req dto.CreateBookmarkRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.validate(req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	videoID, err := uuid.Parse(req.VideoID)
	if err != nil {
		return writeError(c, http.StatusBadRequest, errors.New("invalid video id"))
	}

	if err := h.Service.Add(c.Request().Context(), userID, videoID); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusCreated)
}

func (h *BookmarkHandler) Delete(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, errors.New("unauthorized"))
	}
	videoID, err := uuid.Parse(c.Param("videoID"))
	if err != nil {
		return writeError(c, http.StatusBadRequest, errors.New("invalid video id"))
	}

	if err := h.Service.Remove(c.Request().Context(), userID, videoID); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *BookmarkHandler) validate(payload any) error {
	if h.Validate == nil {
		return nil
	}
	return h.Validate.Struct(payload)
}
