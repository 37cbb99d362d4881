package handler

import (
	"errors"
	"net/http"

	"mindlift/api/middleware"
	"mindlift/internal/dto"
	"mindlift/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type SpeakerHandler struct {
	Service  *service.SpeakerService
	Videos   *service.VideoService
	Validate *validator.Validate
}

func NewSpeakerHandler(svc *service.SpeakerService, videos *service.VideoService, validate *validator.Validate) *SpeakerHandler {
	return &SpeakerHandler{Service: svc, Videos: videos, Validate: validate}
}

// Dashboard lazily creates the speaker profile on first visit.
func (h *SpeakerHandler) Dashboard(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, errors.New("unauthorized"))
	}

	speaker, stats, recent, err := h.Service.Dashboard(c.Request().Context(), userID)
	if err != nil {
		return writeServiceError(c, err)
	}

	recentResponses := make([]dto.VideoResponse, 0, len(recent))
	for i := range recent {
		playback := h.Videos.PlaybackURL(c.Request().Context(), &recent[i])
		recentResponses = append(recentResponses, dto.VideoResponseFromEntity(&recent[i], playback))
	}

	return c.JSON(http.StatusOK, dto.SpeakerDashboardResponse{
		Profile:      dto.SpeakerResponseFromEntity(speaker, h.Service.CompletionPercent(speaker)),
		Stats:        stats,
		RecentVideos: recentResponses,
	})
}

func (h *SpeakerHandler) GetProfile(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, errors.New("unauthorized"))
	}
	speaker, err := h.Service.Ensure(c.Request().Context(), userID)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.SpeakerResponseFromEntity(speaker, h.Service.CompletionPercent(speaker)))
}

func (h *SpeakerHandler) UpdateProfile(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, errors.New("unauthorized"))
	}

	var req dto.UpdateSpeakerProfileRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.validate(req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}

	speaker, err := h.Service.UpdateProfile(c.Request().Context(), userID, req)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.SpeakerResponseFromEntity(speaker, h.Service.CompletionPercent(speaker)))
}

func (h *SpeakerHandler) SubmitForReview(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, errors.New("unauthorized"))
	}

	speaker, err := h.Service.SubmitForReview(c.Request().Context(), userID)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.SpeakerResponseFromEntity(speaker, h.Service.CompletionPercent(speaker)))
}

func (h *SpeakerHandler) validate(payload any) error {
	if h.Validate == nil {
		return nil
	}
	return h.Validate.Struct(payload)
}
