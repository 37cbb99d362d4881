package handler

import (
	"errors"
	"net/http"

	"mindlift/internal/dto"
	"mindlift/internal/entity"
	"mindlift/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// AdminHandler serves the moderation surface. Routing gates every
// route here behind the admin role.
type AdminHandler struct {
	Admin    *service.AdminService
	Speakers *service.SpeakerService
	Videos   *service.VideoService
	Validate *validator.Validate
}

func NewAdminHandler(
	admin *service.AdminService,
	speakers *service.SpeakerService,
	videos *service.VideoService,
	validate *validator.Validate,
) *AdminHandler {
	return &AdminHandler{Admin: admin, Speakers: speakers, Videos: videos, Validate: validate}
}

func (h *AdminHandler) Stats(c echo.Context) error {
	stats, err := h.Admin.Stats(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}

func (h *AdminHandler) ListUsers(c echo.Context) error {
	limit, offset := parseLimitOffset(c)
	users, err := h.Admin.ListUsers(c.Request().Context(), limit, offset)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.UserResponsesFromEntities(users))
}

func (h *AdminHandler) DeleteUser(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return writeError(c, http.StatusBadRequest, errors.New("invalid user id"))
	}
	if err := h.Admin.DeleteUser(c.Request().Context(), id); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *AdminHandler) ListPendingSpeakers(c echo.Context) error {
	limit, offset := parseLimitOffset(c)
	speakers, err := h.Speakers.ListByStatus(c.Request().Context(), entity.ApprovalPending, limit, offset)
	if err != nil {
		return writeServiceError(c, err)
	}

	responses := make([]dto.SpeakerResponse, 0, len(speakers))
	for i := range speakers {
		responses = append(responses, dto.SpeakerResponseFromEntity(&speakers[i], h.Speakers.CompletionPercent(&speakers[i])))
	}
	return c.JSON(http.StatusOK, responses)
}

func (h *AdminHandler) ApproveSpeaker(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return writeError(c, http.StatusBadRequest, errors.New("invalid speaker id"))
	}

	var req dto.SpeakerApproveRequest
	_ = decodeJSON(c, &req) // body is optional

	speaker, err := h.Speakers.Approve(c.Request().Context(), id, req.AdminNotes)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.SpeakerResponseFromEntity(speaker, h.Speakers.CompletionPercent(speaker)))
}

func (h *AdminHandler) RejectSpeaker(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return writeError(c, http.StatusBadRequest, errors.New("invalid speaker id"))
	}

	var req dto.SpeakerRejectRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.validate(req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}

	speaker, err := h.Speakers.Reject(c.Request().Context(), id, req.Reason, req.AdminNotes)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.SpeakerResponseFromEntity(speaker, h.Speakers.CompletionPercent(speaker)))
}

// ListPendingVideos is the moderation queue.
func (h *AdminHandler) ListPendingVideos(c echo.Context) error {
	videos, err := h.Videos.ListPending(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err)
	}

	responses := make([]dto.VideoResponse, 0, len(videos))
	for i := range videos {
		playback := h.Videos.PlaybackURL(c.Request().Context(), &videos[i])
		responses = append(responses, dto.VideoResponseFromEntity(&videos[i], playback))
	}
	return c.JSON(http.StatusOK, responses)
}

func (h *AdminHandler) ApproveVideo(c echo.Context) error {
	return h.moderateVideo(c, true)
}

func (h *AdminHandler) RejectVideo(c echo.Context) error {
	return h.moderateVideo(c, false)
}

func (h *AdminHandler) moderateVideo(c echo.Context, approved bool) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return writeError(c, http.StatusBadRequest, errors.New("invalid video id"))
	}

	var req dto.VideoApprovalRequest
	_ = decodeJSON(c, &req) // body is optional for approve, reason checked by the service on reject

	video, err := h.Videos.SetApproval(c.Request().Context(), id, approved, req.Reason, req.AdminNotes)
	if err != nil {
		return writeServiceError(c, err)
	}
	playback := h.Videos.PlaybackURL(c.Request().Context(), video)
	return c.JSON(http.StatusOK, dto.VideoResponseFromEntity(video, playback))
}

func (h *AdminHandler) validate(payload any) error {
	if h.Validate == nil {
		return nil
	}
	return h.Validate.Struct(payload)
}
