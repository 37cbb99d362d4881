package handler

import (
	"errors"
	"net/http"
	"strings"

	"mindlift/api/middleware"
	"mindlift/internal/dto"
	"mindlift/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type VideoHandler struct {
	Service  *service.VideoService
	Validate *validator.Validate
}

func NewVideoHandler(svc *service.VideoService, validate *validator.Validate) *VideoHandler {
	return &VideoHandler{Service: svc, Validate: validate}
}

// Create accepts either a JSON body with video_url or a multipart form
// with a "video" file part.
func (h *VideoHandler) Create(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, errors.New("unauthorized"))
	}

	input, cleanup, err := h.buildCreateInput(c)
	if err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if cleanup != nil {
		defer cleanup()
	}

	video, err := h.Service.Create(c.Request().Context(), userID, *input)
	if err != nil {
		return writeServiceError(c, err)
	}
	playback := h.Service.PlaybackURL(c.Request().Context(), video)
	return c.JSON(http.StatusCreated, dto.VideoResponseFromEntity(video, playback))
}

func (h *VideoHandler) buildCreateInput(c echo.Context) (*service.CreateVideoInput, func(), error) {
	contentType := c.Request().Header.Get(echo.HeaderContentType)
	if !strings.HasPrefix(contentType, echo.MIMEMultipartForm) {
		var req dto.CreateVideoRequest
		if err := decodeJSON(c, &req); err != nil {
			return nil, nil, err
		}
		if err := h.validate(req); err != nil {
			return nil, nil, err
		}
		return &service.CreateVideoInput{
			Title:       req.Title,
			Description: req.Description,
			Category:    req.Category,
			ExternalURL: req.VideoURL,
		}, nil, nil
	}

	input := &service.CreateVideoInput{
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
		Category:    c.FormValue("category"),
		ExternalURL: c.FormValue("video_url"),
	}

	fileHeader, err := c.FormFile("video")
	if err == nil && fileHeader != nil {
		file, err := fileHeader.Open()
		if err != nil {
			return nil, nil, err
		}
		input.FileBody = file
		input.FileName = fileHeader.Filename
		input.ContentType = fileHeader.Header.Get(echo.HeaderContentType)
		return input, func() { file.Close() }, nil
	}
	return input, nil, nil
}

func (h *VideoHandler) List(c echo.Context) error {
	limit, offset := parseLimitOffset(c)
	videos, err := h.Service.ListPublic(c.Request().Context(), c.QueryParam("category"), limit, offset)
	if err != nil {
		return writeServiceError(c, err)
	}

	responses := make([]dto.VideoResponse, 0, len(videos))
	for i := range videos {
		playback := h.Service.PlaybackURL(c.Request().Context(), &videos[i])
		responses = append(responses, dto.VideoResponseFromEntity(&videos[i], playback))
	}
	return c.JSON(http.StatusOK, responses)
}

func (h *VideoHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return writeError(c, http.StatusBadRequest, errors.New("invalid video id"))
	}
	// Anonymous callers get the zero caller; routing runs OptionalAuth
	// here so owners and admins can see their unapproved rows.
	caller, _ := callerFromContext(c)
	video, err := h.Service.Get(c.Request().Context(), id, caller)
	if err != nil {
		return writeServiceError(c, err)
	}
	playback := h.Service.PlaybackURL(c.Request().Context(), video)
	return c.JSON(http.StatusOK, dto.VideoResponseFromEntity(video, playback))
}

func (h *VideoHandler) Update(c echo.Context) error {
	caller, err := callerFromContext(c)
	if err != nil {
		return writeError(c, http.StatusUnauthorized, err)
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return writeError(c, http.StatusBadRequest, errors.New("invalid video id"))
	}

	var req dto.UpdateVideoRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.validate(req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}

	video, err := h.Service.Update(c.Request().Context(), id, caller, req)
	if err != nil {
		return writeServiceError(c, err)
	}
	playback := h.Service.PlaybackURL(c.Request().Context(), video)
	return c.JSON(http.StatusOK, dto.VideoResponseFromEntity(video, playback))
}

// SetApproval serves PATCH /api/videos/:id/approval; routing has
// already enforced the admin role.
func (h *VideoHandler) SetApproval(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return writeError(c, http.StatusBadRequest, errors.New("invalid video id"))
	}

	var req dto.VideoApprovalRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.validate(req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}

	video, err := h.Service.SetApproval(c.Request().Context(), id, *req.Approved, req.Reason, req.AdminNotes)
	if err != nil {
		return writeServiceError(c, err)
	}
	playback := h.Service.PlaybackURL(c.Request().Context(), video)
	return c.JSON(http.StatusOK, dto.VideoResponseFromEntity(video, playback))
}

func (h *VideoHandler) Delete(c echo.Context) error {
	caller, err := callerFromContext(c)
	if err != nil {
		return writeError(c, http.StatusUnauthorized, err)
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return writeError(c, http.StatusBadRequest, errors.New("invalid video id"))
	}
	if err := h.Service.Delete(c.Request().Context(), id, caller); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *VideoHandler) validate(payload any) error {
	if h.Validate == nil {
		return nil
	}
	return h.Validate.Struct(payload)
}

func callerFromContext(c echo.Context) (service.Caller, error) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return service.Caller{}, errors.New("unauthorized")
	}
	role, ok := middleware.RoleFromContext(c)
	if !ok {
		return service.Caller{}, errors.New("unauthorized")
	}
	return service.Caller{ID: userID, Role: role}, nil
}
