package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"mindlift/internal/service"

	"github.com/labstack/echo/v4"
)

func decodeJSON(c echo.Context, target any) error {
	decoder := json.NewDecoder(c.Request().Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(target)
}

func writeError(c echo.Context, status int, err error) error {
	return c.JSON(status, map[string]string{"message": err.Error()})
}

// writeServiceError maps the service error taxonomy onto HTTP statuses.
// Anything unrecognized is a 500 with the detail withheld.
func writeServiceError(c echo.Context, err error) error {
	var incomplete *service.IncompleteProfileError
	if errors.As(err, &incomplete) {
		return c.JSON(http.StatusBadRequest, map[string]any{
			"message":        "profile incomplete",
			"missing_fields": incomplete.Missing,
		})
	}

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, service.ErrRoleNotAllowed),
		errors.Is(err, service.ErrMissingContent),
		errors.Is(err, service.ErrAmbiguousContent),
		errors.Is(err, service.ErrMissingReason):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidCreds), errors.Is(err, service.ErrInvalidToken):
		status = http.StatusUnauthorized
	case errors.Is(err, service.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrSpeakerNotFound),
		errors.Is(err, service.ErrVideoNotFound),
		errors.Is(err, service.ErrNotifNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrAlreadySubmitted),
		errors.Is(err, service.ErrAlreadyApproved):
		status = http.StatusConflict
	case errors.Is(err, service.ErrStoreUnavailable), errors.Is(err, service.ErrStorageDisabled):
		status = http.StatusServiceUnavailable
	}
	if status == http.StatusInternalServerError {
		return c.JSON(status, map[string]string{"message": "internal error"})
	}
	return writeError(c, status, err)
}

func parseLimitOffset(c echo.Context) (int, int) {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	return limit, offset
}
