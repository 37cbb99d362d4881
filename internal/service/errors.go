package service

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrEmailTaken       = errors.New("User with this email already exists.")
	ErrRoleNotAllowed   = errors.New("role not allowed")
	ErrInvalidCreds     = errors.New("invalid credentials")
	ErrInvalidToken     = errors.New("invalid or expired token")
	ErrForbidden        = errors.New("forbidden")
	ErrUserNotFound     = errors.New("user not found")
	ErrSpeakerNotFound  = errors.New("speaker not found")
	ErrVideoNotFound    = errors.New("video not found")
	ErrNotifNotFound    = errors.New("notification not found")
	ErrMissingContent   = errors.New("Video file or URL is required")
	ErrAmbiguousContent = errors.New("provide either a video file or a URL, not both")
	ErrMissingReason    = errors.New("rejection reason is required")
	ErrAlreadySubmitted = errors.New("profile is already pending review")
	ErrAlreadyApproved  = errors.New("profile is already approved")
	ErrStoreUnavailable = errors.New("service unavailable")
	ErrStorageDisabled  = errors.New("media storage is not configured")
)

// IncompleteProfileError lists the required profile fields still unset
// when a speaker tries to submit for review.
type IncompleteProfileError struct {
	Missing []string
}

func (e *IncompleteProfileError) Error() string {
	return fmt.Sprintf("profile incomplete: missing %s", strings.Join(e.Missing, ", "))
}
