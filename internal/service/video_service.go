package service

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"mindlift/internal/dto"
	"mindlift/internal/entity"
	"mindlift/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const playbackURLTTL = 4 * time.Hour

type CreateVideoInput struct {
	Title       string
	Description string
	Category    string
	ExternalURL string

	// File upload; nil FileBody means URL-only.
	FileBody    io.Reader
	FileName    string
	ContentType string
}

type VideoService struct {
	db       *gorm.DB
	videos   repository.VideoRepository
	store    MediaStore
	notifier Notifier
	clock    Clock
	log      *logrus.Logger
}

func NewVideoService(
	db *gorm.DB,
	videos repository.VideoRepository,
	store MediaStore,
	notifier Notifier,
	clock Clock,
	log *logrus.Logger,
) *VideoService {
	return &VideoService{
		db:       db,
		videos:   videos,
		store:    store,
		notifier: notifier,
		clock:    clock,
		log:      log,
	}
}

// Create stores a new video in pending state regardless of the caller's
// role. Exactly one content source must be supplied.
func (s *VideoService) Create(ctx context.Context, ownerID uuid.UUID, input CreateVideoInput) (*entity.Video, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrInvalidInput
	}

	hasFile := input.FileBody != nil
	hasURL := strings.TrimSpace(input.ExternalURL) != ""
	if !hasFile && !hasURL {
		return nil, ErrMissingContent
	}
	if hasFile && hasURL {
		return nil, ErrAmbiguousContent
	}

	video := &entity.Video{
		OwnerID:     ownerID,
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Category:    normalizeCategory(input.Category),
		Status:      entity.VideoPending,
	}

	if hasFile {
		if s.store == nil {
			return nil, ErrStorageDisabled
		}
		key := fmt.Sprintf("videos/%s/%s%s", ownerID, uuid.NewString(), path.Ext(input.FileName))
		contentType := input.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		if err := s.store.Upload(ctx, key, contentType, input.FileBody); err != nil {
			return nil, err
		}
		video.ObjectKey = key
	} else {
		video.ExternalURL = strings.TrimSpace(input.ExternalURL)
	}

	if err := s.videos.Create(ctx, video); err != nil {
		// Orphaned object if this fails after an upload; the bucket key
		// embeds a uuid so a later retry never collides with it.
		return nil, err
	}
	return video, nil
}

// Get resolves a video for the given caller. Rows that are not yet or
// no longer approved are only visible to their owner and admins;
// everyone else sees not-found, same as a missing row.
func (s *VideoService) Get(ctx context.Context, id uuid.UUID, caller Caller) (*entity.Video, error) {
	video, err := s.videos.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if video == nil {
		return nil, ErrVideoNotFound
	}
	if video.Status != entity.VideoApproved && !caller.IsAdmin() && video.OwnerID != caller.ID {
		return nil, ErrVideoNotFound
	}
	return video, nil
}

// PlaybackURL resolves the single content source of a video.
func (s *VideoService) PlaybackURL(ctx context.Context, video *entity.Video) string {
	if video.ExternalURL != "" {
		return video.ExternalURL
	}
	if s.store == nil {
		return ""
	}
	url, err := s.store.PresignGet(ctx, video.ObjectKey, playbackURLTTL)
	if err != nil {
		s.log.WithError(err).WithField("video_id", video.ID).Warn("failed to presign playback url")
		return ""
	}
	return url
}

func (s *VideoService) ListPublic(ctx context.Context, category string, limit, offset int) ([]entity.Video, error) {
	return s.videos.ListPublic(ctx, category, limit, offset)
}

func (s *VideoService) ListPending(ctx context.Context) ([]entity.Video, error) {
	return s.videos.ListPending(ctx)
}

// Update edits metadata only. Content source and approval state are
// never touched here.
func (s *VideoService) Update(ctx context.Context, id uuid.UUID, caller Caller, input dto.UpdateVideoRequest) (*entity.Video, error) {
	video, err := s.videos.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if video == nil {
		return nil, ErrVideoNotFound
	}
	if !caller.IsAdmin() && video.OwnerID != caller.ID {
		return nil, ErrForbidden
	}

	if input.Title != nil {
		video.Title = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		video.Description = strings.TrimSpace(*input.Description)
	}
	if input.Category != nil {
		video.Category = normalizeCategory(*input.Category)
	}

	if err := s.videos.Update(ctx, video); err != nil {
		return nil, err
	}
	return video, nil
}

// SetApproval is the admin moderation transition. Approval and its
// notification commit in one transaction. Rejection persists the row
// with the reason rather than deleting it.
func (s *VideoService) SetApproval(ctx context.Context, id uuid.UUID, approved bool, reason string, adminNotes string) (*entity.Video, error) {
	video, err := s.videos.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if video == nil {
		return nil, ErrVideoNotFound
	}

	if adminNotes != "" {
		video.AdminNotes = adminNotes
	}

	if approved {
		err = s.inTx(ctx, func(tx *gorm.DB) error {
			now := s.now()
			video.Status = entity.VideoApproved
			video.ApprovedAt = &now
			video.RejectionReason = ""
			if err := s.videos.WithTx(tx).Update(ctx, video); err != nil {
				return err
			}
			return s.notifier.Notify(ctx, tx, video.OwnerID, entity.NotifyVideoApproved,
				"Your video was approved",
				fmt.Sprintf("%q is now live on MindLift.", video.Title),
				map[string]any{"video_id": video.ID.String()})
		})
	} else {
		if strings.TrimSpace(reason) == "" {
			return nil, ErrMissingReason
		}
		err = s.inTx(ctx, func(tx *gorm.DB) error {
			video.Status = entity.VideoRejected
			video.RejectionReason = reason
			video.ApprovedAt = nil
			if err := s.videos.WithTx(tx).Update(ctx, video); err != nil {
				return err
			}
			return s.notifier.Notify(ctx, tx, video.OwnerID, entity.NotifyVideoRejected,
				"Your video was not approved",
				fmt.Sprintf("%q was not approved: %s", video.Title, reason),
				map[string]any{"video_id": video.ID.String(), "reason": reason})
		})
	}
	if err != nil {
		return nil, err
	}
	return video, nil
}

// Delete removes the row (bookmarks cascade at the store level) and
// best-effort removes the uploaded object.
func (s *VideoService) Delete(ctx context.Context, id uuid.UUID, caller Caller) error {
	video, err := s.videos.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if video == nil {
		return ErrVideoNotFound
	}
	if !caller.IsAdmin() && video.OwnerID != caller.ID {
		return ErrForbidden
	}

	if err := s.videos.Delete(ctx, id); err != nil {
		return err
	}

	if video.ObjectKey != "" && s.store != nil {
		if err := s.store.Delete(ctx, video.ObjectKey); err != nil {
			s.log.WithError(err).WithField("key", video.ObjectKey).Warn("failed to delete media object")
		}
	}
	return nil
}

func normalizeCategory(category string) string {
	parts := strings.Split(category, ",")
	cleaned := parts[:0]
	for _, part := range parts {
		part = strings.ToLower(strings.TrimSpace(part))
		if part != "" {
			cleaned = append(cleaned, part)
		}
	}
	return strings.Join(cleaned, ",")
}

func (s *VideoService) inTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if s.db == nil {
		return fn(nil)
	}
	return s.db.WithContext(ctx).Transaction(fn)
}

func (s *VideoService) now() time.Time {
	if s.clock == nil {
		return time.Now()
	}
	return s.clock.Now()
}
