package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"mindlift/internal/dto"
	"mindlift/internal/entity"
	"mindlift/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Profile fields counted toward completion. The first four are required
// before the profile can be submitted for review.
var (
	speakerRequiredFields = []string{"bio", "full_name", "areas_of_expertise", "profile_picture_url"}
	speakerOptionalFields = []string{"intro_video_url", "socials"}
)

type SpeakerService struct {
	db       *gorm.DB
	speakers repository.SpeakerRepository
	users    repository.UserRepository
	videos   repository.VideoRepository
	notifier Notifier
	clock    Clock
	log      *logrus.Logger
}

func NewSpeakerService(
	db *gorm.DB,
	speakers repository.SpeakerRepository,
	users repository.UserRepository,
	videos repository.VideoRepository,
	notifier Notifier,
	clock Clock,
	log *logrus.Logger,
) *SpeakerService {
	return &SpeakerService{
		db:       db,
		speakers: speakers,
		users:    users,
		videos:   videos,
		notifier: notifier,
		clock:    clock,
		log:      log,
	}
}

// Ensure returns the speaker row for userID, creating an empty pending
// one the first time. Idempotent: a concurrent insert losing the race
// falls back to the winner's row.
func (s *SpeakerService) Ensure(ctx context.Context, userID uuid.UUID) (*entity.Speaker, error) {
	speaker, err := s.speakers.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if speaker != nil {
		return speaker, nil
	}

	speaker = &entity.Speaker{
		UserID:         userID,
		ApprovalStatus: entity.ApprovalPending,
	}
	if err := s.speakers.Create(ctx, speaker); err != nil {
		if isUniqueViolation(err) {
			return s.speakers.FindByUserID(ctx, userID)
		}
		return nil, err
	}
	return speaker, nil
}

// UpdateProfile applies a partial update; unset fields keep their
// current value. Approval status is never touched here.
func (s *SpeakerService) UpdateProfile(ctx context.Context, userID uuid.UUID, input dto.UpdateSpeakerProfileRequest) (*entity.Speaker, error) {
	speaker, err := s.Ensure(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.FullName != nil {
		speaker.FullName = strings.TrimSpace(*input.FullName)
	}
	if input.Bio != nil {
		speaker.Bio = strings.TrimSpace(*input.Bio)
	}
	if input.AreasOfExpertise != nil {
		speaker.AreasOfExpertise = datatypes.NewJSONSlice(*input.AreasOfExpertise)
	}
	if input.ProfilePictureURL != nil {
		speaker.ProfilePictureURL = *input.ProfilePictureURL
	}
	if input.IntroVideoURL != nil {
		speaker.IntroVideoURL = *input.IntroVideoURL
	}
	if input.Socials != nil {
		socials := datatypes.JSONMap{}
		for key, value := range input.Socials {
			socials[key] = value
		}
		speaker.Socials = socials
	}

	if err := s.speakers.Update(ctx, speaker); err != nil {
		return nil, err
	}
	return speaker, nil
}

// SubmitForReview moves the profile (back) to pending. Requires every
// required field to be set; notifies admins and welcomes the speaker.
func (s *SpeakerService) SubmitForReview(ctx context.Context, userID uuid.UUID) (*entity.Speaker, error) {
	speaker, err := s.Ensure(ctx, userID)
	if err != nil {
		return nil, err
	}

	if missing := s.missingRequiredFields(speaker); len(missing) > 0 {
		return nil, &IncompleteProfileError{Missing: missing}
	}

	if speaker.ApprovalStatus == entity.ApprovalApproved {
		return nil, ErrAlreadyApproved
	}
	if speaker.ApprovalStatus == entity.ApprovalPending && speaker.SubmittedAt != nil {
		return nil, ErrAlreadySubmitted
	}

	err = s.inTx(ctx, func(tx *gorm.DB) error {
		now := s.now()
		speaker.ApprovalStatus = entity.ApprovalPending
		speaker.SubmittedAt = &now
		speaker.RejectedAt = nil
		if err := s.speakers.WithTx(tx).Update(ctx, speaker); err != nil {
			return err
		}

		admins, err := s.users.ListByRole(ctx, entity.UserRoleAdmin)
		if err != nil {
			return err
		}
		for i := range admins {
			err := s.notifier.Notify(ctx, tx, admins[i].ID, entity.NotifyReviewNeeded,
				"Speaker profile awaiting review",
				fmt.Sprintf("%s submitted their speaker profile for review.", speaker.FullName),
				map[string]any{"speaker_id": speaker.ID.String()})
			if err != nil {
				return err
			}
		}

		return s.notifier.Notify(ctx, tx, userID, entity.NotifyMilestone,
			"Welcome to MindLift Speakers",
			fmt.Sprintf("Thanks for submitting your profile, %s. We'll review it shortly.", speaker.FullName),
			nil)
	})
	if err != nil {
		return nil, err
	}
	return speaker, nil
}

// Approve is terminal: there is no de-approval path.
func (s *SpeakerService) Approve(ctx context.Context, speakerID uuid.UUID, adminNotes string) (*entity.Speaker, error) {
	speaker, err := s.speakers.FindByID(ctx, speakerID)
	if err != nil {
		return nil, err
	}
	if speaker == nil {
		return nil, ErrSpeakerNotFound
	}

	err = s.inTx(ctx, func(tx *gorm.DB) error {
		now := s.now()
		speaker.ApprovalStatus = entity.ApprovalApproved
		speaker.ApprovedAt = &now
		speaker.RejectedAt = nil
		if adminNotes != "" {
			speaker.AdminNotes = adminNotes
		}
		if err := s.speakers.WithTx(tx).Update(ctx, speaker); err != nil {
			return err
		}

		return s.notifier.Notify(ctx, tx, speaker.UserID, entity.NotifySpeakerApproved,
			"Your speaker profile was approved",
			"Congratulations! Your MindLift speaker profile is now live.",
			map[string]any{"speaker_id": speaker.ID.String()})
	})
	if err != nil {
		return nil, err
	}
	return speaker, nil
}

func (s *SpeakerService) Reject(ctx context.Context, speakerID uuid.UUID, reason string, adminNotes string) (*entity.Speaker, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, ErrMissingReason
	}

	speaker, err := s.speakers.FindByID(ctx, speakerID)
	if err != nil {
		return nil, err
	}
	if speaker == nil {
		return nil, ErrSpeakerNotFound
	}

	err = s.inTx(ctx, func(tx *gorm.DB) error {
		now := s.now()
		speaker.ApprovalStatus = entity.ApprovalRejected
		speaker.RejectedAt = &now
		if adminNotes != "" {
			speaker.AdminNotes = adminNotes
		}
		if err := s.speakers.WithTx(tx).Update(ctx, speaker); err != nil {
			return err
		}

		return s.notifier.Notify(ctx, tx, speaker.UserID, entity.NotifySpeakerRejected,
			"Your speaker profile was not approved",
			fmt.Sprintf("Your profile was not approved: %s. You can update it and resubmit.", reason),
			map[string]any{"speaker_id": speaker.ID.String(), "reason": reason})
	})
	if err != nil {
		return nil, err
	}
	return speaker, nil
}

func (s *SpeakerService) Dashboard(ctx context.Context, userID uuid.UUID) (*entity.Speaker, dto.SpeakerStats, []entity.Video, error) {
	speaker, err := s.Ensure(ctx, userID)
	if err != nil {
		return nil, dto.SpeakerStats{}, nil, err
	}

	var stats dto.SpeakerStats
	if stats.TotalVideos, err = s.videos.CountByOwner(ctx, userID, ""); err != nil {
		return nil, dto.SpeakerStats{}, nil, err
	}
	if stats.ApprovedVideos, err = s.videos.CountByOwner(ctx, userID, entity.VideoApproved); err != nil {
		return nil, dto.SpeakerStats{}, nil, err
	}
	if stats.PendingVideos, err = s.videos.CountByOwner(ctx, userID, entity.VideoPending); err != nil {
		return nil, dto.SpeakerStats{}, nil, err
	}

	recent, err := s.videos.ListByOwner(ctx, userID, 5)
	if err != nil {
		return nil, dto.SpeakerStats{}, nil, err
	}
	return speaker, stats, recent, nil
}

func (s *SpeakerService) ListByStatus(ctx context.Context, status entity.ApprovalStatus, limit, offset int) ([]entity.Speaker, error) {
	return s.speakers.ListByStatus(ctx, status, limit, offset)
}

// CompletionPercent is display-only progress over the required plus
// optional fields.
func (s *SpeakerService) CompletionPercent(speaker *entity.Speaker) int {
	total := len(speakerRequiredFields) + len(speakerOptionalFields)
	set := 0
	for _, field := range speakerRequiredFields {
		if fieldSet(speaker, field) {
			set++
		}
	}
	for _, field := range speakerOptionalFields {
		if fieldSet(speaker, field) {
			set++
		}
	}
	return set * 100 / total
}

func (s *SpeakerService) missingRequiredFields(speaker *entity.Speaker) []string {
	var missing []string
	for _, field := range speakerRequiredFields {
		if !fieldSet(speaker, field) {
			missing = append(missing, field)
		}
	}
	return missing
}

func fieldSet(speaker *entity.Speaker, field string) bool {
	switch field {
	case "bio":
		return strings.TrimSpace(speaker.Bio) != ""
	case "full_name":
		return strings.TrimSpace(speaker.FullName) != ""
	case "areas_of_expertise":
		return len(speaker.AreasOfExpertise) > 0
	case "profile_picture_url":
		return speaker.ProfilePictureURL != ""
	case "intro_video_url":
		return speaker.IntroVideoURL != ""
	case "socials":
		return len(speaker.Socials) > 0
	}
	return false
}

func (s *SpeakerService) inTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if s.db == nil {
		return fn(nil)
	}
	return s.db.WithContext(ctx).Transaction(fn)
}

func (s *SpeakerService) now() time.Time {
	if s.clock == nil {
		return time.Now()
	}
	return s.clock.Now()
}
