package service

import (
	"context"

	"mindlift/internal/dto"
	"mindlift/internal/entity"
	"mindlift/internal/repository"

	"github.com/google/uuid"
)

type AdminService struct {
	users    repository.UserRepository
	speakers repository.SpeakerRepository
	videos   repository.VideoRepository
}

func NewAdminService(
	users repository.UserRepository,
	speakers repository.SpeakerRepository,
	videos repository.VideoRepository,
) *AdminService {
	return &AdminService{users: users, speakers: speakers, videos: videos}
}

func (s *AdminService) ListUsers(ctx context.Context, limit, offset int) ([]entity.User, error) {
	return s.users.List(ctx, limit, offset)
}

// DeleteUser is a hard delete; speaker profiles, videos, bookmarks and
// notifications cascade at the store level.
func (s *AdminService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	return s.users.Delete(ctx, id)
}

func (s *AdminService) Stats(ctx context.Context) (*dto.AdminStatsResponse, error) {
	stats := &dto.AdminStatsResponse{}
	var err error

	if stats.TotalUsers, err = s.users.Count(ctx); err != nil {
		return nil, err
	}
	if stats.PaidUsers, err = s.users.CountPaid(ctx); err != nil {
		return nil, err
	}
	if stats.PendingSpeakers, err = s.speakers.CountByStatus(ctx, entity.ApprovalPending); err != nil {
		return nil, err
	}
	if stats.PendingVideos, err = s.videos.CountByStatus(ctx, entity.VideoPending); err != nil {
		return nil, err
	}
	if stats.ApprovedVideos, err = s.videos.CountByStatus(ctx, entity.VideoApproved); err != nil {
		return nil, err
	}
	rejected, err := s.videos.CountByStatus(ctx, entity.VideoRejected)
	if err != nil {
		return nil, err
	}
	stats.TotalVideos = stats.PendingVideos + stats.ApprovedVideos + rejected

	return stats, nil
}
