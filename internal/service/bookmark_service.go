package service

import (
	"context"

	"mindlift/internal/entity"
	"mindlift/internal/repository"

	"github.com/google/uuid"
)

type BookmarkService struct {
	bookmarks repository.BookmarkRepository
	videos    repository.VideoRepository
}

func NewBookmarkService(bookmarks repository.BookmarkRepository, videos repository.VideoRepository) *BookmarkService {
	return &BookmarkService{bookmarks: bookmarks, videos: videos}
}

// Add is idempotent: bookmarking the same video twice leaves one row.
func (s *BookmarkService) Add(ctx context.Context, userID, videoID uuid.UUID) error {
	video, err := s.videos.FindByID(ctx, videoID)
	if err != nil {
		return err
	}
	if video == nil {
		return ErrVideoNotFound
	}

	return s.bookmarks.Create(ctx, &entity.Bookmark{
		UserID:  userID,
		VideoID: videoID,
	})
}

func (s *BookmarkService) Remove(ctx context.Context, userID, videoID uuid.UUID) error {
	return s.bookmarks.Delete(ctx, userID, videoID)
}

func (s *BookmarkService) List(ctx context.Context, userID uuid.UUID) ([]entity.Bookmark, error) {
	return s.bookmarks.ListByUser(ctx, userID)
}
