package repository

import (
	"context"

	"mindlift/internal/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BookmarkRepository interface {
	Create(ctx context.Context, bookmark *entity.Bookmark) error
	Delete(ctx context.Context, userID, videoID uuid.UUID) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]entity.Bookmark, error)
}

type bookmarkRepository struct {
	db *gorm.DB
}

func NewBookmarkRepository(db *gorm.DB) BookmarkRepository {
	return &bookmarkRepository{db: db}
}

// Create is a no-op when the (user, video) pair already exists.
func (r *bookmarkRepository) Create(ctx context.Context, bookmark *entity.Bookmark) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "video_id"}},
			DoNothing: true,
		}).
		Create(bookmark).Error
}

func (r *bookmarkRepository) Delete(ctx context.Context, userID, videoID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND video_id = ?", userID, videoID).
		Delete(&entity.Bookmark{}).
		Error
}

func (r *bookmarkRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]entity.Bookmark, error) {
	var bookmarks []entity.Bookmark
	err := r.db.WithContext(ctx).
		Preload("Video").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&bookmarks).Error
	if err != nil {
		return nil, err
	}
	return bookmarks, nil
}
