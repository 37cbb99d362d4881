package repository

import (
	"context"
	"errors"
	"strings"

	"mindlift/internal/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VideoRepository interface {
	WithTx(tx *gorm.DB) VideoRepository
	Create(ctx context.Context, video *entity.Video) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Video, error)
	Update(ctx context.Context, video *entity.Video) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListPublic(ctx context.Context, category string, limit, offset int) ([]entity.Video, error)
	ListPending(ctx context.Context) ([]entity.Video, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, limit int) ([]entity.Video, error)
	CountByStatus(ctx context.Context, status entity.VideoStatus) (int64, error)
	CountByOwner(ctx context.Context, ownerID uuid.UUID, status entity.VideoStatus) (int64, error)
}

type videoRepository struct {
	db *gorm.DB
}

func NewVideoRepository(db *gorm.DB) VideoRepository {
	return &videoRepository{db: db}
}

func (r *videoRepository) WithTx(tx *gorm.DB) VideoRepository {
	if tx == nil {
		return r
	}
	return &videoRepository{db: tx}
}

func (r *videoRepository) Create(ctx context.Context, video *entity.Video) error {
	return r.db.WithContext(ctx).Create(video).Error
}

func (r *videoRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Video, error) {
	var video entity.Video
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&video).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &video, err
}

func (r *videoRepository) Update(ctx context.Context, video *entity.Video) error {
	return r.db.WithContext(ctx).Save(video).Error
}

func (r *videoRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&entity.Video{}).
		Error
}

func (r *videoRepository) ListPublic(ctx context.Context, category string, limit, offset int) ([]entity.Video, error) {
	var videos []entity.Video
	query := r.db.WithContext(ctx).
		Where("status = ?", entity.VideoApproved).
		Order("created_at DESC")
	if category != "" {
		// Categories are stored comma-separated; wrapping both sides in
		// delimiters matches whole tokens only, so "art" never matches
		// "startups".
		query = query.Where("(',' || category || ',') LIKE ?", categoryPattern(category))
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	if err := query.Find(&videos).Error; err != nil {
		return nil, err
	}
	return videos, nil
}

func (r *videoRepository) ListPending(ctx context.Context) ([]entity.Video, error) {
	var videos []entity.Video
	err := r.db.WithContext(ctx).
		Where("status = ?", entity.VideoPending).
		Order("created_at DESC").
		Find(&videos).Error
	if err != nil {
		return nil, err
	}
	return videos, nil
}

func (r *videoRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, limit int) ([]entity.Video, error) {
	var videos []entity.Video
	query := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&videos).Error; err != nil {
		return nil, err
	}
	return videos, nil
}

func (r *videoRepository) CountByStatus(ctx context.Context, status entity.VideoStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Video{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}

func (r *videoRepository) CountByOwner(ctx context.Context, ownerID uuid.UUID, status entity.VideoStatus) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).
		Model(&entity.Video{}).
		Where("owner_id = ?", ownerID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Count(&count).Error
	return count, err
}

// categoryPattern builds the LIKE pattern for a single category token
// against a delimiter-wrapped comma-separated column.
func categoryPattern(category string) string {
	return "%," + strings.ToLower(strings.TrimSpace(category)) + ",%"
}
