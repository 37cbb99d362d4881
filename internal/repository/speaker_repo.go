package repository

import (
	"context"
	"errors"

	"mindlift/internal/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SpeakerRepository interface {
	WithTx(tx *gorm.DB) SpeakerRepository
	Create(ctx context.Context, speaker *entity.Speaker) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Speaker, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Speaker, error)
	Update(ctx context.Context, speaker *entity.Speaker) error
	ListByStatus(ctx context.Context, status entity.ApprovalStatus, limit, offset int) ([]entity.Speaker, error)
	CountByStatus(ctx context.Context, status entity.ApprovalStatus) (int64, error)
}

type speakerRepository struct {
	db *gorm.DB
}

func NewSpeakerRepository(db *gorm.DB) SpeakerRepository {
	return &speakerRepository{db: db}
}

func (r *speakerRepository) WithTx(tx *gorm.DB) SpeakerRepository {
	if tx == nil {
		return r
	}
	return &speakerRepository{db: tx}
}

func (r *speakerRepository) Create(ctx context.Context, speaker *entity.Speaker) error {
	return r.db.WithContext(ctx).Create(speaker).Error
}

func (r *speakerRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Speaker, error) {
	var speaker entity.Speaker
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&speaker).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &speaker, err
}

func (r *speakerRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Speaker, error) {
	var speaker entity.Speaker
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&speaker).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &speaker, err
}

func (r *speakerRepository) Update(ctx context.Context, speaker *entity.Speaker) error {
	return r.db.WithContext(ctx).Save(speaker).Error
}

func (r *speakerRepository) ListByStatus(ctx context.Context, status entity.ApprovalStatus, limit, offset int) ([]entity.Speaker, error) {
	var speakers []entity.Speaker
	query := r.db.WithContext(ctx).
		Where("approval_status = ?", status).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	if err := query.Find(&speakers).Error; err != nil {
		return nil, err
	}
	return speakers, nil
}

func (r *speakerRepository) CountByStatus(ctx context.Context, status entity.ApprovalStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Speaker{}).
		Where("approval_status = ?", status).
		Count(&count).Error
	return count, err
}
