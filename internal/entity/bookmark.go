package entity

import (
	"time"

	"github.com/google/uuid"
)

type Bookmark struct {
	ID      uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_bookmarks_user_video"`
	User    User      `gorm:"constraint:OnDelete:CASCADE"`
	VideoID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_bookmarks_user_video"`
	Video   Video     `gorm:"constraint:OnDelete:CASCADE"`

	CreatedAt time.Time
}
