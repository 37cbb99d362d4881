package entity

import (
	"time"

	"github.com/google/uuid"
)

type VideoStatus string

const (
	VideoPending  VideoStatus = "pending"
	VideoApproved VideoStatus = "approved"
	VideoRejected VideoStatus = "rejected"
)

// Video carries exactly one content source: ObjectKey for files stored
// in the media bucket, ExternalURL for links. Rejection persists the
// row together with the reason; removal is a separate delete.
type Video struct {
	ID      uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	OwnerID uuid.UUID `gorm:"type:uuid;not null;index"`
	Owner   User      `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE"`

	Title       string `gorm:"type:varchar(255);not null"`
	Description string `gorm:"type:text"`
	// Comma-separated multi-category convention, e.g. "mindset,career".
	Category string `gorm:"type:varchar(255)"`

	ObjectKey   string `gorm:"type:text"`
	ExternalURL string `gorm:"type:text"`

	Status          VideoStatus `gorm:"type:varchar(20);default:'pending';not null;index"`
	RejectionReason string      `gorm:"type:text"`
	AdminNotes      string      `gorm:"type:text"`
	ApprovedAt      *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
