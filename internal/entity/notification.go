package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type NotificationType string

const (
	NotifyEmailVerification NotificationType = "email_verification"
	NotifySpeakerApproved   NotificationType = "speaker_approved"
	NotifySpeakerRejected   NotificationType = "speaker_rejected"
	NotifyVideoApproved     NotificationType = "video_approved"
	NotifyVideoRejected     NotificationType = "video_rejected"
	NotifyMilestone         NotificationType = "milestone"
	NotifyReviewNeeded      NotificationType = "review_needed"
)

type Notification struct {
	ID     uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index"`
	User   User      `gorm:"constraint:OnDelete:CASCADE"`

	Type    NotificationType `gorm:"type:varchar(40);not null"`
	Title   string           `gorm:"type:varchar(255);not null"`
	Message string           `gorm:"type:text"`
	Data    datatypes.JSON

	Read      bool `gorm:"default:false;index"`
	EmailSent bool `gorm:"default:false;index"`

	CreatedAt time.Time
}
