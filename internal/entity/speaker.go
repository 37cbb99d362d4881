package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

// Speaker is the 1:1 profile attached to a speaker-role user. Rows are
// created lazily the first time the user hits their dashboard.
type Speaker struct {
	ID     uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	User   User      `gorm:"constraint:OnDelete:CASCADE"`

	FullName          string                      `gorm:"type:varchar(255)"`
	Bio               string                      `gorm:"type:text"`
	AreasOfExpertise  datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	ProfilePictureURL string                      `gorm:"type:text"`
	IntroVideoURL     string                      `gorm:"type:text"`
	Socials           datatypes.JSONMap           `gorm:"type:jsonb"`

	// A row sits in pending from creation; SubmittedAt distinguishes a
	// profile the speaker actually put up for review.
	ApprovalStatus ApprovalStatus `gorm:"type:varchar(20);default:'pending';not null;index"`
	AdminNotes     string         `gorm:"type:text"`
	SubmittedAt    *time.Time
	ApprovedAt     *time.Time
	RejectedAt     *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
