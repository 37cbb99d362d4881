package entity

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	UserRoleSubscriber UserRole = "subscriber"
	UserRoleSpeaker    UserRole = "speaker"
	UserRoleAdmin      UserRole = "admin"
)

// SignupAllowed reports whether the role may be self-assigned at signup.
// Admin accounts are seeded out of band.
func (r UserRole) SignupAllowed() bool {
	return r == UserRoleSubscriber || r == UserRoleSpeaker
}

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name         string    `gorm:"type:varchar(255);not null"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string    `gorm:"type:text;not null"`
	Role         UserRole  `gorm:"type:varchar(20);default:'subscriber';not null;index"`

	IsPaid           bool `gorm:"default:false"`
	EmailVerifiedAt  *time.Time
	Country          string `gorm:"type:varchar(100)"`
	ProfileCompleted bool   `gorm:"default:false"`

	LastLoginAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
