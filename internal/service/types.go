package service

import (
	"context"
	"io"
	"time"

	"mindlift/internal/entity"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(hash string, password string) bool
}

type SessionTokenIssuer interface {
	IssueSessionToken(user *entity.User) (string, time.Duration, error)
}

type EmailSender interface {
	SendPasswordResetEmail(ctx context.Context, email string, token string) error
	SendNotificationEmail(ctx context.Context, email string, subject string, message string) error
}

// MediaStore is the object store backing uploaded video files.
type MediaStore interface {
	Upload(ctx context.Context, key string, contentType string, body io.Reader) error
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)
	Delete(ctx context.Context, key string) error
}

// Pusher delivers a payload to a connected user, best effort.
type Pusher interface {
	Push(userID uuid.UUID, payload any)
}

// Notifier records a lifecycle notification. A non-nil tx enrolls the
// insert in the caller's transaction.
type Notifier interface {
	Notify(ctx context.Context, tx *gorm.DB, userID uuid.UUID, typ entity.NotificationType, title string, message string, data map[string]any) error
}

// Caller is the verified identity a handler passes down for ownership
// checks.
type Caller struct {
	ID   uuid.UUID
	Role entity.UserRole
}

func (c Caller) IsAdmin() bool {
	return c.Role == entity.UserRoleAdmin
}

type Clock interface {
	Now() time.Time
}

type RealClock struct{}

func (RealClock) Now() time.Time {
	return time.Now()
}

type BcryptPasswordHasher struct {
	Cost int
}

func (h BcryptPasswordHasher) Hash(password string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func (h BcryptPasswordHasher) Verify(hash string, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
