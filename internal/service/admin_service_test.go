package service

import (
	"context"
	"errors"
	"testing"

	"mindlift/internal/entity"

	"github.com/google/uuid"
)

func TestAdminStats(t *testing.T) {
	users := newFakeUserRepo()
	speakers := newFakeSpeakerRepo()
	videos := newFakeVideoRepo()
	svc := NewAdminService(users, speakers, videos)

	users.add(&entity.User{Email: "a@example.com", IsPaid: true})
	users.add(&entity.User{Email: "b@example.com"})
	speakers.add(&entity.Speaker{UserID: uuid.New(), ApprovalStatus: entity.ApprovalPending})
	speakers.add(&entity.Speaker{UserID: uuid.New(), ApprovalStatus: entity.ApprovalApproved})
	videos.add(&entity.Video{OwnerID: uuid.New(), Title: "a", Status: entity.VideoApproved})
	videos.add(&entity.Video{OwnerID: uuid.New(), Title: "b", Status: entity.VideoPending})
	videos.add(&entity.Video{OwnerID: uuid.New(), Title: "c", Status: entity.VideoRejected})

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.TotalUsers != 2 || stats.PaidUsers != 1 {
		t.Errorf("user stats = %+v", stats)
	}
	if stats.PendingSpeakers != 1 {
		t.Errorf("pending speakers = %d, want 1", stats.PendingSpeakers)
	}
	// Rejected rows still count toward the total.
	if stats.TotalVideos != 3 || stats.PendingVideos != 1 || stats.ApprovedVideos != 1 {
		t.Errorf("video stats = %+v", stats)
	}
}

func TestAdminDeleteUser(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewAdminService(users, newFakeSpeakerRepo(), newFakeVideoRepo())

	user := users.add(&entity.User{Email: "gone@example.com"})

	if err := svc.DeleteUser(context.Background(), user.ID); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}
	if len(users.deleted) != 1 || users.deleted[0] != user.ID {
		t.Errorf("deleted = %v", users.deleted)
	}

	if err := svc.DeleteUser(context.Background(), user.ID); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("second delete err = %v, want ErrUserNotFound", err)
	}
}
