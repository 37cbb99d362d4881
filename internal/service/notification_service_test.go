package service

import (
	"context"
	"errors"
	"testing"

	"mindlift/internal/entity"

	"github.com/google/uuid"
)

func newNotificationFixture() (*NotificationService, *fakeNotificationRepo, *fakeEmailSender, *fakePusher) {
	repo := &fakeNotificationRepo{}
	emails := &fakeEmailSender{}
	pusher := &fakePusher{}
	svc := NewNotificationService(repo, emails, pusher, testLogger())
	return svc, repo, emails, pusher
}

func TestNotifyPersistsAndPushes(t *testing.T) {
	svc, repo, _, pusher := newNotificationFixture()
	userID := uuid.New()

	err := svc.Notify(context.Background(), nil, userID, entity.NotifyMilestone, "Welcome", "Hello there", map[string]any{"k": "v"})
	if err != nil {
		t.Fatalf("Notify: %v", err)
	}

	if len(repo.notifications) != 1 {
		t.Fatalf("stored = %d, want 1", len(repo.notifications))
	}
	stored := repo.notifications[0]
	if stored.UserID != userID || stored.Type != entity.NotifyMilestone {
		t.Errorf("stored = %+v", stored)
	}
	if stored.Data == nil {
		t.Error("data payload not serialized")
	}
	if len(pusher.pushes) != 1 || pusher.pushes[0] != userID {
		t.Errorf("pushes = %v, want one to the recipient", pusher.pushes)
	}
}

func TestMarkReadEnforcesRecipient(t *testing.T) {
	svc, repo, _, _ := newNotificationFixture()
	userID := uuid.New()

	if err := svc.Notify(context.Background(), nil, userID, entity.NotifyMilestone, "Welcome", "", nil); err != nil {
		t.Fatalf("Notify: %v", err)
	}
	id := repo.notifications[0].ID

	if err := svc.MarkRead(context.Background(), id, uuid.New()); !errors.Is(err, ErrNotifNotFound) {
		t.Fatalf("stranger MarkRead err = %v, want ErrNotifNotFound", err)
	}
	if err := svc.MarkRead(context.Background(), id, userID); err != nil {
		t.Fatalf("MarkRead: %v", err)
	}
	if !repo.notifications[0].Read {
		t.Error("notification not marked read")
	}

	count, _ := svc.UnreadCount(context.Background(), userID)
	if count != 0 {
		t.Errorf("unread = %d, want 0", count)
	}
}

func TestEmailSweepDeliversAndMarks(t *testing.T) {
	svc, repo, emails, _ := newNotificationFixture()

	repo.notifications = append(repo.notifications, &entity.Notification{
		ID:      uuid.New(),
		UserID:  uuid.New(),
		Type:    entity.NotifyVideoApproved,
		Title:   "Your video was approved",
		Message: "It is live now.",
		User:    entity.User{Email: "ada@example.com"},
	})

	svc.sweepOnce(context.Background())

	if len(emails.sent) != 1 {
		t.Fatalf("sent = %d, want 1", len(emails.sent))
	}
	if emails.sent[0].to != "ada@example.com" || emails.sent[0].subject != "Your video was approved" {
		t.Errorf("sent = %+v", emails.sent[0])
	}
	if !repo.notifications[0].EmailSent {
		t.Error("notification not marked email_sent")
	}

	// Nothing left to send on the next pass.
	svc.sweepOnce(context.Background())
	if len(emails.sent) != 1 {
		t.Errorf("sent = %d after second sweep, want 1", len(emails.sent))
	}
}

func TestEmailSweepRetriesFailures(t *testing.T) {
	svc, repo, emails, _ := newNotificationFixture()
	emails.err = errors.New("resend 503")

	repo.notifications = append(repo.notifications, &entity.Notification{
		ID:     uuid.New(),
		UserID: uuid.New(),
		Title:  "Hello",
		User:   entity.User{Email: "ada@example.com"},
	})

	svc.sweepOnce(context.Background())
	if repo.notifications[0].EmailSent {
		t.Fatal("failed delivery marked as sent")
	}

	emails.err = nil
	svc.sweepOnce(context.Background())
	if !repo.notifications[0].EmailSent {
		t.Error("retry did not mark the email sent")
	}
}
