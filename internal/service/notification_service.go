package service

import (
	"context"
	"encoding/json"
	"time"

	"mindlift/internal/entity"
	"mindlift/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const emailSweepBatchSize = 50

type NotificationService struct {
	notifications repository.NotificationRepository
	emailSender   EmailSender
	pusher        Pusher
	log           *logrus.Logger
}

func NewNotificationService(
	notifications repository.NotificationRepository,
	emailSender EmailSender,
	pusher Pusher,
	log *logrus.Logger,
) *NotificationService {
	return &NotificationService{
		notifications: notifications,
		emailSender:   emailSender,
		pusher:        pusher,
		log:           log,
	}
}

// Notify persists the notification (inside tx when given) and pushes it
// to any live websocket connection of the recipient. Email delivery is
// left to the sweep.
func (s *NotificationService) Notify(
	ctx context.Context,
	tx *gorm.DB,
	userID uuid.UUID,
	typ entity.NotificationType,
	title string,
	message string,
	data map[string]any,
) error {
	var payload datatypes.JSON
	if data != nil {
		bytes, err := json.Marshal(data)
		if err != nil {
			return err
		}
		payload = datatypes.JSON(bytes)
	}

	notification := &entity.Notification{
		UserID:  userID,
		Type:    typ,
		Title:   title,
		Message: message,
		Data:    payload,
	}
	if err := s.notifications.WithTx(tx).Create(ctx, notification); err != nil {
		return err
	}

	if s.pusher != nil {
		s.pusher.Push(userID, map[string]any{
			"event": "notification",
			"type":  string(typ),
			"title": title,
		})
	}
	return nil
}

func (s *NotificationService) ListForUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]entity.Notification, error) {
	return s.notifications.ListByUser(ctx, userID, limit, offset)
}

func (s *NotificationService) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.notifications.CountUnread(ctx, userID)
}

// MarkRead only succeeds for the recipient.
func (s *NotificationService) MarkRead(ctx context.Context, id, userID uuid.UUID) error {
	ok, err := s.notifications.MarkRead(ctx, id, userID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotifNotFound
	}
	return nil
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	return s.notifications.MarkAllRead(ctx, userID)
}

// RunEmailSweep delivers pending notification emails until ctx is done.
// Delivery failures are logged and retried on the next pass; they never
// surface to the transition that created the notification.
func (s *NotificationService) RunEmailSweep(ctx context.Context, interval time.Duration) {
	if s.emailSender == nil {
		s.log.Info("email sender not configured, sweep disabled")
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweepOnce(ctx)
		}
	}
}

func (s *NotificationService) sweepOnce(ctx context.Context) {
	pending, err := s.notifications.ListUnsentEmail(ctx, emailSweepBatchSize)
	if err != nil {
		s.log.WithError(err).Warn("email sweep query failed")
		return
	}

	for i := range pending {
		notification := &pending[i]
		err := s.emailSender.SendNotificationEmail(ctx, notification.User.Email, notification.Title, notification.Message)
		if err != nil {
			s.log.WithError(err).
				WithField("notification_id", notification.ID).
				Warn("notification email delivery failed")
			continue
		}
		if err := s.notifications.MarkEmailSent(ctx, notification.ID); err != nil {
			s.log.WithError(err).
				WithField("notification_id", notification.ID).
				Warn("failed to mark notification email sent")
		}
	}
}
